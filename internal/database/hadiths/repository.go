// Package hadiths provides read access to the hadith corpus.
//
// The corpus is bulk-imported and immutable from this service's point
// of view: the repository only reads. It satisfies the consumer
// interfaces of both the search engine and the progress service; the
// compile-time checks live in internal/interfaces.
package hadiths

import (
	"strings"

	"gorm.io/gorm"

	"github.com/alhifz/hifz/internal/arabic"
	"github.com/alhifz/hifz/internal/entities"
)

// Repository handles hadith corpus queries.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new hadiths repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetByID retrieves a hadith with its book and grades.
func (r *Repository) GetByID(id uint) (*entities.Hadith, error) {
	var hadith entities.Hadith
	err := r.db.Preload("Book").Preload("Grades").First(&hadith, id).Error
	if err != nil {
		return nil, err
	}
	return &hadith, nil
}

// GetAll loads the full corpus with book metadata and grades, ordered
// by id. Used for index rebuilds; bounded by corpus size (tens of
// thousands of rows). Grades ride along so the indexes can serve the
// grade filter without a second query.
func (r *Repository) GetAll() ([]entities.Hadith, error) {
	var hadiths []entities.Hadith
	err := r.db.Preload("Book").Preload("Grades").Order("hadiths.id ASC").Find(&hadiths).Error
	return hadiths, err
}

// Books lists every book in the corpus, ordered by slug.
func (r *Repository) Books() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Order("slug ASC").Find(&books).Error
	return books, err
}

// CountByBook returns the number of hadiths in a book slug.
func (r *Repository) CountByBook(slug string) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Hadith{}).
		Joins("JOIN books ON books.id = hadiths.book_id").
		Where("books.slug = ?", slug).
		Count(&count).Error
	return count, err
}

// SearchSubstring is the relational fallback: substring containment
// over the raw text fields, ordered by hadith id ascending. The query
// is tried verbatim against the Arabic text, de-vocalized against the
// same, and case-folded against the English fields. Book and grade
// filters behave like the ranked paths (grade matches
// case-insensitively). Returns the requested window plus the full
// match count.
func (r *Repository) SearchSubstring(query, book, grade string, limit, offset int) ([]entities.Hadith, int64, error) {
	like := "%" + query + "%"
	likeNorm := "%" + arabic.Normalize(query) + "%"
	likeLower := "%" + strings.ToLower(query) + "%"

	// Count and Find are separate finalizers; each gets its own
	// statement so one cannot leak clauses into the other.
	build := func() *gorm.DB {
		q := r.db.Model(&entities.Hadith{}).
			Where("text_ar LIKE ? OR text_ar LIKE ? OR LOWER(text_en) LIKE ? OR LOWER(narrator_en) LIKE ?",
				like, likeNorm, likeLower, likeLower)
		if book != "" {
			q = q.
				Joins("JOIN books ON books.id = hadiths.book_id").
				Where("books.slug = ?", book)
		}
		if grade != "" {
			q = q.
				Joins("JOIN grades ON grades.hadith_id = hadiths.id").
				Where("LOWER(grades.grade) = ?", strings.ToLower(grade))
		}
		return q
	}

	var total int64
	if err := build().Distinct("hadiths.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	rows := build()
	if grade != "" {
		// The grades join can yield one row per grade
		rows = rows.Distinct("hadiths.*")
	}
	var hadiths []entities.Hadith
	err := rows.
		Preload("Book").
		Preload("Grades").
		Order("hadiths.id ASC").
		Limit(limit).
		Offset(offset).
		Find(&hadiths).Error
	if err != nil {
		return nil, 0, err
	}
	return hadiths, total, nil
}
