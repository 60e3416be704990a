// Package progress provides database operations for progress records.
//
// The table is keyed by the composite (child_id, hadith_id); the state
// machine in internal/progress owns all transition logic, this package
// only persists.
package progress

import (
	"gorm.io/gorm"

	"github.com/alhifz/hifz/internal/entities"
)

// Repository handles progress record persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new progress repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Get retrieves the record for a (child, hadith) pair.
func (r *Repository) Get(childID, hadithID uint) (*entities.ProgressRecord, error) {
	var rec entities.ProgressRecord
	err := r.db.Where("child_id = ? AND hadith_id = ?", childID, hadithID).First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Create inserts a new record. The unique index on (child_id,
// hadith_id) rejects duplicates at the storage level as well.
func (r *Repository) Create(rec *entities.ProgressRecord) error {
	return r.db.Create(rec).Error
}

// Save persists a mutated record.
func (r *Repository) Save(rec *entities.ProgressRecord) error {
	return r.db.Save(rec).Error
}

// Delete removes the pair's record and reports how many rows went.
func (r *Repository) Delete(childID, hadithID uint) (int64, error) {
	result := r.db.Where("child_id = ? AND hadith_id = ?", childID, hadithID).
		Delete(&entities.ProgressRecord{})
	return result.RowsAffected, result.Error
}

// DeleteByChild removes every record for a child (child removal
// cascade). Returns the number of deleted rows.
func (r *Repository) DeleteByChild(childID uint) (int64, error) {
	result := r.db.Where("child_id = ?", childID).Delete(&entities.ProgressRecord{})
	return result.RowsAffected, result.Error
}

// ListByChild returns the child's records, newest first, optionally
// filtered by status.
func (r *Repository) ListByChild(childID uint, status entities.LearningStatus) ([]entities.ProgressRecord, error) {
	query := r.db.Where("child_id = ?", childID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var records []entities.ProgressRecord
	err := query.Order("started_at DESC, id DESC").Find(&records).Error
	return records, err
}

// CountByStatus groups the child's records by status in a single
// query. Statuses with no records are absent from the map; the stats
// aggregator zero-fills them.
func (r *Repository) CountByStatus(childID uint) (map[entities.LearningStatus]int64, error) {
	type row struct {
		Status entities.LearningStatus
		Count  int64
	}
	var rows []row
	err := r.db.Model(&entities.ProgressRecord{}).
		Select("status, COUNT(*) as count").
		Where("child_id = ?", childID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[entities.LearningStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}
