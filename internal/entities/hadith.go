package entities

// Book is a hadith collection (e.g. Sahih al-Bukhari). The corpus is
// bulk-imported; books are read-only input to the core.
type Book struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Slug        string `gorm:"uniqueIndex;size:50" json:"slug"` // e.g. "bukhari", "muslim"
	NameEn      string `gorm:"size:255" json:"name_en"`
	NameAr      string `gorm:"size:255" json:"name_ar"`
	AuthorEn    string `gorm:"size:255" json:"author_en,omitempty"`
	AuthorAr    string `gorm:"size:255" json:"author_ar,omitempty"`
	HadithCount int    `json:"hadith_count"`

	Chapters []Chapter `gorm:"foreignKey:BookID" json:"chapters,omitempty"`
	Hadiths  []Hadith  `gorm:"foreignKey:BookID" json:"-"`
}

// Topic is a thematic category from the traditional classification
// (aqeedah, salah, zakat, ...). Chapters map onto topics.
type Topic struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Slug          string `gorm:"uniqueIndex;size:50" json:"slug"`
	NameEn        string `gorm:"size:100" json:"name_en"`
	NameAr        string `gorm:"size:100" json:"name_ar"`
	DescriptionEn string `gorm:"type:text" json:"description_en,omitempty"`
	DescriptionAr string `gorm:"type:text" json:"description_ar,omitempty"`
	Icon          string `gorm:"size:50" json:"icon,omitempty"`
	DisplayOrder  int    `json:"display_order"`
}

type Chapter struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	BookID  uint   `gorm:"index" json:"book_id"`
	TopicID *uint  `gorm:"index" json:"topic_id,omitempty"`
	Number  int    `gorm:"index" json:"number"`
	TitleEn string `gorm:"size:512" json:"title_en"`
	TitleAr string `gorm:"size:512" json:"title_ar"`

	Book  Book   `gorm:"foreignKey:BookID" json:"-"`
	Topic *Topic `gorm:"foreignKey:TopicID" json:"topic,omitempty"`
}

// Hadith is the unit of content: a short attributed text with an Arabic
// original and optional English translation. Immutable once imported;
// the core never mutates hadith rows.
type Hadith struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	BookID       uint   `gorm:"index;uniqueIndex:idx_book_number" json:"book_id"`
	ChapterID    *uint  `gorm:"index" json:"chapter_id,omitempty"`
	HadithNumber int    `gorm:"uniqueIndex:idx_book_number" json:"hadith_number"`
	ArabicNumber int    `json:"arabic_number,omitempty"`
	TextAr       string `gorm:"type:text" json:"text_ar"`
	TextEn       string `gorm:"type:text" json:"text_en,omitempty"`
	NarratorEn   string `gorm:"type:text" json:"narrator_en,omitempty"`
	Reference    string `gorm:"size:100" json:"reference,omitempty"`

	Book    Book     `gorm:"foreignKey:BookID" json:"book,omitempty"`
	Chapter *Chapter `gorm:"foreignKey:ChapterID" json:"-"`
	Grades  []Grade  `gorm:"foreignKey:HadithID" json:"grades,omitempty"`
}

// Grade is a scholarly authenticity rating (sahih, hasan, da'if)
// attached to a hadith by a named grader.
type Grade struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	HadithID   uint   `gorm:"index" json:"hadith_id"`
	GraderName string `gorm:"size:255" json:"grader_name"`
	Grade      string `gorm:"index;size:100" json:"grade"`

	Hadith Hadith `gorm:"foreignKey:HadithID" json:"-"`
}
