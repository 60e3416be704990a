package entities

import "time"

// LearningStatus is the five-state memorization lifecycle for a
// (child, hadith) pair.
type LearningStatus string

const (
	StatusNew        LearningStatus = "new"
	StatusReading    LearningStatus = "reading"
	StatusMemorizing LearningStatus = "memorizing"
	StatusMemorized  LearningStatus = "memorized"
	StatusReviewing  LearningStatus = "reviewing"
)

// AllStatuses returns every learning status in lifecycle order.
// Stats responses iterate this so zero-count statuses still appear.
func AllStatuses() []LearningStatus {
	return []LearningStatus{
		StatusNew,
		StatusReading,
		StatusMemorizing,
		StatusMemorized,
		StatusReviewing,
	}
}

// Valid reports whether s is one of the five known statuses.
func (s LearningStatus) Valid() bool {
	switch s {
	case StatusNew, StatusReading, StatusMemorizing, StatusMemorized, StatusReviewing:
		return true
	}
	return false
}

// Child belongs to a parent account and tracks progress on hadiths.
// Account management lives outside the core; the core only receives
// already-authenticated child ids.
type Child struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	Name      string    `gorm:"size:100" json:"name"`
	Avatar    string    `gorm:"size:50" json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	Progress []ProgressRecord `gorm:"foreignKey:ChildID" json:"-"`
}

// ProgressRecord tracks one child's progress on one hadith, unique per
// (child_id, hadith_id). Created by StartLearning at status "new" and
// mutated only through the state machine.
type ProgressRecord struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	ChildID        uint           `gorm:"uniqueIndex:idx_child_hadith" json:"child_id"`
	HadithID       uint           `gorm:"uniqueIndex:idx_child_hadith" json:"hadith_id"`
	Status         LearningStatus `gorm:"size:20;default:'new'" json:"status"`
	StartedAt      time.Time      `json:"started_at"`
	LastReviewedAt *time.Time     `json:"last_reviewed_at,omitempty"`
	MemorizedAt    *time.Time     `json:"memorized_at,omitempty"`
	ReviewCount    int            `gorm:"default:0" json:"review_count"`
	Notes          string         `gorm:"size:500" json:"notes,omitempty"`

	Child  Child  `gorm:"foreignKey:ChildID" json:"-"`
	Hadith Hadith `gorm:"foreignKey:HadithID" json:"-"`
}
