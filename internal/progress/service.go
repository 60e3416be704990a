// Package progress implements the memorization-progress state machine
// and its derived statistics.
//
// A (child, hadith) pair moves through five statuses:
//
//	new -> reading -> memorizing -> memorized -> reviewing
//
// with reviewing able to drop back to memorizing for re-drilling.
// Transitions are validated against an explicit table and serialized
// per pair, so two concurrent updates can never both apply from the
// same prior state.
package progress

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/alhifz/hifz/internal/entities"
)

// transitions is the allowed-next-status table. new -> memorizing
// (skipping reading) is deliberately legal: a child may start
// memorizing a short hadith without a separate reading phase.
var transitions = map[entities.LearningStatus][]entities.LearningStatus{
	entities.StatusNew:        {entities.StatusReading, entities.StatusMemorizing},
	entities.StatusReading:    {entities.StatusMemorizing},
	entities.StatusMemorizing: {entities.StatusMemorized},
	entities.StatusMemorized:  {entities.StatusReviewing},
	entities.StatusReviewing:  {entities.StatusMemorizing},
}

// CanTransition reports whether the table allows from -> to.
// A self-transition is not a table entry; Update treats it as a
// note-only no-op instead.
func CanTransition(from, to entities.LearningStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// RecordStore is the service's view of the progress table.
type RecordStore interface {
	Get(childID, hadithID uint) (*entities.ProgressRecord, error)
	Create(rec *entities.ProgressRecord) error
	Save(rec *entities.ProgressRecord) error
	Delete(childID, hadithID uint) (int64, error)
	ListByChild(childID uint, status entities.LearningStatus) ([]entities.ProgressRecord, error)
	CountByStatus(childID uint) (map[entities.LearningStatus]int64, error)
}

// HadithReader verifies that a hadith id exists before tracking it.
type HadithReader interface {
	GetByID(id uint) (*entities.Hadith, error)
}

// Stats is the derived per-child summary: a count for every status
// (zero-filled, so callers never special-case absence) plus the total.
type Stats struct {
	ChildID uint                              `json:"child_id"`
	Counts  map[entities.LearningStatus]int64 `json:"counts"`
	Total   int64                             `json:"total"`
}

// Service owns all progress mutations.
type Service struct {
	records RecordStore
	hadiths HadithReader
	locks   *pairLocks
	now     func() time.Time
}

func NewService(records RecordStore, hadiths HadithReader) *Service {
	return &Service{
		records: records,
		hadiths: hadiths,
		locks:   newPairLocks(),
		now:     time.Now,
	}
}

// StartLearning creates the pair's record at status "new". Fails with
// ErrNotFound for an unknown hadith id and ErrAlreadyTracked when a
// record already exists.
func (s *Service) StartLearning(childID, hadithID uint) (*entities.ProgressRecord, error) {
	unlock := s.locks.lock(childID, hadithID)
	defer unlock()

	if _, err := s.hadiths.GetByID(hadithID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: hadith %d", ErrNotFound, hadithID)
		}
		return nil, fmt.Errorf("failed to look up hadith %d: %w", hadithID, err)
	}

	if _, err := s.records.Get(childID, hadithID); err == nil {
		return nil, ErrAlreadyTracked
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing progress: %w", err)
	}

	rec := &entities.ProgressRecord{
		ChildID:   childID,
		HadithID:  hadithID,
		Status:    entities.StatusNew,
		StartedAt: s.now(),
	}
	if err := s.records.Create(rec); err != nil {
		return nil, fmt.Errorf("failed to create progress record: %w", err)
	}
	return rec, nil
}

// Update transitions the pair's record to target. A self-transition is
// a no-op success used to attach a note; it advances nothing and never
// touches memorized_at. On a real transition last_reviewed_at is
// always set, memorized_at is set exactly once (first arrival at
// memorized) and review_count increments on entering reviewing.
func (s *Service) Update(childID, hadithID uint, target entities.LearningStatus, note *string) (*entities.ProgressRecord, error) {
	if !target.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, target)
	}

	unlock := s.locks.lock(childID, hadithID)
	defer unlock()

	rec, err := s.records.Get(childID, hadithID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no progress for hadith %d", ErrNotFound, hadithID)
		}
		return nil, fmt.Errorf("failed to load progress record: %w", err)
	}

	if target == rec.Status {
		if note != nil {
			rec.Notes = *note
			if err := s.records.Save(rec); err != nil {
				return nil, fmt.Errorf("failed to save note: %w", err)
			}
		}
		return rec, nil
	}

	if !CanTransition(rec.Status, target) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, rec.Status, target)
	}

	now := s.now()
	rec.Status = target
	rec.LastReviewedAt = &now
	if target == entities.StatusMemorized && rec.MemorizedAt == nil {
		memorizedAt := now
		rec.MemorizedAt = &memorizedAt
	}
	if target == entities.StatusReviewing {
		rec.ReviewCount++
	}
	if note != nil {
		rec.Notes = *note
	}

	if err := s.records.Save(rec); err != nil {
		return nil, fmt.Errorf("failed to save progress record: %w", err)
	}
	return rec, nil
}

// Get returns the pair's record, ErrNotFound when untracked.
func (s *Service) Get(childID, hadithID uint) (*entities.ProgressRecord, error) {
	rec, err := s.records.Get(childID, hadithID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no progress for hadith %d", ErrNotFound, hadithID)
		}
		return nil, fmt.Errorf("failed to load progress record: %w", err)
	}
	return rec, nil
}

// List returns the child's records, optionally filtered by status
// (empty status means all).
func (s *Service) List(childID uint, status entities.LearningStatus) ([]entities.ProgressRecord, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}
	return s.records.ListByChild(childID, status)
}

// Remove deletes the pair's record. The deletion is irreversible;
// there is no soft delete. ErrNotFound when no record exists.
func (s *Service) Remove(childID, hadithID uint) error {
	unlock := s.locks.lock(childID, hadithID)
	defer unlock()

	deleted, err := s.records.Delete(childID, hadithID)
	if err != nil {
		return fmt.Errorf("failed to delete progress record: %w", err)
	}
	if deleted == 0 {
		return fmt.Errorf("%w: no progress for hadith %d", ErrNotFound, hadithID)
	}
	return nil
}

// Stats recomputes the per-status counts for one child from the
// current record set. Counts always sum to Total and every status is
// present. Reads take no write lock: stats are advisory and tolerate
// a record changing underfoot.
func (s *Service) Stats(childID uint) (*Stats, error) {
	counts, err := s.records.CountByStatus(childID)
	if err != nil {
		return nil, fmt.Errorf("failed to count progress records: %w", err)
	}

	stats := &Stats{
		ChildID: childID,
		Counts:  make(map[entities.LearningStatus]int64, 5),
	}
	for _, status := range entities.AllStatuses() {
		c := counts[status]
		stats.Counts[status] = c
		stats.Total += c
	}
	return stats, nil
}
