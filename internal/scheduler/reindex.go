package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/alhifz/hifz/internal/search"
)

// ReindexScheduler rebuilds the search index on a cron schedule. The
// corpus only changes through out-of-band imports, so a periodic
// rebuild is enough to pick them up; the rebuild itself is atomic from
// the query side.
type ReindexScheduler struct {
	engine   *search.Engine
	schedule string

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.Mutex
	isRunning bool
}

func NewReindexScheduler(engine *search.Engine, schedule string) *ReindexScheduler {
	return &ReindexScheduler{
		engine:   engine,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler.
func (s *ReindexScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, s.runReindex)
	if err != nil {
		return err
	}
	s.entryID = entryID
	s.cron.Start()
	s.isRunning = true

	log.Printf("Reindex scheduler: started with schedule '%s'", s.schedule)
	return nil
}

// Stop halts the scheduler, waiting for a running rebuild to finish.
func (s *ReindexScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.isRunning = false
	log.Printf("Reindex scheduler: stopped")
}

func (s *ReindexScheduler) runReindex() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	log.Printf("Reindex scheduler: rebuilding search index")
	if err := s.engine.RebuildIndex(ctx); err != nil {
		log.Printf("Reindex scheduler: rebuild failed: %v", err)
	}
}
