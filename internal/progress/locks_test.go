package progress

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPairLocks_SerializesSamePair(t *testing.T) {
	locks := newPairLocks()

	const workers = 50
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.lock(1, 1)
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, counter)
}

func TestPairLocks_EntriesAreReclaimed(t *testing.T) {
	locks := newPairLocks()

	unlock := locks.lock(1, 1)
	other := locks.lock(2, 7)

	locks.mu.Lock()
	assert.Len(t, locks.entries, 2)
	locks.mu.Unlock()

	unlock()
	other()

	locks.mu.Lock()
	assert.Empty(t, locks.entries)
	locks.mu.Unlock()
}

func TestPairLocks_DistinctPairsDoNotBlock(t *testing.T) {
	locks := newPairLocks()

	unlock := locks.lock(1, 1)
	defer unlock()

	done := make(chan struct{})
	go func() {
		u := locks.lock(1, 2)
		u()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on a different pair blocked")
	}
}
