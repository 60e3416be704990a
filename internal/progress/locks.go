package progress

import "sync"

type pairKey struct {
	childID  uint
	hadithID uint
}

// pairLocks serializes mutations per (child, hadith) pair. Entries are
// reference counted and removed when the last holder releases, so the
// table stays proportional to in-flight operations, not to the number
// of pairs ever touched. Different pairs never contend.
type pairLocks struct {
	mu      sync.Mutex
	entries map[pairKey]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newPairLocks() *pairLocks {
	return &pairLocks{entries: make(map[pairKey]*lockEntry)}
}

func (l *pairLocks) lock(childID, hadithID uint) func() {
	key := pairKey{childID: childID, hadithID: hadithID}

	l.mu.Lock()
	entry, ok := l.entries[key]
	if !ok {
		entry = &lockEntry{}
		l.entries[key] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.entries, key)
		}
		l.mu.Unlock()
	}
}
