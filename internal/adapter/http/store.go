package http

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/geekendzone/dcasim-backend/internal/domain"
)

type storedResult struct {
	cmp     *domain.Comparison
	expires time.Time
}

// resultStore keeps finished comparisons retrievable until their TTL runs
// out. Results live in memory only, a restart clears them.
type resultStore struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[uuid.UUID]storedResult
}

func newResultStore(ttl time.Duration) *resultStore {
	return &resultStore{ttl: ttl, entries: make(map[uuid.UUID]storedResult)}
}

// put stores cmp and prunes whatever expired in the meantime.
func (s *resultStore) put(cmp *domain.Comparison) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, entry := range s.entries {
		if now.After(entry.expires) {
			delete(s.entries, id)
		}
	}
	s.entries[cmp.ID] = storedResult{cmp: cmp, expires: now.Add(s.ttl)}
}

// get returns the stored comparison if it has not expired yet.
func (s *resultStore) get(id uuid.UUID) (*domain.Comparison, bool) {
	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expires) {
		s.mu.Lock()
		delete(s.entries, id)
		s.mu.Unlock()
		return nil, false
	}
	return entry.cmp, true
}
