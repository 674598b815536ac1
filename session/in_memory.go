package session

import (
	"maps"
	"slices"
	"sync"

	"github.com/hupe1980/tetrix/game"
)

// InMemoryStore keeps summaries of sessions in a process local map. It is
// safe for concurrent access. Stored and returned summaries are cloned so
// callers cannot mutate the stored state.
type InMemoryStore struct {
	mu        sync.RWMutex
	summaries map[string]game.Summary
}

// NewInMemoryStore constructs an empty store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{summaries: make(map[string]game.Summary)}
}

// Save stores (or overwrites) the summary for sessionID.
func (s *InMemoryStore) Save(sessionID string, sum game.Summary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summaries[sessionID] = clone(sum)
}

// Get returns the summary stored for sessionID.
func (s *InMemoryStore) Get(sessionID string) (game.Summary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sum, ok := s.summaries[sessionID]
	if !ok {
		return game.Summary{}, false
	}
	return clone(sum), true
}

// Delete forgets sessionID.
func (s *InMemoryStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.summaries, sessionID)
}

// IDs returns the stored session ids in sorted order.
func (s *InMemoryStore) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.summaries))
}

func clone(sum game.Summary) game.Summary {
	sum.Spawned = maps.Clone(sum.Spawned)
	return sum
}
