package cache

import (
	"context"
	"sync"
)

// MemoryStore is a concurrency-safe in-memory Store. It never evicts:
// expired entries linger until overwritten, which is fine for the small,
// bounded key space of rounded coordinates.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]Entry
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]Entry)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (Entry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[key]
	return e, ok, nil
}

func (s *MemoryStore) Put(_ context.Context, key string, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = e
	return nil
}
