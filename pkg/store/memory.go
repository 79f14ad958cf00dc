package store

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-memory analysis store for development and tests.
type MemoryStore struct {
	mu       sync.RWMutex
	analyses map[string]Analysis
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{analyses: make(map[string]Analysis)}
}

// Save stores an analysis, overwriting any existing one with the same ID.
func (s *MemoryStore) Save(ctx context.Context, a *Analysis) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyses[a.ID] = *a
	return nil
}

// Get retrieves an analysis by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Analysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.analyses[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

// List returns up to limit analyses, newest first.
func (s *MemoryStore) List(ctx context.Context, limit int) ([]Analysis, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]Analysis, 0, len(s.analyses))
	for _, a := range s.analyses {
		all = append(all, a)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// Delete removes an analysis.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.analyses[id]; !ok {
		return ErrNotFound
	}
	delete(s.analyses, id)
	return nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
