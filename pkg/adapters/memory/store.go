package memory

import (
	"context"
	"sync"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// Store implements ports.ConfigCache in memory.
// Safe for concurrent use.
type Store struct {
	data map[string][]byte
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string][]byte),
	}
}

// Set stores a copy of data under key.
func (s *Store) Set(ctx context.Context, key string, data []byte) error {
	copied := make([]byte, len(data))
	copy(copied, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = copied
	return nil
}

// Get returns a copy of the document stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.data[key]
	if !ok {
		return nil, domain.ErrCacheMiss
	}

	ret := make([]byte, len(data))
	copy(ret, data)
	return ret, nil
}

// Delete removes the entry for key.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Keys returns the cached keys.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys, nil
}
