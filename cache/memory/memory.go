// Package memory provides a thread-safe in-memory implementation of cache.Cache.
package memory

import (
	"fmt"
	"sync"

	"github.com/ridecircle/sessionkit/cache"
)

// Store is a thread-safe in-memory implementation of cache.Cache.
// Suitable for testing, demos, and ephemeral sessions.
type Store struct {
	mu   sync.RWMutex
	data map[string]string
}

var _ cache.Cache = (*Store)(nil)

// New creates a new empty in-memory cache.
func New() *Store {
	return &Store{data: make(map[string]string)}
}

func (s *Store) Get(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.data[key]
	if !ok {
		return "", fmt.Errorf("%s: %w", key, cache.ErrNotFound)
	}
	return value, nil
}

func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *Store) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Close is a no-op for the in-memory cache.
func (s *Store) Close() error {
	return nil
}

// Snapshot returns a copy of all entries, for test assertions.
func (s *Store) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.data))
	for k, v := range s.data {
		out[k] = v
	}
	return out
}
