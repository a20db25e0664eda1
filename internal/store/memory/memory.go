// Package memory provides an in-memory implementation of the profile store.
package memory

import (
	"context"
	"sync"

	"github.com/yukiacerium/socialmem/internal/store"
)

// Store implements store.ProfileStore with a mutex-guarded map. Blobs are
// copied on both sides of the boundary so callers cannot alias stored data.
type Store struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{blobs: make(map[string][]byte)}
}

// Load returns the blob for userKey.
func (s *Store) Load(ctx context.Context, userKey string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	blob, ok := s.blobs[userKey]
	if !ok {
		return nil, &store.NotFoundError{Key: userKey}
	}
	out := make([]byte, len(blob))
	copy(out, blob)
	return out, nil
}

// Save replaces the blob for userKey.
func (s *Store) Save(ctx context.Context, userKey string, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(blob))
	copy(stored, blob)
	s.blobs[userKey] = stored
	return nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error {
	return nil
}
