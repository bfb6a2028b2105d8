// Package memory provides an in-process BlobStore
package memory

import (
	"context"
	"slices"
	"sync"

	"adler/internal/ports"
)

// Store keeps blobs in a map. It is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	blobs map[string][]byte

	// PutErr, when set, is returned by every Put
	PutErr error
	// GetErr, when set, is returned by every Get
	GetErr error

	puts int
}

// New returns an empty store
func New() *Store {
	return &Store{blobs: make(map[string][]byte)}
}

// Get returns a copy of the blob stored under key
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.GetErr != nil {
		return nil, s.GetErr
	}
	v, ok := s.blobs[key]
	if !ok {
		return nil, ports.ErrBlobNotFound
	}
	return slices.Clone(v), nil
}

// Put replaces the blob stored under key
func (s *Store) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.puts++
	if s.PutErr != nil {
		return s.PutErr
	}
	s.blobs[key] = slices.Clone(value)
	return nil
}

// Puts returns the number of Put calls, failed ones included
func (s *Store) Puts() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.puts
}

// Close is a no-op
func (s *Store) Close() error {
	return nil
}

var _ ports.BlobStore = (*Store)(nil)
