// Package memory implements an in-process state.Store.
package memory

import (
	"bytes"
	"context"
	"sync"

	"github.com/iudanet/enable/internal/state"
)

// Storage keeps collections in a map. Values are copied on the way in and out.
type Storage struct {
	values map[string][]byte
	mu     sync.RWMutex
	closed bool
}

// New creates an empty in-memory store
func New() *Storage {
	return &Storage{values: make(map[string][]byte)}
}

// Get returns a copy of the value stored under name
func (s *Storage) Get(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, state.ErrClosed
	}

	value, ok := s.values[name]
	if !ok {
		return nil, state.ErrNotFound
	}
	return bytes.Clone(value), nil
}

// Put replaces the value stored under name
func (s *Storage) Put(ctx context.Context, name string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return state.ErrClosed
	}

	s.values[name] = bytes.Clone(value)
	return nil
}

// Close drops the stored values, further calls fail with state.ErrClosed
func (s *Storage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.values = nil
	return nil
}
