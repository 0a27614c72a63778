// Package state defines the confidential state store used by the contract.
//
// The store keeps a handful of named collections. A collection is always read
// in full and written back in full: there are no per-record updates.
package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Collection names
const (
	Users  = "users"
	Logins = "logins"
)

// Store defines a key -> serialized collection persistence
type Store interface {
	// Get returns the last committed value for name
	// Returns ErrNotFound if nothing was ever written under name
	Get(ctx context.Context, name string) ([]byte, error)

	// Put replaces the value stored under name as a single atomic write
	Put(ctx context.Context, name string, value []byte) error
}

// Load reads and decodes the whole collection stored under name.
// A missing collection is returned as an empty slice.
func Load[T any](ctx context.Context, s Store, name string) ([]T, error) {
	data, err := s.Get(ctx, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	items := []T{}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	// null в хранилище считаем пустой коллекцией
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Save encodes items and replaces the collection stored under name
func Save[T any](ctx context.Context, s Store, name string, items []T) error {
	if items == nil {
		items = []T{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}

	if err := s.Put(ctx, name, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
