// Package sealed encrypts every collection before it reaches the wrapped store.
package sealed

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/enable/internal/crypto"
	"github.com/iudanet/enable/internal/state"
)

// ErrUnseal indicates that a stored value could not be decrypted with the configured key
var ErrUnseal = errors.New("failed to unseal state")

// Storage encrypts values with AES-256-GCM, binding each value to its collection name
type Storage struct {
	inner state.Store
	key   []byte
}

// New wraps inner with a 32-byte key
func New(inner state.Store, key []byte) (*Storage, error) {
	if len(key) != crypto.KeySize {
		return nil, fmt.Errorf("sealing key must be %d bytes, got %d", crypto.KeySize, len(key))
	}
	return &Storage{inner: inner, key: append([]byte(nil), key...)}, nil
}

// NewFromPassphrase derives the sealing key from passphrase and salt
func NewFromPassphrase(inner state.Store, passphrase string, salt []byte) (*Storage, error) {
	key, err := crypto.DeriveStateKey(passphrase, salt)
	if err != nil {
		return nil, fmt.Errorf("failed to derive sealing key: %w", err)
	}
	return New(inner, key)
}

// Get reads and decrypts the value stored under name
func (s *Storage) Get(ctx context.Context, name string) ([]byte, error) {
	sealedValue, err := s.inner.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	value, err := crypto.Open(sealedValue, s.key, []byte(name))
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrUnseal, name, err)
	}
	return value, nil
}

// Put encrypts value and writes it under name
func (s *Storage) Put(ctx context.Context, name string, value []byte) error {
	sealedValue, err := crypto.Seal(value, s.key, []byte(name))
	if err != nil {
		return fmt.Errorf("failed to seal %s: %w", name, err)
	}
	return s.inner.Put(ctx, name, sealedValue)
}
