// Package boltdb implements state.Store on top of a BoltDB file.
package boltdb

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/iudanet/enable/internal/state"
)

// bucketState хранит все коллекции, одна коллекция - один ключ
var bucketState = []byte("state")

// Storage represents BoltDB storage implementation of state.Store
type Storage struct {
	db *bbolt.DB
}

// New opens (or creates) the BoltDB file at dbPath
func New(ctx context.Context, dbPath string) (*Storage, error) {
	// Timeout защищает от зависания, если файл уже открыт другим процессом
	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	storage := &Storage{db: db}

	if err := storage.initBuckets(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return storage, nil
}

// Close closes the database file
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// initBuckets создает bucket состояния если он не существует
func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketState); err != nil {
			return fmt.Errorf("failed to create state bucket: %w", err)
		}
		return nil
	})
}

// Get returns the value stored under name
func (s *Storage) Get(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var value []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketState)
		if bucket == nil {
			return fmt.Errorf("state bucket not found")
		}

		data := bucket.Get([]byte(name))
		if data == nil {
			return state.ErrNotFound
		}

		// Данные bbolt валидны только внутри транзакции
		value = bytes.Clone(data)
		return nil
	})
	if err != nil {
		return nil, closedErr(err)
	}

	return value, nil
}

// Put replaces the value stored under name in a single transaction
func (s *Storage) Put(ctx context.Context, name string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketState)
		if bucket == nil {
			return fmt.Errorf("state bucket not found")
		}

		if err := bucket.Put([]byte(name), value); err != nil {
			return fmt.Errorf("failed to save %s: %w", name, err)
		}
		return nil
	})
	return closedErr(err)
}

// closedErr переводит ошибку закрытой базы bbolt в state.ErrClosed
func closedErr(err error) error {
	if errors.Is(err, bbolt.ErrDatabaseNotOpen) {
		return state.ErrClosed
	}
	return err
}
