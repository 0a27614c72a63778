// Package storage opens the configured state backend for the server.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/iudanet/enable/internal/config"
	"github.com/iudanet/enable/internal/crypto"
	"github.com/iudanet/enable/internal/state"
	"github.com/iudanet/enable/internal/state/boltdb"
	"github.com/iudanet/enable/internal/state/memory"
	"github.com/iudanet/enable/internal/state/postgres"
	"github.com/iudanet/enable/internal/state/redisstore"
	"github.com/iudanet/enable/internal/state/sealed"
	"github.com/iudanet/enable/internal/state/sqlite"
)

// Store is a state.Store that owns a connection or file handle
type Store interface {
	state.Store
	Close() error
}

// sealedStore keeps the Close of the wrapped backend
type sealedStore struct {
	*sealed.Storage
	closer func() error
}

func (s *sealedStore) Close() error {
	return s.closer()
}

// Open creates the backend selected by cfg and wraps it with encryption at rest
// when a seal passphrase is configured
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Store, error) {
	store, err := openBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if !cfg.Sealed() {
		logger.WarnContext(ctx, "state is not encrypted at rest, private keys are stored in plain form",
			slog.String("backend", cfg.StoreBackend))
		return store, nil
	}

	salt, err := crypto.DecodeSalt(cfg.SealSalt)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	s, err := sealed.NewFromPassphrase(store, cfg.SealPassphrase, salt)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	logger.InfoContext(ctx, "state sealing enabled", slog.String("backend", cfg.StoreBackend))
	return &sealedStore{Storage: s, closer: store.Close}, nil
}

func openBackend(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		return memory.New(), nil
	case config.BackendBolt:
		s, err := boltdb.New(ctx, cfg.StoreDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open bolt store: %w", err)
		}
		return s, nil
	case config.BackendSQLite:
		s, err := sqlite.New(ctx, cfg.StoreDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return s, nil
	case config.BackendPostgres:
		s, err := postgres.New(ctx, cfg.StoreDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres store: %w", err)
		}
		return s, nil
	case config.BackendRedis:
		s, err := redisstore.Open(ctx, cfg.StoreDSN, cfg.RedisPrefix)
		if err != nil {
			return nil, fmt.Errorf("failed to open redis store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
