package storage

import (
	"context"
	"encoding/base64"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/enable/internal/config"
	"github.com/iudanet/enable/internal/models"
	"github.com/iudanet/enable/internal/state"
	"github.com/iudanet/enable/internal/state/statetest"
)

func testConfig(backend, dsn string) *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.StoreBackend = backend
	cfg.StoreDSN = dsn
	return cfg
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOpen_Backends(t *testing.T) {
	mr := miniredis.RunT(t)

	tests := []struct {
		name string
		cfg  func(t *testing.T) *config.Config
	}{
		{name: "memory", cfg: func(t *testing.T) *config.Config {
			return testConfig(config.BackendMemory, "")
		}},
		{name: "bolt", cfg: func(t *testing.T) *config.Config {
			return testConfig(config.BackendBolt, filepath.Join(t.TempDir(), "state.db"))
		}},
		{name: "sqlite", cfg: func(t *testing.T) *config.Config {
			return testConfig(config.BackendSQLite, filepath.Join(t.TempDir(), "state.sqlite"))
		}},
		{name: "redis", cfg: func(t *testing.T) *config.Config {
			mr.FlushAll()
			return testConfig(config.BackendRedis, "redis://"+mr.Addr())
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			statetest.Run(t, func(t *testing.T) state.Store {
				store, err := Open(context.Background(), tt.cfg(t), testLogger())
				require.NoError(t, err)
				t.Cleanup(func() { _ = store.Close() })
				return store
			})
		})
	}
}

func TestOpen_Sealed(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")

	cfg := testConfig(config.BackendBolt, path)
	cfg.SealPassphrase = "correct horse"
	cfg.SealSalt = base64.StdEncoding.EncodeToString([]byte("0123456789abcdef"))

	store, err := Open(ctx, cfg, testLogger())
	require.NoError(t, err)

	users := []models.User{{ID: "alice", PrivateKey: []byte("super secret key material 32byte")}}
	require.NoError(t, state.Save(ctx, store, state.Users, users))
	require.NoError(t, store.Close())

	// Без passphrase данные не читаются как JSON
	plain, err := Open(ctx, testConfig(config.BackendBolt, path), testLogger())
	require.NoError(t, err)
	_, err = state.Load[models.User](ctx, plain, state.Users)
	assert.Error(t, err)
	require.NoError(t, plain.Close())

	reopened, err := Open(ctx, cfg, testLogger())
	require.NoError(t, err)
	defer reopened.Close()

	loaded, err := state.Load[models.User](ctx, reopened, state.Users)
	require.NoError(t, err)
	assert.Equal(t, users, loaded)
}

func TestOpen_Errors(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.Config
		wantErr string
	}{
		{name: "unknown backend", cfg: testConfig("mongo", "x"), wantErr: "unknown store backend"},
		{name: "bolt in missing dir", cfg: testConfig(config.BackendBolt, "/nonexistent/dir/state.db"), wantErr: "failed to open bolt store"},
		{name: "redis bad url", cfg: testConfig(config.BackendRedis, "not a url"), wantErr: "failed to open redis store"},
		{name: "bad salt", cfg: func() *config.Config {
			c := testConfig(config.BackendMemory, "")
			c.SealPassphrase = "p"
			c.SealSalt = "short"
			return c
		}(), wantErr: "salt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(context.Background(), tt.cfg, testLogger())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
