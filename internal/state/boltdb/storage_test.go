package boltdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/iudanet/enable/internal/state"
	"github.com/iudanet/enable/internal/state/statetest"
)

// создаём тестовое BoltDB хранилище во временной директории
func createTestStorage(t *testing.T) *Storage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "state_test.db")
	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	return store
}

func TestStorage_Conformance(t *testing.T) {
	statetest.Run(t, func(t *testing.T) state.Store {
		return createTestStorage(t)
	})
}

func TestStorage_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "reopen.db")

	store, err := New(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, state.Users, []byte(`[{"user_id":"alice"}]`)))
	require.NoError(t, store.Close())

	// Открываем заново и проверяем что данные на месте
	reopened, err := New(ctx, dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, state.Users)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"user_id":"alice"}]`, string(got))
}

func TestStorage_BucketMissing(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	// Удаляем bucket напрямую
	err := store.db.Update(func(tx *bbolt.Tx) error {
		return tx.DeleteBucket(bucketState)
	})
	require.NoError(t, err)

	_, err = store.Get(ctx, state.Users)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "state bucket not found")

	err = store.Put(ctx, state.Users, []byte("[]"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "state bucket not found")
}

func TestStorage_CloseWithoutDB(t *testing.T) {
	store := &Storage{}
	assert.NoError(t, store.Close())
}

func TestStorage_Closed(t *testing.T) {
	ctx := context.Background()
	store, err := New(ctx, filepath.Join(t.TempDir(), "closed.db"))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = store.Get(ctx, state.Users)
	assert.ErrorIs(t, err, state.ErrClosed)
	assert.ErrorIs(t, store.Put(ctx, state.Users, []byte("[]")), state.ErrClosed)
}
