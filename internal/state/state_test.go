package state_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/enable/internal/models"
	"github.com/iudanet/enable/internal/state"
	"github.com/iudanet/enable/internal/state/memory"
)

type failingStore struct {
	getErr error
	putErr error
}

func (f *failingStore) Get(ctx context.Context, name string) ([]byte, error) {
	return nil, f.getErr
}

func (f *failingStore) Put(ctx context.Context, name string, value []byte) error {
	return f.putErr
}

func TestLoad_MissingCollectionIsEmpty(t *testing.T) {
	users, err := state.Load[models.User](context.Background(), memory.New(), state.Users)
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestLoad_NullCollectionIsEmpty(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	require.NoError(t, s.Put(ctx, state.Users, []byte("null")))

	users, err := state.Load[models.User](ctx, s, state.Users)
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestLoad_CorruptedCollection(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	require.NoError(t, s.Put(ctx, state.Users, []byte("{not json")))

	_, err := state.Load[models.User](ctx, s, state.Users)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode users")
}

func TestLoad_BackendError(t *testing.T) {
	backendErr := errors.New("disk on fire")
	_, err := state.Load[models.User](context.Background(), &failingStore{getErr: backendErr}, state.Users)
	assert.ErrorIs(t, err, backendErr)
}

func TestSave_NilWritesEmptyArray(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	require.NoError(t, state.Save[models.Login](ctx, s, state.Logins, nil))

	raw, err := s.Get(ctx, state.Logins)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestSave_BackendError(t *testing.T) {
	backendErr := errors.New("read-only")
	err := state.Save(context.Background(), &failingStore{putErr: backendErr}, state.Users, []models.User{{ID: "a"}})
	assert.ErrorIs(t, err, backendErr)
	assert.Contains(t, err.Error(), "failed to write users")
}

func TestSave_PreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	users := []models.User{{ID: "c"}, {ID: "a"}, {ID: "b"}, {ID: "a"}}
	require.NoError(t, state.Save(ctx, s, state.Users, users))

	got, err := state.Load[models.User](ctx, s, state.Users)
	require.NoError(t, err)
	ids := make([]string, 0, len(got))
	for _, u := range got {
		ids = append(ids, u.ID)
	}
	assert.Equal(t, []string{"c", "a", "b", "a"}, ids)
}
