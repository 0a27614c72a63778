// Package statetest provides a conformance suite for state.Store backends.
package statetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/enable/internal/models"
	"github.com/iudanet/enable/internal/state"
)

// Run exercises the behavior every backend must provide.
// newStore must return an empty store.
func Run(t *testing.T, newStore func(t *testing.T) state.Store) {
	t.Helper()

	t.Run("missing collection", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Get(context.Background(), state.Users)
		assert.ErrorIs(t, err, state.ErrNotFound)
	})

	t.Run("put then get", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		require.NoError(t, s.Put(ctx, state.Users, []byte(`[{"user_id":"alice"}]`)))

		got, err := s.Get(ctx, state.Users)
		require.NoError(t, err)
		assert.JSONEq(t, `[{"user_id":"alice"}]`, string(got))
	})

	t.Run("put replaces value", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		require.NoError(t, s.Put(ctx, state.Logins, []byte(`[1]`)))
		require.NoError(t, s.Put(ctx, state.Logins, []byte(`[1,2]`)))

		got, err := s.Get(ctx, state.Logins)
		require.NoError(t, err)
		assert.Equal(t, `[1,2]`, string(got))
	})

	t.Run("collections are independent", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		require.NoError(t, s.Put(ctx, state.Users, []byte(`["u"]`)))

		_, err := s.Get(ctx, state.Logins)
		assert.ErrorIs(t, err, state.ErrNotFound)
	})

	t.Run("typed round trip", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		logins := []models.Login{
			{UserID: "alice", Code: models.NewCode(42), Valid: true},
			{UserID: "bob", Code: models.MustParseCode("0xffff"), Valid: false},
		}
		require.NoError(t, state.Save(ctx, s, state.Logins, logins))

		got, err := state.Load[models.Login](ctx, s, state.Logins)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "alice", got[0].UserID)
		assert.True(t, got[0].Code.Equal(models.NewCode(42)))
		assert.True(t, got[0].Valid)
		assert.Equal(t, "bob", got[1].UserID)
		assert.True(t, got[1].Code.Equal(models.NewCode(0xffff)))
		assert.False(t, got[1].Valid)
	})
}
