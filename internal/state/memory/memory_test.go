package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/enable/internal/state"
	"github.com/iudanet/enable/internal/state/statetest"
)

func TestStorage_Conformance(t *testing.T) {
	statetest.Run(t, func(t *testing.T) state.Store {
		return New()
	})
}

func TestStorage_CopiesValues(t *testing.T) {
	ctx := context.Background()
	s := New()

	value := []byte("abc")
	require.NoError(t, s.Put(ctx, "k", value))

	// Изменение исходного слайса не должно влиять на хранилище
	value[0] = 'x'
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	// И наоборот
	got[0] = 'y'
	again, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestStorage_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New()
	assert.ErrorIs(t, s.Put(ctx, "k", []byte("v")), context.Canceled)
	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStorage_Closed(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.Put(ctx, state.Users, []byte("[]")))
	require.NoError(t, s.Close())

	_, err := s.Get(ctx, state.Users)
	assert.ErrorIs(t, err, state.ErrClosed)
	assert.ErrorIs(t, s.Put(ctx, state.Users, []byte("[]")), state.ErrClosed)
	// Повторное закрытие безопасно
	assert.NoError(t, s.Close())
}
