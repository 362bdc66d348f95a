package memzero_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"autocrypt/internal/util/memzero"
)

func TestZero(t *testing.T) {
	b := []byte{1, 2, 3, 4}
	memzero.Zero(b)
	require.Equal(t, []byte{0, 0, 0, 0}, b)

	memzero.Zero(nil)
}

func TestSecret_WipeIsIdempotent(t *testing.T) {
	b := []byte("shared secret")
	s := memzero.NewSecret(b)
	require.Equal(t, len(b), s.Len())
	require.False(t, s.Wiped())

	s.Wipe()
	s.Wipe()

	require.True(t, s.Wiped())
	require.Nil(t, s.Bytes())
	require.Equal(t, make([]byte, len(b)), b)

	var nilSecret *memzero.Secret
	nilSecret.Wipe()
	require.True(t, nilSecret.Wiped())
}

func TestUse_WipesOnEveryExit(t *testing.T) {
	ok := []byte{9, 9}
	require.NoError(t, memzero.Use(ok, func(b []byte) error {
		require.Equal(t, []byte{9, 9}, b)
		return nil
	}))
	require.Equal(t, []byte{0, 0}, ok)

	failed := []byte{7}
	boom := errors.New("boom")
	require.ErrorIs(t, memzero.Use(failed, func([]byte) error { return boom }), boom)
	require.Equal(t, []byte{0}, failed)

	panicked := []byte{5, 5, 5}
	require.Panics(t, func() {
		_ = memzero.Use(panicked, func([]byte) error { panic("x") })
	})
	require.Equal(t, []byte{0, 0, 0}, panicked)
}
