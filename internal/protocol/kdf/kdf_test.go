package kdf_test

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"autocrypt/internal/protocol/kdf"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestDeriveSessionKeys_Vector(t *testing.T) {
	z := make([]byte, 32)

	keys := kdf.DeriveSessionKeys(z)

	require.Equal(t, mustHex(t, "1EB266FB675223D2B6AFD1FF858E7055"), keys.EncryptKey)
	require.Equal(t,
		mustHex(t, "7C6702B1C5D7BBD4F30D5C61EA39F8B7D9E442475E7A2AF58E3D238A1CA8B9AF"),
		keys.MacKey)
}

func TestInput_Layout(t *testing.T) {
	z := []byte{0xAA, 0xBB, 0xCC}

	want := []byte{
		// counter
		0x00, 0x00, 0x00, 0x01,
		// Z
		0xAA, 0xBB, 0xCC,
		// keydatalen = 384
		0x00, 0x00, 0x01, 0x80,
		// AlgorithmID, PartyUInfo, PartyVInfo
		0x01, 0x55, 0x56,
	}
	require.Equal(t, want, kdf.Input(z))
}

func TestDeriveSessionKeys_Deterministic(t *testing.T) {
	z := bytes.Repeat([]byte{0x42}, 32)
	orig := append([]byte(nil), z...)

	a := kdf.DeriveSessionKeys(z)
	b := kdf.DeriveSessionKeys(z)

	require.Equal(t, a, b)
	require.Equal(t, orig, z, "input must not be modified")
	require.Len(t, a.EncryptKey, 16)
	require.Len(t, a.MacKey, 32)

	other := kdf.DeriveSessionKeys(bytes.Repeat([]byte{0x43}, 32))
	require.NotEqual(t, a.EncryptKey, other.EncryptKey)
	require.NotEqual(t, a.MacKey, other.MacKey)
}

func BenchmarkDeriveSessionKeys(b *testing.B) {
	z := make([]byte, 32)
	for i := 0; i < b.N; i++ {
		_ = kdf.DeriveSessionKeys(z)
	}
}
