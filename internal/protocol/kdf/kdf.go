package kdf

import (
	"crypto/sha512"

	"golang.org/x/crypto/cryptobyte"

	"autocrypt/internal/domain"
	"autocrypt/internal/util/memzero"
)

// Fixed OtherInfo fields.
const (
	Counter        uint32 = 1
	KeyDataLenBits uint32 = 384
	AlgorithmID    byte   = 0x01
	PartyUInfo     byte   = 0x55
	PartyVInfo     byte   = 0x56
)

// Input returns the exact bytes hashed for shared secret z.
func Input(z []byte) []byte {
	b := cryptobyte.NewFixedBuilder(make([]byte, 0, 4+len(z)+4+3))
	b.AddUint32(Counter)
	b.AddBytes(z)
	b.AddUint32(KeyDataLenBits)
	b.AddUint8(AlgorithmID)
	b.AddUint8(PartyUInfo)
	b.AddUint8(PartyVInfo)
	return b.BytesOrPanic()
}

// DeriveSessionKeys derives the encrypt and MAC keys from z. It is deterministic
// and does not modify z.
func DeriveSessionKeys(z []byte) domain.SessionKeys {
	in := Input(z)
	digest := sha512.Sum384(in)
	memzero.Zero(in)

	keys := domain.SessionKeys{
		EncryptKey: make([]byte, domain.EncryptKeySize),
		MacKey:     make([]byte, domain.MacKeySize),
	}
	copy(keys.EncryptKey, digest[:domain.EncryptKeySize])
	copy(keys.MacKey, digest[domain.EncryptKeySize:])
	memzero.Zero(digest[:])
	return keys
}
