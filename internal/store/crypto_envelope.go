package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"autocrypt/internal/crypto"
	"autocrypt/internal/util/memzero"
)

const (
	// The current supported version of the sealed key format stored on disk.
	sealedFormatVersion = 1
	sealedFormatName    = "autocrypt-sealed-key"
	saltSize            = 16
)

var (
	// ErrWrongPassphrase is returned when a sealed key cannot be opened.
	ErrWrongPassphrase = errors.New("wrong passphrase or corrupted key file")
	// ErrScryptParams is returned for scrypt parameters outside the accepted range.
	ErrScryptParams = errors.New("scrypt parameters out of range")
)

// Upper bounds on scrypt cost, checked before deriving so that a key file
// cannot demand unbounded memory (128*R*N bytes) or CPU (P).
const (
	maxScryptN = 1 << 20
	maxScryptR = 32
	maxScryptP = 16
)

// ScryptParams tunes passphrase stretching.
type ScryptParams struct {
	N, R, P int
}

// DefaultScryptParams is used unless a provider is configured otherwise.
var DefaultScryptParams = ScryptParams{N: 1 << 15, R: 8, P: 1}

// Validate reports whether params are within the accepted range.
func (params ScryptParams) Validate() error {
	switch {
	case params.N < 2 || params.N > maxScryptN || params.N&(params.N-1) != 0:
		return fmt.Errorf("%w: N=%d must be a power of two <= %d", ErrScryptParams, params.N, maxScryptN)
	case params.R < 1 || params.R > maxScryptR:
		return fmt.Errorf("%w: r=%d must be in [1, %d]", ErrScryptParams, params.R, maxScryptR)
	case params.P < 1 || params.P > maxScryptP:
		return fmt.Errorf("%w: p=%d must be in [1, %d]", ErrScryptParams, params.P, maxScryptP)
	}
	return nil
}

// sealedKey is the on-disk JSON holding the ciphertext and KDF parameters.
type sealedKey struct {
	Format string `json:"format"`
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Nonce  []byte `json:"nonce"`
	Cipher []byte `json:"cipher"`
}

// isSealed reports whether b looks like a sealed key rather than PEM text.
func isSealed(b []byte) bool {
	return bytes.HasPrefix(bytes.TrimSpace(b), []byte("{"))
}

// seal encrypts raw under a key derived from passphrase.
func seal(passphrase string, raw []byte, params ScryptParams) ([]byte, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	salt, err := crypto.RandomBytes(saltSize)
	if err != nil {
		return nil, err
	}
	nonce, err := crypto.RandomBytes(chacha20poly1305.NonceSize)
	if err != nil {
		return nil, err
	}
	key, err := scrypt.Key([]byte(passphrase), salt, params.N, params.R, params.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, fmt.Errorf("derive sealing key: %w", err)
	}
	defer memzero.Zero(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(sealedKey{
		Format: sealedFormatName,
		V:      sealedFormatVersion,
		Salt:   salt,
		N:      params.N,
		R:      params.R,
		P:      params.P,
		Nonce:  nonce,
		Cipher: aead.Seal(nil, nonce, raw, []byte(sealedFormatName)),
	}, "", "  ")
}

// unseal opens a sealed key written by seal.
func unseal(passphrase string, b []byte) ([]byte, error) {
	var sk sealedKey
	if err := json.Unmarshal(b, &sk); err != nil {
		return nil, fmt.Errorf("decode sealed key: %w", err)
	}
	if sk.Format != sealedFormatName {
		return nil, fmt.Errorf("unknown sealed key format %q", sk.Format)
	}
	if sk.V > sealedFormatVersion {
		return nil, fmt.Errorf("unsupported sealed key version %d", sk.V)
	}
	if err := (ScryptParams{N: sk.N, R: sk.R, P: sk.P}).Validate(); err != nil {
		return nil, err
	}
	if len(sk.Salt) != saltSize {
		return nil, fmt.Errorf("%w: salt must be %d bytes", ErrScryptParams, saltSize)
	}
	if len(sk.Nonce) != chacha20poly1305.NonceSize {
		return nil, ErrWrongPassphrase
	}

	key, err := scrypt.Key([]byte(passphrase), sk.Salt, sk.N, sk.R, sk.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, fmt.Errorf("derive sealing key: %w", err)
	}
	defer memzero.Zero(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	pt, err := aead.Open(nil, sk.Nonce, sk.Cipher, []byte(sealedFormatName))
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return pt, nil
}
