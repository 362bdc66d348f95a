package handshake

import (
	"bytes"
	"errors"

	"autocrypt/internal/crypto"
	"autocrypt/internal/domain"
	"autocrypt/internal/protocol/channel"
	"autocrypt/internal/util/memzero"
)

var (
	// ErrBadMAC is wrapped by the authentication error of a rejected envelope.
	ErrBadMAC = errors.New("message tag does not verify")
	// ErrSessionClosed is wrapped when a closed session is used.
	ErrSessionClosed = errors.New("session closed")
)

// Session is a handshake in the Ready state. Every Seal draws a fresh random IV.
type Session struct {
	keys   domain.SessionKeys
	closed bool
}

func newSession(keys domain.SessionKeys) *Session {
	return &Session{keys: keys}
}

// Keys returns a copy of the session keys.
func (s *Session) Keys() domain.SessionKeys {
	return domain.SessionKeys{
		EncryptKey: bytes.Clone(s.keys.EncryptKey),
		MacKey:     bytes.Clone(s.keys.MacKey),
	}
}

// Seal encrypts plaintext under a fresh IV and tags IV || plaintext.
func (s *Session) Seal(plaintext []byte, padding domain.Padding) (domain.Envelope, error) {
	const op = "seal"
	if s.closed {
		return domain.Envelope{}, domain.ConfigurationError(op, ErrSessionClosed)
	}
	iv, err := crypto.RandomBytes(domain.IVSize)
	if err != nil {
		return domain.Envelope{}, err
	}
	ct, err := channel.Encrypt(s.keys.EncryptKey, iv, plaintext, padding)
	if err != nil {
		return domain.Envelope{}, err
	}
	return domain.Envelope{
		IV:         iv,
		Ciphertext: ct,
		Tag:        channel.ComputeMAC(s.keys.MacKey, iv, plaintext),
		Padding:    padding,
	}, nil
}

// Open decrypts env and checks its tag. Nothing is returned unless both succeed.
func (s *Session) Open(env domain.Envelope) ([]byte, error) {
	const op = "open"
	if s.closed {
		return nil, domain.ConfigurationError(op, ErrSessionClosed)
	}
	pt, err := channel.Decrypt(s.keys.EncryptKey, env.IV, env.Ciphertext, env.Padding)
	if err != nil {
		return nil, err
	}
	if !channel.VerifyMAC(s.keys.MacKey, env.IV, pt, env.Tag) {
		memzero.Zero(pt)
		return nil, domain.AuthenticationError(op, ErrBadMAC)
	}
	return pt, nil
}

// Close wipes the session keys. Further Seal/Open calls fail.
func (s *Session) Close() {
	s.keys.Wipe()
	s.closed = true
}
