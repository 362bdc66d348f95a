package memzero

import "runtime"

// Secret owns a sensitive buffer until Wipe is called.
//
//	s := memzero.NewSecret(priv)
//	defer s.Wipe()
type Secret struct {
	b []byte
}

// NewSecret takes ownership of b. The caller must not keep other references to it.
func NewSecret(b []byte) *Secret {
	return &Secret{b: b}
}

// Bytes returns the underlying buffer, or nil once wiped.
func (s *Secret) Bytes() []byte {
	if s == nil {
		return nil
	}
	return s.b
}

// Len reports the length of the live buffer.
func (s *Secret) Len() int { return len(s.Bytes()) }

// Wiped reports whether Wipe has run.
func (s *Secret) Wiped() bool { return s == nil || s.b == nil }

// Wipe zeroes and releases the buffer. Safe to call more than once.
func (s *Secret) Wipe() {
	if s == nil || s.b == nil {
		return
	}
	Zero(s.b)
	runtime.KeepAlive(s.b)
	s.b = nil
}

// Use hands b to fn and zeroes b on every exit path, panics included.
func Use(b []byte, fn func([]byte) error) error {
	s := NewSecret(b)
	defer s.Wipe()
	return fn(s.Bytes())
}
