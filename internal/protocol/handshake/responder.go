package handshake

import (
	"autocrypt/internal/crypto"
	"autocrypt/internal/domain"
	"autocrypt/internal/protocol/kdf"
	"autocrypt/internal/util/memzero"
)

// Responder is the side that verifies the initiator and completes the agreement
// with its long-term private key.
type Responder struct {
	machine

	ownPrivate      []byte // long-term, DER; borrowed, never wiped here
	initiatorPublic []byte // initiator long-term signing key, DER
}

// NewResponder prepares to accept a handshake signed by the holder of initiatorPublic.
func NewResponder(ownPrivate, initiatorPublic []byte, opts ...Option) *Responder {
	return &Responder{
		machine:         newMachine(opts),
		ownPrivate:      ownPrivate,
		initiatorPublic: initiatorPublic,
	}
}

// Accept runs Start → Verified → KeysDerived → Ready, or Start → Aborted when
// the signature does not verify.
func (r *Responder) Accept(msg domain.HandshakeMessage) (*Session, error) {
	const op = "handshake accept"
	if err := r.expect(op, StateStart); err != nil {
		return nil, err
	}

	ok, err := crypto.Verify(r.initiatorPublic, msg.Signature, msg.SignedBytes())
	if err != nil {
		return nil, r.abort(err)
	}
	if !ok {
		return nil, r.abort(domain.AuthenticationError(op, ErrBadSignature))
	}
	r.advance(StateVerified)

	z, err := crypto.SharedSecret(r.ownPrivate, msg.EphemeralPublicKey)
	if err != nil {
		return nil, r.abort(err)
	}
	keys := kdf.DeriveSessionKeys(z)
	memzero.Zero(z)
	r.advance(StateKeysDerived)

	sess := newSession(keys)
	r.advance(StateReady)
	return sess, nil
}
