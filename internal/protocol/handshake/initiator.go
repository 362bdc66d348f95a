package handshake

import (
	"bytes"

	"autocrypt/internal/crypto"
	"autocrypt/internal/domain"
	"autocrypt/internal/protocol/kdf"
	"autocrypt/internal/util/memzero"
)

// Initiator is the side that generates the ephemeral key and signs it.
type Initiator struct {
	machine

	ownPrivate []byte // long-term, DER; borrowed, never wiped here
	peerPublic []byte // responder long-term, DER

	msg domain.HandshakeMessage
	z   *memzero.Secret
}

// NewInitiator prepares a handshake signed with ownPrivate towards the holder of peerPublic.
func NewInitiator(ownPrivate, peerPublic []byte, opts ...Option) *Initiator {
	return &Initiator{
		machine:    newMachine(opts),
		ownPrivate: ownPrivate,
		peerPublic: peerPublic,
	}
}

// Begin runs Start → EphemeralGenerated → SecretAgreed → Signed and returns
// the message to transmit. The ephemeral private key is wiped before Begin returns.
func (in *Initiator) Begin(id []byte) (domain.HandshakeMessage, error) {
	const op = "handshake begin"
	if err := in.expect(op, StateStart); err != nil {
		return domain.HandshakeMessage{}, err
	}

	eph, err := crypto.GenerateEphemeralKeyPair()
	if err != nil {
		return domain.HandshakeMessage{}, in.abort(err)
	}
	ephPriv := memzero.NewSecret(eph.PrivateKey)
	defer ephPriv.Wipe()
	in.advance(StateEphemeralGenerated)

	z, err := crypto.SharedSecret(ephPriv.Bytes(), in.peerPublic)
	if err != nil {
		return domain.HandshakeMessage{}, in.abort(err)
	}
	ephPriv.Wipe()
	in.z = memzero.NewSecret(z)
	in.advance(StateSecretAgreed)

	id = bytes.Clone(id)
	sig, err := crypto.Sign(in.ownPrivate, crypto.SignedMessage(id, eph.PublicKey))
	if err != nil {
		in.z.Wipe()
		return domain.HandshakeMessage{}, in.abort(err)
	}
	in.msg = domain.HandshakeMessage{
		ID:                 id,
		EphemeralPublicKey: eph.PublicKey,
		Signature:          sig,
	}
	in.advance(StateSigned)
	return in.msg, nil
}

// Message returns the message produced by Begin.
func (in *Initiator) Message() domain.HandshakeMessage { return in.msg }

// Finish runs Signed → KeysDerived → Ready. Z is wiped before Finish returns.
func (in *Initiator) Finish() (*Session, error) {
	const op = "handshake finish"
	if err := in.expect(op, StateSigned); err != nil {
		return nil, err
	}
	defer in.z.Wipe()

	keys := kdf.DeriveSessionKeys(in.z.Bytes())
	in.advance(StateKeysDerived)

	sess := newSession(keys)
	in.advance(StateReady)
	return sess, nil
}

// Close wipes any secret still held. A handshake closed before Ready is
// Aborted, so a later Finish fails.
func (in *Initiator) Close() {
	in.z.Wipe()
	if in.state != StateReady {
		_ = in.abort(nil)
	}
}
