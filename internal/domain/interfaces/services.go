package interfaces

import (
	domaintypes "autocrypt/internal/domain/types"
)

// IdentityService creates and inspects long-term key pairs.
type IdentityService interface {
	GenerateIdentity(name domaintypes.PartyName) (
		domaintypes.KeyPair,
		domaintypes.Fingerprint,
		error,
	)
	FingerprintPublicKey(path string) (domaintypes.Fingerprint, error)
}

// Party is one side of a handshake: our private key and the peer's public key.
type Party struct {
	PrivateKeyPath    string
	PeerPublicKeyPath string
}

// HandshakeService drives one side of the key establishment from key files.
type HandshakeService interface {
	Initiate(party Party) (Initiation, error)
	Respond(party Party, msg domaintypes.HandshakeMessage) (SecureSession, error)
}

// Initiation is a started initiator handshake waiting to be finished.
// Close wipes its secret; it is safe to call after Finish.
type Initiation interface {
	Message() domaintypes.HandshakeMessage
	Finish() (SecureSession, error)
	Close()
}

// SecureSession is a handshake in the Ready state.
type SecureSession interface {
	Keys() domaintypes.SessionKeys
	Seal(plaintext []byte, padding domaintypes.Padding) (domaintypes.Envelope, error)
	Open(env domaintypes.Envelope) ([]byte, error)
	Close()
}

// MessageService seals and opens application payloads on a ready session.
type MessageService interface {
	Send(session SecureSession, plaintext []byte) (domaintypes.Envelope, error)
	Receive(session SecureSession, env domaintypes.Envelope) ([]byte, error)
}
