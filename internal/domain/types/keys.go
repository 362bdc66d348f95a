package types

import "autocrypt/internal/util/memzero"

// Key and block sizes used across the protocol.
const (
	EncryptKeySize       = 16 // AES-128
	MacKeySize           = 32 // HMAC-SHA256
	IVSize               = 16 // one AES block
	SharedSecretP256Size = 32 // x-coordinate of a P-256 point
)

// KeyPair holds a DER-encoded P-256 key pair.
// PublicKey is SubjectPublicKeyInfo, PrivateKey is PKCS#8 (SEC1 is accepted on input).
type KeyPair struct {
	PublicKey  []byte `json:"public_key"`
	PrivateKey []byte `json:"private_key"`
}

// Wipe zeroes the private half in place.
func (kp *KeyPair) Wipe() {
	memzero.Zero(kp.PrivateKey)
	kp.PrivateKey = nil
}

// SessionKeys are derived once per handshake and used for every message of the session.
type SessionKeys struct {
	EncryptKey []byte `json:"encrypt_key"`
	MacKey     []byte `json:"mac_key"`
}

// Wipe zeroes both keys in place.
func (k *SessionKeys) Wipe() {
	memzero.Zero(k.EncryptKey)
	memzero.Zero(k.MacKey)
	k.EncryptKey, k.MacKey = nil, nil
}
