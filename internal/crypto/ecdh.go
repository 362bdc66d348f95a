package crypto

import (
	"crypto/ecdh"

	"autocrypt/internal/domain"
)

// GenerateEphemeralKeyPair returns a fresh P-256 key pair, DER-encoded.
// The caller owns the private half and must Wipe it once the shared secret is computed.
func GenerateEphemeralKeyPair() (domain.KeyPair, error) {
	priv, err := ecdh.P256().GenerateKey(Reader)
	if err != nil {
		return domain.KeyPair{}, domain.EngineError("generate key pair", err)
	}
	privDER, err := MarshalPrivateKey(priv)
	if err != nil {
		return domain.KeyPair{}, err
	}
	pubDER, err := MarshalPublicKey(priv.PublicKey())
	if err != nil {
		return domain.KeyPair{}, err
	}
	return domain.KeyPair{PublicKey: pubDER, PrivateKey: privDER}, nil
}

// GenerateKeyPair returns a long-term P-256 key pair, usable for both ECDH and ECDSA.
func GenerateKeyPair() (domain.KeyPair, error) {
	return GenerateEphemeralKeyPair()
}

// SharedSecret computes P-256 ECDH and returns the raw 32-byte x-coordinate.
func SharedSecret(localPrivate, peerPublic []byte) ([]byte, error) {
	const op = "ecdh"
	priv, err := ParsePrivateKey(localPrivate)
	if err != nil {
		return nil, err
	}
	pub, err := ParsePublicKey(peerPublic)
	if err != nil {
		return nil, err
	}
	ourKey, err := priv.ECDH()
	if err != nil {
		return nil, domain.ConfigurationError(op, err)
	}
	peerKey, err := pub.ECDH()
	if err != nil {
		return nil, domain.ConfigurationError(op, err)
	}
	z, err := ourKey.ECDH(peerKey)
	if err != nil {
		return nil, domain.EngineError(op, err)
	}
	return z, nil
}
