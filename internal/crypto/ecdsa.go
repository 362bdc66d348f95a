package crypto

import (
	"crypto/ecdsa"
	"crypto/sha512"

	"autocrypt/internal/domain"
)

// SignedMessage returns id || ephemeralPublic with no delimiter or length prefix.
func SignedMessage(id, ephemeralPublic []byte) []byte {
	return domain.HandshakeMessage{ID: id, EphemeralPublicKey: ephemeralPublic}.SignedBytes()
}

// Sign returns an ASN.1 DER ECDSA signature over SHA-384(message).
func Sign(signerPrivate, message []byte) ([]byte, error) {
	priv, err := ParsePrivateKey(signerPrivate)
	if err != nil {
		return nil, err
	}
	digest := sha512.Sum384(message)
	sig, err := ecdsa.SignASN1(Reader, priv, digest[:])
	if err != nil {
		return nil, domain.EngineError("sign", err)
	}
	return sig, nil
}

// Verify checks an ASN.1 DER ECDSA signature over SHA-384(message).
// A bad signature yields false with a nil error; errors are kept for malformed keys.
func Verify(signerPublic, signature, message []byte) (bool, error) {
	pub, err := ParsePublicKey(signerPublic)
	if err != nil {
		return false, err
	}
	digest := sha512.Sum384(message)
	return ecdsa.VerifyASN1(pub, digest[:], signature), nil
}
