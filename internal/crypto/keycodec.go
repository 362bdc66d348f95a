package crypto

import (
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/x509"
	"errors"
	"fmt"

	"autocrypt/internal/domain"
)

var (
	errEmptyKey   = errors.New("empty key")
	errWrongCurve = errors.New("key is not on curve P-256")
)

// ParsePublicKey decodes a DER SubjectPublicKeyInfo holding a P-256 point.
func ParsePublicKey(der []byte) (*ecdsa.PublicKey, error) {
	const op = "parse public key"
	if len(der) == 0 {
		return nil, domain.ConfigurationError(op, errEmptyKey)
	}
	k, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, domain.ConfigurationError(op, err)
	}
	pub, ok := k.(*ecdsa.PublicKey)
	if !ok {
		return nil, domain.ConfigurationError(op, fmt.Errorf("unsupported key type %T", k))
	}
	if pub.Curve != elliptic.P256() {
		return nil, domain.ConfigurationError(op, errWrongCurve)
	}
	// ECDH() re-validates the point.
	if _, err := pub.ECDH(); err != nil {
		return nil, domain.ConfigurationError(op, err)
	}
	return pub, nil
}

// ParsePrivateKey decodes a DER PKCS#8 or SEC1 private key on P-256.
func ParsePrivateKey(der []byte) (*ecdsa.PrivateKey, error) {
	const op = "parse private key"
	if len(der) == 0 {
		return nil, domain.ConfigurationError(op, errEmptyKey)
	}
	var priv *ecdsa.PrivateKey
	k, err := x509.ParsePKCS8PrivateKey(der)
	if err == nil {
		var ok bool
		if priv, ok = k.(*ecdsa.PrivateKey); !ok {
			return nil, domain.ConfigurationError(op, fmt.Errorf("unsupported key type %T", k))
		}
	} else {
		var secErr error
		if priv, secErr = x509.ParseECPrivateKey(der); secErr != nil {
			return nil, domain.ConfigurationError(op, errors.Join(err, secErr))
		}
	}
	if priv.Curve != elliptic.P256() {
		return nil, domain.ConfigurationError(op, errWrongCurve)
	}
	return priv, nil
}

// MarshalPublicKey encodes pub as DER SubjectPublicKeyInfo.
func MarshalPublicKey(pub any) ([]byte, error) {
	switch k := pub.(type) {
	case *ecdsa.PublicKey:
		if k.Curve != elliptic.P256() {
			return nil, domain.ConfigurationError("marshal public key", errWrongCurve)
		}
	case *ecdh.PublicKey:
		if k.Curve() != ecdh.P256() {
			return nil, domain.ConfigurationError("marshal public key", errWrongCurve)
		}
	default:
		return nil, domain.ConfigurationError("marshal public key", fmt.Errorf("unsupported key type %T", pub))
	}
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return nil, domain.EngineError("marshal public key", err)
	}
	return der, nil
}

// MarshalPrivateKey encodes priv as DER PKCS#8.
func MarshalPrivateKey(priv any) ([]byte, error) {
	switch k := priv.(type) {
	case *ecdsa.PrivateKey:
		if k.Curve != elliptic.P256() {
			return nil, domain.ConfigurationError("marshal private key", errWrongCurve)
		}
	case *ecdh.PrivateKey:
		if k.Curve() != ecdh.P256() {
			return nil, domain.ConfigurationError("marshal private key", errWrongCurve)
		}
	default:
		return nil, domain.ConfigurationError("marshal private key", fmt.Errorf("unsupported key type %T", priv))
	}
	der, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return nil, domain.EngineError("marshal private key", err)
	}
	return der, nil
}
