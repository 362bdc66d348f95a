package interfaces

import domaintypes "autocrypt/internal/domain/types"

// KeyMaterialProvider turns key files into DER bytes.
type KeyMaterialProvider interface {
	LoadPublicKey(path string) ([]byte, error)
	LoadPrivateKey(path string) ([]byte, error)
}

// KeyStore persists long-term key pairs.
type KeyStore interface {
	KeyMaterialProvider
	SaveKeyPair(name domaintypes.PartyName, kp domaintypes.KeyPair) (publicPath, privatePath string, err error)
}
