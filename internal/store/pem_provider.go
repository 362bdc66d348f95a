package store

import (
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"autocrypt/internal/crypto"
	"autocrypt/internal/domain"
	"autocrypt/internal/util/memzero"
)

const (
	pemPublicKey    = "PUBLIC KEY"
	pemCertificate  = "CERTIFICATE"
	pemPrivateKey   = "PRIVATE KEY"
	pemECPrivateKey = "EC PRIVATE KEY"

	publicKeyExt  = ".pem"
	privateKeyExt = ".key"
)

var (
	errNoPublicKey  = errors.New("no PUBLIC KEY or CERTIFICATE block")
	errNoPrivateKey = errors.New("no PRIVATE KEY or EC PRIVATE KEY block")
	errNoPassphrase = errors.New("key file is sealed but no passphrase is configured")
)

// PEMProvider reads and writes PEM key files under a home directory.
// Relative paths are resolved against that directory.
type PEMProvider struct {
	dir        string
	passphrase string
	scrypt     ScryptParams
	mu         sync.Mutex
}

// Option configures a PEMProvider.
type Option func(*PEMProvider)

// WithPassphrase seals new private keys and opens sealed ones with passphrase.
func WithPassphrase(passphrase string) Option {
	return func(p *PEMProvider) { p.passphrase = passphrase }
}

// WithScryptParams overrides DefaultScryptParams for newly sealed keys.
func WithScryptParams(params ScryptParams) Option {
	return func(p *PEMProvider) { p.scrypt = params }
}

// NewPEMProvider returns a PEMProvider rooted at dir.
func NewPEMProvider(dir string, opts ...Option) *PEMProvider {
	p := &PEMProvider{dir: dir, scrypt: DefaultScryptParams}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Dir returns the home directory.
func (p *PEMProvider) Dir() string { return p.dir }

func (p *PEMProvider) resolve(path string) string {
	if filepath.IsAbs(path) || p.dir == "" {
		return path
	}
	return filepath.Join(p.dir, path)
}

// LoadPublicKey returns the DER SubjectPublicKeyInfo in the file at path.
func (p *PEMProvider) LoadPublicKey(path string) ([]byte, error) {
	const op = "load public key"
	b, err := os.ReadFile(p.resolve(path))
	if err != nil {
		return nil, domain.ConfigurationError(op, err)
	}
	der, err := DecodePublicKey(b)
	if err != nil {
		return nil, domain.ConfigurationError(op, fmt.Errorf("%s: %w", path, err))
	}
	return der, nil
}

// LoadPrivateKey returns the private key in the file at path as DER PKCS#8.
func (p *PEMProvider) LoadPrivateKey(path string) ([]byte, error) {
	const op = "load private key"
	b, err := os.ReadFile(p.resolve(path))
	if err != nil {
		return nil, domain.ConfigurationError(op, err)
	}
	defer memzero.Zero(b)

	if isSealed(b) {
		if p.passphrase == "" {
			return nil, domain.ConfigurationError(op, fmt.Errorf("%s: %w", path, errNoPassphrase))
		}
		opened, err := unseal(p.passphrase, b)
		if err != nil {
			return nil, domain.ConfigurationError(op, fmt.Errorf("%s: %w", path, err))
		}
		defer memzero.Zero(opened)
		b = opened
	}

	der, err := DecodePrivateKey(b)
	if err != nil {
		return nil, domain.ConfigurationError(op, fmt.Errorf("%s: %w", path, err))
	}
	return der, nil
}

// SaveKeyPair writes <name>.pem and <name>.key with mode 0600. The private
// key is sealed when the provider has a passphrase.
func (p *PEMProvider) SaveKeyPair(name domain.PartyName, kp domain.KeyPair) (string, string, error) {
	const op = "save key pair"
	if name == "" || filepath.Base(string(name)) != string(name) {
		return "", "", domain.ConfigurationError(op, fmt.Errorf("invalid key name %q", name))
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.dir != "" {
		if err := os.MkdirAll(p.dir, 0o700); err != nil {
			return "", "", domain.ConfigurationError(op, err)
		}
	}

	pubPEM, err := EncodePublicKey(kp.PublicKey)
	if err != nil {
		return "", "", domain.ConfigurationError(op, err)
	}
	privPEM, err := EncodePrivateKey(kp.PrivateKey)
	if err != nil {
		return "", "", domain.ConfigurationError(op, err)
	}
	defer memzero.Zero(privPEM)

	privOut := privPEM
	if p.passphrase != "" {
		if privOut, err = seal(p.passphrase, privPEM, p.scrypt); err != nil {
			return "", "", domain.ConfigurationError(op, err)
		}
	}

	pubPath := filepath.Join(p.dir, string(name)+publicKeyExt)
	privPath := filepath.Join(p.dir, string(name)+privateKeyExt)
	if err := writeFile(pubPath, pubPEM, 0o600); err != nil {
		return "", "", domain.ConfigurationError(op, err)
	}
	if err := writeFile(privPath, privOut, 0o600); err != nil {
		return "", "", domain.ConfigurationError(op, err)
	}
	return pubPath, privPath, nil
}

// DecodePublicKey finds the first usable public key in PEM text. A
// CERTIFICATE block yields its subject public key.
func DecodePublicKey(b []byte) ([]byte, error) {
	for rest := b; ; {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			return nil, errNoPublicKey
		}
		switch block.Type {
		case pemPublicKey:
			if _, err := crypto.ParsePublicKey(block.Bytes); err != nil {
				return nil, err
			}
			return block.Bytes, nil
		case pemCertificate:
			cert, err := x509.ParseCertificate(block.Bytes)
			if err != nil {
				return nil, fmt.Errorf("parse certificate: %w", err)
			}
			if _, err := crypto.ParsePublicKey(cert.RawSubjectPublicKeyInfo); err != nil {
				return nil, err
			}
			return cert.RawSubjectPublicKeyInfo, nil
		}
	}
}

// DecodePrivateKey finds the first private key in PEM text and returns it as
// DER PKCS#8, converting SEC1 input.
func DecodePrivateKey(b []byte) ([]byte, error) {
	for rest := b; ; {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			return nil, errNoPrivateKey
		}
		if block.Type != pemPrivateKey && block.Type != pemECPrivateKey {
			continue
		}
		defer memzero.Zero(block.Bytes)
		priv, err := crypto.ParsePrivateKey(block.Bytes)
		if err != nil {
			return nil, err
		}
		return crypto.MarshalPrivateKey(priv)
	}
}

// EncodePublicKey wraps a DER public key in a PUBLIC KEY block.
func EncodePublicKey(der []byte) ([]byte, error) {
	if _, err := crypto.ParsePublicKey(der); err != nil {
		return nil, err
	}
	return pem.EncodeToMemory(&pem.Block{Type: pemPublicKey, Bytes: der}), nil
}

// EncodePrivateKey wraps a DER PKCS#8 private key in a PRIVATE KEY block.
func EncodePrivateKey(der []byte) ([]byte, error) {
	priv, err := crypto.ParsePrivateKey(der)
	if err != nil {
		return nil, err
	}
	pkcs8, err := crypto.MarshalPrivateKey(priv)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(pkcs8)
	return pem.EncodeToMemory(&pem.Block{Type: pemPrivateKey, Bytes: pkcs8}), nil
}

var _ domain.KeyStore = (*PEMProvider)(nil)
