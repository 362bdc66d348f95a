package identity

import (
	"fmt"
	"unicode"

	"go.uber.org/zap"

	"autocrypt/internal/crypto"
	"autocrypt/internal/domain"
	"autocrypt/internal/util/log"
)

const (
	// minPassphraseLength defines the minimum number of characters required for a passphrase.
	minPassphraseLength = 12
)

var (
	// ErrWeakPassphrase is returned when the passphrase fails the strength policy.
	ErrWeakPassphrase = fmt.Errorf(
		"passphrase is too weak (must be at least %d characters and include upper, lower, "+
			"number, and symbol)",
		minPassphraseLength,
	)
)

// Service generates long-term key pairs and stores them.
//
// One P-256 key pair per party serves both roles of the handshake:
// ECDSA signing for the initiator and static ECDH for the responder.
type Service struct {
	store domain.KeyStore
}

// New returns an identity service backed by the given store.
func New(s domain.KeyStore) *Service { return &Service{store: s} }

// GenerateIdentity creates a key pair, saves it under name and returns it with
// the fingerprint of its public key. The caller should Wipe the returned pair.
func (s *Service) GenerateIdentity(
	name domain.PartyName,
) (domain.KeyPair, domain.Fingerprint, error) {
	kp, err := crypto.GenerateKeyPair()
	if err != nil {
		return domain.KeyPair{}, "", err
	}
	pubPath, privPath, err := s.store.SaveKeyPair(name, kp)
	if err != nil {
		kp.Wipe()
		return domain.KeyPair{}, "", err
	}
	fp := crypto.Fingerprint(kp.PublicKey)
	log.Info("identity generated",
		zap.Stringer("name", name),
		zap.Stringer("fingerprint", fp),
		zap.String("public", pubPath),
		zap.String("private", privPath),
	)
	return kp, fp, nil
}

// FingerprintPublicKey returns the fingerprint of the public key stored at path.
func (s *Service) FingerprintPublicKey(path string) (domain.Fingerprint, error) {
	pub, err := s.store.LoadPublicKey(path)
	if err != nil {
		return "", err
	}
	return crypto.Fingerprint(pub), nil
}

// ValidatePassphrase enforces a basic strength policy for sealing private keys.
func ValidatePassphrase(passphrase string) error {
	if !isSecurePassphrase(passphrase) {
		return domain.ConfigurationError("validate passphrase", ErrWeakPassphrase)
	}
	return nil
}

// isSecurePassphrase enforces a basic strength policy.
func isSecurePassphrase(passphrase string) bool {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	if len([]rune(passphrase)) < minPassphraseLength {
		return false
	}
	for _, r := range passphrase {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r), unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}

// Compile-time assertion that Service implements domain.IdentityService.
var _ domain.IdentityService = (*Service)(nil)
