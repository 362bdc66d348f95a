package message

import (
	"go.uber.org/zap"

	"autocrypt/internal/domain"
	"autocrypt/internal/util/log"
)

// Service encrypts and authenticates messages with session keys.
type Service struct {
	padding domain.Padding
}

// New returns a message service that pads outgoing messages with padding.
func New(padding domain.Padding) *Service {
	return &Service{padding: padding}
}

// Padding returns the padding used by Send.
func (s *Service) Padding() domain.Padding { return s.padding }

// Send seals plaintext for the peer of session.
func (s *Service) Send(session domain.SecureSession, plaintext []byte) (domain.Envelope, error) {
	env, err := session.Seal(plaintext, s.padding)
	if err != nil {
		log.Error("seal failed", zap.Stringer("kind", domain.KindOf(err)))
		return domain.Envelope{}, err
	}
	log.Debug("message sealed",
		zap.Int("plaintext_len", len(plaintext)),
		zap.Int("ciphertext_len", len(env.Ciphertext)),
		zap.Stringer("padding", s.padding),
	)
	return env, nil
}

// Receive opens env. Nothing is returned unless the tag verifies.
func (s *Service) Receive(session domain.SecureSession, env domain.Envelope) ([]byte, error) {
	pt, err := session.Open(env)
	if err != nil {
		log.Warn("message rejected", zap.Stringer("kind", domain.KindOf(err)))
		return nil, err
	}
	log.Debug("message opened", zap.Int("plaintext_len", len(pt)))
	return pt, nil
}

// Compile-time assertion that Service implements domain.MessageService.
var _ domain.MessageService = (*Service)(nil)
