package handshake

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"autocrypt/internal/crypto"
	"autocrypt/internal/domain"
	protocol "autocrypt/internal/protocol/handshake"
	"autocrypt/internal/util/log"
	"autocrypt/internal/util/memzero"
)

// Service runs handshakes for keys held by a KeyMaterialProvider.
type Service struct {
	keys  domain.KeyMaterialProvider
	newID func() []byte
}

// New returns a handshake service reading keys from keys.
func New(keys domain.KeyMaterialProvider) *Service {
	return &Service{keys: keys, newID: randomID}
}

// randomID returns the 16 bytes of a fresh v4 UUID.
func randomID() []byte {
	id := uuid.New()
	return id[:]
}

// Initiation is a started initiator handshake.
type Initiation struct {
	in   *protocol.Initiator
	peer domain.Fingerprint
}

// Message returns what must be sent to the responder.
func (i *Initiation) Message() domain.HandshakeMessage { return i.in.Message() }

// Finish derives the session keys.
func (i *Initiation) Finish() (domain.SecureSession, error) {
	sess, err := i.in.Finish()
	if err != nil {
		return nil, err
	}
	log.Info("handshake ready", zap.String("role", "initiator"), zap.Stringer("peer", i.peer))
	return sess, nil
}

// Close wipes the shared secret of an unfinished handshake.
func (i *Initiation) Close() { i.in.Close() }

// Initiate loads our private key and the responder's public key, then signs a
// fresh ephemeral key. The private key is wiped before Initiate returns.
func (s *Service) Initiate(party domain.Party) (domain.Initiation, error) {
	priv, pub, err := s.load(party)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(priv)

	peer := crypto.Fingerprint(pub)
	in := protocol.NewInitiator(priv, pub, protocol.WithObserver(observe("initiator", peer)))
	if _, err := in.Begin(s.newID()); err != nil {
		return nil, err
	}
	return &Initiation{in: in, peer: peer}, nil
}

// Respond loads our private key and the initiator's public key and accepts msg.
func (s *Service) Respond(party domain.Party, msg domain.HandshakeMessage) (domain.SecureSession, error) {
	priv, pub, err := s.load(party)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(priv)

	peer := crypto.Fingerprint(pub)
	resp := protocol.NewResponder(priv, pub, protocol.WithObserver(observe("responder", peer)))
	sess, err := resp.Accept(msg)
	if err != nil {
		return nil, err
	}
	log.Info("handshake ready", zap.String("role", "responder"), zap.Stringer("peer", peer))
	return sess, nil
}

func (s *Service) load(party domain.Party) (priv, pub []byte, err error) {
	priv, err = s.keys.LoadPrivateKey(party.PrivateKeyPath)
	if err != nil {
		return nil, nil, err
	}
	pub, err = s.keys.LoadPublicKey(party.PeerPublicKeyPath)
	if err != nil {
		memzero.Zero(priv)
		return nil, nil, err
	}
	return priv, pub, nil
}

func observe(role string, peer domain.Fingerprint) protocol.Observer {
	return func(from, to protocol.State) {
		fields := []zap.Field{
			zap.String("role", role),
			zap.Stringer("peer", peer),
			zap.Stringer("from", from),
			zap.Stringer("to", to),
		}
		if to == protocol.StateAborted {
			log.Warn("handshake aborted", fields...)
			return
		}
		log.Debug("handshake transition", fields...)
	}
}

// Compile-time assertions.
var (
	_ domain.HandshakeService = (*Service)(nil)
	_ domain.Initiation       = (*Initiation)(nil)
	_ domain.SecureSession    = (*protocol.Session)(nil)
)
