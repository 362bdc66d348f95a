package app

import (
	"fmt"
	"strings"

	"autocrypt/internal/domain"
	handshakesvc "autocrypt/internal/services/handshake"
	identitysvc "autocrypt/internal/services/identity"
	messagesvc "autocrypt/internal/services/message"
	"autocrypt/internal/store"
	"autocrypt/internal/util/log"
)

// Wire bundles the key store and services for the CLI.
type Wire struct {
	Config     Config
	Keys       domain.KeyStore
	Identity   domain.IdentityService
	Handshakes domain.HandshakeService
	Messages   domain.MessageService
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := log.SetLevel(strings.ToLower(cfg.LogLevel)); err != nil {
		return nil, err
	}

	// File-based key store
	opts := []store.Option{}
	if pass := cfg.Passphrase(); pass != "" {
		opts = append(opts, store.WithPassphrase(pass))
	}
	keys := store.NewPEMProvider(cfg.Home, opts...)

	return &Wire{
		Config:     cfg,
		Keys:       keys,
		Identity:   identitysvc.New(keys),
		Handshakes: handshakesvc.New(keys),
		Messages:   messagesvc.New(cfg.PaddingScheme()),
	}, nil
}
