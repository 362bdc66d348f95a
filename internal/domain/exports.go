package domain

import (
	interfaces "autocrypt/internal/domain/interfaces"
	types "autocrypt/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	KeyPair          = types.KeyPair
	SessionKeys      = types.SessionKeys
	HandshakeMessage = types.HandshakeMessage
	Envelope         = types.Envelope
	Padding          = types.Padding
	Fingerprint      = types.Fingerprint
	PartyName        = types.PartyName
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	KeyMaterialProvider = interfaces.KeyMaterialProvider
	KeyStore            = interfaces.KeyStore
	IdentityService     = interfaces.IdentityService
	HandshakeService    = interfaces.HandshakeService
	Initiation          = interfaces.Initiation
	SecureSession       = interfaces.SecureSession
	MessageService      = interfaces.MessageService
	Party               = interfaces.Party
)

// Re-exported constants.
const (
	EncryptKeySize       = types.EncryptKeySize
	MacKeySize           = types.MacKeySize
	IVSize               = types.IVSize
	SharedSecretP256Size = types.SharedSecretP256Size

	PaddingPKCS7  = types.PaddingPKCS7
	PaddingCustom = types.PaddingCustom
)

// ParsePadding maps a config value onto a Padding.
var ParsePadding = types.ParsePadding
