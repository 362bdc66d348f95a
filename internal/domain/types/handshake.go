package types

// HandshakeMessage is what the initiator hands to the transport.
// Only its byte content is defined here, not how it is framed on the wire.
type HandshakeMessage struct {
	ID                 []byte `json:"id"`
	EphemeralPublicKey []byte `json:"ephemeral_public_key"`
	Signature          []byte `json:"signature"`
}

// SignedBytes returns ID || EphemeralPublicKey, the exact input to the signature.
func (m HandshakeMessage) SignedBytes() []byte {
	out := make([]byte, 0, len(m.ID)+len(m.EphemeralPublicKey))
	out = append(out, m.ID...)
	return append(out, m.EphemeralPublicKey...)
}
