// Package handshake implements the authenticated ECDHE key establishment.
//
// # Overview
//
// Two parties hold long-term P-256 key pairs and know each other's public
// key. The initiator proves possession of its long-term key by signing a
// fresh ephemeral public key; the responder combines that ephemeral key with
// its own long-term private key. Both sides end with the same 48-byte KDF
// output split into an AES-128 key and an HMAC-SHA256 key.
//
// # Flows
//
// Initiator (Start → EphemeralGenerated → SecretAgreed → Signed → KeysDerived → Ready):
//  1. Generate an ephemeral P-256 key pair.
//  2. Z = ECDH(ephemeral private, responder long-term public); wipe the ephemeral private key.
//  3. Sign id || ephemeral public with the initiator long-term private key.
//  4. Hand (id, ephemeral public, signature) to the transport.
//  5. Derive session keys from Z; wipe Z.
//
// Responder (Start → Verified → KeysDerived → Ready, or Start → Aborted):
//  1. Verify the signature with the initiator long-term public key.
//  2. Z = ECDH(responder long-term private, ephemeral public).
//  3. Derive session keys from Z; wipe Z.
//
// # Errors
//
// A bad signature moves the responder to Aborted and returns an
// authentication error. Any other failure also aborts. Aborted is terminal:
// a new handshake must be started, nothing is retried. Calling an operation
// from the wrong state is a configuration error wrapping ErrInvalidState.
//
// # Security notes
//
// Only public material and the signature cross the transport. Ephemeral
// private keys never outlive Begin, which gives forward secrecy with respect
// to the long-term keys. Handshakes and Sessions are not safe for concurrent
// use; independent handshakes share nothing and can run in parallel.
package handshake
