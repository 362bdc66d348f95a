// Package crypto exposes the public-key primitives of the handshake.
//
// Contents
//
//   - CSPRNG access (RandomBytes)
//   - DER key codec restricted to P-256 (ParsePublicKey, ParsePrivateKey,
//     MarshalPublicKey, MarshalPrivateKey)
//   - Ephemeral key generation and ECDH (GenerateEphemeralKeyPair, SharedSecret)
//   - ECDSA over SHA-384 (SignedMessage, Sign, Verify)
//   - Short public-key fingerprints for display/logging (Fingerprint)
//
// # Notes
//
// Keys cross this package as DER byte slices so that callers can wipe them.
// Every error is a *domain.Error: malformed or foreign keys are configuration
// errors, RNG and primitive faults are engine errors. An invalid signature is
// not an error; Verify reports it as false.
package crypto
