// Package kdf implements the single-step concatenation KDF (NIST SP 800-56A)
// that turns an ECDH shared secret into session keys.
//
// The hash input is
//
//	counter(00000001) || Z || keydatalen(00000180) || AlgorithmID(01) || PartyUInfo(55) || PartyVInfo(56)
//
// hashed once with SHA-384. The first 16 bytes of the digest become the
// AES-128 key, the remaining 32 bytes the HMAC-SHA256 key. A single round is
// enough because 384 requested bits equal one SHA-384 output.
package kdf
