// Package identity creates long-term P-256 key pairs and reports their fingerprints.
//
// New key pairs are persisted through a domain.KeyStore; when the store seals
// private keys, the passphrase must pass ValidatePassphrase first.
package identity
