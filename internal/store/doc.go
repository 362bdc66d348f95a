// Package store loads and saves long-term key material as PEM files.
//
// Public keys are read from PUBLIC KEY blocks, or from the subject key of a
// CERTIFICATE block. Private keys are read from PRIVATE KEY (PKCS#8) or
// EC PRIVATE KEY (SEC1) blocks. A private key file may also hold a sealed
// envelope: the PEM text encrypted under a passphrase-derived key.
//
// Everything handed back is DER, ready for the crypto package.
package store
