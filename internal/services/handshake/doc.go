// Package handshake drives one side of the key establishment from key files.
//
// It loads long-term keys through a domain.KeyMaterialProvider, runs the
// protocol state machine, wipes the private key as soon as it is no longer
// needed and logs state changes by peer fingerprint.
package handshake
