package types

// Fingerprint is a short identifier for public keys presented to users and logs.
type Fingerprint string

// String returns the string form of the fingerprint.
func (f Fingerprint) String() string { return string(f) }

// PartyName names a key set on disk, e.g. "keco" or "charger".
type PartyName string

// String returns the string form of the party name.
func (n PartyName) String() string { return string(n) }
