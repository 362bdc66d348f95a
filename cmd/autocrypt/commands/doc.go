// Package commands defines the autocrypt CLI and wires dependencies for subcommands.
//
// Commands
//
//   - keygen <name>     Generate a long-term P-256 key pair as <name>.pem / <name>.key
//   - fingerprint [pem] Print the fingerprint of a public key or certificate
//   - kdf <hex-z>       Derive session keys from a shared secret
//   - demo              Run a handshake between two parties and exchange one message
//   - bench             Measure concurrent handshake and message throughput
//
// # Implementation
//
// The root command loads the TOML config, applies flag overrides and builds
// the dependency graph (key store, services) before any subcommand runs.
package commands
