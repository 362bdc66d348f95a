// Package app wires application dependencies for the CLI.
//
// It loads Config from TOML, builds the key store and the high-level
// services from it, and exposes them via the Wire struct for commands to use.
package app
