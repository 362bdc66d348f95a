// Package domain defines core data models and interfaces shared across the app.
// It contains plain types (key material, handshake and message envelopes),
// contracts (interfaces) and the error taxonomy of the crypto core.
package domain
