// Package message seals and opens application payloads on a ready session.
//
// Outgoing messages use the configured padding; incoming envelopes carry
// their own. Failures are logged by kind only, never with payload bytes.
package message
