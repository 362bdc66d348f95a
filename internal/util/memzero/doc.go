// Package memzero zeroes sensitive buffers.
//
// Zero wipes a slice in place. Secret and Use give private keys, shared
// secrets and session keys a scoped lifetime: the buffer is wiped on every
// exit path of the owning function.
package memzero
