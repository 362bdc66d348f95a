// Package channel implements the message phase of a session: AES-128-CBC
// encryption with a selectable padding scheme and an HMAC-SHA256 tag.
//
// # Padding
//
// PaddingPKCS7 is the standard scheme. PaddingCustom is the scheme mandated
// by the charging-infrastructure profile: for a plaintext of length L it
// appends (15 - L mod 16) + 1 bytes, each equal to 15 - L mod 16. Both are
// removed in constant time over the final block and fail closed with an
// integrity error that does not say which byte was wrong.
//
// # MAC
//
// The tag is HMAC-SHA256(mac_key, iv || plaintext). It covers the plaintext,
// not the ciphertext, so it is computed independently of the cipher step.
// VerifyMAC never errors; any mismatch is reported as false after a
// constant-time comparison.
package channel
