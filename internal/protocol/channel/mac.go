package channel

import (
	"crypto/hmac"
	"crypto/sha256"
)

// TagSize is the length of an HMAC-SHA256 tag.
const TagSize = sha256.Size

// ComputeMAC returns HMAC-SHA256(macKey, iv || data).
func ComputeMAC(macKey, iv, data []byte) []byte {
	h := hmac.New(sha256.New, macKey)
	h.Write(iv)
	h.Write(data)
	return h.Sum(nil)
}

// VerifyMAC recomputes the tag and compares it in constant time.
func VerifyMAC(macKey, iv, data, tag []byte) bool {
	expected := ComputeMAC(macKey, iv, data)
	if len(tag) != len(expected) {
		return false
	}
	return hmac.Equal(expected, tag)
}
