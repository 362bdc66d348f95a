package types

import "fmt"

// Padding selects how plaintext is brought to a multiple of the AES block size.
type Padding int

const (
	// PaddingPKCS7 appends N bytes of value N (1..16).
	PaddingPKCS7 Padding = iota
	// PaddingCustom appends (15 - len%16) + 1 bytes of value 15 - len%16.
	PaddingCustom
)

// String returns the config spelling of the padding scheme.
func (p Padding) String() string {
	switch p {
	case PaddingPKCS7:
		return "pkcs7"
	case PaddingCustom:
		return "custom"
	default:
		return fmt.Sprintf("padding(%d)", int(p))
	}
}

// ParsePadding maps a config value onto a Padding.
func ParsePadding(s string) (Padding, error) {
	switch s {
	case "pkcs7", "PKCS7", "standard":
		return PaddingPKCS7, nil
	case "custom", "":
		return PaddingCustom, nil
	default:
		return 0, fmt.Errorf("unknown padding %q", s)
	}
}

// Envelope is one sealed application message. Tag covers IV || plaintext.
type Envelope struct {
	IV         []byte  `json:"iv"`
	Ciphertext []byte  `json:"ciphertext"`
	Tag        []byte  `json:"tag"`
	Padding    Padding `json:"padding"`
}
