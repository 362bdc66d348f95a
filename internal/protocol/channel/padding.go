package channel

import (
	"crypto/aes"
	"crypto/subtle"
	"fmt"

	"autocrypt/internal/domain"
)

// Pad applies the selected padding to a copy of data.
func Pad(p domain.Padding, data []byte) ([]byte, error) {
	switch p {
	case domain.PaddingPKCS7:
		return PadPKCS7(data), nil
	case domain.PaddingCustom:
		return PadCustom(data), nil
	default:
		return nil, domain.ConfigurationError("pad", fmt.Errorf("unknown padding %s", p))
	}
}

// Unpad strips the selected padding. The result aliases data.
func Unpad(p domain.Padding, data []byte) ([]byte, error) {
	switch p {
	case domain.PaddingPKCS7:
		return UnpadPKCS7(data)
	case domain.PaddingCustom:
		return UnpadCustom(data)
	default:
		return nil, domain.ConfigurationError("unpad", fmt.Errorf("unknown padding %s", p))
	}
}

// PadPKCS7 appends n bytes of value n, 1 <= n <= 16.
func PadPKCS7(data []byte) []byte {
	n := aes.BlockSize - len(data)%aes.BlockSize
	return appendPad(data, n, byte(n))
}

// UnpadPKCS7 removes PKCS#7 padding.
func UnpadPKCS7(data []byte) ([]byte, error) {
	if len(data) == 0 || len(data)%aes.BlockSize != 0 {
		return nil, domain.IntegrityError("unpad")
	}
	padByte := data[len(data)-1]
	padLen := int(padByte)
	valid := subtle.ConstantTimeLessOrEq(1, padLen) &
		subtle.ConstantTimeLessOrEq(padLen, aes.BlockSize)
	return checkTail(data, padLen, padByte, valid)
}

// PadCustom appends (15 - len%16) + 1 bytes of value 15 - len%16.
func PadCustom(data []byte) []byte {
	v := byte(15 - len(data)%aes.BlockSize)
	return appendPad(data, int(v)+1, v)
}

// UnpadCustom removes the custom padding. Input must be a non-empty multiple
// of the block size and the pad value must lie in 0..15.
func UnpadCustom(data []byte) ([]byte, error) {
	if len(data) == 0 || len(data)%aes.BlockSize != 0 {
		return nil, domain.IntegrityError("unpad")
	}
	padByte := data[len(data)-1]
	padLen := int(padByte) + 1
	valid := subtle.ConstantTimeLessOrEq(padLen, aes.BlockSize)
	return checkTail(data, padLen, padByte, valid)
}

func appendPad(data []byte, n int, v byte) []byte {
	out := make([]byte, len(data), len(data)+n)
	copy(out, data)
	for i := 0; i < n; i++ {
		out = append(out, v)
	}
	return out
}

// checkTail walks the whole final block regardless of padLen so the timing
// does not depend on where the first bad byte sits.
func checkTail(data []byte, padLen int, padByte byte, valid int) ([]byte, error) {
	n := len(data)
	for i := 1; i <= aes.BlockSize; i++ {
		inPad := subtle.ConstantTimeLessOrEq(i, padLen)
		match := subtle.ConstantTimeByteEq(data[n-i], padByte)
		valid &= subtle.ConstantTimeSelect(inPad, match, 1)
	}
	if valid != 1 {
		return nil, domain.IntegrityError("unpad")
	}
	return data[:n-padLen], nil
}
