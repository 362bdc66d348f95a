package channel

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"autocrypt/internal/domain"
	"autocrypt/internal/util/memzero"
)

// Encrypt pads plaintext and encrypts it with AES-128-CBC.
// key and iv must both be 16 bytes; the iv must be fresh for every message under key.
func Encrypt(key, iv, plaintext []byte, padding domain.Padding) ([]byte, error) {
	const op = "encrypt"
	if err := checkKeyIV(op, key, iv); err != nil {
		return nil, err
	}
	padded, err := Pad(padding, plaintext)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(padded)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, domain.EngineError(op, err)
	}
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, padded)
	return out, nil
}

// Decrypt reverses Encrypt. Any padding or length failure yields a generic
// integrity error and no plaintext.
func Decrypt(key, iv, ciphertext []byte, padding domain.Padding) ([]byte, error) {
	const op = "decrypt"
	if err := checkKeyIV(op, key, iv); err != nil {
		return nil, err
	}
	if padding != domain.PaddingPKCS7 && padding != domain.PaddingCustom {
		return nil, domain.ConfigurationError(op, fmt.Errorf("unknown padding %s", padding))
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, domain.IntegrityError(op)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, domain.EngineError(op, err)
	}
	padded := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(padded, ciphertext)

	plaintext, err := Unpad(padding, padded)
	if err != nil {
		memzero.Zero(padded)
		return nil, domain.IntegrityError(op)
	}
	// Scrub the pad bytes left in the backing array.
	memzero.Zero(padded[len(plaintext):])
	return plaintext, nil
}

func checkKeyIV(op string, key, iv []byte) error {
	if len(key) != domain.EncryptKeySize {
		return domain.ConfigurationError(op, fmt.Errorf("key must be %d bytes, got %d", domain.EncryptKeySize, len(key)))
	}
	if len(iv) != domain.IVSize {
		return domain.ConfigurationError(op, fmt.Errorf("iv must be %d bytes, got %d", domain.IVSize, len(iv)))
	}
	return nil
}
