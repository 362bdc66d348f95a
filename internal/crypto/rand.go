package crypto

import (
	"crypto/rand"
	"fmt"
	"io"

	"autocrypt/internal/domain"
)

// Reader is the entropy source for key generation, signing and IVs.
var Reader io.Reader = rand.Reader

// RandomBytes returns n bytes read from Reader.
func RandomBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, domain.ConfigurationError("random bytes", fmt.Errorf("negative length %d", n))
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(Reader, b); err != nil {
		return nil, domain.EngineError("random bytes", err)
	}
	return b, nil
}
