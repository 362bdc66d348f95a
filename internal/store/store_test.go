package store_test

import (
	"bytes"
	"crypto/rand"
	"encoding/json"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"autocrypt/internal/crypto"
	"autocrypt/internal/domain"
	"autocrypt/internal/store"
)

var fastScrypt = store.ScryptParams{N: 1 << 10, R: 8, P: 1}

func makeKeyPair(t *testing.T) domain.KeyPair {
	t.Helper()
	kp, err := crypto.GenerateKeyPair()
	require.NoError(t, err)
	return kp
}

func requireSamePrivateKey(t *testing.T, want, got []byte) {
	t.Helper()
	a, err := crypto.ParsePrivateKey(want)
	require.NoError(t, err)
	b, err := crypto.ParsePrivateKey(got)
	require.NoError(t, err)
	require.True(t, a.Equal(b), "private keys differ")
}

func TestSaveLoad_Plain(t *testing.T) {
	home := t.TempDir()
	p := store.NewPEMProvider(home)
	kp := makeKeyPair(t)

	pubPath, privPath, err := p.SaveKeyPair("keco", kp)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, "keco.pem"), pubPath)
	require.Equal(t, filepath.Join(home, "keco.key"), privPath)

	for _, path := range []string{pubPath, privPath} {
		info, err := os.Stat(path)
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}

	pub, err := p.LoadPublicKey(pubPath)
	require.NoError(t, err)
	require.Equal(t, kp.PublicKey, pub)

	priv, err := p.LoadPrivateKey(privPath)
	require.NoError(t, err)
	requireSamePrivateKey(t, kp.PrivateKey, priv)
}

func TestLoad_RelativeToHome(t *testing.T) {
	home := t.TempDir()
	p := store.NewPEMProvider(home)
	kp := makeKeyPair(t)
	_, _, err := p.SaveKeyPair("charger", kp)
	require.NoError(t, err)

	pub, err := p.LoadPublicKey("charger.pem")
	require.NoError(t, err)
	require.Equal(t, kp.PublicKey, pub)
}

func TestSaveLoad_Sealed(t *testing.T) {
	home := t.TempDir()
	p := store.NewPEMProvider(home, store.WithPassphrase("correct horse"), store.WithScryptParams(fastScrypt))
	kp := makeKeyPair(t)

	_, privPath, err := p.SaveKeyPair("keco", kp)
	require.NoError(t, err)

	raw, err := os.ReadFile(privPath)
	require.NoError(t, err)
	require.Equal(t, byte('{'), raw[0])
	require.NotContains(t, string(raw), "PRIVATE KEY")

	priv, err := p.LoadPrivateKey(privPath)
	require.NoError(t, err)
	requireSamePrivateKey(t, kp.PrivateKey, priv)
}

func TestLoadSealed_WrongOrMissingPassphrase(t *testing.T) {
	home := t.TempDir()
	kp := makeKeyPair(t)
	_, privPath, err := store.NewPEMProvider(home, store.WithPassphrase("right"), store.WithScryptParams(fastScrypt)).
		SaveKeyPair("keco", kp)
	require.NoError(t, err)

	_, err = store.NewPEMProvider(home, store.WithPassphrase("wrong")).LoadPrivateKey(privPath)
	require.ErrorIs(t, err, store.ErrWrongPassphrase)
	require.ErrorIs(t, err, domain.ErrConfiguration)

	_, err = store.NewPEMProvider(home).LoadPrivateKey(privPath)
	require.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestLoadSealed_Tampered(t *testing.T) {
	home := t.TempDir()
	p := store.NewPEMProvider(home, store.WithPassphrase("pw"), store.WithScryptParams(fastScrypt))
	_, privPath, err := p.SaveKeyPair("keco", makeKeyPair(t))
	require.NoError(t, err)

	raw, err := os.ReadFile(privPath)
	require.NoError(t, err)
	// Corrupt the base64 ciphertext near the end of the JSON document.
	i := len(raw) - 10
	for raw[i] == 'A' {
		i--
	}
	raw[i] = 'A'
	require.NoError(t, os.WriteFile(privPath, raw, 0o600))

	_, err = p.LoadPrivateKey(privPath)
	require.Error(t, err)
}

func TestLoadPublicKey_CertificateFallback(t *testing.T) {
	home := t.TempDir()
	kp := makeKeyPair(t)
	priv, err := crypto.ParsePrivateKey(kp.PrivateKey)
	require.NoError(t, err)

	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "charger"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &priv.PublicKey, priv)
	require.NoError(t, err)
	path := filepath.Join(home, "charger.crt")
	require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}), 0o600))

	pub, err := store.NewPEMProvider(home).LoadPublicKey(path)
	require.NoError(t, err)
	require.Equal(t, kp.PublicKey, pub)
}

func TestLoadPrivateKey_SEC1WithParameters(t *testing.T) {
	home := t.TempDir()
	kp := makeKeyPair(t)
	priv, err := crypto.ParsePrivateKey(kp.PrivateKey)
	require.NoError(t, err)
	sec1, err := x509.MarshalECPrivateKey(priv)
	require.NoError(t, err)

	// openssl ecparam -genkey emits an EC PARAMETERS block first.
	content := append(
		pem.EncodeToMemory(&pem.Block{Type: "EC PARAMETERS", Bytes: []byte{0x06, 0x08, 0x2a, 0x86, 0x48, 0xce, 0x3d, 0x03, 0x01, 0x07}}),
		pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: sec1})...,
	)
	path := filepath.Join(home, "legacy.key")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	got, err := store.NewPEMProvider(home).LoadPrivateKey(path)
	require.NoError(t, err)
	requireSamePrivateKey(t, kp.PrivateKey, got)
	_, err = x509.ParsePKCS8PrivateKey(got)
	require.NoError(t, err)
}

func TestLoad_Errors(t *testing.T) {
	home := t.TempDir()
	p := store.NewPEMProvider(home)
	junk := filepath.Join(home, "junk.pem")
	require.NoError(t, os.WriteFile(junk, []byte("not pem at all"), 0o600))
	wrongType := filepath.Join(home, "wrong.pem")
	require.NoError(t, os.WriteFile(wrongType, pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: []byte{1, 2, 3}}), 0o600))

	cases := map[string]func() error{
		"missing public":  func() error { _, err := p.LoadPublicKey("nope.pem"); return err },
		"missing private": func() error { _, err := p.LoadPrivateKey("nope.key"); return err },
		"junk public":     func() error { _, err := p.LoadPublicKey(junk); return err },
		"junk private":    func() error { _, err := p.LoadPrivateKey(junk); return err },
		"bad der":         func() error { _, err := p.LoadPublicKey(wrongType); return err },
	}
	for name, load := range cases {
		t.Run(name, func(t *testing.T) {
			require.ErrorIs(t, load(), domain.ErrConfiguration)
		})
	}
}

func TestSaveKeyPair_RejectsBadInput(t *testing.T) {
	p := store.NewPEMProvider(t.TempDir())
	kp := makeKeyPair(t)

	_, _, err := p.SaveKeyPair("../escape", kp)
	require.ErrorIs(t, err, domain.ErrConfiguration)
	_, _, err = p.SaveKeyPair("", kp)
	require.ErrorIs(t, err, domain.ErrConfiguration)
	_, _, err = p.SaveKeyPair("bad", domain.KeyPair{PublicKey: kp.PublicKey, PrivateKey: []byte("x")})
	require.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestSaveKeyPair_Overwrites(t *testing.T) {
	home := t.TempDir()
	p := store.NewPEMProvider(home)
	first, second := makeKeyPair(t), makeKeyPair(t)

	_, _, err := p.SaveKeyPair("keco", first)
	require.NoError(t, err)
	pubPath, _, err := p.SaveKeyPair("keco", second)
	require.NoError(t, err)

	pub, err := p.LoadPublicKey(pubPath)
	require.NoError(t, err)
	require.Equal(t, second.PublicKey, pub)

	entries, err := os.ReadDir(home)
	require.NoError(t, err)
	require.Len(t, entries, 2, "no temp files left behind")
}

func writeSealed(t *testing.T, path string, n, r, p, saltLen int) {
	t.Helper()
	b, err := json.Marshal(map[string]any{
		"format":   "autocrypt-sealed-key",
		"v":        1,
		"salt":     bytes.Repeat([]byte{1}, saltLen),
		"scrypt_N": n,
		"scrypt_r": r,
		"scrypt_p": p,
		"nonce":    make([]byte, 12),
		"cipher":   make([]byte, 64),
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
}

func TestLoadSealed_RejectsCostlyParams(t *testing.T) {
	cases := map[string][4]int{
		"huge p":           {1 << 10, 8, 2048, 16},
		"huge N":           {1 << 30, 8, 1, 16},
		"huge r":           {1 << 10, 1 << 20, 1, 16},
		"N not power of 2": {1000, 8, 1, 16},
		"zero p":           {1 << 10, 8, 0, 16},
		"short salt":       {1 << 10, 8, 1, 4},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			home := t.TempDir()
			path := filepath.Join(home, "planted.key")
			writeSealed(t, path, c[0], c[1], c[2], c[3])

			started := time.Now()
			_, err := store.NewPEMProvider(home, store.WithPassphrase("pw")).LoadPrivateKey(path)

			require.ErrorIs(t, err, domain.ErrConfiguration)
			require.ErrorIs(t, err, store.ErrScryptParams)
			require.Less(t, time.Since(started), time.Second)
		})
	}
}

func TestLoadSealed_AcceptsBoundaryParams(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, "ok.key")
	writeSealed(t, path, 1<<10, 8, 1, 16)

	// Parameters pass; the bogus ciphertext then fails authentication.
	_, err := store.NewPEMProvider(home, store.WithPassphrase("pw")).LoadPrivateKey(path)
	require.ErrorIs(t, err, store.ErrWrongPassphrase)
}

func TestSaveKeyPair_RejectsBadScryptParams(t *testing.T) {
	p := store.NewPEMProvider(t.TempDir(), store.WithPassphrase("pw"), store.WithScryptParams(store.ScryptParams{N: 3, R: 8, P: 1}))

	_, _, err := p.SaveKeyPair("keco", makeKeyPair(t))
	require.ErrorIs(t, err, domain.ErrConfiguration)
	require.ErrorIs(t, err, store.ErrScryptParams)
}
