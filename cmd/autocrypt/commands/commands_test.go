package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"autocrypt/internal/crypto"
	"autocrypt/internal/domain"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("AUTOCRYPT_PASSPHRASE", "")
	t.Setenv("AUTOCRYPT_LOG_LEVEL", "")
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestKeygenAndFingerprint(t *testing.T) {
	home := t.TempDir()

	out, err := run(t, "--home", home, "keygen", "keco")
	require.NoError(t, err)
	require.Contains(t, out, "Identity created.")
	require.FileExists(t, filepath.Join(home, "keco.pem"))
	require.FileExists(t, filepath.Join(home, "keco.key"))

	fp := strings.TrimSpace(strings.TrimPrefix(strings.Split(out, "\n")[1], "Fingerprint:"))
	out, err = run(t, "--home", home, "fingerprint", "keco.pem")
	require.NoError(t, err)
	require.Contains(t, out, fp)
}

func TestKeygen_RejectsWeakPassphrase(t *testing.T) {
	home := t.TempDir()
	cfg := filepath.Join(home, "config.toml")
	require.NoError(t, os.WriteFile(cfg, []byte(`passphrase_env = "DEMO_WEAK_PASS"`), 0o600))

	t.Setenv("DEMO_WEAK_PASS", "weak")
	_, err := run(t, "--config", cfg, "--home", home, "keygen", "keco")
	require.Error(t, err)
}

func TestKDFVector(t *testing.T) {
	out, err := run(t, "--home", t.TempDir(), "kdf", strings.Repeat("00", 32))
	require.NoError(t, err)
	require.Contains(t, out, "enc_key: 1EB266FB675223D2B6AFD1FF858E7055")
	require.Contains(t, out, "mac_key: 7C6702B1C5D7BBD4F30D5C61EA39F8B7D9E442475E7A2AF58E3D238A1CA8B9AF")
}

func TestKDF_BadInput(t *testing.T) {
	_, err := run(t, "--home", t.TempDir(), "kdf", "zz")
	require.Error(t, err)
	_, err = run(t, "--home", t.TempDir(), "kdf", "")
	require.Error(t, err)
}

func TestDemo(t *testing.T) {
	for _, pad := range []string{"custom", "pkcs7"} {
		t.Run(pad, func(t *testing.T) {
			home := t.TempDir()
			out, err := run(t, "--home", home, "--padding", pad, "demo", "--show-keys")
			require.NoError(t, err)
			require.Contains(t, out, "plaintext:  0000000000000000")
			require.Contains(t, out, "enc_key:")
			require.True(t, strings.HasSuffix(out, "OK\n"))
			require.FileExists(t, filepath.Join(home, "charger.key"))

			// A second run reuses the stored identities.
			_, err = run(t, "--home", home, "--padding", pad, "demo", "--payload", "deadbeef")
			require.NoError(t, err)
		})
	}
}

func TestBench(t *testing.T) {
	out, err := run(t, "--home", t.TempDir(), "bench", "-w", "2", "-d", "200ms")
	require.NoError(t, err)
	require.Contains(t, out, "handshake")
	require.Contains(t, out, "seal+open")
}

func TestInvalidPaddingFlag(t *testing.T) {
	_, err := run(t, "--home", t.TempDir(), "--padding", "zero", "kdf", "00")
	require.Error(t, err)
}

func TestFingerprint_DefaultsToConfiguredKey(t *testing.T) {
	home := t.TempDir()
	_, err := run(t, "--home", home, "keygen", "charger")
	require.NoError(t, err)
	cfg := filepath.Join(home, "config.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("[keys]\npublic = \"charger.pem\"\n"), 0o600))

	out, err := run(t, "--config", cfg, "--home", home, "fingerprint")
	require.NoError(t, err)
	require.Contains(t, out, "Fingerprint: ")

	// <home>/config.toml is picked up without --config.
	again, err := run(t, "--home", home, "fingerprint")
	require.NoError(t, err)
	require.Equal(t, out, again)

	_, err = run(t, "--home", t.TempDir(), "fingerprint")
	require.Error(t, err)
}

func TestBenchRound_WipesSessions(t *testing.T) {
	keco, err := crypto.GenerateKeyPair()
	require.NoError(t, err)
	charger, err := crypto.GenerateKeyPair()
	require.NoError(t, err)
	var st benchStats

	require.NoError(t, benchRound(keco, charger, make([]byte, 16), make([]byte, 8), domain.PaddingCustom, &st))
	require.Equal(t, 1, st.handshakes)
	require.Equal(t, 1, st.messages)

	// A bad peer key fails the round without leaking a half-built handshake.
	err = benchRound(keco, domain.KeyPair{PublicKey: []byte("junk"), PrivateKey: charger.PrivateKey}, make([]byte, 16), nil, domain.PaddingCustom, &st)
	require.ErrorIs(t, err, domain.ErrConfiguration)
	require.Equal(t, 1, st.handshakes)
}
