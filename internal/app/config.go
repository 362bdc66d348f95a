package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"autocrypt/internal/domain"
)

const (
	// ConfigFileName is looked up in the home directory when no path is given.
	ConfigFileName = "config.toml"

	envHome     = "AUTOCRYPT_HOME"
	envLogLevel = "AUTOCRYPT_LOG_LEVEL"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home          string     `toml:"home"`           // key directory, e.g. $HOME/.autocrypt
	LogLevel      string     `toml:"log_level"`      // debug, info, warn, error
	Padding       string     `toml:"padding"`        // pkcs7 or custom
	PassphraseEnv string     `toml:"passphrase_env"` // env var holding the key file passphrase
	Keys          KeysConfig `toml:"keys"`
}

// KeysConfig names default key files. Relative paths are resolved against Home.
type KeysConfig struct {
	Public string `toml:"public"` // default for the fingerprint command
}

// DefaultHome returns $HOME/.autocrypt.
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".autocrypt"
	}
	return filepath.Join(home, ".autocrypt")
}

// Default returns a Config with sensible default values.
func Default() Config {
	return Config{
		Home:          DefaultHome(),
		LogLevel:      "info",
		Padding:       domain.PaddingCustom.String(),
		PassphraseEnv: "AUTOCRYPT_PASSPHRASE",
	}
}

// LoadConfig reads the TOML file at path over the defaults. An empty path
// means <home>/config.toml, and a missing default file is not an error.
// Environment overrides are applied last, then the result is validated.
func LoadConfig(path string) (Config, error) {
	return load(path, "")
}

// LoadConfigHome is LoadConfig("") with home in place of the default home.
func LoadConfigHome(home string) (Config, error) {
	return load("", home)
}

func load(path, home string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		if v := os.Getenv(envHome); v != "" {
			cfg.Home = v
		}
		if home != "" {
			cfg.Home = home
		}
		path = filepath.Join(cfg.Home, ConfigFileName)
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	cfg.ApplyEnvOverrides()
	if home != "" {
		cfg.Home = home
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyEnvOverrides lets AUTOCRYPT_HOME and AUTOCRYPT_LOG_LEVEL win over the file.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv(envHome); v != "" {
		c.Home = v
	}
	if v := os.Getenv(envLogLevel); v != "" {
		c.LogLevel = v
	}
}

// SetDefaults fills in any missing values with defaults.
func (c *Config) SetDefaults() {
	d := Default()
	if c.Home == "" {
		c.Home = d.Home
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.Padding == "" {
		c.Padding = d.Padding
	}
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	if _, err := domain.ParsePadding(c.Padding); err != nil {
		errs = append(errs, fmt.Errorf("padding: %w", err))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log_level: invalid level %q, must be one of: debug, info, warn, error", c.LogLevel))
	}
	if strings.ContainsAny(c.PassphraseEnv, "= ") {
		errs = append(errs, fmt.Errorf("passphrase_env: invalid variable name %q", c.PassphraseEnv))
	}
	return errors.Join(errs...)
}

// PaddingScheme returns the parsed padding. Call after Validate.
func (c Config) PaddingScheme() domain.Padding {
	p, _ := domain.ParsePadding(c.Padding)
	return p
}

// Passphrase returns the value of the configured passphrase variable, if any.
func (c Config) Passphrase() string {
	if c.PassphraseEnv == "" {
		return ""
	}
	return os.Getenv(c.PassphraseEnv)
}
