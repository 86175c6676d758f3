package clientcli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

var validate = validator.New()

// Config holds the persisted client configuration: the store URL and the
// bearer token saved by login. It is constructed once at process entry and
// passed explicitly to whatever needs it.
type Config struct {
	URL   string `mapstructure:"nbox_url" validate:"omitempty,http_url"`
	Token string `mapstructure:"nbox_token"`
}

// Validate checks that the URL, when set, is a well-formed http(s) URL.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Save writes the config to path as KEY=VALUE lines, overwriting the file
// wholesale. Empty fields are omitted. The parent directory is created if
// needed.
func (c *Config) Save(path string) error {
	cleanPath := filepath.Clean(path)

	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	var b strings.Builder
	if c.URL != "" {
		fmt.Fprintf(&b, "NBOX_URL=%s\n", c.URL)
	}
	if c.Token != "" {
		fmt.Fprintf(&b, "NBOX_TOKEN=%s\n", c.Token)
	}

	if err := os.WriteFile(cleanPath, []byte(b.String()), 0o600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// LoadConfig reads the credentials file at path and applies NBOX_URL and
// NBOX_TOKEN environment variables on top. A missing file is not an error;
// it just yields whatever the environment provides.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(filepath.Clean(path))
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Real environment variables win over file values.
	_ = v.BindEnv("nbox_url", "NBOX_URL")
	_ = v.BindEnv("nbox_token", "NBOX_TOKEN")

	cfg := &Config{
		URL:   strings.TrimSuffix(v.GetString("nbox_url"), "/"),
		Token: v.GetString("nbox_token"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DefaultConfigPath returns the default credentials file path
// (~/.config/nboxcli/credentials).
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "nboxcli", "credentials")
}
