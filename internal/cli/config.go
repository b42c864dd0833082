package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
)

const (
	defaultAPIURL  = "http://localhost:3000"
	defaultTimeout = 10 * time.Second
)

// Config is the CLI's persisted configuration. VoterID is generated on
// first use and kept stable so vote idempotence works across runs.
type Config struct {
	APIURL  string `toml:"api_url"`
	Timeout string `toml:"timeout"`
	VoterID string `toml:"voter_id"`
	DataDir string `toml:"data_dir"`
}

// timeout parses the configured request timeout, falling back to the
// default when the value is absent or malformed.
func (c Config) timeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return defaultTimeout
	}
	return d
}

// defaultConfigDir returns ~/.sitetrust, creating nothing.
func defaultConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".sitetrust"), nil
}

// loadConfig reads the TOML config at path, fills defaults, and writes
// the file back when it was missing or had no voter id yet.
func loadConfig(path string) (Config, error) {
	if path == "" {
		dir, err := defaultConfigDir()
		if err != nil {
			return Config{}, err
		}
		path = filepath.Join(dir, "config.toml")
	}

	cfg := Config{
		APIURL:  defaultAPIURL,
		Timeout: defaultTimeout.String(),
		DataDir: filepath.Dir(path),
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// first run, keep defaults
	case err != nil:
		return Config{}, fmt.Errorf("reading config: %w", err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config: %w", err)
		}
	}

	if cfg.VoterID == "" {
		cfg.VoterID = uuid.NewString()
		if err := saveConfig(path, cfg); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

func saveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
