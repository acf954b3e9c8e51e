// Package config handles reading and writing ~/.hueful/config.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level structure for config.yaml.
type Config struct {
	Version int           `yaml:"version"`
	API     APIConfig     `yaml:"api"`
	Session SessionConfig `yaml:"session"`
	Storage StorageConfig `yaml:"storage"`
}

// APIConfig describes how to reach the palette backend.
type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	AnalysisMethod string `yaml:"analysis_method"` // "hybrid" | "textblob" | "vader"
	Timeout        int    `yaml:"timeout"`         // seconds, 0 = wait forever
	GalleryLimit   int    `yaml:"gallery_limit"`
}

// SessionConfig controls client-side session policy.
type SessionConfig struct {
	// CheckExpiry rejects an expired JWT before sending it. The server's 401
	// remains authoritative either way.
	CheckExpiry bool `yaml:"check_expiry"`
}

// StorageConfig locates the persistent session database.
type StorageConfig struct {
	Path string `yaml:"path"` // empty = <home>/session.db
}

// Environment variables recognised by Apply.
const (
	EnvAPIURL  = "HUEFUL_API_URL"
	EnvHome    = "HUEFUL_HOME"
	EnvMethod  = "HUEFUL_ANALYSIS_METHOD"
	EnvTimeout = "HUEFUL_TIMEOUT"
)

const (
	configDir  = ".hueful"
	configFile = "config.yaml"
)

// DefaultBaseURL is the backend address used when nothing else is configured.
const DefaultBaseURL = "http://localhost:8000"

// HomeDir returns the directory holding config, session database and log.
// HUEFUL_HOME wins over the user's home directory.
func HomeDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(EnvHome)); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(home, configDir), nil
}

// ReadConfig reads config.yaml from dir (the hueful home, not its parent).
// Returns an error if the file is not found or YAML is malformed.
func ReadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, configFile)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Load reads the config in dir, falling back to defaults when the file is
// missing, then applies environment overrides.
func Load(dir string) (*Config, error) {
	cfg, err := ReadConfig(dir)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cfg = DefaultConfig()
	}
	if err := cfg.Apply(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WriteConfig writes cfg to config.yaml in dir, creating dir if needed.
func WriteConfig(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	path := filepath.Join(dir, configFile)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		API: APIConfig{
			BaseURL:        DefaultBaseURL,
			AnalysisMethod: "hybrid",
			Timeout:        0,
			GalleryLimit:   50,
		},
		Session: SessionConfig{
			CheckExpiry: false,
		},
	}
}

// Apply overlays environment variables onto cfg. lookup is os.LookupEnv in
// production and a map in tests.
func (c *Config) Apply(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvAPIURL); ok && strings.TrimSpace(v) != "" {
		c.API.BaseURL = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvMethod); ok && strings.TrimSpace(v) != "" {
		c.API.AnalysisMethod = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvTimeout); ok && strings.TrimSpace(v) != "" {
		secs, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || secs < 0 {
			return fmt.Errorf("invalid %s value %q", EnvTimeout, v)
		}
		c.API.Timeout = secs
	}
	c.API.BaseURL = strings.TrimRight(c.API.BaseURL, "/")
	return nil
}

// RequestTimeout converts the configured seconds to a duration.
func (c APIConfig) RequestTimeout() time.Duration {
	if c.Timeout <= 0 {
		return 0
	}
	return time.Duration(c.Timeout) * time.Second
}

// StoragePath resolves where the session database lives.
func (c *Config) StoragePath(home string) string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	return filepath.Join(home, "session.db")
}

// ExportsDir is where the TUI saves palette images.
func ExportsDir(home string) string {
	return filepath.Join(home, "exports")
}
