// Package config handles CLI configuration loading and management.
package config

import (
	"os"
	"path/filepath"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the CLI configuration.
type Config struct {
	// DefaultModel is used when the --model flag is absent.
	DefaultModel string `yaml:"default_model"`

	// BaseURL overrides the production API endpoint.
	BaseURL string `yaml:"base_url,omitempty"`

	// RequestsPerMinute enables client-side rate limiting when positive.
	RequestsPerMinute int `yaml:"requests_per_minute,omitempty"`

	// TimeoutSeconds is the per-request timeout. Zero uses the SDK default.
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"`

	// MaxRetries overrides the retry budget when non-nil.
	MaxRetries *int `yaml:"max_retries,omitempty"`
}

// Timeout returns the configured timeout as a duration, zero when unset.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// DefaultConfigPath returns the default configuration file path for the
// current platform.
// - macOS/Linux: ~/.rainy/config.yaml
// - Windows: %USERPROFILE%\.rainy\config.yaml
func DefaultConfigPath() string {
	var homeDir string

	if runtime.GOOS == "windows" {
		homeDir = os.Getenv("USERPROFILE")
	} else {
		homeDir = os.Getenv("HOME")
	}

	if homeDir == "" {
		// Fallback to current directory
		return "config.yaml"
	}

	return filepath.Join(homeDir, ".rainy", "config.yaml")
}

// LoadConfig loads configuration from the specified path.
// If the file doesn't exist, returns an empty config without error.
// Returns an error only if the file exists but cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Missing config file is not an error
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the specified path, creating the
// directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}
