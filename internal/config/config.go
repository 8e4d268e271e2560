// Package config handles XDG configuration directory, file paths and
// runtime settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// AppName is the application directory name.
	AppName = "todotour"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// LogFile is the default log filename.
	LogFile = "todotour.log"

	// IdleEnv overrides the default idle period.
	IdleEnv = "TODOTOUR_IDLE"

	// DefaultIdlePeriod is how long typing must pause before it counts as done.
	DefaultIdlePeriod = 2 * time.Second
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// IdlePeriod is the debounce quiet period for both text inputs.
	IdlePeriod time.Duration

	// LogPath is the JSON log file. Empty disables file logging.
	LogPath string
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/todotour or $HOME/.config/todotour.
// The idle period comes from TODOTOUR_IDLE when set.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}

	idle := DefaultIdlePeriod
	if v := os.Getenv(IdleEnv); v != "" {
		d, err := ParseIdle(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", IdleEnv, err)
		}
		idle = d
	}

	return &Config{
		Dir:        dir,
		IdlePeriod: idle,
		LogPath:    filepath.Join(dir, LogFile),
	}, nil
}

// ParseIdle parses a positive duration such as "2s" or "1500ms".
func ParseIdle(v string) (time.Duration, error) {
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid idle period: %s", v)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid idle period: %s", v)
	}
	return d, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
