// Package config loads the CLI configuration from
// ~/.config/fetchcache/config.toml. The core cache takes an explicit
// Options struct; this file only feeds the command-line defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/dustin/go-humanize"
)

// Config holds the fetchcache CLI configuration.
type Config struct {
	// Dir is the cache directory. Empty disables persistence.
	Dir string `toml:"dir"`
	// MaxSize is the persisted-size cap, humanize-parseable ("50MB").
	MaxSize string `toml:"max_size"`
	// MaxAgeDays is the persisted-age cap in days.
	MaxAgeDays int `toml:"max_age_days"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Dir:        defaultDir(),
		MaxSize:    "50MB",
		MaxAgeDays: 30,
	}
}

// Load reads the config file, layering it over Default(). A missing file is
// not an error; a malformed one is. The path can be overridden with the
// FETCHCACHE_CONFIG env variable (useful in tests).
func Load() (Config, error) {
	path := os.Getenv("FETCHCACHE_CONFIG")
	if path == "" {
		var err error
		if path, err = configPath(); err != nil {
			return Default(), err
		}
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Default(), fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// MaxBytes parses the MaxSize field.
func (c Config) MaxBytes() (int64, error) {
	n, err := humanize.ParseBytes(c.MaxSize)
	if err != nil {
		return 0, fmt.Errorf("config: max_size %q: %w", c.MaxSize, err)
	}
	return int64(n), nil
}

// MaxAge converts the day cap to a duration.
func (c Config) MaxAge() time.Duration {
	return time.Duration(c.MaxAgeDays) * 24 * time.Hour
}

// configPath returns the path to the config file.
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "fetchcache", "config.toml"), nil
}

// defaultDir places the cache under the user cache directory, falling back
// to a temp-dir subdirectory when none is known.
func defaultDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "fetchcache")
}
