// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EduGuard Contributors

// Package config loads CLI configuration from the eduguard config file
// with command-line flag overrides.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/eduguard/eduguard-go/internal/xdg"
)

// Defaults.
const (
	DefaultBaseURL   = "http://localhost:8000"
	DefaultTimeout   = 10 * time.Second
	DefaultLogFormat = "text"

	// FileName is the config file looked up under the XDG config dir.
	FileName = "config.yaml"
)

// Config is the resolved CLI configuration.
type Config struct {
	API APIConfig `koanf:"api"`
	Log LogConfig `koanf:"log"`
}

// APIConfig configures the authentication API client.
type APIConfig struct {
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout"`
}

// LogConfig configures logging.
type LogConfig struct {
	Format string `koanf:"format"`
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return oops.Code("CONFIG_INVALID").Errorf("api.base_url must not be empty")
	}
	if c.API.Timeout <= 0 {
		return oops.Code("CONFIG_INVALID").Errorf("api.timeout must be positive")
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		return oops.Code("CONFIG_INVALID").
			Errorf("log.format must be 'json' or 'text', got %q", c.Log.Format)
	}
	return nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
			Timeout: DefaultTimeout,
		},
		Log: LogConfig{
			Format: DefaultLogFormat,
		},
	}
}

// flagKeys maps command-line flag names onto config keys. Unlisted
// flags do not participate in config resolution.
var flagKeys = map[string]string{
	"api-url":     "api.base_url",
	"api-timeout": "api.timeout",
	"log-format":  "log.format",
}

// Load resolves the configuration: defaults, then the config file at
// path (or the XDG default location when path is empty; a missing file
// is fine), then any changed flags from flags.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	if path == "" {
		dir, err := xdg.ConfigDir()
		if err != nil {
			return nil, oops.Code("CONFIG_LOAD_FAILED").
				With("operation", "resolve config dir").
				Wrap(err)
		}
		path = filepath.Join(dir, FileName)
	}

	k := koanf.New(".")

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, oops.Code("CONFIG_LOAD_FAILED").
				With("path", path).
				Wrap(err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, oops.Code("CONFIG_LOAD_FAILED").
			With("path", path).
			Wrap(err)
	}

	if flags != nil {
		provider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return nil, oops.Code("CONFIG_LOAD_FAILED").
				With("operation", "apply flags").
				Wrap(err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.Code("CONFIG_LOAD_FAILED").
			With("operation", "unmarshal").
			Wrap(err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
