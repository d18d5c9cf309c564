// Package config resolves the runtime settings for the punchclock store.
//
// Values are resolved through a priority chain, lowest to highest:
// hardcoded defaults, environment variables, the TOML secrets file. The
// secrets file wins so deployments can override a leaked or stale
// environment without rebuilding.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"punchclock/internal/timex"
)

// Config holds everything the store and service layers need to reach the
// remote repository.
//
// Token is a bearer credential with write scope on the repository; it is
// required, there is no anonymous mode.
type Config struct {
	Owner       string `validate:"required"`
	Repo        string `validate:"required"`
	Path        string `validate:"required"`
	Branch      string `validate:"required"`
	Token       string `validate:"required"`
	Timezone    string
	AllowFuture bool
}

// LoadDefaults populates c with the built-in defaults.
func (c *Config) LoadDefaults() {
	c.Path = "pontos.json"
	c.Branch = "main"
	c.Timezone = timex.DefaultZoneName
	c.AllowFuture = false
}

var validate = validator.New()

// Validate checks required fields and that Timezone names a loadable zone.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := timex.LoadZone(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return nil
}

// Load constructs a Config, applies defaults, then overlays values from the
// environment and the secrets file. Later sources take precedence over
// earlier ones.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	if err := parseSecrets(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
