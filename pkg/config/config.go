// Package config loads runtime settings from the environment. Values come
// from PULSE_-prefixed environment variables, with a best-effort .env load
// for local development.
package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/localpulse/pulse/pkg/errors"
)

// Defaults applied when the environment does not override them.
const (
	DefaultSuggestLimit     = 5
	DefaultSuggestTolerance = 0.4
)

// Config holds the runtime settings for a catalog instance.
type Config struct {
	LogLevel         string  `mapstructure:"log_level"`
	LogFormat        string  `mapstructure:"log_format"`
	SuggestLimit     int     `mapstructure:"suggest_limit"`
	SuggestTolerance float64 `mapstructure:"suggest_tolerance"`
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first if present; real environment variables win.
func Load() (*Config, error) {
	// Missing .env is the normal case outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("PULSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded values for out-of-range settings.
func (c *Config) Validate() error {
	if c.SuggestLimit < 1 {
		return errors.NewValidationError("suggest_limit", c.SuggestLimit, "must be at least 1")
	}
	if c.SuggestTolerance <= 0 || c.SuggestTolerance > 1 {
		return errors.NewValidationError("suggest_tolerance", c.SuggestTolerance, "must be in (0, 1]")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("suggest_limit", DefaultSuggestLimit)
	v.SetDefault("suggest_tolerance", DefaultSuggestTolerance)
}
