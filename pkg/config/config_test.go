package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localpulse/pulse/pkg/errors"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, DefaultSuggestLimit, cfg.SuggestLimit)
	assert.Equal(t, DefaultSuggestTolerance, cfg.SuggestTolerance)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PULSE_LOG_LEVEL", "debug")
	t.Setenv("PULSE_SUGGEST_LIMIT", "8")
	t.Setenv("PULSE_SUGGEST_TOLERANCE", "0.25")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 8, cfg.SuggestLimit)
	assert.Equal(t, 0.25, cfg.SuggestTolerance)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("PULSE_SUGGEST_LIMIT", "0")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestValidateTolerance(t *testing.T) {
	cfg := &Config{SuggestLimit: 5, SuggestTolerance: 1.5}
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))

	cfg.SuggestTolerance = 1.0
	assert.NoError(t, cfg.Validate())
}
