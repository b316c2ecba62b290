package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Provider:         ProviderGoogleAI,
		ModelName:        "gemini-2.5-flash",
		MaxToolRounds:    5,
		MaxHistoryTurns:  10,
		ResearchMaxLinks: 5,
		Port:             3978,
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, validConfig().Validate())
	})

	t.Run("nil config", func(t *testing.T) {
		t.Parallel()
		var cfg *Config
		assert.ErrorIs(t, cfg.Validate(), ErrConfigNil)
	})

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"unknown provider", func(c *Config) { c.Provider = "bedrock" }, ErrInvalidProvider},
		{"empty model name", func(c *Config) { c.ModelName = "" }, ErrInvalidModelName},
		{"zero tool rounds", func(c *Config) { c.MaxToolRounds = 0 }, ErrInvalidMaxToolRounds},
		{"excessive tool rounds", func(c *Config) { c.MaxToolRounds = 100 }, ErrInvalidMaxToolRounds},
		{"zero history turns", func(c *Config) { c.MaxHistoryTurns = 0 }, ErrInvalidMaxHistoryTurns},
		{"excessive history turns", func(c *Config) { c.MaxHistoryTurns = 5000 }, ErrInvalidMaxHistoryTurns},
		{"zero research links", func(c *Config) { c.ResearchMaxLinks = 0 }, ErrInvalidResearchMaxLinks},
		{"port too low", func(c *Config) { c.Port = 0 }, ErrInvalidPort},
		{"port too high", func(c *Config) { c.Port = 70000 }, ErrInvalidPort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ProviderGoogleAI, cfg.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.ModelName)
	assert.Equal(t, 5, cfg.MaxToolRounds)
	assert.Equal(t, 10, cfg.MaxHistoryTurns)
	assert.Equal(t, 5, cfg.ResearchMaxLinks)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "parley", cfg.ServiceName)
	assert.Equal(t, 3978, cfg.Port)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PARLEY_MODEL_NAME", "gemini-2.5-pro")
	t.Setenv("PARLEY_MAX_TOOL_ROUNDS", "8")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.5-pro", cfg.ModelName)
	assert.Equal(t, 8, cfg.MaxToolRounds)
}
