// Package config provides application configuration management with
// multi-source priority.
//
// Configuration sources (highest to lowest priority):
//  1. Environment variables (runtime override)
//  2. Config file (~/.parley/config.yaml)
//  3. Default values
//
// Error Handling:
//   - Uses sentinel errors for Go-idiomatic error checking with errors.Is()
//   - Wrap with context using fmt.Errorf("%w: details", ErrXxx)
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

var (
	// ErrConfigNil indicates the configuration is nil.
	ErrConfigNil = errors.New("configuration is nil")

	// ErrInvalidProvider indicates the AI provider is not supported.
	ErrInvalidProvider = errors.New("invalid provider")

	// ErrInvalidModelName indicates the model name is invalid.
	ErrInvalidModelName = errors.New("invalid model name")

	// ErrInvalidMaxToolRounds indicates the tool-round limit is out of range.
	ErrInvalidMaxToolRounds = errors.New("invalid max tool rounds")

	// ErrInvalidMaxHistoryTurns indicates the history bound is out of range.
	ErrInvalidMaxHistoryTurns = errors.New("invalid max history turns")

	// ErrInvalidPort indicates the serve port is out of range.
	ErrInvalidPort = errors.New("invalid port")

	// ErrInvalidResearchMaxLinks indicates the research link cap is out of range.
	ErrInvalidResearchMaxLinks = errors.New("invalid research max links")
)

// AI provider identifiers used in Config.Provider.
const (
	ProviderGoogleAI = "googleai"
	ProviderOllama   = "ollama"
)

// Limits enforced by Validate.
const (
	MaxAllowedToolRounds   = 25
	MaxAllowedHistoryTurns = 1000
	MaxAllowedResearchLink = 50
)

// Config stores application configuration.
type Config struct {
	// AI provider and model configuration
	Provider  string `mapstructure:"provider" json:"provider"`
	ModelName string `mapstructure:"model_name" json:"model_name"`

	// Agent behavior
	SystemPrompt    string `mapstructure:"system_prompt" json:"system_prompt"`
	MaxToolRounds   int    `mapstructure:"max_tool_rounds" json:"max_tool_rounds"`
	MaxHistoryTurns int    `mapstructure:"max_history_turns" json:"max_history_turns"`
	KeepSystemTurns bool   `mapstructure:"keep_system_turns" json:"keep_system_turns"`

	// Research tool configuration
	ResearchTimeoutMS int `mapstructure:"research_timeout_ms" json:"research_timeout_ms"`
	ResearchMaxLinks  int `mapstructure:"research_max_links" json:"research_max_links"`

	// Logging
	LogLevel string `mapstructure:"log_level" json:"log_level"`
	LogJSON  bool   `mapstructure:"log_json" json:"log_json"`

	// Observability
	OTLPEndpoint string `mapstructure:"otlp_endpoint" json:"otlp_endpoint"`
	ServiceName  string `mapstructure:"service_name" json:"service_name"`
	Environment  string `mapstructure:"environment" json:"environment"`

	// Serve mode
	Port int `mapstructure:"port" json:"port"`
}

// Load loads configuration.
// Priority: Environment variables > Configuration file > Default values
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting user home directory: %w", err)
	}

	configDir := filepath.Join(home, ".parley")
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	setDefaults(v)
	bindEnvVariables(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is not an error, defaults apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("configuration file not found, using default values",
			"search_paths", []string{configDir, "."},
			"config_name", "config.yaml")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets all default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("provider", ProviderGoogleAI)
	v.SetDefault("model_name", "gemini-2.5-flash")

	v.SetDefault("system_prompt",
		"You are a helpful assistant. Use the available tools when they help answer the question.")
	v.SetDefault("max_tool_rounds", 5)
	v.SetDefault("max_history_turns", 10)
	v.SetDefault("keep_system_turns", false)

	v.SetDefault("research_timeout_ms", 15000)
	v.SetDefault("research_max_links", 5)

	v.SetDefault("log_level", "info")
	v.SetDefault("log_json", false)

	v.SetDefault("otlp_endpoint", "")
	v.SetDefault("service_name", "parley")
	v.SetDefault("environment", "dev")

	v.SetDefault("port", 3978)
}

// bindEnvVariables binds runtime overrides explicitly.
//
// NOTE: GEMINI_API_KEY is read directly by the Genkit plugin, not via Viper.
func bindEnvVariables(v *viper.Viper) {
	// Hardcoded keys cannot fail to bind; a panic here is a bug.
	mustBind := func(key, envVar string) {
		if err := v.BindEnv(key, envVar); err != nil {
			panic(fmt.Sprintf("BUG: failed to bind %q to %q: %v", key, envVar, err))
		}
	}

	mustBind("provider", "PARLEY_PROVIDER")
	mustBind("model_name", "PARLEY_MODEL_NAME")
	mustBind("system_prompt", "PARLEY_SYSTEM_PROMPT")
	mustBind("max_tool_rounds", "PARLEY_MAX_TOOL_ROUNDS")
	mustBind("max_history_turns", "PARLEY_MAX_HISTORY_TURNS")
	mustBind("log_level", "PARLEY_LOG_LEVEL")
	mustBind("log_json", "PARLEY_LOG_JSON")
	mustBind("otlp_endpoint", "PARLEY_OTLP_ENDPOINT")
	mustBind("environment", "PARLEY_ENVIRONMENT")
	mustBind("port", "PARLEY_PORT")
}
