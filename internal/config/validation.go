package config

import (
	"fmt"
	"slices"
)

// Validate validates configuration values.
// Returns sentinel errors that can be checked with errors.Is().
func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigNil
	}

	validProviders := []string{ProviderGoogleAI, ProviderOllama}
	if !slices.Contains(validProviders, c.Provider) {
		return fmt.Errorf("%w: %q is not valid, must be one of: %v",
			ErrInvalidProvider, c.Provider, validProviders)
	}

	if c.ModelName == "" {
		return fmt.Errorf("%w: model_name cannot be empty", ErrInvalidModelName)
	}

	if c.MaxToolRounds < 1 || c.MaxToolRounds > MaxAllowedToolRounds {
		return fmt.Errorf("%w: must be between 1 and %d, got %d",
			ErrInvalidMaxToolRounds, MaxAllowedToolRounds, c.MaxToolRounds)
	}

	if c.MaxHistoryTurns < 1 || c.MaxHistoryTurns > MaxAllowedHistoryTurns {
		return fmt.Errorf("%w: must be between 1 and %d, got %d",
			ErrInvalidMaxHistoryTurns, MaxAllowedHistoryTurns, c.MaxHistoryTurns)
	}

	if c.ResearchMaxLinks < 1 || c.ResearchMaxLinks > MaxAllowedResearchLink {
		return fmt.Errorf("%w: must be between 1 and %d, got %d",
			ErrInvalidResearchMaxLinks, MaxAllowedResearchLink, c.ResearchMaxLinks)
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: must be between 1 and 65535, got %d", ErrInvalidPort, c.Port)
	}

	return nil
}
