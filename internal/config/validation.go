package config

import (
	"fmt"
)

// Validate checks config values for correctness.
// Returns an error if any values are invalid.
func (c *Config) Validate() error {
	var errs []string

	// Search validation
	if c.Search.Workers < 1 {
		errs = append(errs, "search.workers must be >= 1")
	}
	if c.Search.MaxResults < 1 {
		errs = append(errs, "search.max_results must be >= 1")
	}

	// Output validation
	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		errs = append(errs, `output.color must be one of "auto", "always", "never"`)
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}
