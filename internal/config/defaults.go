package config

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via dotfile.
// NOTE: Values in config files override defaults, including explicit zero values.
// Missing keys are left at their default values.
type Config struct {
	Search SearchConfig `json:"search"`
	Output OutputConfig `json:"output"`
}

type SearchConfig struct {
	// Traversal
	Workers       int  `json:"workers"`        // Default: 8
	IncludeHidden bool `json:"include_hidden"` // Default: false
	FollowLinks   bool `json:"follow_links"`   // Default: false

	// Result caps
	MaxResults int `json:"max_results"` // Default: 100000
}

type OutputConfig struct {
	// Color is one of "auto", "always", "never".
	Color string `json:"color"` // Default: "auto"
	// SortResults sorts output by path instead of discovery order.
	SortResults bool `json:"sort_results"` // Default: false
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			Workers:       8,
			IncludeHidden: false,
			FollowLinks:   false,
			MaxResults:    100000,
		},
		Output: OutputConfig{
			Color:       "auto",
			SortResults: false,
		},
	}
}
