// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/event-scout/internal/types"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Search
	Intent     string `json:"intent,omitempty"`      // Natural-language description of who to find
	Location   string `json:"location,omitempty"`    // Geographic qualifier appended to the query
	Category   string `json:"category,omitempty"`    // Listing category slug (ai, crypto, wellness, ...)
	Calendar   string `json:"calendar,omitempty"`    // Specific calendar slug to search within
	MaxResults int    `json:"max_results,omitempty"` // Cap on returned events
	Timeout    int    `json:"timeout,omitempty"`     // Overall run budget in seconds

	// Behavior
	APIKey      string `json:"api_key,omitempty"`   // Gemini API key
	BaseURL     string `json:"base_url,omitempty"`  // Listing site base URL override
	Headed      bool   `json:"headed,omitempty"`    // Run the browser with a visible window
	Verbose     bool   `json:"verbose,omitempty"`   // Print detailed debug information
	StorePath   string `json:"store,omitempty"`     // CSV store path for persisting results
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.MaxResults < 0 {
		return fmt.Errorf("config error: 'max_results' must be non-negative")
	}
	if c.MaxResults > types.MaxResultsCap {
		return fmt.Errorf("config error: 'max_results' must be at most %d", types.MaxResultsCap)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("config error: 'timeout' must be non-negative")
	}
	return nil
}

// Request builds a SearchRequest from the merged configuration.
func (c *Config) Request() types.SearchRequest {
	return types.SearchRequest{
		Intent:         c.Intent,
		Location:       c.Location,
		Category:       c.Category,
		Calendar:       c.Calendar,
		MaxResults:     c.MaxResults,
		TimeoutSeconds: c.Timeout,
	}
}
