// Package config loads and persists deckcheck configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	// Cache configuration
	Cache CacheConfig `toml:"cache"`

	// Scryfall API configuration
	Scryfall ScryfallConfig `toml:"scryfall"`

	// Report output configuration
	Output OutputConfig `toml:"output"`
}

// CacheConfig contains response cache settings.
type CacheConfig struct {
	Enabled bool   `toml:"enabled"` // Enable the on-disk response cache
	Path    string `toml:"path"`    // Cache database path ("" = default location)
	TTL     string `toml:"ttl"`     // Cache TTL (e.g., "24h", "" = never expire)
}

// ScryfallConfig contains card database API settings.
type ScryfallConfig struct {
	BaseURL   string `toml:"base_url"`   // API endpoint ("" = production)
	UserAgent string `toml:"user_agent"` // User-Agent header
}

// OutputConfig contains report output settings.
type OutputConfig struct {
	OutPrefix  string `toml:"out_prefix"`  // Default output file prefix
	PrettyJSON bool   `toml:"pretty_json"` // Indent the JSON report
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Cache: CacheConfig{
			Enabled: true,
			Path:    "",
			TTL:     "24h",
		},
		Scryfall: ScryfallConfig{
			BaseURL:   "",
			UserAgent: "deckcheck/1.0",
		},
		Output: OutputConfig{
			OutPrefix:  "deck_output",
			PrettyJSON: true,
		},
	}
}

// CacheTTL parses the configured cache TTL. An empty or invalid value
// means entries never expire.
func (c *Config) CacheTTL() time.Duration {
	if c.Cache.TTL == "" {
		return 0
	}
	ttl, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return 0
	}
	return ttl
}

// configPath returns the path to the configuration file.
func configPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".deckcheck")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.toml"), nil
}

// Load loads the configuration from disk. Returns default config if the
// file doesn't exist.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return &config, nil
}

// Save writes the configuration to disk.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}
