package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Defaults for settings that live on the CLI and are not persisted
const (
	DefaultDepth        = 5
	DefaultCommentPages = 1
	DefaultGraphPath    = "team_network.html"
	DefaultDBPath       = "teamscope.db"
	DefaultStatsPath    = "run_stats.json"
)

// Config holds the persisted run configuration: which server roster to match
// against and which Steam profiles to seed the search with. Everything else
// lives on the CLI.
type Config struct {
	ServerID string   `json:"server_id"`
	SteamIDs []string `json:"steam_ids"`
}

// Load reads a previously persisted configuration from path. A missing file is
// not an error: it returns an empty config so CLI values can take over.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	var cfg Config
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Merge fills empty fields from fallback. CLI-supplied values win per field.
func (c *Config) Merge(fallback *Config) {
	if c.ServerID == "" {
		c.ServerID = fallback.ServerID
	}
	if len(c.SteamIDs) == 0 {
		c.SteamIDs = fallback.SteamIDs
	}
}

// Validate checks that the merged configuration is usable. Runs before any
// network activity so a bad invocation fails fast.
func (c *Config) Validate() error {
	if c.ServerID == "" {
		return fmt.Errorf("server id is required (flag -b or config file)")
	}
	if len(c.SteamIDs) == 0 {
		return fmt.Errorf("at least one steam id is required (flag -s or config file)")
	}
	return nil
}

// Save writes the resolved configuration back to path so the next run can omit
// the flags.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
