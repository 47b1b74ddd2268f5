// Package config provides configuration loading and structs for the Omoide server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hyperjump/omoide/internal/fuzzy"
	"github.com/hyperjump/omoide/internal/ranking"
)

// Config holds all configuration for the application.
type Config struct {
	Debug   bool          `yaml:"debug"`
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Search  SearchConfig  `yaml:"search"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StorageConfig holds the database path and the optional import directory
// watched for dropped memory export files.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
	ImportDir    string `yaml:"import_dir"`
}

// SearchConfig holds fuzzy matching, scoring, and result settings.
type SearchConfig struct {
	Fuzzy   fuzzy.Config          `yaml:"fuzzy"`
	Scoring ranking.ScoringConfig `yaml:"scoring"`

	// RelatedLimit is the default number of related memories returned.
	RelatedLimit int `yaml:"related_limit"`
	// SnippetLength is the maximum content snippet length in search results.
	SnippetLength int `yaml:"snippet_length"`
	// Suggestions toggles "did you mean" corrections; defaults to true when unset.
	Suggestions *bool `yaml:"suggestions"`
}

// SuggestionsOrDefault returns whether suggestions are enabled; defaults to true when unset.
func (s *SearchConfig) SuggestionsOrDefault() bool {
	if s.Suggestions != nil {
		return *s.Suggestions
	}
	return true
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)
	if cfg.Storage.ImportDir != "" {
		cfg.Storage.ImportDir = expandPath(cfg.Storage.ImportDir, configDir)
	}

	return &cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
