// Package config loads estatekeeper's process configuration from
// <data-dir>/config.json. This covers machine-local setup (paths, logging);
// user preferences such as theme live in the record store's kv table as
// AppSettings, because they belong to the data set and travel with backups.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all estatekeeper configuration.
type Config struct {
	// DataDir is the directory holding the database, logs, and config.json.
	// Not serialized; resolved at startup.
	DataDir string `json:"-" yaml:"data_dir"`

	// DatabaseFile overrides the database filename inside the data dir.
	DatabaseFile string `json:"database_file,omitempty" yaml:"database_file"`

	// Logging controls the categorized debug logs.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// LoggingConfig configures the categorized file logger.
type LoggingConfig struct {
	DebugMode  bool            `json:"debug_mode" yaml:"debug_mode"`
	Level      string          `json:"level,omitempty" yaml:"level"`
	Categories map[string]bool `json:"categories,omitempty" yaml:"categories"`
	JSONFormat bool            `json:"json_format,omitempty" yaml:"json_format"`
}

const (
	configFileName      = "config.json"
	defaultDatabaseFile = "estate.db"
	envDataDir          = "ESTATEKEEPER_DATA_DIR"
)

// DefaultDataDir returns the per-user data directory, honoring
// ESTATEKEEPER_DATA_DIR when set.
func DefaultDataDir() string {
	if dir := os.Getenv(envDataDir); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".estatekeeper"
	}
	return filepath.Join(home, ".estatekeeper")
}

// Load reads config.json from the data directory, applying defaults for
// anything absent. A missing file yields the default config, not an error.
func Load(dataDir string) (*Config, error) {
	if dataDir == "" {
		dataDir = DefaultDataDir()
	}
	cfg := &Config{
		DataDir:      dataDir,
		DatabaseFile: defaultDatabaseFile,
		Logging:      LoggingConfig{Level: "info"},
	}

	data, err := os.ReadFile(filepath.Join(dataDir, configFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.DatabaseFile == "" {
		cfg.DatabaseFile = defaultDatabaseFile
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	cfg.DataDir = dataDir
	return cfg, nil
}

// Save writes the config back to <data-dir>/config.json, creating the data
// directory if needed.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	path := filepath.Join(c.DataDir, configFileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// DatabasePath returns the absolute path of the SQLite database.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, c.DatabaseFile)
}

// Render returns the effective configuration as YAML, for `config show`.
func (c *Config) Render() (string, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to render config: %w", err)
	}
	return string(out), nil
}
