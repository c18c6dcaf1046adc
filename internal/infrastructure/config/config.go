// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/nvall/chronoline/internal/domain/timeline"
)

const (
	// DefaultConfigDir is the directory name for chronoline configuration.
	DefaultConfigDir = ".chronoline"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"

	// BackendSQLite selects the local embedded store.
	BackendSQLite = "sqlite"
	// BackendSurreal selects the hosted realtime store.
	BackendSurreal = "surreal"
)

// Config holds static infrastructure configuration (read-only after init).
type Config struct {
	Store    StoreConfig    `yaml:"store,omitempty"`
	SQLite   SQLiteConfig   `yaml:"sqlite,omitempty"`
	Surreal  SurrealConfig  `yaml:"surreal,omitempty"`
	Timeline TimelineConfig `yaml:"timeline,omitempty"`
	Section  string         `yaml:"section,omitempty"`
}

// StoreConfig selects the persistence backend.
type StoreConfig struct {
	Backend string `yaml:"backend,omitempty"`
}

// SQLiteConfig holds configuration for the local SQLite store.
type SQLiteConfig struct {
	Path string `yaml:"path,omitempty"`
}

// SurrealConfig holds configuration for the hosted SurrealDB store.
type SurrealConfig struct {
	URL       string `yaml:"url,omitempty"`
	Namespace string `yaml:"namespace,omitempty"`
	Database  string `yaml:"database,omitempty"`
	User      string `yaml:"user,omitempty"`
	Pass      string `yaml:"pass,omitempty"`
}

// TimelineConfig tunes the layout engine thresholds and the render
// viewport.
type TimelineConfig struct {
	ClusterThresholdPx float64 `yaml:"cluster_threshold_px,omitempty"`
	BumpThresholdPx    float64 `yaml:"bump_threshold_px,omitempty"`
	ViewportWidth      float64 `yaml:"viewport_width,omitempty"`
}

// Options converts the timeline tuning into engine options.
func (t TimelineConfig) Options() timeline.Options {
	return timeline.Options{
		ClusterThresholdPx: t.ClusterThresholdPx,
		BumpThresholdPx:    t.BumpThresholdPx,
	}
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Store: StoreConfig{Backend: BackendSQLite},
		SQLite: SQLiteConfig{
			Path: filepath.Join(DefaultConfigDir, "chronoline.db"),
		},
		Surreal: SurrealConfig{
			URL:       "ws://localhost:8000/rpc",
			Namespace: "chronoline",
			Database:  "classroom",
		},
		Timeline: TimelineConfig{
			ViewportWidth: 1280,
		},
		Section: "default",
	}
}

// Load loads configuration from the .chronoline directory in the given
// path, applying defaults and environment overrides.
func Load(basePath string) (*Config, error) {
	configFile := ConfigFilePath(basePath)

	data, err := os.ReadFile(configFile)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s (run 'chronoline init' first)", configFile)
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides. Credentials in
// the environment beat credentials in the file.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("SURREAL_URL"); v != "" {
		c.Surreal.URL = v
	}
	if v := os.Getenv("SURREAL_USER"); v != "" {
		c.Surreal.User = v
	}
	if v := os.Getenv("SURREAL_PASS"); v != "" {
		c.Surreal.Pass = v
	}
	if v := os.Getenv("CHRONOLINE_SECTION"); v != "" {
		c.Section = v
	}
}

// ConfigDir returns the path to the .chronoline config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}

// Exists checks if a chronoline config exists in the given path.
func Exists(basePath string) bool {
	_, err := os.Stat(ConfigFilePath(basePath))
	return err == nil
}
