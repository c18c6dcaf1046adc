package config

import (
	"fmt"
	"os"
)

// DefaultConfigYAML is the default configuration content.
const DefaultConfigYAML = `# Chronoline Configuration

store:
  backend: sqlite # or: surreal

sqlite:
  path: .chronoline/chronoline.db

surreal:
  url: ws://localhost:8000/rpc
  namespace: chronoline
  database: classroom
  # user / pass: set here or via SURREAL_USER / SURREAL_PASS

timeline:
  viewport_width: 1280

section: default
`

// WriteDefault creates the .chronoline directory and writes a default
// config file. It refuses to overwrite an existing one.
func WriteDefault(basePath string) error {
	configFile := ConfigFilePath(basePath)

	if err := os.MkdirAll(ConfigDir(basePath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists: %s", configFile)
	}
	if err := os.WriteFile(configFile, []byte(DefaultConfigYAML), 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
