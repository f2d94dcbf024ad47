package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the global gosh configuration.
type Config struct {
	History HistoryConfig     `yaml:"history"`
	Prompt  PromptConfig      `yaml:"prompt"`
	Env     map[string]string `yaml:"env"`     // overlay applied to every pipeline
	Profile string            `yaml:"profile"` // startup profile script, empty disables
}

// HistoryConfig controls the run-history log.
type HistoryConfig struct {
	Path      string `yaml:"path"`
	MaxSizeMB int    `yaml:"max_size_mb"`
}

// PromptConfig controls prompt rendering.
type PromptConfig struct {
	Suffix string `yaml:"suffix"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		History: HistoryConfig{
			Path:      filepath.Join(home, ".local", "share", "gosh", "history.jsonl"),
			MaxSizeMB: 100,
		},
		Profile: filepath.Join(home, ".gosh_profile"),
	}
}

// Load reads the config from the standard location (~/.config/gosh/config.yaml).
// If the file doesn't exist, returns the default config.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultConfig(), nil
	}

	path := filepath.Join(home, ".config", "gosh", "config.yaml")
	return LoadFrom(path)
}

// LoadFrom reads the config from the given path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.History.Path = expandHome(cfg.History.Path)
	cfg.Profile = expandHome(cfg.Profile)

	return cfg, nil
}

// ConfigPath returns the standard config file path.
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "gosh", "config.yaml")
}

func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, path[1:])
}
