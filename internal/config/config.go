// Package config loads the optional .huelint.yml project file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"huelint/check"
)

// DefaultNames are tried in order when no config path is given.
var DefaultNames = []string{".huelint.yml", ".huelint.yaml"}

type Ignore struct {
	Colors    []string    `yaml:"colors"`
	Pairs     [][2]string `yaml:"pairs"`
	Selectors []string    `yaml:"selectors"`
}

type Config struct {
	// Level is the failing conformance level: "aa" (default) or "aaa".
	Level string `yaml:"level"`
	// Format selects the reporter: "console" (default) or "json".
	Format string `yaml:"format"`
	// Tokens lists design token files (json, yaml or css) whose values
	// become custom properties available to var() resolution.
	Tokens []string `yaml:"tokens"`
	// Stylesheets lists extra CSS files applied to every document, as
	// if linked last.
	Stylesheets []string `yaml:"stylesheets"`
	Ignore      Ignore   `yaml:"ignore"`
}

func (c *Config) IgnoreConfig() check.IgnoreConfig {
	return check.IgnoreConfig{
		Colors:    c.Ignore.Colors,
		Pairs:     c.Ignore.Pairs,
		Selectors: c.Ignore.Selectors,
	}
}

func (c *Config) validate() error {
	switch c.Level {
	case "", "aa", "aaa":
	default:
		return fmt.Errorf("config: unknown level %q", c.Level)
	}
	switch c.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("config: unknown format %q", c.Format)
	}
	return nil
}

// Load reads and validates a config file. Relative paths inside the
// file (tokens, stylesheets) are resolved against the file's directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	for i, p := range cfg.Tokens {
		cfg.Tokens[i] = resolve(dir, p)
	}
	for i, p := range cfg.Stylesheets {
		cfg.Stylesheets[i] = resolve(dir, p)
	}
	return &cfg, nil
}

// Discover looks for a default config file in dir, returning an empty
// config when none exists.
func Discover(dir string) (*Config, error) {
	for _, name := range DefaultNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return &Config{}, nil
}

func resolve(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
