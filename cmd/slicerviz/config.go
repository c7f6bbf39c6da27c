package main

import (
	"fmt"
	"os"

	"github.com/ohartman/slicerviz/capability"
	"gopkg.in/yaml.v3"
)

// Config configures the demo server.
type Config struct {
	// Port to serve on.
	Port int `yaml:"port"`
	// DatasetRoot is the directory holding dataset CSV files.
	DatasetRoot string `yaml:"datasetRoot"`
	// WindowSize is the number of rows the simulated host delivers per
	// page; zero delivers whole datasets at once.
	WindowSize int `yaml:"windowSize"`
	// CacheSize is the dataset LRU capacity.
	CacheSize int `yaml:"cacheSize"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Port:        7420,
		DatasetRoot: ".",
		WindowSize:  capability.AttributeSlicer.Mapping.Reduction.Count,
		CacheSize:   10,
	}
}

// LoadConfig reads the YAML config at path, layered over the defaults.  A
// missing file yields the defaults; a malformed or invalid one is an
// error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.WindowSize < 0 {
		return fmt.Errorf("windowSize must not be negative")
	}
	if c.CacheSize <= 0 {
		return fmt.Errorf("cacheSize must be positive")
	}
	return nil
}
