package demo

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	InitialCounter  int    `yaml:"initial_counter"`
	InitialUser     string `yaml:"initial_user"`
	CounterDisplays int    `yaml:"counter_displays"`

	// 0 disables the nested update limit
	MaxDepth *int `yaml:"max_depth"`
}

func DefaultConfig() Config {
	return Config{CounterDisplays: 2}
}

// LoadConfig reads a YAML config file on top of DefaultConfig. An empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.CounterDisplays < 0 {
		return cfg, fmt.Errorf("parse config %s: counter_displays must not be negative", path)
	}

	return cfg, nil
}
