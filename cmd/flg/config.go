package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/KimNorgaard/go-flg/codec"
)

const (
	defaultIndent   = 4
	defaultLogLevel = "warn"
)

// config is the optional YAML file selected with --config.
type config struct {
	Scheme   codec.Scheme `yaml:"scheme"`
	Indent   *int         `yaml:"indent"`
	LogLevel string       `yaml:"log_level"`
}

// loadConfig reads the YAML configuration at path. An empty path yields
// the defaults.
func loadConfig(path string) (*config, error) {
	var cfg config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}

		// Expand environment variables
		data = []byte(os.ExpandEnv(string(data)))

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(cfg *config) {
	if cfg.Indent == nil {
		n := defaultIndent
		cfg.Indent = &n
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
}

func validate(cfg *config) error {
	if *cfg.Indent < 0 {
		return fmt.Errorf("indent must not be negative, got %d", *cfg.Indent)
	}
	return nil
}
