package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/qif-tools/tbank2qif/internal/model"
)

// FileName is the settings file looked up in the working directory.
const FileName = "tbank2qif.yaml"

// Config represents the tbank2qif.yaml settings file.
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// OutputConfig controls the generated QIF file.
type OutputConfig struct {
	AccountType string `yaml:"account_type"` // QIF label, e.g. "Bank", "CCard", "Cash"
}

// LoggingConfig controls diagnostic output on stderr.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
}

// Load reads a settings file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with the built-in defaults.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			AccountType: string(model.DefaultAccountType),
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}
