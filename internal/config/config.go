// Package config loads the YAML configuration shared by the batch cleaner
// and the Gmail exporter.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrNoInputFiles       = errors.New("cleaner.files must list at least one input file")
	ErrLabelMissingID     = errors.New("label id is required")
	ErrLabelMissingFile   = errors.New("label output file is required")
	ErrInvalidMaxPerLabel = errors.New("export.max_per_label must be non-negative")
	ErrInvalidLogLevel    = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Config is the complete tool configuration.
type Config struct {
	Cleaner CleanerConfig `yaml:"cleaner"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// CleanerConfig drives the batch cleaning run.
type CleanerConfig struct {
	Files        []string `yaml:"files"`
	OutputSuffix string   `yaml:"output_suffix"`
}

// ExportConfig drives the Gmail export run.
type ExportConfig struct {
	Credentials string        `yaml:"credentials"`
	Token       string        `yaml:"token"`
	StateDB     string        `yaml:"state_db"`
	MaxPerLabel int64         `yaml:"max_per_label"`
	Labels      []LabelConfig `yaml:"labels"`
}

// LabelConfig maps one Gmail label to its output CSV.
type LabelConfig struct {
	ID   string `yaml:"id"`
	File string `yaml:"file"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads and validates configuration from a YAML file, applying defaults
// for omitted fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Cleaner.OutputSuffix == "" {
		c.Cleaner.OutputSuffix = "_cleaned"
	}
	if c.Export.Credentials == "" {
		c.Export.Credentials = "credentials.json"
	}
	if c.Export.Token == "" {
		c.Export.Token = "token.json"
	}
	if c.Export.StateDB == "" {
		c.Export.StateDB = "export_state.db"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Validate checks the configuration. The cleaner file list may be empty when
// only the exporter is used; each command checks its own section is present.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return ErrInvalidLogLevel
	}

	if c.Export.MaxPerLabel < 0 {
		return ErrInvalidMaxPerLabel
	}

	for i, l := range c.Export.Labels {
		if l.ID == "" {
			return fmt.Errorf("%w: labels[%d]", ErrLabelMissingID, i)
		}
		if l.File == "" {
			return fmt.Errorf("%w: labels[%d]", ErrLabelMissingFile, i)
		}
	}
	return nil
}
