// Package config loads pipeloop settings from a YAML file with environment
// overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config holds all pipeloop settings.
type Config struct {
	Store    StoreConfig    `yaml:"store"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Logging  LoggingConfig  `yaml:"logging"`
	Report   ReportConfig   `yaml:"report"`
}

// StoreConfig configures the result cache.
type StoreConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// AnalysisConfig configures the loop walker.
type AnalysisConfig struct {
	Parallel bool `yaml:"parallel"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// ReportConfig configures report scripts.
type ReportConfig struct {
	// ScriptsDir loads scripts from disk instead of the embedded set.
	ScriptsDir string `yaml:"scripts_dir"`
	// Script is the default report script name.
	Script string `yaml:"script"`
}

// DefaultConfig returns the settings used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Enabled: false,
			Path:    filepath.Join(".pipeloop", "cache.db"),
		},
		Analysis: AnalysisConfig{
			Parallel: true,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
		Report: ReportConfig{
			Script: "summary",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if _, err := cfg.Level(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies PIPELOOP_DB, PIPELOOP_PARALLEL and
// PIPELOOP_LOG_LEVEL. Setting PIPELOOP_DB also enables the store.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("PIPELOOP_DB"); v != "" {
		c.Store.Path = v
		c.Store.Enabled = true
	}
	if v := os.Getenv("PIPELOOP_PARALLEL"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("PIPELOOP_PARALLEL: %w", err)
		}
		c.Analysis.Parallel = b
	}
	if v := os.Getenv("PIPELOOP_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	return nil
}

// Level parses Logging.Level.
func (c *Config) Level() (zapcore.Level, error) {
	lvl, err := zapcore.ParseLevel(c.Logging.Level)
	if err != nil {
		return lvl, fmt.Errorf("logging.level: %w", err)
	}
	return lvl, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
