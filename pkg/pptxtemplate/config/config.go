// Package config loads pptxtemplate settings from a YAML file, a .env file
// and the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file read when no path is given.
const DefaultPath = ".pptxtemplate.yaml"

// Config holds all settings.
type Config struct {
	Limits  LimitsConfig  `yaml:"limits"`
	Update  UpdateConfig  `yaml:"update"`
	Extract ExtractConfig `yaml:"extract"`
	Logging LoggingConfig `yaml:"logging"`
}

// LimitsConfig bounds the accepted input.
type LimitsConfig struct {
	MaxFileMB int64 `yaml:"max_file_mb"`
}

// UpdateConfig configures the update engine.
type UpdateConfig struct {
	OverflowRatio  float64 `yaml:"overflow_ratio"`
	WarnOnOverflow bool    `yaml:"warn_on_overflow"`
}

// ExtractConfig configures structure extraction.
type ExtractConfig struct {
	Mode   string `yaml:"mode"` // light, standard, verbose
	Pretty bool   `yaml:"pretty"`
}

// LoggingConfig configures the CLI logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Limits:  LimitsConfig{MaxFileMB: 100},
		Update:  UpdateConfig{OverflowRatio: 1.5, WarnOnOverflow: true},
		Extract: ExtractConfig{Mode: "standard"},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads the config file at path (DefaultPath when empty), then applies
// PPTXTEMPLATE_* environment overrides. Variables from a .env file in the
// working directory are loaded first without replacing existing ones.
// A missing config file yields the defaults.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	if path == "" {
		path = DefaultPath
	}
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("PPTXTEMPLATE_MAX_FILE_MB"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("PPTXTEMPLATE_MAX_FILE_MB: %w", err)
		}
		c.Limits.MaxFileMB = n
	}
	if v := os.Getenv("PPTXTEMPLATE_OVERFLOW_RATIO"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("PPTXTEMPLATE_OVERFLOW_RATIO: %w", err)
		}
		c.Update.OverflowRatio = f
	}
	if v := os.Getenv("PPTXTEMPLATE_WARN_ON_OVERFLOW"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("PPTXTEMPLATE_WARN_ON_OVERFLOW: %w", err)
		}
		c.Update.WarnOnOverflow = b
	}
	if v := os.Getenv("PPTXTEMPLATE_LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv("PPTXTEMPLATE_EXTRACT_MODE"); v != "" {
		c.Extract.Mode = strings.ToLower(v)
	}
	return nil
}

// Validate checks the settings for consistency.
func (c *Config) Validate() error {
	if c.Limits.MaxFileMB <= 0 {
		return fmt.Errorf("limits.max_file_mb must be positive, got %d", c.Limits.MaxFileMB)
	}
	if c.Update.OverflowRatio <= 0 {
		return fmt.Errorf("update.overflow_ratio must be positive, got %g", c.Update.OverflowRatio)
	}
	switch c.Extract.Mode {
	case "light", "standard", "verbose":
	default:
		return fmt.Errorf("invalid extract mode: %s (must be light, standard, or verbose)", c.Extract.Mode)
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	return nil
}

// MaxFileSize returns the input size limit in bytes.
func (c *Config) MaxFileSize() int64 {
	return c.Limits.MaxFileMB << 20
}

// LogLevel returns the configured zap level.
func (c *Config) LogLevel() zapcore.Level {
	lvl, err := zapcore.ParseLevel(c.Logging.Level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}
