// Package config provides configuration loading and validation for the skill extraction service.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/visiocraft/visiocraft-ai/internal/llm"
	"github.com/visiocraft/visiocraft-ai/internal/logging"
)

// Environment variable names read by FromEnv.
const (
	EnvAPIKey    = "GOOGLE_API_KEY"
	EnvModel     = "GEMINI_MODEL"
	EnvHost      = "HOST"
	EnvPort      = "PORT"
	EnvLogFormat = "LOG_FORMAT"
	EnvLogLevel  = "LOG_LEVEL"
)

// Default values used when neither the environment nor a config file sets a field.
const (
	DefaultHost         = "0.0.0.0"
	DefaultPort         = 5000
	DefaultLogFormat    = "text"
	DefaultLogLevel     = "info"
	DefaultMaxBodyBytes = 1 << 20
)

// Config is the service configuration. It can be loaded from a JSON file and
// is overlaid by environment variables and CLI flags.
type Config struct {
	// Model
	APIKey string `json:"api_key,omitempty"` // Gemini API key
	Model  string `json:"model,omitempty"`   // Gemini model name

	// HTTP
	Host         string `json:"host,omitempty"`
	Port         int    `json:"port,omitempty"`
	MaxBodyBytes int64  `json:"max_body_bytes,omitempty"` // Request bodies above this are rejected

	// Logging
	LogFormat string `json:"log_format,omitempty"` // "json" or "text"
	LogLevel  string `json:"log_level,omitempty"`  // slog level name
	Verbose   bool   `json:"verbose,omitempty"`    // Forces debug level
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Model:        llm.DefaultModel,
		Host:         DefaultHost,
		Port:         DefaultPort,
		MaxBodyBytes: DefaultMaxBodyBytes,
		LogFormat:    DefaultLogFormat,
		LogLevel:     DefaultLogLevel,
	}
}

// LoadConfig loads configuration from a JSON file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a Config from environment variables using lookup
// (normally os.LookupEnv). Unset variables leave fields at their zero value.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	var cfg Config

	if v, ok := lookup(EnvAPIKey); ok {
		cfg.APIKey = v
	}
	if v, ok := lookup(EnvModel); ok {
		cfg.Model = v
	}
	if v, ok := lookup(EnvHost); ok {
		cfg.Host = v
	}
	if v, ok := lookup(EnvPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s %q: %w", EnvPort, v, err)
		}
		cfg.Port = port
	}
	if v, ok := lookup(EnvLogFormat); ok {
		cfg.LogFormat = v
	}
	if v, ok := lookup(EnvLogLevel); ok {
		cfg.LogLevel = v
	}

	return cfg, nil
}

// Load resolves the effective configuration: environment over the optional
// config file at path, over Defaults. Flags are applied by the caller.
func Load(path string, lookup func(string) (string, bool)) (*Config, error) {
	env, err := FromEnv(lookup)
	if err != nil {
		return nil, err
	}

	merged := env
	if path != "" {
		file, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		merged = merged.MergeWithDefaults(*file)
		merged.Verbose = env.Verbose || file.Verbose
	}
	merged = merged.MergeWithDefaults(Defaults())

	return &merged, nil
}

// Validate checks that the configuration has usable values. A missing API
// key is not an error: the service starts and answers 503.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 1 and 65535, got %d", c.Port)
	}
	if c.MaxBodyBytes < 0 {
		return fmt.Errorf("config error: 'max_body_bytes' must be non-negative")
	}
	if _, err := logging.ParseFormat(c.LogFormat); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.Host == "" {
		result.Host = defaults.Host
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.MaxBodyBytes == 0 {
		result.MaxBodyBytes = defaults.MaxBodyBytes
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}

	// Bool fields cannot distinguish unset from false; callers OR them.

	return result
}

// Addr returns the host:port listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
