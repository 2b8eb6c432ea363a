// Package config provides configuration management for modgen.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the name of the configuration file inside the config directory.
const FileName = "config.yaml"

// Defaults applied when the configuration file or a field is absent.
const (
	DefaultSize     = 30
	DefaultCount    = 10
	DefaultWorkers  = 4
	DefaultLimit    = 50
	DefaultLogLevel = "info"
)

// Config holds the sampling defaults of the modgen CLI.
type Config struct {
	// Size is the ambient size parameter passed to generators.
	Size *int `yaml:"size,omitempty"`

	// Seed fixes the random source. Unset picks a fresh seed per run.
	Seed *int64 `yaml:"seed,omitempty"`

	// Count is the number of samples drawn by `modgen sample`.
	Count int `yaml:"count,omitempty"`

	// Workers is the number of goroutines drawing samples.
	Workers int `yaml:"workers,omitempty"`

	// Limit caps the number of shrink candidates printed by `modgen shrink`.
	Limit int `yaml:"limit,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level,omitempty"`
}

// SizeOrDefault returns the configured size, or DefaultSize when unset.
func (c *Config) SizeOrDefault() int {
	if c.Size == nil {
		return DefaultSize
	}
	return *c.Size
}

// FixedSeed returns the configured seed and whether one is set.
func (c *Config) FixedSeed() (int64, bool) {
	if c.Seed == nil {
		return 0, false
	}
	return *c.Seed, true
}

// ValidationError describes an invalid configuration field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Manager handles configuration loading and saving.
type Manager struct {
	configDir string
}

// ManagerOption is a function that configures a Manager.
type ManagerOption func(*Manager)

// WithConfigDir sets a custom configuration directory.
func WithConfigDir(dir string) ManagerOption {
	return func(m *Manager) {
		m.configDir = dir
	}
}

// NewManager creates a new configuration manager.
func NewManager(opts ...ManagerOption) (*Manager, error) {
	m := &Manager{}
	for _, opt := range opts {
		opt(m)
	}

	if m.configDir == "" {
		dir, err := GetConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get config directory: %w", err)
		}
		m.configDir = dir
	}

	return m, nil
}

// GetConfigDir returns the platform-specific configuration directory.
func GetConfigDir() (string, error) {
	// Check for override environment variable
	if dir := os.Getenv("MODGEN_CONFIG_DIR"); dir != "" {
		return dir, nil
	}

	switch runtime.GOOS {
	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(homeDir, "Library", "Application Support", "modgen"), nil

	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			appData = filepath.Join(homeDir, "AppData", "Roaming")
		}
		return filepath.Join(appData, "modgen"), nil

	default:
		// Linux/Unix: XDG Base Directory Specification
		xdgConfig := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfig == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			xdgConfig = filepath.Join(homeDir, ".config")
		}
		return filepath.Join(xdgConfig, "modgen"), nil
	}
}

// ConfigDir returns the configuration directory path.
func (m *Manager) ConfigDir() string {
	return m.configDir
}

// Path returns the path of the configuration file.
func (m *Manager) Path() string {
	return filepath.Join(m.configDir, FileName)
}

// Load reads the configuration file. A missing file yields the defaults.
func (m *Manager) Load() (*Config, error) {
	return LoadFile(m.Path())
}

// Save validates cfg and writes it to the configuration file.
func (m *Manager) Save(cfg *Config) error {
	if err := ValidateConfig(cfg); err != nil {
		return err
	}

	if err := os.MkdirAll(m.configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(m.Path(), data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// LoadFile reads the configuration at path. A missing file yields the defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.applyDefaults()

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// NewConfig returns a configuration holding the defaults.
func NewConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Size == nil {
		size := DefaultSize
		c.Size = &size
	}
	if c.Count == 0 {
		c.Count = DefaultCount
	}
	if c.Workers == 0 {
		c.Workers = DefaultWorkers
	}
	if c.Limit == 0 {
		c.Limit = DefaultLimit
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

// ValidateConfig validates a configuration.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if cfg.Size != nil && *cfg.Size < 0 {
		return &ValidationError{Field: "size", Reason: "must not be negative"}
	}
	if cfg.Count <= 0 {
		return &ValidationError{Field: "count", Reason: "must be positive"}
	}
	if cfg.Workers <= 0 {
		return &ValidationError{Field: "workers", Reason: "must be positive"}
	}
	if cfg.Limit <= 0 {
		return &ValidationError{Field: "limit", Reason: "must be positive"}
	}
	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{Field: "log_level", Reason: fmt.Sprintf("unknown level %q", cfg.LogLevel)}
	}
	return nil
}
