// Package config loads and validates stowfs configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config represents the stowfs configuration.
//
// Configuration sources (in order of precedence):
//  1. CLI flags (highest priority)
//  2. Environment variables (STOWFS_*)
//  3. Configuration file (YAML)
//  4. Default values (lowest priority)
type Config struct {
	// Logging controls log output behavior
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// Metrics controls Prometheus instrumentation of the storage adapter
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`

	// Storage selects and configures the storage backend
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Level is the minimum log level to output
	// Valid values: DEBUG, INFO, WARN, ERROR (case-insensitive, normalized to uppercase)
	Level string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error" yaml:"level"`

	// Format specifies the log output format
	// Valid values: text, json
	Format string `mapstructure:"format" validate:"required,oneof=text json" yaml:"format"`

	// Output specifies where logs are written
	// Valid values: stdout, stderr, or a file path
	Output string `mapstructure:"output" validate:"required" yaml:"output"`
}

// MetricsConfig controls Prometheus instrumentation.
// When Enabled is false, the adapter runs unwrapped (zero overhead).
type MetricsConfig struct {
	// Enabled wraps the configured backend with operation metrics
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

// StorageConfig selects and configures the storage backend.
type StorageConfig struct {
	// Backend is the storage backend type
	// Valid values: memory, fs, s3, badger
	Backend string `mapstructure:"backend" validate:"required,oneof=memory fs s3 badger" yaml:"backend"`

	// FS configures the local filesystem backend
	FS FSConfig `mapstructure:"fs" yaml:"fs"`

	// S3 configures the S3 backend
	S3 S3Config `mapstructure:"s3" yaml:"s3"`

	// Badger configures the embedded Badger backend
	Badger BadgerConfig `mapstructure:"badger" yaml:"badger"`
}

// FSConfig configures the local filesystem backend.
type FSConfig struct {
	// Path is the base directory all stored files live under (required for fs)
	Path string `mapstructure:"path" yaml:"path"`
}

// S3Config configures the S3 backend.
type S3Config struct {
	// Bucket is the S3 bucket name
	Bucket string `mapstructure:"bucket" yaml:"bucket"`

	// Region is the AWS region
	// Default: us-east-1
	Region string `mapstructure:"region" yaml:"region"`

	// Endpoint overrides the S3 endpoint, for Localstack or MinIO
	// Example: http://localhost:4566
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint,omitempty"`

	// KeyPrefix is prepended to every object key
	KeyPrefix string `mapstructure:"key_prefix" yaml:"key_prefix,omitempty"`

	// ForcePathStyle uses path-style addressing (required by Localstack and MinIO)
	ForcePathStyle bool `mapstructure:"force_path_style" yaml:"force_path_style,omitempty"`
}

// BadgerConfig configures the embedded Badger backend.
type BadgerConfig struct {
	// Path is the database directory
	Path string `mapstructure:"path" yaml:"path"`

	// InMemory runs Badger without touching disk; Path is ignored
	InMemory bool `mapstructure:"in_memory" yaml:"in_memory,omitempty"`
}

// Load loads configuration from file, environment, and defaults.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (STOWFS_*)
//  2. Configuration file
//  3. Default values
//
// An empty configPath uses the default location.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setupViper(v, configPath)

	configFileFound, err := readConfigFile(v)
	if err != nil {
		return nil, err
	}

	if !configFileFound {
		cfg := GetDefaultConfig()
		return cfg, nil
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// MustLoad loads configuration with helpful error messages.
// It checks if the config file exists and provides instructions if not.
func MustLoad(configPath string) (*Config, error) {
	if configPath == "" {
		if !DefaultConfigExists() {
			return nil, fmt.Errorf("no configuration file found at default location: %s\n\n"+
				"Please initialize a configuration file first:\n"+
				"  stowctl config init\n\n"+
				"Or specify a custom config file:\n"+
				"  stowctl <command> --config /path/to/config.yaml",
				GetDefaultConfigPath())
		}
		configPath = GetDefaultConfigPath()
	} else {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("configuration file not found: %s\n\n"+
				"Please create the configuration file:\n"+
				"  stowctl config init --config %s",
				configPath, configPath)
		}
	}

	cfg, err := Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to the specified file path.
// The configuration is saved in YAML format using proper yaml tags.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// yaml.Marshal directly so the yaml tags are respected
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Config files may carry bucket names and endpoints, keep them
	// owner-only
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// setupViper configures viper with environment variables and config file settings.
func setupViper(v *viper.Viper, configPath string) {
	// Environment variables use the STOWFS_ prefix and underscores
	// Example: STOWFS_LOGGING_LEVEL=DEBUG
	v.SetEnvPrefix("STOWFS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default location: $XDG_CONFIG_HOME/stowfs/config.yaml
		configDir := getConfigDir()
		v.AddConfigPath(configDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
}

// readConfigFile reads the configuration file if it exists.
// Returns (fileFound, error) where fileFound indicates if a config file was found.
func readConfigFile(v *viper.Viper) (bool, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return false, nil
		}
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read config file: %w", err)
	}

	return true, nil
}

// getConfigDir returns the configuration directory path.
//
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config, or falls back to
// the current directory if the home directory cannot be determined.
func getConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "stowfs")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(home, ".config", "stowfs")
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "config.yaml")
}

// DefaultConfigExists checks if a config file exists at the default location.
func DefaultConfigExists() bool {
	path := GetDefaultConfigPath()
	_, err := os.Stat(path)
	return err == nil
}

// GetConfigDir returns the configuration directory path (exposed for the init command).
func GetConfigDir() string {
	return getConfigDir()
}
