package config

import (
	"os"
	"path/filepath"
	"strings"
)

// GetDefaultConfig returns a fully populated configuration with defaults.
func GetDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults sets default values for any unspecified configuration fields.
//
// Zero values (0, "", false, nil) are replaced with defaults; explicit
// values are preserved.
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyStorageDefaults(&cfg.Storage)
}

// applyLoggingDefaults sets logging defaults and normalizes values.
func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	// Normalize log level to uppercase for consistent internal representation
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.Output == "" {
		cfg.Output = "stderr"
	}
}

// applyStorageDefaults sets storage backend defaults.
func applyStorageDefaults(cfg *StorageConfig) {
	if cfg.Backend == "" {
		cfg.Backend = "fs"
	}

	if cfg.FS.Path == "" {
		cfg.FS.Path = defaultDataDir("files")
	}

	if cfg.S3.Region == "" {
		cfg.S3.Region = "us-east-1"
	}

	if cfg.Badger.Path == "" && !cfg.Badger.InMemory {
		cfg.Badger.Path = defaultDataDir("badger")
	}
}

// defaultDataDir returns $XDG_DATA_HOME/stowfs/<sub>, falling back to
// ~/.local/share/stowfs/<sub>.
func defaultDataDir(sub string) string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "stowfs", sub)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "stowfs-data", sub)
	}

	return filepath.Join(home, ".local", "share", "stowfs", sub)
}
