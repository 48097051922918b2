package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := GetDefaultConfig()

	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "stderr", cfg.Logging.Output)
	assert.Equal(t, "fs", cfg.Storage.Backend)
	assert.NotEmpty(t, cfg.Storage.FS.Path)
	assert.Equal(t, "us-east-1", cfg.Storage.S3.Region)

	require.NoError(t, Validate(cfg))
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
logging:
  level: debug
  format: json
storage:
  backend: s3
  s3:
    bucket: my-bucket
    region: eu-west-1
    endpoint: http://localhost:4566
    force_path_style: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "s3", cfg.Storage.Backend)
	assert.Equal(t, "my-bucket", cfg.Storage.S3.Bucket)
	assert.Equal(t, "eu-west-1", cfg.Storage.S3.Region)
	assert.True(t, cfg.Storage.S3.ForcePathStyle)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "fs", cfg.Storage.Backend)
}

func TestValidateRejectsUnknownBackend(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Storage.Backend = "ftp"

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend")
}

func TestValidateRejectsInvalidLogLevel(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Logging.Level = "VERBOSE"

	assert.Error(t, Validate(cfg))
}

func TestValidateS3RequiresBucket(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Storage.Backend = "s3"
	cfg.Storage.S3.Bucket = ""

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket")
}

func TestValidateBadgerInMemoryNeedsNoPath(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Storage.Backend = "badger"
	cfg.Storage.Badger.Path = ""
	cfg.Storage.Badger.InMemory = true

	assert.NoError(t, Validate(cfg))
}

func TestSaveAndReloadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := GetDefaultConfig()
	cfg.Storage.Backend = "badger"
	cfg.Storage.Badger.InMemory = true

	require.NoError(t, SaveConfig(cfg, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "badger", loaded.Storage.Backend)
	assert.True(t, loaded.Storage.Badger.InMemory)
}
