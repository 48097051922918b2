package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/stowfs/pkg/config"
	"github.com/marmos91/stowfs/pkg/storage"
)

func TestParseVisibility(t *testing.T) {
	opts, err := parseVisibility("")
	require.NoError(t, err)
	assert.Empty(t, opts.Visibility)

	opts, err = parseVisibility("public")
	require.NoError(t, err)
	assert.Equal(t, storage.VisibilityPublic, opts.Visibility)

	_, err = parseVisibility("hidden")
	assert.Error(t, err)
}

func TestBuildBackendMemory(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Storage.Backend = "memory"

	store, err := buildBackend(context.Background(), cfg)
	require.NoError(t, err)
	defer store.Close()

	err = store.Write(context.Background(), "probe.txt", []byte("ok"), storage.WriteOptions{})
	assert.NoError(t, err)
}

func TestBuildBackendFS(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Storage.Backend = "fs"
	cfg.Storage.FS.Path = t.TempDir()

	store, err := buildBackend(context.Background(), cfg)
	require.NoError(t, err)
	assert.NoError(t, store.Close())
}

func TestBuildBackendUnknown(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Storage.Backend = "ftp"

	_, err := buildBackend(context.Background(), cfg)
	assert.Error(t, err)
}

func TestEntryListRendering(t *testing.T) {
	entries := EntryList{
		{Kind: storage.KindDirectory, Path: "docs"},
		{Kind: storage.KindFile, Path: "docs/readme.md", Size: 120, Visibility: storage.VisibilityPrivate},
	}

	rows := entries.Rows()
	require.Len(t, rows, 2)

	assert.Equal(t, "docs", rows[0][0])
	assert.Equal(t, "-", rows[0][2])

	assert.Equal(t, "docs/readme.md", rows[1][0])
	assert.Equal(t, "120B", rows[1][2])
	assert.Equal(t, "private", rows[1][4])
}
