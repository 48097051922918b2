package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/stowfs/pkg/storage"
)

func TestVisibilityModeMapping(t *testing.T) {
	assert.Equal(t, os.FileMode(0o644), fileMode(storage.VisibilityPublic))
	assert.Equal(t, os.FileMode(0o600), fileMode(storage.VisibilityPrivate))
	assert.Equal(t, os.FileMode(0o755), dirMode(storage.VisibilityPublic))
	assert.Equal(t, os.FileMode(0o700), dirMode(storage.VisibilityPrivate))

	// World-readable bit decides visibility on the way back
	assert.Equal(t, storage.VisibilityPublic, visibilityFromMode(0o644))
	assert.Equal(t, storage.VisibilityPublic, visibilityFromMode(0o755))
	assert.Equal(t, storage.VisibilityPrivate, visibilityFromMode(0o600))
	assert.Equal(t, storage.VisibilityPrivate, visibilityFromMode(0o640))
}

func TestNewCreatesBasePath(t *testing.T) {
	base := filepath.Join(t.TempDir(), "nested", "root")

	store, err := NewWithPath(base)
	require.NoError(t, err)
	defer store.Close()

	info, err := os.Stat(base)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, base, store.BasePath())
}

func TestWriteAppliesVisibilityMode(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()

	store, err := NewWithPath(base)
	require.NoError(t, err)
	defer store.Close()

	opts := storage.WriteOptions{Visibility: storage.VisibilityPublic}
	require.NoError(t, store.Write(ctx, "pub.txt", []byte("data"), opts))

	info, err := os.Stat(filepath.Join(base, "pub.txt"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestTraversalCannotEscapeBase(t *testing.T) {
	ctx := context.Background()

	store, err := NewWithPath(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	err = store.Write(ctx, "../../etc/escape", []byte("data"), storage.WriteOptions{})
	assert.ErrorIs(t, err, storage.ErrInvalidPath)
}

func TestClosedStoreRejectsOperations(t *testing.T) {
	ctx := context.Background()

	store, err := NewWithPath(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = store.Read(ctx, "file.txt")
	assert.ErrorIs(t, err, storage.ErrStoreClosed)
}
