package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/stowfs/pkg/storage"
)

func TestClosedStoreRejectsOperations(t *testing.T) {
	ctx := context.Background()
	store := New()
	require.NoError(t, store.Close())

	err := store.Write(ctx, "file.txt", []byte("data"), storage.WriteOptions{})
	assert.ErrorIs(t, err, storage.ErrStoreClosed)

	_, err = store.Read(ctx, "file.txt")
	assert.ErrorIs(t, err, storage.ErrStoreClosed)

	_, err = store.ListContents(ctx, "", false)
	assert.ErrorIs(t, err, storage.ErrStoreClosed)
}

func TestCloseIsIdempotent(t *testing.T) {
	store := New()
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())
}

func TestInvalidPathRejected(t *testing.T) {
	ctx := context.Background()
	store := New()
	defer store.Close()

	err := store.Write(ctx, "../escape.txt", []byte("data"), storage.WriteOptions{})
	assert.ErrorIs(t, err, storage.ErrInvalidPath)
}

func TestDefaultVisibilityFromConfig(t *testing.T) {
	ctx := context.Background()
	store := NewWithConfig(Config{
		DefaultVisibility:    storage.VisibilityPublic,
		DefaultDirVisibility: storage.VisibilityPublic,
	})
	defer store.Close()

	require.NoError(t, store.Write(ctx, "dir/file.txt", []byte("data"), storage.WriteOptions{}))

	v, err := store.Visibility(ctx, "dir/file.txt")
	require.NoError(t, err)
	assert.Equal(t, storage.VisibilityPublic, v)

	v, err = store.Visibility(ctx, "dir")
	require.NoError(t, err)
	assert.Equal(t, storage.VisibilityPublic, v)
}

func TestCanceledContext(t *testing.T) {
	store := New()
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Write(ctx, "file.txt", []byte("data"), storage.WriteOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}
