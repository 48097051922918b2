package storage

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// plainAdapter implements the base contract only.
type plainAdapter struct{}

func (plainAdapter) Write(context.Context, string, []byte, WriteOptions) error    { return nil }
func (plainAdapter) WriteStream(context.Context, string, io.Reader, WriteOptions) error {
	return nil
}
func (plainAdapter) Read(context.Context, string) ([]byte, error)             { return nil, ErrNotFound }
func (plainAdapter) ReadStream(context.Context, string) (io.ReadCloser, error) {
	return nil, ErrNotFound
}
func (plainAdapter) Has(context.Context, string) (bool, error)             { return false, nil }
func (plainAdapter) Delete(context.Context, string) error                  { return nil }
func (plainAdapter) DeleteDir(context.Context, string) error               { return nil }
func (plainAdapter) CreateDir(context.Context, string, WriteOptions) error { return nil }
func (plainAdapter) Copy(context.Context, string, string) (bool, error)    { return false, nil }
func (plainAdapter) Rename(context.Context, string, string) (bool, error)  { return false, nil }
func (plainAdapter) ListContents(context.Context, string, bool) ([]Entry, error) {
	return nil, nil
}
func (plainAdapter) Size(context.Context, string) (int64, error) { return 0, ErrNotFound }
func (plainAdapter) LastModified(context.Context, string) (time.Time, error) {
	return time.Time{}, ErrNotFound
}
func (plainAdapter) MimeType(context.Context, string) (string, error) { return "", ErrNotFound }
func (plainAdapter) Close() error                                     { return nil }

// visAdapter adds the visibility capability on top of plainAdapter.
type visAdapter struct{ plainAdapter }

func (visAdapter) Visibility(context.Context, string) (Visibility, error) {
	return VisibilityPublic, nil
}
func (visAdapter) SetVisibility(context.Context, string, Visibility) (Entry, error) {
	return Entry{}, nil
}

func TestGetCapabilities(t *testing.T) {
	assert.False(t, GetCapabilities(plainAdapter{}).Visibility)
	assert.True(t, GetCapabilities(visAdapter{}).Visibility)
}

func TestAsVisibilityAdapter(t *testing.T) {
	assert.Nil(t, AsVisibilityAdapter(plainAdapter{}))
	assert.NotNil(t, AsVisibilityAdapter(visAdapter{}))
}

func TestVisibilityHelpersUnsupported(t *testing.T) {
	ctx := context.Background()

	_, err := GetVisibility(ctx, plainAdapter{}, "file.txt")
	assert.ErrorIs(t, err, ErrNotSupported)

	_, err = SetVisibility(ctx, plainAdapter{}, "file.txt", VisibilityPrivate)
	assert.ErrorIs(t, err, ErrNotSupported)
}

func TestVisibilityHelpersSupported(t *testing.T) {
	ctx := context.Background()

	v, err := GetVisibility(ctx, visAdapter{}, "file.txt")
	assert.NoError(t, err)
	assert.Equal(t, VisibilityPublic, v)
}
