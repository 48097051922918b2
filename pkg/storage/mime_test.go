package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectMimeTypeSVG(t *testing.T) {
	svg := []byte(`<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg"></svg>`)

	mime, err := DetectMimeType(svg)
	require.NoError(t, err)
	assert.Equal(t, "image/svg+xml", mime)
}

func TestDetectMimeTypeText(t *testing.T) {
	mime, err := DetectMimeType([]byte("plain text contents"))
	require.NoError(t, err)
	assert.Equal(t, "text/plain", mime)
}

func TestDetectMimeTypeStripsParameters(t *testing.T) {
	mime, err := DetectMimeType([]byte("utf-8 text"))
	require.NoError(t, err)
	assert.NotContains(t, mime, ";")
}

func TestDetectMimeTypeUnknown(t *testing.T) {
	// NUL-laden bytes with no magic number hit the octet-stream catch-all
	blob := []byte{0x00, 0x01, 0x02, 0x03, 0x00, 0xff, 0xfe, 0x00}

	_, err := DetectMimeType(blob)
	assert.ErrorIs(t, err, ErrUnknownMimeType)
}
