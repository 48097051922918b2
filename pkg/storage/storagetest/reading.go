package storagetest

import (
	"bytes"
	"io"
	"testing"

	"github.com/marmos91/stowfs/pkg/storage"
)

// runReadingTests runs all read-path conformance tests.
func runReadingTests(t *testing.T, factory AdapterFactory) {
	t.Run("MissingFile", func(t *testing.T) { testReadMissingFile(t, factory) })
	t.Run("MissingFileStream", func(t *testing.T) { testReadStreamMissingFile(t, factory) })
	t.Run("Stream", func(t *testing.T) { testReadStream(t, factory) })
	t.Run("NeverWrittenPath", func(t *testing.T) { testNeverWrittenPath(t, factory) })
}

// testReadMissingFile verifies the absence sentinel for Read.
func testReadMissingFile(t *testing.T, factory AdapterFactory) {
	adapter := newAdapter(t, factory)

	_, err := adapter.Read(t.Context(), "missing.txt")
	assertNotFound(t, "Read()", err)
}

// testReadStreamMissingFile verifies the absence sentinel for ReadStream.
func testReadStreamMissingFile(t *testing.T, factory AdapterFactory) {
	adapter := newAdapter(t, factory)

	_, err := adapter.ReadStream(t.Context(), "missing.txt")
	assertNotFound(t, "ReadStream()", err)
}

// testReadStream verifies a returned stream is fully consumable and then
// releasable.
func testReadStream(t *testing.T, factory AdapterFactory) {
	adapter := newAdapter(t, factory)
	ctx := t.Context()

	payload := []byte("streamable contents")
	writeFile(t, adapter, "file.txt", payload, storage.WriteOptions{})

	rc, err := adapter.ReadStream(ctx, "file.txt")
	if err != nil {
		t.Fatalf("ReadStream() failed: %v", err)
	}
	defer rc.Close()

	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("reading stream failed: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("stream contents = %q, want %q", got, payload)
	}

	if err := rc.Close(); err != nil {
		t.Errorf("Close() after consumption failed: %v", err)
	}
}

// testNeverWrittenPath verifies that a path that was never written reports
// non-existence consistently across every query operation.
func testNeverWrittenPath(t *testing.T, factory AdapterFactory) {
	adapter := newAdapter(t, factory)
	ctx := t.Context()

	const path = "never/written.txt"

	ok, err := adapter.Has(ctx, path)
	if err != nil {
		t.Fatalf("Has() failed: %v", err)
	}
	if ok {
		t.Error("Has() = true for never-written path")
	}

	_, err = adapter.Read(ctx, path)
	assertNotFound(t, "Read()", err)

	_, err = adapter.Size(ctx, path)
	assertNotFound(t, "Size()", err)

	_, err = adapter.LastModified(ctx, path)
	assertNotFound(t, "LastModified()", err)

	_, err = adapter.MimeType(ctx, path)
	assertNotFound(t, "MimeType()", err)
}
