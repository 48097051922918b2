package storagetest

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/marmos91/stowfs/pkg/storage"
)

// clockTolerance bounds how far a backend-reported timestamp may drift from
// the harness clock. Object stores round to seconds and may skew slightly.
const clockTolerance = 2 * time.Minute

// runAttributeTests runs metadata conformance tests.
func runAttributeTests(t *testing.T, factory AdapterFactory) {
	t.Run("Size", func(t *testing.T) { testSize(t, factory) })
	t.Run("SizeOfDirectory", func(t *testing.T) { testSizeOfDirectory(t, factory) })
	t.Run("LastModified", func(t *testing.T) { testLastModified(t, factory) })
	t.Run("MimeTypeSVG", func(t *testing.T) { testMimeTypeSVG(t, factory) })
	t.Run("MimeTypeUndetectable", func(t *testing.T) { testMimeTypeUndetectable(t, factory) })
	t.Run("DeletedPathReportsAbsence", func(t *testing.T) { testDeletedPathAbsence(t, factory) })
}

// testSize verifies the reported content length.
func testSize(t *testing.T, factory AdapterFactory) {
	adapter := newAdapter(t, factory)
	ctx := t.Context()

	payload := []byte("exactly twenty bytes")
	writeFile(t, adapter, "sized.txt", payload, storage.WriteOptions{})

	size, err := adapter.Size(ctx, "sized.txt")
	if err != nil {
		t.Fatalf("Size() failed: %v", err)
	}
	if size != int64(len(payload)) {
		t.Errorf("Size() = %d, want %d", size, len(payload))
	}
}

// testSizeOfDirectory verifies size is undefined for directories.
func testSizeOfDirectory(t *testing.T, factory AdapterFactory) {
	adapter := newAdapter(t, factory)
	ctx := t.Context()

	if err := adapter.CreateDir(ctx, "dir", storage.WriteOptions{}); err != nil {
		t.Fatalf("CreateDir() failed: %v", err)
	}

	_, err := adapter.Size(ctx, "dir")
	if err == nil {
		t.Fatal("Size() of a directory should fail")
	}
	if !errors.Is(err, storage.ErrIsDirectory) {
		t.Errorf("Size() of directory = %v, want ErrIsDirectory", err)
	}
}

// testLastModified verifies the timestamp reflects the write within the
// backend's clock tolerance.
func testLastModified(t *testing.T, factory AdapterFactory) {
	adapter := newAdapter(t, factory)
	ctx := t.Context()

	before := time.Now()
	writeFile(t, adapter, "stamped.txt", []byte("contents"), storage.WriteOptions{})

	modTime, err := adapter.LastModified(ctx, "stamped.txt")
	if err != nil {
		t.Fatalf("LastModified() failed: %v", err)
	}

	if modTime.Before(before.Add(-clockTolerance)) || modTime.After(time.Now().Add(clockTolerance)) {
		t.Errorf("LastModified() = %v, outside tolerance around %v", modTime, before)
	}
}

// testMimeTypeSVG verifies content-based detection on the SVG fixture.
func testMimeTypeSVG(t *testing.T, factory AdapterFactory) {
	adapter := newAdapter(t, factory)
	ctx := t.Context()

	writeFile(t, adapter, "fixtures/flowchart.svg", svgFixture, storage.WriteOptions{})

	mime, err := adapter.MimeType(ctx, "fixtures/flowchart.svg")
	if err != nil {
		t.Fatalf("MimeType() failed: %v", err)
	}
	if !strings.HasPrefix(mime, "image/svg") {
		t.Errorf("MimeType() = %q, want image/svg prefix", mime)
	}
}

// testMimeTypeUndetectable verifies the unknown sentinel rather than a
// guessed type for content no detector recognizes.
func testMimeTypeUndetectable(t *testing.T, factory AdapterFactory) {
	adapter := newAdapter(t, factory)
	ctx := t.Context()

	writeFile(t, adapter, "fixtures/unknown.bin", binaryFixture, storage.WriteOptions{})

	_, err := adapter.MimeType(ctx, "fixtures/unknown.bin")
	if err == nil {
		t.Fatal("MimeType() of undetectable content should fail rather than guess")
	}
	if !errors.Is(err, storage.ErrUnknownMimeType) {
		t.Errorf("MimeType() = %v, want ErrUnknownMimeType", err)
	}
}

// testDeletedPathAbsence verifies a deleted path reports non-existence
// consistently, exactly like one that never existed.
func testDeletedPathAbsence(t *testing.T, factory AdapterFactory) {
	adapter := newAdapter(t, factory)
	ctx := t.Context()

	writeFile(t, adapter, "gone.txt", []byte("contents"), storage.WriteOptions{})
	if err := adapter.Delete(ctx, "gone.txt"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}

	ok, err := adapter.Has(ctx, "gone.txt")
	if err != nil {
		t.Fatalf("Has() failed: %v", err)
	}
	if ok {
		t.Error("Has() = true after deletion")
	}

	_, err = adapter.Size(ctx, "gone.txt")
	assertNotFound(t, "Size()", err)

	_, err = adapter.LastModified(ctx, "gone.txt")
	assertNotFound(t, "LastModified()", err)

	_, err = adapter.MimeType(ctx, "gone.txt")
	assertNotFound(t, "MimeType()", err)
}
