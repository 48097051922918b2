package storagetest

import (
	_ "embed"
	"testing"

	"github.com/marmos91/stowfs/pkg/storage"
)

// AdapterFactory creates (or returns a shared) adapter instance for a test.
// The factory receives *testing.T so it can use t.TempDir() for adapters
// that need filesystem paths and t.Cleanup() for teardown. Returning nil
// signals that the backend is unavailable and makes the scenario skip
// instead of fail.
type AdapterFactory func(t *testing.T) storage.Adapter

// cleanupAttempts bounds the retry loop around pre-scenario cleanup.
// Transient backend errors (e.g. object-store eventual listing) get a couple
// of chances; there is deliberately no backoff.
const cleanupAttempts = 3

// Fixture payloads referenced by the content-type scenarios: a recognizable
// SVG image and a blob no detector has a magic number for.
var (
	//go:embed testdata/flowchart.svg
	svgFixture []byte

	//go:embed testdata/unknown.bin
	binaryFixture []byte
)

// RunConformanceSuite runs the full conformance test suite against the
// provided adapter factory.
//
// The suite covers:
//   - Writing: round-trips (including empty payloads), overwrites, streams,
//     implicit parent creation, special characters in paths
//   - Reading: absence sentinels, stream consumption and release
//   - Existence and deletion: Has (the root always exists), missing-file
//     no-ops, recursive DeleteDir, DeleteDir on a file path as a no-op
//   - Directories: idempotent creation
//   - Listing: shallow/recursive partitioning
//   - CopyAndMove: collision overwrite, absent-source results, visibility
//     propagation
//   - Attributes: size, last-modified, mime type and their sentinels
//   - Visibility: both the supported and the unsupported capability branch
func RunConformanceSuite(t *testing.T, factory AdapterFactory) {
	t.Helper()

	t.Run("Writing", func(t *testing.T) {
		runWritingTests(t, factory)
	})

	t.Run("Reading", func(t *testing.T) {
		runReadingTests(t, factory)
	})

	t.Run("Deleting", func(t *testing.T) {
		runDeletingTests(t, factory)
	})

	t.Run("Listing", func(t *testing.T) {
		runListingTests(t, factory)
	})

	t.Run("CopyAndMove", func(t *testing.T) {
		runCopyMoveTests(t, factory)
	})

	t.Run("Attributes", func(t *testing.T) {
		runAttributeTests(t, factory)
	})

	t.Run("Visibility", func(t *testing.T) {
		runVisibilityTests(t, factory)
	})
}

// newAdapter obtains an adapter from the factory and empties its backing
// store so the scenario starts from a blank namespace.
func newAdapter(t *testing.T, factory AdapterFactory) storage.Adapter {
	t.Helper()

	adapter := factory(t)
	if adapter == nil {
		// Construction failure: skip the scenario rather than cascade a
		// backend outage into a false contract violation.
		t.Skip("adapter factory returned no instance")
	}

	clearStorage(t, adapter)
	return adapter
}

// clearStorage enumerates all top-level entries and removes them,
// recursively for directories.
func clearStorage(t *testing.T, adapter storage.Adapter) {
	t.Helper()

	ctx := t.Context()
	err := withRetries(cleanupAttempts, func() error {
		entries, err := adapter.ListContents(ctx, "", false)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			if entry.IsDir() {
				if err := adapter.DeleteDir(ctx, entry.Path); err != nil {
					return err
				}
			} else if err := adapter.Delete(ctx, entry.Path); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("failed to clear storage before scenario: %v", err)
	}
}

// withRetries runs fn up to attempts times, returning the last error.
func withRetries(attempts int, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
	}
	return err
}

// writeFile is a fixture helper: it provisions a file and fails the
// scenario on error.
func writeFile(t *testing.T, adapter storage.Adapter, path string, contents []byte, opts storage.WriteOptions) {
	t.Helper()

	if err := adapter.Write(t.Context(), path, contents, opts); err != nil {
		t.Fatalf("Write(%q) failed during setup: %v", path, err)
	}
}

// assertNotFound fails unless err is the absence sentinel.
func assertNotFound(t *testing.T, op string, err error) {
	t.Helper()

	if err == nil {
		t.Fatalf("%s should have reported absence", op)
	}
	if !storage.IsNotFound(err) {
		t.Fatalf("%s = %v, want ErrNotFound", op, err)
	}
}
