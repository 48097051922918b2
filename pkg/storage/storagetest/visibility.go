package storagetest

import (
	"testing"

	"github.com/marmos91/stowfs/pkg/storage"
)

// runVisibilityTests branches on the adapter's declared capability: adapters
// with visibility support must honor the full sub-contract, adapters without
// it must fail every visibility call with the unsupported sentinel — never
// both.
func runVisibilityTests(t *testing.T, factory AdapterFactory) {
	probe := factory(t)
	if probe == nil {
		t.Skip("adapter factory returned no instance")
	}
	supported := storage.GetCapabilities(probe).Visibility

	if supported {
		t.Run("WriteWithVisibility", func(t *testing.T) { testWriteWithVisibility(t, factory) })
		t.Run("SetVisibility", func(t *testing.T) { testSetVisibility(t, factory) })
		t.Run("MissingPath", func(t *testing.T) { testVisibilityMissingPath(t, factory) })
		return
	}

	t.Run("Unsupported", func(t *testing.T) { testVisibilityUnsupported(t, factory) })
}

// testWriteWithVisibility verifies the write option round-trips.
func testWriteWithVisibility(t *testing.T, factory AdapterFactory) {
	adapter := newAdapter(t, factory)
	ctx := t.Context()

	writeFile(t, adapter, "public.txt", []byte("contents"), storage.WriteOptions{
		Visibility: storage.VisibilityPublic,
	})
	writeFile(t, adapter, "private.txt", []byte("contents"), storage.WriteOptions{
		Visibility: storage.VisibilityPrivate,
	})

	for path, want := range map[string]storage.Visibility{
		"public.txt":  storage.VisibilityPublic,
		"private.txt": storage.VisibilityPrivate,
	} {
		got, err := storage.GetVisibility(ctx, adapter, path)
		if err != nil {
			t.Fatalf("GetVisibility(%q) failed: %v", path, err)
		}
		if got != want {
			t.Errorf("GetVisibility(%q) = %q, want %q", path, got, want)
		}
	}
}

// testSetVisibility verifies mutation and the returned metadata record.
func testSetVisibility(t *testing.T, factory AdapterFactory) {
	adapter := newAdapter(t, factory)
	ctx := t.Context()

	writeFile(t, adapter, "file.txt", []byte("contents"), storage.WriteOptions{
		Visibility: storage.VisibilityPublic,
	})

	entry, err := storage.SetVisibility(ctx, adapter, "file.txt", storage.VisibilityPrivate)
	if err != nil {
		t.Fatalf("SetVisibility() failed: %v", err)
	}
	if entry.Visibility != storage.VisibilityPrivate {
		t.Errorf("returned record visibility = %q, want %q", entry.Visibility, storage.VisibilityPrivate)
	}
	if entry.Path != "file.txt" {
		t.Errorf("returned record path = %q, want %q", entry.Path, "file.txt")
	}

	got, err := storage.GetVisibility(ctx, adapter, "file.txt")
	if err != nil {
		t.Fatalf("GetVisibility() failed: %v", err)
	}
	if got != storage.VisibilityPrivate {
		t.Errorf("GetVisibility() = %q, want %q", got, storage.VisibilityPrivate)
	}
}

// testVisibilityMissingPath verifies the absence sentinel on the supported
// branch.
func testVisibilityMissingPath(t *testing.T, factory AdapterFactory) {
	adapter := newAdapter(t, factory)
	ctx := t.Context()

	_, err := storage.GetVisibility(ctx, adapter, "missing.txt")
	assertNotFound(t, "GetVisibility()", err)

	_, err = storage.SetVisibility(ctx, adapter, "missing.txt", storage.VisibilityPublic)
	assertNotFound(t, "SetVisibility()", err)
}

// testVisibilityUnsupported verifies every visibility call raises the
// unsupported sentinel, even against existing paths.
func testVisibilityUnsupported(t *testing.T, factory AdapterFactory) {
	adapter := newAdapter(t, factory)
	ctx := t.Context()

	writeFile(t, adapter, "file.txt", []byte("contents"), storage.WriteOptions{})

	_, err := storage.GetVisibility(ctx, adapter, "file.txt")
	if !storage.IsNotSupported(err) {
		t.Errorf("GetVisibility() = %v, want ErrNotSupported", err)
	}

	// Missing paths must report unsupported too, not absence
	_, err = storage.GetVisibility(ctx, adapter, "missing.txt")
	if !storage.IsNotSupported(err) {
		t.Errorf("GetVisibility(missing) = %v, want ErrNotSupported", err)
	}

	_, err = storage.SetVisibility(ctx, adapter, "file.txt", storage.VisibilityPrivate)
	if !storage.IsNotSupported(err) {
		t.Errorf("SetVisibility() = %v, want ErrNotSupported", err)
	}
}
