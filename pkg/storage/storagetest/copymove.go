package storagetest

import (
	"testing"

	"github.com/marmos91/stowfs/pkg/storage"
)

// runCopyMoveTests runs copy and rename conformance tests.
func runCopyMoveTests(t *testing.T, factory AdapterFactory) {
	t.Run("Copy", func(t *testing.T) { testCopy(t, factory) })
	t.Run("CopyOverwritesDestination", func(t *testing.T) { testCopyOverwrites(t, factory) })
	t.Run("CopyMissingSource", func(t *testing.T) { testCopyMissingSource(t, factory) })
	t.Run("CopyCarriesVisibility", func(t *testing.T) { testCopyCarriesVisibility(t, factory) })
	t.Run("Rename", func(t *testing.T) { testRename(t, factory) })
	t.Run("RenameMissingSource", func(t *testing.T) { testRenameMissingSource(t, factory) })
	t.Run("RenameOverwritesDestination", func(t *testing.T) { testRenameOverwrites(t, factory) })
}

// testCopy verifies duplication leaves the source intact.
func testCopy(t *testing.T, factory AdapterFactory) {
	adapter := newAdapter(t, factory)
	ctx := t.Context()

	writeFile(t, adapter, "source.txt", []byte("contents"), storage.WriteOptions{})

	ok, err := adapter.Copy(ctx, "source.txt", "destination.txt")
	if err != nil {
		t.Fatalf("Copy() failed: %v", err)
	}
	if !ok {
		t.Fatal("Copy() = false for existing source")
	}

	for _, path := range []string{"source.txt", "destination.txt"} {
		got, err := adapter.Read(ctx, path)
		if err != nil {
			t.Fatalf("Read(%q) failed: %v", path, err)
		}
		if string(got) != "contents" {
			t.Errorf("Read(%q) = %q, want %q", path, got, "contents")
		}
	}
}

// testCopyOverwrites verifies last-write-wins collision policy: copying onto
// an existing destination replaces it, never merges or rejects.
func testCopyOverwrites(t *testing.T, factory AdapterFactory) {
	adapter := newAdapter(t, factory)
	ctx := t.Context()

	writeFile(t, adapter, "a.txt", []byte("from a"), storage.WriteOptions{})
	writeFile(t, adapter, "b.txt", []byte("from b"), storage.WriteOptions{})

	ok, err := adapter.Copy(ctx, "a.txt", "b.txt")
	if err != nil {
		t.Fatalf("Copy() failed: %v", err)
	}
	if !ok {
		t.Fatal("Copy() = false for existing source")
	}

	got, err := adapter.Read(ctx, "b.txt")
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if string(got) != "from a" {
		t.Errorf("Read(b.txt) = %q, want %q", got, "from a")
	}
}

// testCopyMissingSource verifies (false, nil) for absent sources.
func testCopyMissingSource(t *testing.T, factory AdapterFactory) {
	adapter := newAdapter(t, factory)
	ctx := t.Context()

	ok, err := adapter.Copy(ctx, "missing.txt", "destination.txt")
	if err != nil {
		t.Fatalf("Copy() of missing source should not fault, got: %v", err)
	}
	if ok {
		t.Error("Copy() = true for missing source")
	}

	exists, err := adapter.Has(ctx, "destination.txt")
	if err != nil {
		t.Fatalf("Has() failed: %v", err)
	}
	if exists {
		t.Error("Copy() of missing source created the destination")
	}
}

// testCopyCarriesVisibility verifies visibility propagates with a copy on
// adapters that support the capability.
func testCopyCarriesVisibility(t *testing.T, factory AdapterFactory) {
	adapter := newAdapter(t, factory)
	if storage.AsVisibilityAdapter(adapter) == nil {
		t.Skip("adapter does not support visibility")
	}
	ctx := t.Context()

	writeFile(t, adapter, "secret.txt", []byte("contents"), storage.WriteOptions{
		Visibility: storage.VisibilityPrivate,
	})

	ok, err := adapter.Copy(ctx, "secret.txt", "copied.txt")
	if err != nil {
		t.Fatalf("Copy() failed: %v", err)
	}
	if !ok {
		t.Fatal("Copy() = false for existing source")
	}

	visibility, err := storage.GetVisibility(ctx, adapter, "copied.txt")
	if err != nil {
		t.Fatalf("GetVisibility() failed: %v", err)
	}
	if visibility != storage.VisibilityPrivate {
		t.Errorf("copied visibility = %q, want %q", visibility, storage.VisibilityPrivate)
	}
}

// testRename verifies move semantics: destination holds the pre-move
// contents and the source is gone.
func testRename(t *testing.T, factory AdapterFactory) {
	adapter := newAdapter(t, factory)
	ctx := t.Context()

	writeFile(t, adapter, "old.txt", []byte("contents"), storage.WriteOptions{})

	ok, err := adapter.Rename(ctx, "old.txt", "new.txt")
	if err != nil {
		t.Fatalf("Rename() failed: %v", err)
	}
	if !ok {
		t.Fatal("Rename() = false for existing source")
	}

	exists, err := adapter.Has(ctx, "old.txt")
	if err != nil {
		t.Fatalf("Has() failed: %v", err)
	}
	if exists {
		t.Error("source still exists after Rename()")
	}

	got, err := adapter.Read(ctx, "new.txt")
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if string(got) != "contents" {
		t.Errorf("Read(new.txt) = %q, want %q", got, "contents")
	}
}

// testRenameMissingSource verifies (false, nil) and no partial state change.
func testRenameMissingSource(t *testing.T, factory AdapterFactory) {
	adapter := newAdapter(t, factory)
	ctx := t.Context()

	ok, err := adapter.Rename(ctx, "missing.txt", "destination.txt")
	if err != nil {
		t.Fatalf("Rename() of missing source should not fault, got: %v", err)
	}
	if ok {
		t.Error("Rename() = true for missing source")
	}

	exists, err := adapter.Has(ctx, "destination.txt")
	if err != nil {
		t.Fatalf("Has() failed: %v", err)
	}
	if exists {
		t.Error("Rename() of missing source created the destination")
	}
}

// testRenameOverwrites verifies renaming onto an existing path replaces it.
func testRenameOverwrites(t *testing.T, factory AdapterFactory) {
	adapter := newAdapter(t, factory)
	ctx := t.Context()

	writeFile(t, adapter, "source.txt", []byte("new contents"), storage.WriteOptions{})
	writeFile(t, adapter, "target.txt", []byte("stale contents"), storage.WriteOptions{})

	ok, err := adapter.Rename(ctx, "source.txt", "target.txt")
	if err != nil {
		t.Fatalf("Rename() failed: %v", err)
	}
	if !ok {
		t.Fatal("Rename() = false for existing source")
	}

	got, err := adapter.Read(ctx, "target.txt")
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if string(got) != "new contents" {
		t.Errorf("Read(target.txt) = %q, want %q", got, "new contents")
	}
}
