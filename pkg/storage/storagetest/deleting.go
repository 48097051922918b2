package storagetest

import (
	"testing"

	"github.com/marmos91/stowfs/pkg/storage"
)

// runDeletingTests runs deletion and directory conformance tests.
func runDeletingTests(t *testing.T, factory AdapterFactory) {
	t.Run("RootExists", func(t *testing.T) { testRootExists(t, factory) })
	t.Run("DeleteFile", func(t *testing.T) { testDeleteFile(t, factory) })
	t.Run("DeleteMissingFileIsNoop", func(t *testing.T) { testDeleteMissingFile(t, factory) })
	t.Run("DeleteDirRecursive", func(t *testing.T) { testDeleteDirRecursive(t, factory) })
	t.Run("DeleteMissingDirIsNoop", func(t *testing.T) { testDeleteMissingDir(t, factory) })
	t.Run("DeleteDirOnFilePathIsNoop", func(t *testing.T) { testDeleteDirOnFilePath(t, factory) })
	t.Run("CreateDir", func(t *testing.T) { testCreateDir(t, factory) })
	t.Run("CreateDirIdempotent", func(t *testing.T) { testCreateDirIdempotent(t, factory) })
}

// testRootExists verifies the root reports existence even when empty.
func testRootExists(t *testing.T, factory AdapterFactory) {
	adapter := newAdapter(t, factory)

	ok, err := adapter.Has(t.Context(), "")
	if err != nil {
		t.Fatalf("Has() of root failed: %v", err)
	}
	if !ok {
		t.Error("Has() of root = false, the root always exists")
	}
}

// testDeleteFile verifies deletion removes a file and its queryability.
func testDeleteFile(t *testing.T, factory AdapterFactory) {
	adapter := newAdapter(t, factory)
	ctx := t.Context()

	writeFile(t, adapter, "doomed.txt", []byte("contents"), storage.WriteOptions{})

	if err := adapter.Delete(ctx, "doomed.txt"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}

	ok, err := adapter.Has(ctx, "doomed.txt")
	if err != nil {
		t.Fatalf("Has() failed: %v", err)
	}
	if ok {
		t.Error("Has() = true after Delete()")
	}

	_, err = adapter.Read(ctx, "doomed.txt")
	assertNotFound(t, "Read() after Delete()", err)
}

// testDeleteMissingFile verifies deleting a non-existent file is a no-op.
func testDeleteMissingFile(t *testing.T, factory AdapterFactory) {
	adapter := newAdapter(t, factory)

	if err := adapter.Delete(t.Context(), "never-existed.txt"); err != nil {
		t.Fatalf("Delete() of missing file should be a no-op, got: %v", err)
	}
}

// testDeleteDirRecursive verifies DeleteDir removes the directory and
// everything beneath it.
func testDeleteDirRecursive(t *testing.T, factory AdapterFactory) {
	adapter := newAdapter(t, factory)
	ctx := t.Context()

	writeFile(t, adapter, "dir/a.txt", []byte("a"), storage.WriteOptions{})
	writeFile(t, adapter, "dir/sub/b.txt", []byte("b"), storage.WriteOptions{})

	if err := adapter.DeleteDir(ctx, "dir"); err != nil {
		t.Fatalf("DeleteDir() failed: %v", err)
	}

	for _, path := range []string{"dir", "dir/a.txt", "dir/sub", "dir/sub/b.txt"} {
		ok, err := adapter.Has(ctx, path)
		if err != nil {
			t.Fatalf("Has(%q) failed: %v", path, err)
		}
		if ok {
			t.Errorf("Has(%q) = true after DeleteDir()", path)
		}
	}
}

// testDeleteMissingDir verifies deleting a non-existent directory is a no-op.
func testDeleteMissingDir(t *testing.T, factory AdapterFactory) {
	adapter := newAdapter(t, factory)

	if err := adapter.DeleteDir(t.Context(), "never/existed"); err != nil {
		t.Fatalf("DeleteDir() of missing directory should be a no-op, got: %v", err)
	}
}

// testDeleteDirOnFilePath verifies DeleteDir never removes a file that
// happens to sit at the given path.
func testDeleteDirOnFilePath(t *testing.T, factory AdapterFactory) {
	adapter := newAdapter(t, factory)
	ctx := t.Context()

	writeFile(t, adapter, "solo.txt", []byte("still here"), storage.WriteOptions{})

	if err := adapter.DeleteDir(ctx, "solo.txt"); err != nil {
		t.Fatalf("DeleteDir() on a file path should be a no-op, got: %v", err)
	}

	contents, err := adapter.Read(ctx, "solo.txt")
	if err != nil {
		t.Fatalf("Read() after DeleteDir() on file path failed: %v", err)
	}
	if string(contents) != "still here" {
		t.Errorf("Read() = %q after DeleteDir() on file path, want %q", contents, "still here")
	}
}

// testCreateDir verifies explicit directory creation.
func testCreateDir(t *testing.T, factory AdapterFactory) {
	adapter := newAdapter(t, factory)
	ctx := t.Context()

	if err := adapter.CreateDir(ctx, "fresh/dir", storage.WriteOptions{}); err != nil {
		t.Fatalf("CreateDir() failed: %v", err)
	}

	ok, err := adapter.Has(ctx, "fresh/dir")
	if err != nil {
		t.Fatalf("Has() failed: %v", err)
	}
	if !ok {
		t.Error("Has() = false after CreateDir()")
	}
}

// testCreateDirIdempotent verifies repeated creation neither fails nor
// duplicates the listing entry.
func testCreateDirIdempotent(t *testing.T, factory AdapterFactory) {
	adapter := newAdapter(t, factory)
	ctx := t.Context()

	if err := adapter.CreateDir(ctx, "dir", storage.WriteOptions{}); err != nil {
		t.Fatalf("CreateDir() failed: %v", err)
	}
	if err := adapter.CreateDir(ctx, "dir", storage.WriteOptions{}); err != nil {
		t.Fatalf("second CreateDir() should be a no-op, got: %v", err)
	}

	entries, err := adapter.ListContents(ctx, "", false)
	if err != nil {
		t.Fatalf("ListContents() failed: %v", err)
	}

	count := 0
	for _, entry := range entries {
		if entry.Path == "dir" {
			count++
			if !entry.IsDir() {
				t.Errorf("entry %q has kind %v, want directory", entry.Path, entry.Kind)
			}
		}
	}
	if count != 1 {
		t.Errorf("shallow listing contains %d entries named %q, want exactly 1", count, "dir")
	}
}
