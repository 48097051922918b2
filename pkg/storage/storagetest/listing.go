package storagetest

import (
	"sort"
	"testing"

	"github.com/marmos91/stowfs/pkg/storage"
)

// runListingTests runs listing conformance tests.
func runListingTests(t *testing.T, factory AdapterFactory) {
	t.Run("EmptyRoot", func(t *testing.T) { testListEmptyRoot(t, factory) })
	t.Run("ShallowAndRecursivePartition", func(t *testing.T) { testListPartition(t, factory) })
	t.Run("Subdirectory", func(t *testing.T) { testListSubdirectory(t, factory) })
	t.Run("MissingDirectory", func(t *testing.T) { testListMissingDirectory(t, factory) })
}

// testListEmptyRoot verifies a blank namespace lists as empty.
func testListEmptyRoot(t *testing.T, factory AdapterFactory) {
	adapter := newAdapter(t, factory)

	entries, err := adapter.ListContents(t.Context(), "", false)
	if err != nil {
		t.Fatalf("ListContents() failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("ListContents() of empty root returned %d entries: %v", len(entries), entries)
	}
}

// testListPartition builds one top-level file plus one top-level directory
// containing one file, and verifies the shallow/recursive partitioning:
// shallow sees 2 entries (one file, one dir), recursive sees exactly the 2
// descendant files and no directory entries.
func testListPartition(t *testing.T, factory AdapterFactory) {
	adapter := newAdapter(t, factory)
	ctx := t.Context()

	writeFile(t, adapter, "top.txt", []byte("top"), storage.WriteOptions{})
	writeFile(t, adapter, "nested/inner.txt", []byte("inner"), storage.WriteOptions{})

	shallow, err := adapter.ListContents(ctx, "", false)
	if err != nil {
		t.Fatalf("ListContents(shallow) failed: %v", err)
	}
	if len(shallow) != 2 {
		t.Fatalf("shallow listing returned %d entries, want 2: %v", len(shallow), shallow)
	}

	sort.Slice(shallow, func(i, j int) bool { return shallow[i].Path < shallow[j].Path })
	if shallow[0].Path != "nested" || !shallow[0].IsDir() {
		t.Errorf("entry 0 = %+v, want directory %q", shallow[0], "nested")
	}
	if shallow[1].Path != "top.txt" || !shallow[1].IsFile() {
		t.Errorf("entry 1 = %+v, want file %q", shallow[1], "top.txt")
	}

	recursive, err := adapter.ListContents(ctx, "", true)
	if err != nil {
		t.Fatalf("ListContents(recursive) failed: %v", err)
	}
	if len(recursive) != 2 {
		t.Fatalf("recursive listing returned %d entries, want 2 files: %v", len(recursive), recursive)
	}
	for _, entry := range recursive {
		if !entry.IsFile() {
			t.Errorf("recursive listing contains non-file entry %+v", entry)
		}
	}

	sort.Slice(recursive, func(i, j int) bool { return recursive[i].Path < recursive[j].Path })
	if recursive[0].Path != "nested/inner.txt" {
		t.Errorf("recursive entry 0 path = %q, want %q", recursive[0].Path, "nested/inner.txt")
	}
	if recursive[1].Path != "top.txt" {
		t.Errorf("recursive entry 1 path = %q, want %q", recursive[1].Path, "top.txt")
	}
}

// testListSubdirectory verifies listing scoped to a directory reports paths
// relative to the adapter root, not the listed directory.
func testListSubdirectory(t *testing.T, factory AdapterFactory) {
	adapter := newAdapter(t, factory)
	ctx := t.Context()

	writeFile(t, adapter, "dir/one.txt", []byte("1"), storage.WriteOptions{})
	writeFile(t, adapter, "dir/two.txt", []byte("2"), storage.WriteOptions{})
	writeFile(t, adapter, "elsewhere.txt", []byte("x"), storage.WriteOptions{})

	entries, err := adapter.ListContents(ctx, "dir", false)
	if err != nil {
		t.Fatalf("ListContents() failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("ListContents(dir) returned %d entries, want 2: %v", len(entries), entries)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	if entries[0].Path != "dir/one.txt" {
		t.Errorf("entry 0 path = %q, want %q", entries[0].Path, "dir/one.txt")
	}
	if entries[1].Path != "dir/two.txt" {
		t.Errorf("entry 1 path = %q, want %q", entries[1].Path, "dir/two.txt")
	}
}

// testListMissingDirectory verifies listing a directory that doesn't exist
// yields an empty result rather than a fault.
func testListMissingDirectory(t *testing.T, factory AdapterFactory) {
	adapter := newAdapter(t, factory)

	entries, err := adapter.ListContents(t.Context(), "no/such/dir", false)
	if err != nil {
		t.Fatalf("ListContents() of missing directory failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("ListContents() of missing directory returned %d entries", len(entries))
	}
}
