package storagetest

import (
	"bytes"
	"strings"
	"testing"

	"github.com/marmos91/stowfs/pkg/storage"
)

// runWritingTests runs all write-path conformance tests.
func runWritingTests(t *testing.T, factory AdapterFactory) {
	t.Run("RoundTrip", func(t *testing.T) { testWriteRoundTrip(t, factory) })
	t.Run("EmptyPayload", func(t *testing.T) { testWriteEmptyPayload(t, factory) })
	t.Run("Overwrite", func(t *testing.T) { testWriteOverwrite(t, factory) })
	t.Run("CreatesParentDirectories", func(t *testing.T) { testWriteCreatesParents(t, factory) })
	t.Run("SpecialCharacterPaths", func(t *testing.T) { testWriteSpecialCharacters(t, factory) })
	t.Run("Stream", func(t *testing.T) { testWriteStream(t, factory) })
	t.Run("EmptyStream", func(t *testing.T) { testWriteEmptyStream(t, factory) })
}

// testWriteRoundTrip verifies that written content is immediately readable
// byte for byte. The contract assumes no eventual consistency.
func testWriteRoundTrip(t *testing.T, factory AdapterFactory) {
	adapter := newAdapter(t, factory)
	ctx := t.Context()

	payload := []byte("contents")
	writeFile(t, adapter, "file.txt", payload, storage.WriteOptions{})

	got, err := adapter.Read(ctx, "file.txt")
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("Read() = %q, want %q", got, payload)
	}

	ok, err := adapter.Has(ctx, "file.txt")
	if err != nil {
		t.Fatalf("Has() failed: %v", err)
	}
	if !ok {
		t.Error("Has() = false after Write()")
	}
}

// testWriteEmptyPayload verifies the zero-length round trip.
func testWriteEmptyPayload(t *testing.T, factory AdapterFactory) {
	adapter := newAdapter(t, factory)
	ctx := t.Context()

	writeFile(t, adapter, "empty.txt", []byte{}, storage.WriteOptions{})

	got, err := adapter.Read(ctx, "empty.txt")
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Read() = %q, want empty", got)
	}

	size, err := adapter.Size(ctx, "empty.txt")
	if err != nil {
		t.Fatalf("Size() failed: %v", err)
	}
	if size != 0 {
		t.Errorf("Size() = %d, want 0", size)
	}
}

// testWriteOverwrite verifies that writing over an existing path replaces
// the content transparently.
func testWriteOverwrite(t *testing.T, factory AdapterFactory) {
	adapter := newAdapter(t, factory)
	ctx := t.Context()

	writeFile(t, adapter, "file.txt", []byte("first"), storage.WriteOptions{})
	writeFile(t, adapter, "file.txt", []byte("second"), storage.WriteOptions{})

	got, err := adapter.Read(ctx, "file.txt")
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if string(got) != "second" {
		t.Errorf("Read() = %q, want %q", got, "second")
	}

	// Overwriting must not duplicate the listing entry
	entries, err := adapter.ListContents(ctx, "", false)
	if err != nil {
		t.Fatalf("ListContents() failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("ListContents() returned %d entries, want 1", len(entries))
	}
}

// testWriteCreatesParents verifies parent directories appear implicitly.
func testWriteCreatesParents(t *testing.T, factory AdapterFactory) {
	adapter := newAdapter(t, factory)
	ctx := t.Context()

	writeFile(t, adapter, "deeply/nested/file.txt", []byte("contents"), storage.WriteOptions{})

	got, err := adapter.Read(ctx, "deeply/nested/file.txt")
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if string(got) != "contents" {
		t.Errorf("Read() = %q, want %q", got, "contents")
	}

	ok, err := adapter.Has(ctx, "deeply/nested")
	if err != nil {
		t.Fatalf("Has() failed: %v", err)
	}
	if !ok {
		t.Error("Has(parent dir) = false after nested write")
	}
}

// testWriteSpecialCharacters verifies that brackets, braces and spaces in
// paths are treated as ordinary bytes, never as glob syntax.
func testWriteSpecialCharacters(t *testing.T, factory AdapterFactory) {
	adapter := newAdapter(t, factory)
	ctx := t.Context()

	paths := []string{
		"some/file[name].txt",
		"some/file{name}.txt",
		"some dir/file name.txt",
		"brackets [and] {braces} mixed.bin",
	}

	for _, path := range paths {
		writeFile(t, adapter, path, []byte("contents"), storage.WriteOptions{})

		got, err := adapter.Read(ctx, path)
		if err != nil {
			t.Fatalf("Read(%q) failed: %v", path, err)
		}
		if string(got) != "contents" {
			t.Errorf("Read(%q) = %q, want %q", path, got, "contents")
		}
	}
}

// testWriteStream verifies WriteStream from a lazy reader.
func testWriteStream(t *testing.T, factory AdapterFactory) {
	adapter := newAdapter(t, factory)
	ctx := t.Context()

	err := adapter.WriteStream(ctx, "streamed.txt", strings.NewReader("streamed contents"), storage.WriteOptions{})
	if err != nil {
		t.Fatalf("WriteStream() failed: %v", err)
	}

	got, err := adapter.Read(ctx, "streamed.txt")
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if string(got) != "streamed contents" {
		t.Errorf("Read() = %q, want %q", got, "streamed contents")
	}
}

// testWriteEmptyStream verifies an empty stream yields a zero-length file.
func testWriteEmptyStream(t *testing.T, factory AdapterFactory) {
	adapter := newAdapter(t, factory)
	ctx := t.Context()

	err := adapter.WriteStream(ctx, "empty-stream.txt", strings.NewReader(""), storage.WriteOptions{})
	if err != nil {
		t.Fatalf("WriteStream() failed: %v", err)
	}

	size, err := adapter.Size(ctx, "empty-stream.txt")
	if err != nil {
		t.Fatalf("Size() failed: %v", err)
	}
	if size != 0 {
		t.Errorf("Size() = %d, want 0", size)
	}
}
