// Package storage defines the adapter contract shared by all stowfs storage
// backends, together with the sentinel errors, metadata records and
// capability-detection helpers that make up the contract surface.
//
// An Adapter exposes a flat, path-addressed namespace. Paths are normalized,
// forward-slash separated strings relative to the adapter root; bracket,
// brace and space characters in paths are ordinary bytes and are never
// interpreted as pattern syntax. Every implementation is expected to pass
// the conformance suite in pkg/storage/storagetest.
package storage

import (
	"context"
	"io"
	"time"
)

// Adapter is the contract implemented by every storage backend.
//
// Absence semantics are uniform across the interface: read-type queries
// against a missing path return ErrNotFound, delete-type mutations against
// a missing path are no-ops, and Copy/Rename report a missing source as
// (false, nil) without touching the destination. A path that has never been
// written, or has been deleted, reports non-existence consistently across
// Has, Read, Size, LastModified and MimeType.
//
// Adapters are responsible for their own internal thread-safety; the
// contract itself assumes a single logical caller and defines no
// cancellation semantics beyond honoring the passed context.
type Adapter interface {
	// Write stores contents at path, creating missing parent directories
	// and transparently overwriting any existing content.
	Write(ctx context.Context, path string, contents []byte, opts WriteOptions) error

	// WriteStream is Write with a lazy byte source. An empty stream
	// produces a zero-length file.
	WriteStream(ctx context.Context, path string, r io.Reader, opts WriteOptions) error

	// Read returns the complete contents at path.
	// Returns ErrNotFound if the path is absent.
	Read(ctx context.Context, path string) ([]byte, error)

	// ReadStream returns a reader over the contents at path. The caller
	// must close the returned reader on every exit path.
	// Returns ErrNotFound if the path is absent.
	ReadStream(ctx context.Context, path string) (io.ReadCloser, error)

	// Has reports whether a file or directory exists at path. The root
	// (the empty path) always exists.
	Has(ctx context.Context, path string) (bool, error)

	// Delete removes the file at path. Deleting a missing file is a no-op.
	// Returns ErrIsDirectory when path names a directory.
	Delete(ctx context.Context, path string) error

	// DeleteDir recursively removes the directory at path and everything
	// beneath it. Deleting a missing directory is a no-op, and so is
	// invoking it on a path that names a file: DeleteDir never removes
	// files that are not inside the doomed directory.
	DeleteDir(ctx context.Context, path string) error

	// CreateDir creates the directory at path together with missing
	// parents. Creating an existing directory is a no-op and must not
	// duplicate listing entries.
	CreateDir(ctx context.Context, path string, opts WriteOptions) error

	// Copy duplicates the file at source to destination, overwriting any
	// existing destination (last write wins). Visibility is carried over
	// where the adapter supports it. Returns (false, nil) when the source
	// is absent.
	Copy(ctx context.Context, source, destination string) (bool, error)

	// Rename moves the file at source to destination with move intent:
	// after a successful rename the source no longer exists. Returns
	// (false, nil) when the source is absent, leaving all state untouched.
	Rename(ctx context.Context, source, destination string) (bool, error)

	// ListContents enumerates the directory at path. A shallow listing
	// returns immediate children only, files and subdirectories as
	// distinct entries; a recursive listing returns every descendant file
	// (directories are not separately reported). Order is unspecified.
	// Listing a missing directory returns an empty result.
	ListContents(ctx context.Context, path string, recursive bool) ([]Entry, error)

	// Size returns the content length of the file at path.
	// Returns ErrNotFound when absent and ErrIsDirectory for directories,
	// whose size is undefined.
	Size(ctx context.Context, path string) (int64, error)

	// LastModified returns the last-modification time of path within the
	// backend's clock tolerance. Returns ErrNotFound when absent.
	LastModified(ctx context.Context, path string) (time.Time, error)

	// MimeType returns the detected content type of the file at path.
	// Returns ErrNotFound when absent and ErrUnknownMimeType when the
	// type cannot be determined; it never guesses.
	MimeType(ctx context.Context, path string) (string, error)

	// Close releases backend resources. Operations after Close return
	// ErrStoreClosed.
	Close() error
}

// VisibilityAdapter is the optional visibility capability. Adapters that
// support the public/private access hint implement it in addition to
// Adapter; adapters that do not simply omit it, and the package-level
// GetVisibility/SetVisibility helpers surface ErrNotSupported instead.
type VisibilityAdapter interface {
	// Visibility returns the access hint of the entry at path.
	// Returns ErrNotFound when the path is absent.
	Visibility(ctx context.Context, path string) (Visibility, error)

	// SetVisibility mutates the access hint of the entry at path and
	// returns the updated metadata record.
	// Returns ErrNotFound when the path is absent.
	SetVisibility(ctx context.Context, path string, visibility Visibility) (Entry, error)
}
