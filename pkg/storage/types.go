package storage

import (
	"encoding/json"
	"time"
)

// Visibility is an access-control hint attached to a stored object.
// How (and whether) it maps to real access control is backend-specific:
// the filesystem adapter maps it to permission bits, the memory and badger
// adapters store it verbatim, and the S3 adapter does not support it at all.
type Visibility string

const (
	// VisibilityPublic marks an object as world-readable.
	VisibilityPublic Visibility = "public"

	// VisibilityPrivate marks an object as owner-only.
	VisibilityPrivate Visibility = "private"
)

// Valid reports whether v is one of the defined visibility values.
func (v Visibility) Valid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

// Kind distinguishes files from directories in listings and metadata records.
type Kind int

const (
	// KindFile is a regular file entry.
	KindFile Kind = iota

	// KindDirectory is a directory entry.
	KindDirectory
)

// String returns a human-readable name for the entry kind.
func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "dir"
	default:
		return "unknown"
	}
}

// MarshalJSON renders the kind as its string name.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// MarshalYAML renders the kind as its string name.
func (k Kind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// Entry describes one entry in an adapter namespace. Entries are produced
// by listings and metadata queries; they are never persisted by callers.
//
// Size and MimeType are only meaningful for KindFile. Visibility is only
// populated by adapters that support the visibility capability.
type Entry struct {
	// Kind is the entry type (file or directory).
	Kind Kind

	// Path is the normalized forward-slash path of the entry.
	Path string

	// Size is the content length in bytes. Zero for directories.
	Size int64

	// ModTime is the last modification time as reported by the backend.
	ModTime time.Time

	// Visibility is the access hint, if the adapter supports it.
	Visibility Visibility

	// MimeType is the detected content type, if known.
	MimeType string
}

// IsFile reports whether the entry is a regular file.
func (e Entry) IsFile() bool { return e.Kind == KindFile }

// IsDir reports whether the entry is a directory.
func (e Entry) IsDir() bool { return e.Kind == KindDirectory }

// WriteOptions carries per-write settings.
type WriteOptions struct {
	// Visibility to apply to the written object. Empty means the adapter
	// default. Adapters without visibility support ignore this field.
	Visibility Visibility

	// DirVisibility to apply to directories created implicitly for the
	// write (or explicitly by CreateDir). Empty means the adapter default.
	DirVisibility Visibility
}
