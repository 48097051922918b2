package storage

import "errors"

// Standard adapter errors. Callers should check for these with errors.Is
// rather than comparing error strings.
//
// Expected-absence conditions (a query against a path that does not exist)
// are always reported through these sentinels, never through ad-hoc errors,
// so that the conformance suite and any caller can branch on them reliably.
var (
	// ErrNotFound indicates the requested path does not exist.
	ErrNotFound = errors.New("path not found")

	// ErrNotSupported indicates the adapter does not implement an optional
	// capability (currently only visibility). This is a distinguishable
	// fault, not an absence signal: callers are expected to consult
	// GetCapabilities before invoking optional operations.
	ErrNotSupported = errors.New("operation not supported by adapter")

	// ErrIsDirectory indicates a file-only operation was invoked on a
	// directory path. Size, MimeType and Read are undefined for directories.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrUnknownMimeType indicates the path exists but its content type
	// could not be determined. Reported instead of guessing a type.
	ErrUnknownMimeType = errors.New("mime type could not be detected")

	// ErrInvalidPath indicates the path is empty after normalization or
	// attempts to traverse above the adapter root.
	ErrInvalidPath = errors.New("invalid path")

	// ErrStoreClosed indicates the adapter has been closed.
	ErrStoreClosed = errors.New("adapter is closed")
)

// IsNotFound reports whether err is an absence signal.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsNotSupported reports whether err is a capability-unsupported signal.
func IsNotSupported(err error) bool {
	return errors.Is(err, ErrNotSupported)
}
