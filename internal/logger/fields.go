package logger

import (
	"log/slog"
)

// Standard field keys for structured logging.
// Use these keys consistently across all log statements so logs stay
// queryable once aggregated.
const (
	// Storage operations
	KeyPath        = "path"        // Path within the storage namespace
	KeySource      = "source"      // Source path for copy/rename
	KeyDestination = "destination" // Destination path for copy/rename
	KeyOperation   = "operation"   // Adapter operation: write, read, delete, etc.
	KeySize        = "size"        // Payload size in bytes
	KeyVisibility  = "visibility"  // Entry visibility: public, private
	KeyMimeType    = "mime_type"   // Detected MIME type
	KeyRecursive   = "recursive"   // Recursive listing or deletion
	KeyEntries     = "entries"     // Number of listing entries

	// Backend identification
	KeyBackend = "backend" // Backend type: memory, fs, s3, badger
	KeyBucket  = "bucket"  // S3 bucket name
	KeyKey     = "key"     // Object key in cloud storage
	KeyRegion  = "region"  // Cloud region
	KeyDBPath  = "db_path" // Badger database directory

	// Operation metadata
	KeyDurationMs = "duration_ms" // Operation duration in milliseconds
	KeyError      = "error"       // Error message
	KeyConfigFile = "config_file" // Configuration file in use
)

// Path returns a slog.Attr for a storage path
func Path(p string) slog.Attr {
	return slog.String(KeyPath, p)
}

// Source returns a slog.Attr for the source path of copy/rename
func Source(p string) slog.Attr {
	return slog.String(KeySource, p)
}

// Destination returns a slog.Attr for the destination path of copy/rename
func Destination(p string) slog.Attr {
	return slog.String(KeyDestination, p)
}

// Operation returns a slog.Attr for an adapter operation name
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Size returns a slog.Attr for a payload size
func Size(s int64) slog.Attr {
	return slog.Int64(KeySize, s)
}

// Visibility returns a slog.Attr for entry visibility
func Visibility(v string) slog.Attr {
	return slog.String(KeyVisibility, v)
}

// MimeType returns a slog.Attr for a detected MIME type
func MimeType(m string) slog.Attr {
	return slog.String(KeyMimeType, m)
}

// Recursive returns a slog.Attr for a recursive flag
func Recursive(r bool) slog.Attr {
	return slog.Bool(KeyRecursive, r)
}

// Entries returns a slog.Attr for the number of listing entries
func Entries(n int) slog.Attr {
	return slog.Int(KeyEntries, n)
}

// Backend returns a slog.Attr for a backend type
func Backend(b string) slog.Attr {
	return slog.String(KeyBackend, b)
}

// Bucket returns a slog.Attr for an S3 bucket name
func Bucket(name string) slog.Attr {
	return slog.String(KeyBucket, name)
}

// Key returns a slog.Attr for an object key
func Key(k string) slog.Attr {
	return slog.String(KeyKey, k)
}

// Region returns a slog.Attr for a cloud region
func Region(r string) slog.Attr {
	return slog.String(KeyRegion, r)
}

// DBPath returns a slog.Attr for a Badger database directory
func DBPath(p string) slog.Attr {
	return slog.String(KeyDBPath, p)
}

// DurationMs returns a slog.Attr for duration in milliseconds
func DurationMs(ms float64) slog.Attr {
	return slog.Float64(KeyDurationMs, ms)
}

// Err returns a slog.Attr for an error
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// ConfigFile returns a slog.Attr for the configuration file in use
func ConfigFile(p string) slog.Attr {
	return slog.String(KeyConfigFile, p)
}
