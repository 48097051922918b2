package storage

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DetectMimeType inspects contents and returns its MIME type without any
// parameters (no "; charset=..." suffix).
//
// Detection is content-based. When the detector falls through to its
// application/octet-stream catch-all the result is not a real detection,
// so ErrUnknownMimeType is returned instead of a guessed value. This keeps
// "type undetermined" distinguishable from "path absent" (ErrNotFound).
func DetectMimeType(contents []byte) (string, error) {
	mtype := mimetype.Detect(contents)

	name := mtype.String()
	if idx := strings.IndexByte(name, ';'); idx >= 0 {
		name = name[:idx]
	}

	if name == "application/octet-stream" {
		return "", ErrUnknownMimeType
	}
	return name, nil
}
