package badger

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/marmos91/stowfs/pkg/storage"
)

// ============================================================================
// Database Key Namespace Design
// ============================================================================
//
// BadgerDB is a key-value store, so the adapter namespace is flattened into
// prefixed keys. Normalized forward-slash paths are used verbatim as the key
// suffix, which keeps range scans cheap: listing a directory is a prefix
// iteration over "f:<dir>/" and "d:<dir>/".
//
// Data Type    Prefix   Key Format     Value Type
// ====================================================
// File         "f:"     f:<path>       record (JSON)
// Directory    "d:"     d:<path>       record (JSON, Contents empty)

const (
	prefixFile = "f:"
	prefixDir  = "d:"
)

// keyFile generates a key for file content: "f:<path>"
func keyFile(path string) []byte {
	return []byte(prefixFile + path)
}

// keyDir generates a key for a directory marker: "d:<path>"
func keyDir(path string) []byte {
	return []byte(prefixDir + path)
}

// record is the stored representation of one namespace entry.
// Directory markers leave Contents empty.
type record struct {
	Contents   []byte             `json:"contents,omitempty"`
	Visibility storage.Visibility `json:"visibility"`
	ModTime    time.Time          `json:"mod_time"`
}

func encodeRecord(r *record) ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}
	return data, nil
}

func decodeRecord(data []byte) (*record, error) {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	return &r, nil
}
