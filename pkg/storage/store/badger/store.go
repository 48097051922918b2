// Package badger provides a BadgerDB-backed storage adapter.
//
// The whole namespace lives in a single Badger database: file contents and
// directory markers are JSON records under prefixed path keys (see
// encoding.go). Visibility is a stored attribute, so the adapter supports
// the full visibility capability.
package badger

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"time"

	badgerdb "github.com/dgraph-io/badger/v4"

	"github.com/marmos91/stowfs/pkg/storage"
)

// Config holds configuration for the Badger adapter.
type Config struct {
	// Path is the database directory. Required unless InMemory is set.
	Path string

	// InMemory runs Badger without a backing directory. Useful for tests.
	InMemory bool

	// DefaultVisibility applies to files written without an explicit
	// visibility. Default: public.
	DefaultVisibility storage.Visibility

	// DefaultDirVisibility applies to directories created without an
	// explicit visibility. Default: public.
	DefaultDirVisibility storage.Visibility
}

// DefaultConfig returns the default configuration.
func DefaultConfig(path string) Config {
	return Config{
		Path:                 path,
		DefaultVisibility:    storage.VisibilityPublic,
		DefaultDirVisibility: storage.VisibilityPublic,
	}
}

// Store is a BadgerDB-backed implementation of storage.Adapter.
type Store struct {
	mu     sync.RWMutex
	db     *badgerdb.DB
	cfg    Config
	closed bool
}

// New opens (or creates) a Badger database and returns the adapter.
func New(cfg Config) (*Store, error) {
	if cfg.Path == "" && !cfg.InMemory {
		return nil, errors.New("database path is required")
	}
	if cfg.DefaultVisibility == "" {
		cfg.DefaultVisibility = storage.VisibilityPublic
	}
	if cfg.DefaultDirVisibility == "" {
		cfg.DefaultDirVisibility = storage.VisibilityPublic
	}

	opts := badgerdb.DefaultOptions(cfg.Path).
		WithInMemory(cfg.InMemory).
		WithLogger(nil)

	db, err := badgerdb.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:  db,
		cfg: cfg,
	}, nil
}

// NewWithPath opens a Badger adapter with default configuration.
func NewWithPath(path string) (*Store, error) {
	return New(DefaultConfig(path))
}

// guard validates the context and closed flag and normalizes path.
func (s *Store) guard(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return "", storage.ErrStoreClosed
	}

	return storage.NormalizePath(path)
}

// ensureParents writes directory markers for every missing ancestor of p.
func ensureParents(txn *badgerdb.Txn, p string, visibility storage.Visibility, now time.Time) error {
	for dir := storage.ParentPath(p); dir != ""; dir = storage.ParentPath(dir) {
		_, err := txn.Get(keyDir(dir))
		if err == nil {
			return nil
		}
		if err != badgerdb.ErrKeyNotFound {
			return err
		}

		data, err := encodeRecord(&record{Visibility: visibility, ModTime: now})
		if err != nil {
			return err
		}
		if err := txn.Set(keyDir(dir), data); err != nil {
			return err
		}
	}
	return nil
}

// getRecord fetches and decodes the record under key, mapping
// badger.ErrKeyNotFound to storage.ErrNotFound.
func getRecord(txn *badgerdb.Txn, key []byte) (*record, error) {
	item, err := txn.Get(key)
	if err == badgerdb.ErrKeyNotFound {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var rec *record
	err = item.Value(func(val []byte) error {
		var decodeErr error
		rec, decodeErr = decodeRecord(val)
		return decodeErr
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func exists(txn *badgerdb.Txn, key []byte) (bool, error) {
	_, err := txn.Get(key)
	if err == badgerdb.ErrKeyNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) fileVisibility(opts storage.WriteOptions) storage.Visibility {
	if opts.Visibility != "" {
		return opts.Visibility
	}
	return s.cfg.DefaultVisibility
}

func (s *Store) dirVisibility(opts storage.WriteOptions) storage.Visibility {
	if opts.DirVisibility != "" {
		return opts.DirVisibility
	}
	return s.cfg.DefaultDirVisibility
}

// Write stores contents at path, creating parent directory markers as needed.
func (s *Store) Write(ctx context.Context, path string, contents []byte, opts storage.WriteOptions) error {
	p, err := s.guard(ctx, path)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badgerdb.Txn) error {
		if isDir, err := exists(txn, keyDir(p)); err != nil {
			return err
		} else if isDir {
			return storage.ErrIsDirectory
		}

		now := time.Now()
		if err := ensureParents(txn, p, s.dirVisibility(opts), now); err != nil {
			return err
		}

		data, err := encodeRecord(&record{
			Contents:   contents,
			Visibility: s.fileVisibility(opts),
			ModTime:    now,
		})
		if err != nil {
			return err
		}
		return txn.Set(keyFile(p), data)
	})
}

// WriteStream stores the contents of r at path.
func (s *Store) WriteStream(ctx context.Context, path string, r io.Reader, opts storage.WriteOptions) error {
	contents, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return s.Write(ctx, path, contents, opts)
}

// Read returns the complete contents at path.
func (s *Store) Read(ctx context.Context, path string) ([]byte, error) {
	p, err := s.guard(ctx, path)
	if err != nil {
		return nil, err
	}

	var contents []byte
	err = s.db.View(func(txn *badgerdb.Txn) error {
		rec, err := getRecord(txn, keyFile(p))
		if errors.Is(err, storage.ErrNotFound) {
			if isDir, dirErr := exists(txn, keyDir(p)); dirErr == nil && isDir {
				return storage.ErrIsDirectory
			}
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		contents = bytes.Clone(rec.Contents)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if contents == nil {
		contents = []byte{}
	}
	return contents, nil
}

// ReadStream returns a reader over the contents at path.
func (s *Store) ReadStream(ctx context.Context, path string) (io.ReadCloser, error) {
	contents, err := s.Read(ctx, path)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(contents)), nil
}

// Has reports whether a file or directory exists at path.
func (s *Store) Has(ctx context.Context, path string) (bool, error) {
	p, err := s.guard(ctx, path)
	if err != nil {
		return false, err
	}
	if p == "" {
		return true, nil // root always exists
	}

	var found bool
	err = s.db.View(func(txn *badgerdb.Txn) error {
		if ok, err := exists(txn, keyFile(p)); err != nil || ok {
			found = ok
			return err
		}
		ok, err := exists(txn, keyDir(p))
		found = ok
		return err
	})
	return found, err
}

// Delete removes the file at path. Missing files are a no-op.
func (s *Store) Delete(ctx context.Context, path string) error {
	p, err := s.guard(ctx, path)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badgerdb.Txn) error {
		ok, err := exists(txn, keyFile(p))
		if err != nil {
			return err
		}
		if !ok {
			if isDir, err := exists(txn, keyDir(p)); err != nil {
				return err
			} else if isDir {
				return storage.ErrIsDirectory
			}
			return nil
		}
		return txn.Delete(keyFile(p))
	})
}

// DeleteDir removes the directory at path and all its descendants.
func (s *Store) DeleteDir(ctx context.Context, path string) error {
	p, err := s.guard(ctx, path)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badgerdb.Txn) error {
		doomed, err := collectKeys(txn, p, true)
		if err != nil {
			return err
		}
		if p != "" {
			doomed = append(doomed, keyDir(p))
		}
		for _, key := range doomed {
			if err := txn.Delete(key); err != nil && err != badgerdb.ErrKeyNotFound {
				return err
			}
		}
		return nil
	})
}

// collectKeys gathers the raw keys of every entry beneath dir (descendants
// only, not dir itself). With dirsToo, directory markers are included.
func collectKeys(txn *badgerdb.Txn, dir string, dirsToo bool) ([][]byte, error) {
	var keys [][]byte

	prefixes := []string{prefixFile}
	if dirsToo {
		prefixes = append(prefixes, prefixDir)
	}

	opts := badgerdb.DefaultIteratorOptions
	opts.PrefetchValues = false

	for _, prefix := range prefixes {
		it := txn.NewIterator(opts)
		scan := []byte(prefix)
		if dir != "" {
			scan = []byte(prefix + dir + "/")
		}
		for it.Seek(scan); it.ValidForPrefix(scan); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		it.Close()
	}
	return keys, nil
}

// CreateDir creates the directory marker at path. Idempotent.
func (s *Store) CreateDir(ctx context.Context, path string, opts storage.WriteOptions) error {
	p, err := s.guard(ctx, path)
	if err != nil {
		return err
	}
	if p == "" {
		return nil // root always exists
	}

	return s.db.Update(func(txn *badgerdb.Txn) error {
		if isFile, err := exists(txn, keyFile(p)); err != nil {
			return err
		} else if isFile {
			return storage.ErrInvalidPath
		}
		if ok, err := exists(txn, keyDir(p)); err != nil || ok {
			return err
		}

		now := time.Now()
		visibility := s.dirVisibility(opts)
		if err := ensureParents(txn, p, visibility, now); err != nil {
			return err
		}

		data, err := encodeRecord(&record{Visibility: visibility, ModTime: now})
		if err != nil {
			return err
		}
		return txn.Set(keyDir(p), data)
	})
}

// Copy duplicates source to destination, carrying visibility over.
func (s *Store) Copy(ctx context.Context, source, destination string) (bool, error) {
	return s.transfer(ctx, source, destination, false)
}

// Rename moves source to destination.
func (s *Store) Rename(ctx context.Context, source, destination string) (bool, error) {
	return s.transfer(ctx, source, destination, true)
}

func (s *Store) transfer(ctx context.Context, source, destination string, move bool) (bool, error) {
	src, err := s.guard(ctx, source)
	if err != nil {
		return false, err
	}
	dst, err := storage.NormalizePath(destination)
	if err != nil {
		return false, err
	}

	var done bool
	err = s.db.Update(func(txn *badgerdb.Txn) error {
		rec, err := getRecord(txn, keyFile(src))
		if errors.Is(err, storage.ErrNotFound) {
			return nil // absent source is (false, nil), not a fault
		}
		if err != nil {
			return err
		}

		now := time.Now()
		if err := ensureParents(txn, dst, s.cfg.DefaultDirVisibility, now); err != nil {
			return err
		}

		out := &record{Contents: rec.Contents, Visibility: rec.Visibility, ModTime: now}
		if move {
			out.ModTime = rec.ModTime
		}
		data, err := encodeRecord(out)
		if err != nil {
			return err
		}
		if err := txn.Set(keyFile(dst), data); err != nil {
			return err
		}

		if move {
			if err := txn.Delete(keyFile(src)); err != nil {
				return err
			}
		}
		done = true
		return nil
	})
	return done, err
}

// ListContents enumerates the directory at path.
func (s *Store) ListContents(ctx context.Context, path string, recursive bool) ([]storage.Entry, error) {
	p, err := s.guard(ctx, path)
	if err != nil {
		return nil, err
	}

	var entries []storage.Entry
	err = s.db.View(func(txn *badgerdb.Txn) error {
		opts := badgerdb.DefaultIteratorOptions

		for _, prefix := range []string{prefixFile, prefixDir} {
			if recursive && prefix == prefixDir {
				continue // recursive listings report files only
			}

			it := txn.NewIterator(opts)
			scan := []byte(prefix)
			if p != "" {
				scan = []byte(prefix + p + "/")
			}
			for it.Seek(scan); it.ValidForPrefix(scan); it.Next() {
				item := it.Item()
				entryPath := string(item.Key()[len(prefix):])

				if !recursive && !storage.IsChildOf(p, entryPath) {
					continue
				}

				var rec *record
				err := item.Value(func(val []byte) error {
					var decodeErr error
					rec, decodeErr = decodeRecord(val)
					return decodeErr
				})
				if err != nil {
					it.Close()
					return err
				}

				entry := storage.Entry{
					Kind:       storage.KindFile,
					Path:       entryPath,
					Size:       int64(len(rec.Contents)),
					ModTime:    rec.ModTime,
					Visibility: rec.Visibility,
				}
				if prefix == prefixDir {
					entry.Kind = storage.KindDirectory
					entry.Size = 0
				}
				entries = append(entries, entry)
			}
			it.Close()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Size returns the content length of the file at path.
func (s *Store) Size(ctx context.Context, path string) (int64, error) {
	p, err := s.guard(ctx, path)
	if err != nil {
		return 0, err
	}

	var size int64
	err = s.db.View(func(txn *badgerdb.Txn) error {
		rec, err := getRecord(txn, keyFile(p))
		if errors.Is(err, storage.ErrNotFound) {
			if isDir, dirErr := exists(txn, keyDir(p)); dirErr == nil && isDir {
				return storage.ErrIsDirectory
			}
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		size = int64(len(rec.Contents))
		return nil
	})
	return size, err
}

// LastModified returns the last modification time of path.
func (s *Store) LastModified(ctx context.Context, path string) (time.Time, error) {
	p, err := s.guard(ctx, path)
	if err != nil {
		return time.Time{}, err
	}

	var modTime time.Time
	err = s.db.View(func(txn *badgerdb.Txn) error {
		rec, err := s.anyRecord(txn, p)
		if err != nil {
			return err
		}
		modTime = rec.ModTime
		return nil
	})
	return modTime, err
}

// MimeType returns the detected content type of the file at path.
func (s *Store) MimeType(ctx context.Context, path string) (string, error) {
	contents, err := s.Read(ctx, path)
	if err != nil {
		return "", err
	}
	return storage.DetectMimeType(contents)
}

// anyRecord returns the file record at p, falling back to the directory
// marker.
func (s *Store) anyRecord(txn *badgerdb.Txn, p string) (*record, error) {
	rec, err := getRecord(txn, keyFile(p))
	if errors.Is(err, storage.ErrNotFound) {
		return getRecord(txn, keyDir(p))
	}
	return rec, err
}

// Visibility returns the access hint of the entry at path.
func (s *Store) Visibility(ctx context.Context, path string) (storage.Visibility, error) {
	p, err := s.guard(ctx, path)
	if err != nil {
		return "", err
	}

	var visibility storage.Visibility
	err = s.db.View(func(txn *badgerdb.Txn) error {
		rec, err := s.anyRecord(txn, p)
		if err != nil {
			return err
		}
		visibility = rec.Visibility
		return nil
	})
	return visibility, err
}

// SetVisibility mutates the access hint of the entry at path.
func (s *Store) SetVisibility(ctx context.Context, path string, visibility storage.Visibility) (storage.Entry, error) {
	p, err := s.guard(ctx, path)
	if err != nil {
		return storage.Entry{}, err
	}

	var entry storage.Entry
	err = s.db.Update(func(txn *badgerdb.Txn) error {
		key := keyFile(p)
		kind := storage.KindFile

		rec, err := getRecord(txn, key)
		if errors.Is(err, storage.ErrNotFound) {
			key = keyDir(p)
			kind = storage.KindDirectory
			rec, err = getRecord(txn, key)
		}
		if err != nil {
			return err
		}

		rec.Visibility = visibility
		data, err := encodeRecord(rec)
		if err != nil {
			return err
		}
		if err := txn.Set(key, data); err != nil {
			return err
		}

		entry = storage.Entry{
			Kind:       kind,
			Path:       p,
			Size:       int64(len(rec.Contents)),
			ModTime:    rec.ModTime,
			Visibility: rec.Visibility,
		}
		return nil
	})
	return entry, err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// Ensure Store implements the contract, including the visibility capability.
var (
	_ storage.Adapter           = (*Store)(nil)
	_ storage.VisibilityAdapter = (*Store)(nil)
)
