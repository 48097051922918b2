// Package memory provides an in-memory storage adapter.
//
// It is the reference implementation of the storage.Adapter contract and
// the baseline every other backend is checked against. All state lives in
// a single mutex-guarded map; nothing is persisted.
package memory

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"github.com/marmos91/stowfs/pkg/storage"
)

// Config holds configuration for the in-memory adapter.
type Config struct {
	// DefaultVisibility applies to files written without an explicit
	// visibility. Default: public.
	DefaultVisibility storage.Visibility

	// DefaultDirVisibility applies to directories created without an
	// explicit visibility. Default: public.
	DefaultDirVisibility storage.Visibility
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		DefaultVisibility:    storage.VisibilityPublic,
		DefaultDirVisibility: storage.VisibilityPublic,
	}
}

// object is one namespace entry. Directories carry no data.
type object struct {
	data       []byte
	dir        bool
	visibility storage.Visibility
	modTime    time.Time
}

// Store is an in-memory implementation of storage.Adapter with full
// visibility support.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*object
	cfg     Config
	closed  bool
}

// New creates an empty in-memory adapter with default configuration.
func New() *Store {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates an empty in-memory adapter.
func NewWithConfig(cfg Config) *Store {
	if cfg.DefaultVisibility == "" {
		cfg.DefaultVisibility = storage.VisibilityPublic
	}
	if cfg.DefaultDirVisibility == "" {
		cfg.DefaultDirVisibility = storage.VisibilityPublic
	}
	return &Store{
		entries: make(map[string]*object),
		cfg:     cfg,
	}
}

// guard validates the context and closed flag and normalizes path.
// Callers must hold no lock.
func (s *Store) guard(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.isClosed() {
		return "", storage.ErrStoreClosed
	}
	return storage.NormalizePath(path)
}

func (s *Store) isClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

// ensureParents creates implicit directory entries for every ancestor of p.
// Caller must hold the write lock.
func (s *Store) ensureParents(p string, visibility storage.Visibility, now time.Time) {
	for dir := storage.ParentPath(p); dir != ""; dir = storage.ParentPath(dir) {
		if _, ok := s.entries[dir]; ok {
			return
		}
		s.entries[dir] = &object{dir: true, visibility: visibility, modTime: now}
	}
}

func (s *Store) dirVisibility(opts storage.WriteOptions) storage.Visibility {
	if opts.DirVisibility != "" {
		return opts.DirVisibility
	}
	return s.cfg.DefaultDirVisibility
}

// Write stores contents at path, creating parent directories as needed.
func (s *Store) Write(ctx context.Context, path string, contents []byte, opts storage.WriteOptions) error {
	p, err := s.guard(ctx, path)
	if err != nil {
		return err
	}

	visibility := opts.Visibility
	if visibility == "" {
		visibility = s.cfg.DefaultVisibility
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.entries[p]; ok && existing.dir {
		return storage.ErrIsDirectory
	}

	now := time.Now()
	s.ensureParents(p, s.dirVisibility(opts), now)
	s.entries[p] = &object{
		data:       bytes.Clone(contents),
		visibility: visibility,
		modTime:    now,
	}
	return nil
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

	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.entries[p]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if obj.dir {
		return nil, storage.ErrIsDirectory
	}
	return bytes.Clone(obj.data), nil
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

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.entries[p]
	return ok, nil
}

// Delete removes the file at path. Missing files are a no-op.
func (s *Store) Delete(ctx context.Context, path string) error {
	p, err := s.guard(ctx, path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.entries[p]
	if !ok {
		return nil
	}
	if obj.dir {
		return storage.ErrIsDirectory
	}
	delete(s.entries, p)
	return nil
}

// DeleteDir removes the directory at path and all its descendants. A file
// at path is left untouched; DeleteDir only ever removes directories.
func (s *Store) DeleteDir(ctx context.Context, path string) error {
	p, err := s.guard(ctx, path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if obj, ok := s.entries[p]; ok && !obj.dir {
		return nil
	}

	for key := range s.entries {
		if key == p || storage.IsDescendantOf(p, key) {
			delete(s.entries, key)
		}
	}
	return nil
}

// CreateDir creates the directory at path. Idempotent.
func (s *Store) CreateDir(ctx context.Context, path string, opts storage.WriteOptions) error {
	p, err := s.guard(ctx, path)
	if err != nil {
		return err
	}
	if p == "" {
		return nil // root always exists
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.entries[p]; ok {
		if !existing.dir {
			return storage.ErrInvalidPath
		}
		return nil
	}

	now := time.Now()
	visibility := s.dirVisibility(opts)
	s.ensureParents(p, visibility, now)
	s.entries[p] = &object{dir: true, visibility: visibility, modTime: now}
	return nil
}

// Copy duplicates source to destination, carrying visibility over.
func (s *Store) Copy(ctx context.Context, source, destination string) (bool, error) {
	src, err := s.guard(ctx, source)
	if err != nil {
		return false, err
	}
	dst, err := storage.NormalizePath(destination)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.entries[src]
	if !ok || obj.dir {
		return false, nil
	}

	now := time.Now()
	s.ensureParents(dst, s.cfg.DefaultDirVisibility, now)
	s.entries[dst] = &object{
		data:       bytes.Clone(obj.data),
		visibility: obj.visibility,
		modTime:    now,
	}
	return true, nil
}

// Rename moves source to destination.
func (s *Store) Rename(ctx context.Context, source, destination string) (bool, error) {
	src, err := s.guard(ctx, source)
	if err != nil {
		return false, err
	}
	dst, err := storage.NormalizePath(destination)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.entries[src]
	if !ok || obj.dir {
		return false, nil
	}

	s.ensureParents(dst, s.cfg.DefaultDirVisibility, time.Now())
	s.entries[dst] = obj
	delete(s.entries, src)
	return true, nil
}

// ListContents enumerates the directory at path.
func (s *Store) ListContents(ctx context.Context, path string, recursive bool) ([]storage.Entry, error) {
	p, err := s.guard(ctx, path)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var entries []storage.Entry
	for key, obj := range s.entries {
		if recursive {
			if obj.dir || !storage.IsDescendantOf(p, key) {
				continue
			}
		} else if !storage.IsChildOf(p, key) {
			continue
		}
		entries = append(entries, s.entryRecord(key, obj))
	}
	return entries, nil
}

// entryRecord builds a metadata record for one entry.
// Caller must hold at least the read lock.
func (s *Store) entryRecord(path string, obj *object) storage.Entry {
	entry := storage.Entry{
		Kind:       storage.KindFile,
		Path:       path,
		ModTime:    obj.modTime,
		Visibility: obj.visibility,
	}
	if obj.dir {
		entry.Kind = storage.KindDirectory
	} else {
		entry.Size = int64(len(obj.data))
	}
	return entry
}

// Size returns the content length of the file at path.
func (s *Store) Size(ctx context.Context, path string) (int64, error) {
	p, err := s.guard(ctx, path)
	if err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.entries[p]
	if !ok {
		return 0, storage.ErrNotFound
	}
	if obj.dir {
		return 0, storage.ErrIsDirectory
	}
	return int64(len(obj.data)), nil
}

// LastModified returns the last modification time of path.
func (s *Store) LastModified(ctx context.Context, path string) (time.Time, error) {
	p, err := s.guard(ctx, path)
	if err != nil {
		return time.Time{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.entries[p]
	if !ok {
		return time.Time{}, storage.ErrNotFound
	}
	return obj.modTime, nil
}

// MimeType returns the detected content type of the file at path.
func (s *Store) MimeType(ctx context.Context, path string) (string, error) {
	contents, err := s.Read(ctx, path)
	if err != nil {
		return "", err
	}
	return storage.DetectMimeType(contents)
}

// Visibility returns the access hint of the entry at path.
func (s *Store) Visibility(ctx context.Context, path string) (storage.Visibility, error) {
	p, err := s.guard(ctx, path)
	if err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.entries[p]
	if !ok {
		return "", storage.ErrNotFound
	}
	return obj.visibility, nil
}

// SetVisibility mutates the access hint of the entry at path.
func (s *Store) SetVisibility(ctx context.Context, path string, visibility storage.Visibility) (storage.Entry, error) {
	p, err := s.guard(ctx, path)
	if err != nil {
		return storage.Entry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.entries[p]
	if !ok {
		return storage.Entry{}, storage.ErrNotFound
	}
	obj.visibility = visibility
	return s.entryRecord(p, obj), nil
}

// Close marks the adapter as closed and drops all entries.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.entries = nil
	return nil
}

// Ensure Store implements the contract, including the visibility capability.
var (
	_ storage.Adapter           = (*Store)(nil)
	_ storage.VisibilityAdapter = (*Store)(nil)
)
