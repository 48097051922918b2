// Package fs provides a local-filesystem storage adapter rooted at a base
// directory. Visibility is mapped onto permission bits: public entries are
// world-readable (0644/0755), private entries are owner-only (0600/0700).
package fs

import (
	"context"
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/marmos91/stowfs/pkg/storage"
)

// Permission modes backing the two visibility values.
const (
	filePublicMode  = iofs.FileMode(0o644)
	filePrivateMode = iofs.FileMode(0o600)
	dirPublicMode   = iofs.FileMode(0o755)
	dirPrivateMode  = iofs.FileMode(0o700)
)

// Config holds configuration for the filesystem adapter.
type Config struct {
	// BasePath is the root directory of the adapter namespace.
	// All adapter paths resolve beneath it.
	BasePath string

	// CreateDir creates the base directory if it doesn't exist.
	// Default: true
	CreateDir bool

	// DefaultVisibility applies to files written without an explicit
	// visibility. Default: public.
	DefaultVisibility storage.Visibility

	// DefaultDirVisibility applies to directories created without an
	// explicit visibility. Default: public.
	DefaultDirVisibility storage.Visibility
}

// DefaultConfig returns the default configuration.
func DefaultConfig(basePath string) Config {
	return Config{
		BasePath:             basePath,
		CreateDir:            true,
		DefaultVisibility:    storage.VisibilityPublic,
		DefaultDirVisibility: storage.VisibilityPublic,
	}
}

// Store is a filesystem-backed implementation of storage.Adapter.
type Store struct {
	mu       sync.RWMutex
	basePath string
	cfg      Config
	closed   bool
}

// New creates a new filesystem adapter with the given configuration.
func New(cfg Config) (*Store, error) {
	if cfg.BasePath == "" {
		return nil, errors.New("base path is required")
	}
	if cfg.DefaultVisibility == "" {
		cfg.DefaultVisibility = storage.VisibilityPublic
	}
	if cfg.DefaultDirVisibility == "" {
		cfg.DefaultDirVisibility = storage.VisibilityPublic
	}

	if cfg.CreateDir {
		if err := os.MkdirAll(cfg.BasePath, dirMode(cfg.DefaultDirVisibility)); err != nil {
			return nil, err
		}
	}

	info, err := os.Stat(cfg.BasePath)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, errors.New("base path is not a directory")
	}

	return &Store{
		basePath: cfg.BasePath,
		cfg:      cfg,
	}, nil
}

// NewWithPath creates a new filesystem adapter with default configuration.
func NewWithPath(basePath string) (*Store, error) {
	return New(DefaultConfig(basePath))
}

// BasePath returns the root directory of the adapter (for testing).
func (s *Store) BasePath() string {
	return s.basePath
}

func fileMode(v storage.Visibility) iofs.FileMode {
	if v == storage.VisibilityPrivate {
		return filePrivateMode
	}
	return filePublicMode
}

func dirMode(v storage.Visibility) iofs.FileMode {
	if v == storage.VisibilityPrivate {
		return dirPrivateMode
	}
	return dirPublicMode
}

// visibilityFromMode derives the visibility hint from permission bits.
// World-readable means public.
func visibilityFromMode(mode iofs.FileMode) storage.Visibility {
	if mode.Perm()&0o004 != 0 {
		return storage.VisibilityPublic
	}
	return storage.VisibilityPrivate
}

// guard validates the context and closed flag, normalizes path and resolves
// it beneath the base directory.
func (s *Store) guard(ctx context.Context, path string) (normalized, full string, err error) {
	if err := ctx.Err(); err != nil {
		return "", "", err
	}

	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return "", "", storage.ErrStoreClosed
	}

	p, err := storage.NormalizePath(path)
	if err != nil {
		return "", "", err
	}
	return p, filepath.Join(s.basePath, filepath.FromSlash(p)), nil
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

// Write stores contents at path, creating parent directories as needed.
// The write goes through a temporary file and a rename so readers never
// observe a partial file.
func (s *Store) Write(ctx context.Context, path string, contents []byte, opts storage.WriteOptions) error {
	_, full, err := s.guard(ctx, path)
	if err != nil {
		return err
	}

	if info, err := os.Stat(full); err == nil && info.IsDir() {
		return storage.ErrIsDirectory
	}

	if err := os.MkdirAll(filepath.Dir(full), dirMode(s.dirVisibility(opts))); err != nil {
		return err
	}

	mode := fileMode(s.fileVisibility(opts))
	tmpPath := full + ".tmp"
	if err := os.WriteFile(tmpPath, contents, mode); err != nil {
		return err
	}
	// WriteFile only applies mode on create; force it for overwritten temp files
	if err := os.Chmod(tmpPath, mode); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, full); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

// WriteStream stores the contents of r at path without buffering the whole
// payload in memory.
func (s *Store) WriteStream(ctx context.Context, path string, r io.Reader, opts storage.WriteOptions) error {
	_, full, err := s.guard(ctx, path)
	if err != nil {
		return err
	}

	if info, err := os.Stat(full); err == nil && info.IsDir() {
		return storage.ErrIsDirectory
	}

	if err := os.MkdirAll(filepath.Dir(full), dirMode(s.dirVisibility(opts))); err != nil {
		return err
	}

	mode := fileMode(s.fileVisibility(opts))
	tmpPath := full + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := f.Chmod(mode); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, full); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

// Read returns the complete contents at path.
func (s *Store) Read(ctx context.Context, path string) ([]byte, error) {
	_, full, err := s.guard(ctx, path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	if info.IsDir() {
		return nil, storage.ErrIsDirectory
	}

	return os.ReadFile(full)
}

// ReadStream returns a reader over the contents at path.
func (s *Store) ReadStream(ctx context.Context, path string) (io.ReadCloser, error) {
	_, full, err := s.guard(ctx, path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, storage.ErrIsDirectory
	}
	return f, nil
}

// Has reports whether a file or directory exists at path.
func (s *Store) Has(ctx context.Context, path string) (bool, error) {
	_, full, err := s.guard(ctx, path)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(full)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Delete removes the file at path. Missing files are a no-op.
func (s *Store) Delete(ctx context.Context, path string) error {
	_, full, err := s.guard(ctx, path)
	if err != nil {
		return err
	}

	info, err := os.Stat(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.IsDir() {
		return storage.ErrIsDirectory
	}

	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// DeleteDir removes the directory at path and all its descendants. A file
// at path is left untouched. Deleting the root clears its children but
// keeps the base directory.
func (s *Store) DeleteDir(ctx context.Context, path string) error {
	p, full, err := s.guard(ctx, path)
	if err != nil {
		return err
	}

	if p == "" {
		dirents, err := os.ReadDir(s.basePath)
		if err != nil {
			return err
		}
		for _, d := range dirents {
			if err := os.RemoveAll(filepath.Join(s.basePath, d.Name())); err != nil {
				return err
			}
		}
		return nil
	}

	info, err := os.Stat(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if !info.IsDir() {
		return nil // a file at path is not a directory to remove
	}

	return os.RemoveAll(full)
}

// CreateDir creates the directory at path. Idempotent.
func (s *Store) CreateDir(ctx context.Context, path string, opts storage.WriteOptions) error {
	_, full, err := s.guard(ctx, path)
	if err != nil {
		return err
	}
	return os.MkdirAll(full, dirMode(s.dirVisibility(opts)))
}

// Copy duplicates source to destination, preserving the source permission
// bits (and with them the visibility hint).
func (s *Store) Copy(ctx context.Context, source, destination string) (bool, error) {
	_, srcFull, err := s.guard(ctx, source)
	if err != nil {
		return false, err
	}
	_, dstFull, err := s.guard(ctx, destination)
	if err != nil {
		return false, err
	}

	src, err := os.Open(srcFull)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return false, err
	}
	if info.IsDir() {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(dstFull), dirMode(s.cfg.DefaultDirVisibility)); err != nil {
		return false, err
	}

	tmpPath := dstFull + ".tmp"
	dst, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return false, err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(tmpPath)
		return false, err
	}
	if err := dst.Chmod(info.Mode().Perm()); err != nil {
		dst.Close()
		os.Remove(tmpPath)
		return false, err
	}
	if err := dst.Close(); err != nil {
		os.Remove(tmpPath)
		return false, err
	}

	if err := os.Rename(tmpPath, dstFull); err != nil {
		os.Remove(tmpPath)
		return false, err
	}
	return true, nil
}

// Rename moves source to destination.
func (s *Store) Rename(ctx context.Context, source, destination string) (bool, error) {
	_, srcFull, err := s.guard(ctx, source)
	if err != nil {
		return false, err
	}
	_, dstFull, err := s.guard(ctx, destination)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(srcFull); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	if err := os.MkdirAll(filepath.Dir(dstFull), dirMode(s.cfg.DefaultDirVisibility)); err != nil {
		return false, err
	}
	if err := os.Rename(srcFull, dstFull); err != nil {
		return false, err
	}
	return true, nil
}

// ListContents enumerates the directory at path.
func (s *Store) ListContents(ctx context.Context, path string, recursive bool) ([]storage.Entry, error) {
	p, full, err := s.guard(ctx, path)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(full); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	if !recursive {
		return s.listShallow(p, full)
	}
	return s.listRecursive(p, full)
}

func (s *Store) listShallow(p, full string) ([]storage.Entry, error) {
	dirents, err := os.ReadDir(full)
	if err != nil {
		return nil, err
	}

	var entries []storage.Entry
	for _, d := range dirents {
		if strings.HasSuffix(d.Name(), ".tmp") {
			continue // in-flight write, not part of the namespace
		}
		info, err := d.Info()
		if err != nil {
			continue // entry disappeared between ReadDir and Info
		}
		entries = append(entries, entryFromInfo(joinEntryPath(p, d.Name()), info))
	}
	return entries, nil
}

func (s *Store) listRecursive(p, full string) ([]storage.Entry, error) {
	var entries []storage.Entry
	err := filepath.WalkDir(full, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ".tmp") {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(s.basePath, path)
		if err != nil {
			return err
		}
		entries = append(entries, entryFromInfo(filepath.ToSlash(rel), info))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func joinEntryPath(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + "/" + name
}

func entryFromInfo(path string, info iofs.FileInfo) storage.Entry {
	entry := storage.Entry{
		Kind:       storage.KindFile,
		Path:       path,
		ModTime:    info.ModTime(),
		Visibility: visibilityFromMode(info.Mode()),
	}
	if info.IsDir() {
		entry.Kind = storage.KindDirectory
	} else {
		entry.Size = info.Size()
	}
	return entry
}

// Size returns the content length of the file at path.
func (s *Store) Size(ctx context.Context, path string) (int64, error) {
	_, full, err := s.guard(ctx, path)
	if err != nil {
		return 0, err
	}

	info, err := os.Stat(full)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, storage.ErrNotFound
		}
		return 0, err
	}
	if info.IsDir() {
		return 0, storage.ErrIsDirectory
	}
	return info.Size(), nil
}

// LastModified returns the last modification time of path.
func (s *Store) LastModified(ctx context.Context, path string) (time.Time, error) {
	_, full, err := s.guard(ctx, path)
	if err != nil {
		return time.Time{}, err
	}

	info, err := os.Stat(full)
	if err != nil {
		if os.IsNotExist(err) {
			return time.Time{}, storage.ErrNotFound
		}
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// MimeType returns the detected content type of the file at path.
func (s *Store) MimeType(ctx context.Context, path string) (string, error) {
	contents, err := s.Read(ctx, path)
	if err != nil {
		return "", err
	}
	return storage.DetectMimeType(contents)
}

// Visibility returns the access hint derived from the permission bits.
func (s *Store) Visibility(ctx context.Context, path string) (storage.Visibility, error) {
	_, full, err := s.guard(ctx, path)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(full)
	if err != nil {
		if os.IsNotExist(err) {
			return "", storage.ErrNotFound
		}
		return "", err
	}
	return visibilityFromMode(info.Mode()), nil
}

// SetVisibility rewrites the permission bits of the entry at path.
func (s *Store) SetVisibility(ctx context.Context, path string, visibility storage.Visibility) (storage.Entry, error) {
	p, full, err := s.guard(ctx, path)
	if err != nil {
		return storage.Entry{}, err
	}

	info, err := os.Stat(full)
	if err != nil {
		if os.IsNotExist(err) {
			return storage.Entry{}, storage.ErrNotFound
		}
		return storage.Entry{}, err
	}

	mode := fileMode(visibility)
	if info.IsDir() {
		mode = dirMode(visibility)
	}
	if err := os.Chmod(full, mode); err != nil {
		return storage.Entry{}, err
	}

	info, err = os.Stat(full)
	if err != nil {
		return storage.Entry{}, err
	}
	return entryFromInfo(p, info), nil
}

// Close marks the adapter as closed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

// Ensure Store implements the contract, including the visibility capability.
var (
	_ storage.Adapter           = (*Store)(nil)
	_ storage.VisibilityAdapter = (*Store)(nil)
)
