// Package s3 provides an S3-backed storage adapter.
//
// Files map to objects under an optional key prefix; directories are
// represented as zero-byte marker objects with a trailing slash, the common
// S3 console convention. Content types are detected at write time and stored
// as the object Content-Type, so metadata queries are served by HeadObject
// without fetching the payload.
//
// S3 buckets with ACLs disabled have no per-object public/private concept,
// so this adapter does not implement the visibility capability: visibility
// calls through the storage helpers return storage.ErrNotSupported.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/marmos91/stowfs/pkg/storage"
)

// Config holds configuration for the S3 adapter.
type Config struct {
	// Bucket is the S3 bucket name.
	Bucket string

	// Region is the AWS region (optional, uses SDK default if empty).
	Region string

	// Endpoint is the S3 endpoint URL (optional, for S3-compatible services).
	Endpoint string

	// KeyPrefix is prepended to all adapter paths (e.g., "data/").
	// Should end with "/" if non-empty.
	KeyPrefix string

	// ForcePathStyle forces path-style addressing (required for Localstack/MinIO).
	ForcePathStyle bool
}

// Store is an S3-backed implementation of storage.Adapter.
type Store struct {
	client    *s3.Client
	bucket    string
	keyPrefix string
	closed    bool
	mu        sync.RWMutex
}

// New creates a new S3 adapter with an existing client.
func New(client *s3.Client, cfg Config) *Store {
	return &Store{
		client:    client,
		bucket:    cfg.Bucket,
		keyPrefix: cfg.KeyPrefix,
	}
}

// NewFromConfig creates a new S3 adapter by building an S3 client from cfg.
// This is the preferred constructor when you don't have an existing client.
func NewFromConfig(ctx context.Context, cfg Config) (*Store, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}
	if cfg.ForcePathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}

	return New(s3.NewFromConfig(awsCfg, s3Opts...), cfg), nil
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

// fileKey returns the object key for a file path.
func (s *Store) fileKey(p string) string {
	return s.keyPrefix + p
}

// dirKey returns the marker object key for a directory path.
func (s *Store) dirKey(p string) string {
	return s.keyPrefix + p + "/"
}

// isNotFoundError checks if an error is an S3 not-found error.
//
// GetObject and HeadObject deserialize misses into the modeled types, but
// CopyObject reports a missing source as a generic API error carrying only
// the NoSuchKey code, so the code strings are matched as well.
func isNotFoundError(err error) bool {
	var noSuchKey *types.NoSuchKey
	var notFound *types.NotFound
	if errors.As(err, &noSuchKey) || errors.As(err, &notFound) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NoSuchKey" || code == "NotFound"
	}
	return false
}

// Write stores contents at path. Parent directories are implicit in S3's
// flat key space, so no markers are created for them.
func (s *Store) Write(ctx context.Context, path string, contents []byte, opts storage.WriteOptions) error {
	p, err := s.guard(ctx, path)
	if err != nil {
		return err
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.fileKey(p)),
		Body:   bytes.NewReader(contents),
	}
	if mime, err := storage.DetectMimeType(contents); err == nil {
		input.ContentType = aws.String(mime)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("s3 put object: %w", err)
	}
	return nil
}

// WriteStream stores the contents of r at path. S3 needs a seekable body
// for signing, so the stream is buffered first.
func (s *Store) WriteStream(ctx context.Context, path string, r io.Reader, opts storage.WriteOptions) error {
	contents, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return s.Write(ctx, path, contents, opts)
}

// Read returns the complete contents at path.
func (s *Store) Read(ctx context.Context, path string) ([]byte, error) {
	rc, err := s.ReadStream(ctx, path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read s3 object body: %w", err)
	}
	return data, nil
}

// ReadStream returns a reader over the contents at path.
func (s *Store) ReadStream(ctx context.Context, path string) (io.ReadCloser, error) {
	p, err := s.guard(ctx, path)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.fileKey(p)),
	})
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("s3 get object: %w", err)
	}
	return resp.Body, nil
}

// head returns the HeadObject output for a file path.
func (s *Store) head(ctx context.Context, p string) (*s3.HeadObjectOutput, error) {
	resp, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.fileKey(p)),
	})
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("s3 head object: %w", err)
	}
	return resp, nil
}

// isDir reports whether p exists as a directory, either through an explicit
// marker object or implicitly through objects beneath it.
func (s *Store) isDir(ctx context.Context, p string) (bool, error) {
	if p == "" {
		return true, nil // root always exists
	}

	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.dirKey(p)),
	})
	if err == nil {
		return true, nil
	}
	if !isNotFoundError(err) {
		return false, fmt.Errorf("s3 head object: %w", err)
	}

	list, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(s.bucket),
		Prefix:  aws.String(s.dirKey(p)),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		return false, fmt.Errorf("s3 list objects: %w", err)
	}
	return len(list.Contents) > 0, nil
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

	_, err = s.head(ctx, p)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return false, err
	}
	return s.isDir(ctx, p)
}

// Delete removes the file at path. Missing files are a no-op (S3 DeleteObject
// is itself idempotent).
func (s *Store) Delete(ctx context.Context, path string) error {
	p, err := s.guard(ctx, path)
	if err != nil {
		return err
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.fileKey(p)),
	})
	if err != nil && !isNotFoundError(err) {
		return fmt.Errorf("s3 delete object: %w", err)
	}
	return nil
}

// DeleteDir removes the directory marker at path and every object beneath it.
func (s *Store) DeleteDir(ctx context.Context, path string) error {
	p, err := s.guard(ctx, path)
	if err != nil {
		return err
	}

	prefix := s.keyPrefix
	if p != "" {
		prefix = s.dirKey(p)
	}

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("s3 list objects: %w", err)
		}
		if len(page.Contents) == 0 {
			continue
		}

		objects := make([]types.ObjectIdentifier, 0, len(page.Contents))
		for _, obj := range page.Contents {
			objects = append(objects, types.ObjectIdentifier{Key: obj.Key})
		}
		_, err = s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(s.bucket),
			Delete: &types.Delete{Objects: objects, Quiet: aws.Bool(true)},
		})
		if err != nil {
			return fmt.Errorf("s3 delete objects: %w", err)
		}
	}
	return nil
}

// CreateDir writes a zero-byte directory marker at path. Idempotent: S3
// PutObject simply overwrites the marker.
func (s *Store) CreateDir(ctx context.Context, path string, opts storage.WriteOptions) error {
	p, err := s.guard(ctx, path)
	if err != nil {
		return err
	}
	if p == "" {
		return nil
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.dirKey(p)),
		Body:   bytes.NewReader(nil),
	})
	if err != nil {
		return fmt.Errorf("s3 put object: %w", err)
	}
	return nil
}

// Copy duplicates source to destination with a server-side CopyObject.
func (s *Store) Copy(ctx context.Context, source, destination string) (bool, error) {
	src, err := s.guard(ctx, source)
	if err != nil {
		return false, err
	}
	dst, err := storage.NormalizePath(destination)
	if err != nil {
		return false, err
	}

	_, err = s.client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(s.bucket),
		Key:        aws.String(s.fileKey(dst)),
		CopySource: aws.String(s.bucket + "/" + s.fileKey(src)),
	})
	if err != nil {
		if isNotFoundError(err) {
			return false, nil
		}
		return false, fmt.Errorf("s3 copy object: %w", err)
	}
	return true, nil
}

// Rename moves source to destination as copy-then-delete; S3 has no native
// rename.
func (s *Store) Rename(ctx context.Context, source, destination string) (bool, error) {
	copied, err := s.Copy(ctx, source, destination)
	if err != nil || !copied {
		return copied, err
	}

	if err := s.Delete(ctx, source); err != nil {
		return false, err
	}
	return true, nil
}

// ListContents enumerates the directory at path. Shallow listings use the
// "/" delimiter so S3 folds descendants into common prefixes.
func (s *Store) ListContents(ctx context.Context, path string, recursive bool) ([]storage.Entry, error) {
	p, err := s.guard(ctx, path)
	if err != nil {
		return nil, err
	}

	prefix := s.keyPrefix
	if p != "" {
		prefix = s.dirKey(p)
	}

	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	}
	if !recursive {
		input.Delimiter = aws.String("/")
	}

	var entries []storage.Entry
	paginator := s3.NewListObjectsV2Paginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("s3 list objects: %w", err)
		}

		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if strings.HasSuffix(key, "/") {
				continue // directory markers are reported via CommonPrefixes
			}

			entry := storage.Entry{
				Kind: storage.KindFile,
				Path: strings.TrimPrefix(key, s.keyPrefix),
				Size: aws.ToInt64(obj.Size),
			}
			if obj.LastModified != nil {
				entry.ModTime = *obj.LastModified
			}
			entries = append(entries, entry)
		}

		for _, cp := range page.CommonPrefixes {
			dir := strings.TrimSuffix(strings.TrimPrefix(aws.ToString(cp.Prefix), s.keyPrefix), "/")
			entries = append(entries, storage.Entry{
				Kind: storage.KindDirectory,
				Path: dir,
			})
		}
	}
	return entries, nil
}

// Size returns the content length of the file at path.
func (s *Store) Size(ctx context.Context, path string) (int64, error) {
	p, err := s.guard(ctx, path)
	if err != nil {
		return 0, err
	}

	resp, err := s.head(ctx, p)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			if isDir, dirErr := s.isDir(ctx, p); dirErr == nil && isDir {
				return 0, storage.ErrIsDirectory
			}
		}
		return 0, err
	}
	return aws.ToInt64(resp.ContentLength), nil
}

// LastModified returns the last modification time of path.
func (s *Store) LastModified(ctx context.Context, path string) (time.Time, error) {
	p, err := s.guard(ctx, path)
	if err != nil {
		return time.Time{}, err
	}

	resp, err := s.head(ctx, p)
	if err != nil {
		return time.Time{}, err
	}
	if resp.LastModified == nil {
		return time.Time{}, storage.ErrNotFound
	}
	return *resp.LastModified, nil
}

// MimeType returns the Content-Type recorded at write time.
func (s *Store) MimeType(ctx context.Context, path string) (string, error) {
	p, err := s.guard(ctx, path)
	if err != nil {
		return "", err
	}

	resp, err := s.head(ctx, p)
	if err != nil {
		return "", err
	}

	mime := aws.ToString(resp.ContentType)
	if mime == "" || mime == "application/octet-stream" || mime == "binary/octet-stream" {
		return "", storage.ErrUnknownMimeType
	}
	return mime, nil
}

// Close marks the adapter as closed. The underlying HTTP client is shared
// and needs no teardown.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

// Ensure Store implements the contract. Visibility is deliberately not
// implemented; see the package comment.
var _ storage.Adapter = (*Store)(nil)
