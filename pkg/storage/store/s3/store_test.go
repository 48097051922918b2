package s3

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Standard S3 404 error document, as returned for a missing CopyObject source.
const noSuchKeyBody = `<?xml version="1.0" encoding="UTF-8"?>
<Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message><Key>missing.txt</Key></Error>`

const accessDeniedBody = `<?xml version="1.0" encoding="UTF-8"?>
<Error><Code>AccessDenied</Code><Message>Access Denied</Message></Error>`

// newFakeStore points an adapter at a stub S3 endpoint that answers every
// request with the given status and error document.
func newFakeStore(t *testing.T, status int, body string) *Store {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	client := s3.New(s3.Options{
		BaseEndpoint: aws.String(srv.URL),
		Region:       "us-east-1",
		UsePathStyle: true,
		Credentials:  credentials.NewStaticCredentialsProvider("test", "test", ""),
	})
	return New(client, Config{Bucket: "test-bucket"})
}

func TestIsNotFoundError(t *testing.T) {
	assert.True(t, isNotFoundError(&types.NoSuchKey{}))
	assert.True(t, isNotFoundError(&types.NotFound{}))

	// CopyObject misses arrive as generic API errors, not modeled types
	assert.True(t, isNotFoundError(&smithy.GenericAPIError{Code: "NoSuchKey"}))
	assert.True(t, isNotFoundError(&smithy.GenericAPIError{Code: "NotFound"}))

	assert.False(t, isNotFoundError(nil))
	assert.False(t, isNotFoundError(errors.New("connection refused")))
	assert.False(t, isNotFoundError(&smithy.GenericAPIError{Code: "AccessDenied"}))
}

func TestCopyMissingSource(t *testing.T) {
	store := newFakeStore(t, http.StatusNotFound, noSuchKeyBody)
	defer store.Close()

	copied, err := store.Copy(context.Background(), "missing.txt", "destination.txt")
	require.NoError(t, err)
	assert.False(t, copied)
}

func TestRenameMissingSource(t *testing.T) {
	store := newFakeStore(t, http.StatusNotFound, noSuchKeyBody)
	defer store.Close()

	moved, err := store.Rename(context.Background(), "missing.txt", "destination.txt")
	require.NoError(t, err)
	assert.False(t, moved)
}

func TestCopyOtherErrorSurfaces(t *testing.T) {
	store := newFakeStore(t, http.StatusForbidden, accessDeniedBody)
	defer store.Close()

	_, err := store.Copy(context.Background(), "source.txt", "destination.txt")
	assert.Error(t, err)
}
