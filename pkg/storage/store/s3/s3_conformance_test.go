//go:build integration

package s3_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/marmos91/stowfs/pkg/storage"
	"github.com/marmos91/stowfs/pkg/storage/storagetest"
	s3store "github.com/marmos91/stowfs/pkg/storage/store/s3"
)

const testBucket = "stowfs-conformance"

// localstackHelper manages the Localstack container for S3 conformance runs.
type localstackHelper struct {
	endpoint string
	client   *awss3.Client
}

// newLocalstackHelper starts a Localstack container, or connects to an
// existing one when LOCALSTACK_ENDPOINT is set.
func newLocalstackHelper(t *testing.T) *localstackHelper {
	t.Helper()
	ctx := context.Background()

	if endpoint := os.Getenv("LOCALSTACK_ENDPOINT"); endpoint != "" {
		helper := &localstackHelper{endpoint: endpoint}
		helper.createClient(t)
		return helper
	}

	req := testcontainers.ContainerRequest{
		Image:        "localstack/localstack:3.0",
		ExposedPorts: []string{"4566/tcp"},
		Env: map[string]string{
			"SERVICES":              "s3",
			"DEFAULT_REGION":        "us-east-1",
			"EAGER_SERVICE_LOADING": "1",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("4566/tcp"),
			wait.ForHTTP("/_localstack/health").
				WithPort("4566/tcp").
				WithStartupTimeout(60*time.Second),
		),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("failed to start localstack container: %v", err)
	}
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to resolve container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "4566/tcp")
	if err != nil {
		t.Fatalf("failed to resolve container port: %v", err)
	}

	helper := &localstackHelper{
		endpoint: fmt.Sprintf("http://%s:%s", host, port.Port()),
	}
	helper.createClient(t)
	return helper
}

func (h *localstackHelper) createClient(t *testing.T) {
	t.Helper()

	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion("us-east-1"),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider("test", "test", ""),
		),
	)
	if err != nil {
		t.Fatalf("failed to load AWS config: %v", err)
	}

	h.client = awss3.NewFromConfig(cfg, func(o *awss3.Options) {
		o.BaseEndpoint = aws.String(h.endpoint)
		o.UsePathStyle = true
	})
}

func (h *localstackHelper) ensureBucket(t *testing.T) {
	t.Helper()

	_, err := h.client.CreateBucket(context.Background(), &awss3.CreateBucketInput{
		Bucket: aws.String(testBucket),
	})
	if err != nil {
		// BucketAlreadyOwnedByYou is fine when re-running against an
		// external Localstack
		_, headErr := h.client.HeadBucket(context.Background(), &awss3.HeadBucketInput{
			Bucket: aws.String(testBucket),
		})
		if headErr != nil {
			t.Fatalf("failed to create bucket: %v", err)
		}
	}
}

func TestConformance(t *testing.T) {
	helper := newLocalstackHelper(t)
	helper.ensureBucket(t)

	// The suite clears the bucket before every scenario, so one shared
	// adapter instance is safe to reuse across the whole run.
	store := s3store.New(helper.client, s3store.Config{Bucket: testBucket})
	t.Cleanup(func() {
		store.Close()
	})

	storagetest.RunConformanceSuite(t, func(t *testing.T) storage.Adapter {
		return store
	})
}
