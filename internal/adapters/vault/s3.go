package vault

import (
	"context"
	"fmt"
	"io"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/example/studiodesk/internal/ports/secondary"
)

// s3API is the slice of the S3 client this vault uses.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// S3Vault stores blobs in an S3 bucket. Objects are addressed as
// <prefix>/<path> and served from the bucket's public endpoint.
type S3Vault struct {
	client s3API
	bucket string
	prefix string
	region string
}

// NewS3Vault creates an S3 vault using the default AWS credential chain.
func NewS3Vault(ctx context.Context, bucket, prefix, region string) (*S3Vault, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	return &S3Vault{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		region: region,
	}, nil
}

// newS3VaultWithClient exists for tests.
func newS3VaultWithClient(client s3API, bucket, prefix, region string) *S3Vault {
	return &S3Vault{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/"), region: region}
}

func (v *S3Vault) Put(ctx context.Context, path string, r io.Reader, size int64) error {
	key := v.key(path)
	_, err := v.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        &v.bucket,
		Key:           &key,
		Body:          r,
		ContentLength: &size,
	})
	if err != nil {
		return fmt.Errorf("failed to put object %s: %w", key, err)
	}
	return nil
}

func (v *S3Vault) PublicURL(path string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", v.bucket, v.region, v.key(path))
}

// ValidateSetup verifies the bucket exists and credentials can reach it.
func (v *S3Vault) ValidateSetup(ctx context.Context) error {
	if _, err := v.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: &v.bucket}); err != nil {
		return fmt.Errorf("bucket %s not accessible: %w", v.bucket, err)
	}
	return nil
}

func (v *S3Vault) key(path string) string {
	if v.prefix == "" {
		return path
	}
	return v.prefix + "/" + path
}

var _ secondary.BlobVault = (*S3Vault)(nil)
