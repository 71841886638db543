package vault

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type fakeS3 struct {
	puts        map[string]string
	headErr     error
	lastContent int64
}

func newFakeS3() *fakeS3 {
	return &fakeS3{puts: make(map[string]string)}
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.puts[*params.Key] = string(data)
	if params.ContentLength != nil {
		f.lastContent = *params.ContentLength
	}
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	if f.headErr != nil {
		return nil, f.headErr
	}
	return &s3.HeadBucketOutput{}, nil
}

func TestS3Vault_PutPrefixesKey(t *testing.T) {
	fake := newFakeS3()
	v := newS3VaultWithClient(fake, "studiodesk-images", "/uploads/", "eu-central-1")

	content := "jpeg bytes"
	if err := v.Put(context.Background(), "submissions/S-1/a.jpg", strings.NewReader(content), int64(len(content))); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, ok := fake.puts["uploads/submissions/S-1/a.jpg"]
	if !ok {
		t.Fatalf("expected prefixed key, stored keys: %v", fake.puts)
	}
	if got != content {
		t.Errorf("stored content mismatch: %q", got)
	}
	if fake.lastContent != int64(len(content)) {
		t.Errorf("expected content length %d, got %d", len(content), fake.lastContent)
	}
}

func TestS3Vault_PublicURL(t *testing.T) {
	v := newS3VaultWithClient(newFakeS3(), "studiodesk-images", "uploads", "eu-central-1")
	got := v.PublicURL("submissions/S-1/a.jpg")
	want := "https://studiodesk-images.s3.eu-central-1.amazonaws.com/uploads/submissions/S-1/a.jpg"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestS3Vault_ValidateSetup(t *testing.T) {
	fake := newFakeS3()
	v := newS3VaultWithClient(fake, "studiodesk-images", "", "eu-central-1")
	if err := v.ValidateSetup(context.Background()); err != nil {
		t.Fatalf("ValidateSetup failed: %v", err)
	}

	fake.headErr = errors.New("403 Forbidden")
	if err := v.ValidateSetup(context.Background()); err == nil {
		t.Fatal("expected error when bucket is unreachable")
	}
}
