package secondary

import (
	"context"
	"io"
)

// BlobVault provides an interface for blob storage backends holding
// submission images. Uploads stream via io.Reader so large images are not
// held in memory. A stored blob is addressable by a stable public URL
// without any further fetch.
type BlobVault interface {
	// Put stores content under the given path. size is the number of bytes
	// that will be read from r. Storing the same path twice overwrites.
	Put(ctx context.Context, path string, r io.Reader, size int64) error

	// PublicURL returns the public URL for a stored path. It performs no
	// network access.
	PublicURL(path string) string

	// ValidateSetup verifies that the vault is accessible and properly
	// configured.
	ValidateSetup(ctx context.Context) error
}
