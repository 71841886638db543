// Package vault provides blob storage backends for submission images.
package vault

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/example/studiodesk/internal/ports/secondary"
)

// MemoryVault is an in-memory implementation of the BlobVault interface.
// It stores all content in memory, making it useful for testing and for
// running without any storage configured. This implementation is safe for
// concurrent use.
type MemoryVault struct {
	baseURL string
	blobs   map[string][]byte
	mu      sync.RWMutex
}

// NewMemoryVault creates a new in-memory vault. Public URLs are formed by
// joining baseURL and the blob path.
func NewMemoryVault(baseURL string) *MemoryVault {
	if baseURL == "" {
		baseURL = "memory://vault"
	}
	return &MemoryVault{
		baseURL: baseURL,
		blobs:   make(map[string][]byte),
	}
}

// Put stores content under path. Storing the same path twice overwrites.
func (v *MemoryVault) Put(ctx context.Context, path string, r io.Reader, size int64) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read content: %w", err)
	}
	if int64(len(data)) != size {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, len(data))
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.blobs[path] = data
	return nil
}

// Get retrieves stored content. It exists for tests; the application only
// ever hands out public URLs.
func (v *MemoryVault) Get(path string) ([]byte, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	data, ok := v.blobs[path]
	return data, ok
}

func (v *MemoryVault) PublicURL(path string) string {
	return v.baseURL + "/" + path
}

// ValidateSetup always succeeds for the in-memory vault.
func (v *MemoryVault) ValidateSetup(ctx context.Context) error {
	return nil
}

var _ secondary.BlobVault = (*MemoryVault)(nil)
