package vault

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/studiodesk/internal/ports/secondary"
)

// FileSystemVault stores blobs as files under a root directory, mirroring
// the blob path as a relative file path. It suits single-host installs where
// a reverse proxy serves the root directory.
type FileSystemVault struct {
	root      string
	publicURL string
}

// NewFileSystemVault creates a filesystem vault rooted at root. publicURL is
// the externally visible prefix for stored blobs; when empty a file:// URL
// is used.
func NewFileSystemVault(root, publicURL string) (*FileSystemVault, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create vault root: %w", err)
	}
	if publicURL == "" {
		publicURL = "file://" + root
	}
	return &FileSystemVault{
		root:      root,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

// Put writes content atomically: a temp file in the destination directory,
// then a rename.
func (v *FileSystemVault) Put(ctx context.Context, path string, r io.Reader, size int64) error {
	destPath, err := v.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("failed to create blob directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	written, err := io.Copy(tmpFile, r)
	if err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write content: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if written != size {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, written)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	success = true
	return nil
}

func (v *FileSystemVault) PublicURL(path string) string {
	return v.publicURL + "/" + path
}

// ValidateSetup verifies that the vault root exists and is a directory.
func (v *FileSystemVault) ValidateSetup(ctx context.Context) error {
	info, err := os.Stat(v.root)
	if err != nil {
		return fmt.Errorf("vault root not accessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("vault root is not a directory: %s", v.root)
	}
	return nil
}

// resolve maps a blob path to a file path, rejecting traversal outside the
// root.
func (v *FileSystemVault) resolve(path string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(path))
	if cleaned == "." || strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("invalid blob path: %s", path)
	}
	return filepath.Join(v.root, cleaned), nil
}

var _ secondary.BlobVault = (*FileSystemVault)(nil)
