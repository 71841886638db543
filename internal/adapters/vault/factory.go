package vault

import (
	"context"
	"fmt"

	"github.com/example/studiodesk/internal/config"
	"github.com/example/studiodesk/internal/ports/secondary"
)

// NewVaultFromConfig creates a BlobVault implementation based on the vault
// config type.
func NewVaultFromConfig(ctx context.Context, cfg config.VaultConfig) (secondary.BlobVault, error) {
	switch cfg.Type {
	case "memory", "":
		return NewMemoryVault(""), nil
	case "filesystem":
		if cfg.FSVaultRoot == "" {
			return nil, fmt.Errorf("filesystem vault requires fs_vault_root to be set")
		}
		return NewFileSystemVault(cfg.FSVaultRoot, cfg.FSPublicURL)
	case "s3":
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("s3 vault requires s3_bucket to be set")
		}
		return NewS3Vault(ctx, cfg.S3Bucket, cfg.S3Prefix, cfg.S3Region)
	default:
		return nil, fmt.Errorf("unknown vault type: %s", cfg.Type)
	}
}
