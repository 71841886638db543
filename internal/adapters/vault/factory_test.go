package vault

import (
	"context"
	"strings"
	"testing"

	"github.com/example/studiodesk/internal/config"
)

func TestNewVaultFromConfig(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		v, err := NewVaultFromConfig(ctx, config.VaultConfig{Type: "memory"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := v.(*MemoryVault); !ok {
			t.Errorf("expected *MemoryVault, got %T", v)
		}
	})

	t.Run("empty type defaults to memory", func(t *testing.T) {
		v, err := NewVaultFromConfig(ctx, config.VaultConfig{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := v.(*MemoryVault); !ok {
			t.Errorf("expected *MemoryVault, got %T", v)
		}
	})

	t.Run("filesystem", func(t *testing.T) {
		v, err := NewVaultFromConfig(ctx, config.VaultConfig{
			Type:        "filesystem",
			FSVaultRoot: t.TempDir(),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := v.(*FileSystemVault); !ok {
			t.Errorf("expected *FileSystemVault, got %T", v)
		}
	})

	t.Run("filesystem without root", func(t *testing.T) {
		_, err := NewVaultFromConfig(ctx, config.VaultConfig{Type: "filesystem"})
		if err == nil || !strings.Contains(err.Error(), "fs_vault_root") {
			t.Fatalf("expected fs_vault_root error, got: %v", err)
		}
	})

	t.Run("s3 without bucket", func(t *testing.T) {
		_, err := NewVaultFromConfig(ctx, config.VaultConfig{Type: "s3"})
		if err == nil || !strings.Contains(err.Error(), "s3_bucket") {
			t.Fatalf("expected s3_bucket error, got: %v", err)
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := NewVaultFromConfig(ctx, config.VaultConfig{Type: "ftp"})
		if err == nil || !strings.Contains(err.Error(), "unknown vault type") {
			t.Fatalf("expected unknown type error, got: %v", err)
		}
	})
}
