package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadWriteRoundTrip(t *testing.T) {
	cfg := NewConfig("admin-1", "/tmp/studiodesk-test")
	cfg.Store = StoreConfig{Type: "rest", BaseURL: "https://rows.example.com", APIKey: "secret"}
	cfg.Vault = VaultConfig{Type: "s3", S3Bucket: "studiodesk-images", S3Region: "eu-central-1"}

	var buf bytes.Buffer
	m := &Manager{}
	if err := m.Write(&buf, cfg); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := m.Read(&buf)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got.AdminID != "admin-1" {
		t.Errorf("expected admin-1, got %q", got.AdminID)
	}
	if got.Store.Type != "rest" || got.Store.BaseURL != "https://rows.example.com" {
		t.Errorf("store section did not round-trip: %+v", got.Store)
	}
	if got.Vault.S3Bucket != "studiodesk-images" {
		t.Errorf("vault section did not round-trip: %+v", got.Vault)
	}
	if got.Server.ListenAddr != "127.0.0.1:8484" {
		t.Errorf("expected default listen addr, got %q", got.Server.ListenAddr)
	}
}

func TestReadRejectsMalformedTOML(t *testing.T) {
	m := &Manager{}
	_, err := m.Read(strings.NewReader("admin_id = [broken"))
	if err == nil {
		t.Fatal("expected error for malformed config")
	}
}

func TestInitRefusesToOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	cfg := NewConfig("admin-1", dir)

	if err := Init(path, cfg); err != nil {
		t.Fatalf("first Init failed: %v", err)
	}
	if err := Init(path, cfg); err == nil {
		t.Fatal("expected error when config already exists")
	}
}

func TestInitCreatesMissingDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deeper", "config.toml")

	if err := Init(path, NewConfig("admin-1", dir)); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file missing after Init: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults pass", func(c *Config) {}, ""},
		{"rest without base_url", func(c *Config) {
			c.Store = StoreConfig{Type: "rest"}
		}, "base_url"},
		{"unknown store type", func(c *Config) {
			c.Store.Type = "dynamo"
		}, "unknown store type"},
		{"filesystem vault without root", func(c *Config) {
			c.Vault = VaultConfig{Type: "filesystem"}
		}, "fs_vault_root"},
		{"s3 vault without bucket", func(c *Config) {
			c.Vault = VaultConfig{Type: "s3", S3Region: "eu-central-1"}
		}, "s3_bucket"},
		{"unknown vault type", func(c *Config) {
			c.Vault.Type = "ftp"
		}, "unknown vault type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig("admin-1", t.TempDir())
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected valid config, got: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got: %v", tt.wantErr, err)
			}
		})
	}
}
