// Package config handles reading and writing the studiodesk configuration
// file.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the main configuration for studiodesk.
type Config struct {
	AdminID string       `toml:"admin_id"`
	BaseDir string       `toml:"base_dir"`
	Server  ServerConfig `toml:"server"`
	Store   StoreConfig  `toml:"store"`
	Vault   VaultConfig  `toml:"vault"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	ListenAddr string `toml:"listen_addr"`
}

// StoreConfig represents configuration for the row store backend.
// This uses a tagged union pattern - the Type field determines which other
// fields are relevant.
type StoreConfig struct {
	Type string `toml:"type"` // "sqlite" or "rest"

	// SQLite-specific fields (only used when Type == "sqlite")
	DBPath string `toml:"db_path,omitempty"`

	// Rest-specific fields (only used when Type == "rest")
	BaseURL string `toml:"base_url,omitempty"`
	APIKey  string `toml:"api_key,omitempty"`
}

// VaultConfig represents configuration for the image blob vault.
// This uses a tagged union pattern - the Type field determines which other
// fields are relevant.
type VaultConfig struct {
	Type string `toml:"type"` // "memory", "filesystem", or "s3"

	// FileSystem-specific fields (only used when Type == "filesystem")
	FSVaultRoot string `toml:"fs_vault_root,omitempty"`
	FSPublicURL string `toml:"fs_public_url,omitempty"`

	// S3-specific fields (only used when Type == "s3")
	S3Bucket string `toml:"s3_bucket,omitempty"`
	S3Prefix string `toml:"s3_prefix,omitempty"`
	S3Region string `toml:"s3_region,omitempty"`
}

// NewConfig creates a new Config with defaults rooted at baseDir.
func NewConfig(adminID, baseDir string) *Config {
	return &Config{
		AdminID: adminID,
		BaseDir: baseDir,
		Server: ServerConfig{
			ListenAddr: "127.0.0.1:8484",
		},
		Store: StoreConfig{
			Type:   "sqlite",
			DBPath: filepath.Join(baseDir, "studiodesk.db"),
		},
		Vault: VaultConfig{
			Type:        "filesystem",
			FSVaultRoot: filepath.Join(baseDir, "vault"),
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".studiodesk", "config.toml"), nil
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// writeToFile writes a Config to the specified file path.
func writeToFile(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided
// Config. It refuses to overwrite an existing file.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}

// Validate checks that the tagged-union sections name known backends and
// carry the fields those backends need.
func (c *Config) Validate() error {
	switch c.Store.Type {
	case "sqlite", "":
	case "rest":
		if c.Store.BaseURL == "" {
			return fmt.Errorf("rest store requires base_url to be set")
		}
	default:
		return fmt.Errorf("unknown store type: %s", c.Store.Type)
	}

	switch c.Vault.Type {
	case "memory", "":
	case "filesystem":
		if c.Vault.FSVaultRoot == "" {
			return fmt.Errorf("filesystem vault requires fs_vault_root to be set")
		}
	case "s3":
		if c.Vault.S3Bucket == "" {
			return fmt.Errorf("s3 vault requires s3_bucket to be set")
		}
	default:
		return fmt.Errorf("unknown vault type: %s", c.Vault.Type)
	}

	return nil
}
