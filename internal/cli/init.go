package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/example/studiodesk/internal/config"
	"github.com/example/studiodesk/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var adminID, baseDir string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the studiodesk config and local database",
		Long: `Write a default config file at ~/.studiodesk/config.toml and create the
local SQLite database. Refuses to overwrite an existing config.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.DefaultPath()
			if err != nil {
				return fmt.Errorf("failed to locate config path: %w", err)
			}

			if baseDir == "" {
				baseDir = defaultBaseDir()
			}
			cfg := config.NewConfig(adminID, baseDir)
			if err := config.Init(path, cfg); err != nil {
				return err
			}
			fmt.Printf("✓ Config written to %s\n", path)

			if cfg.Store.Type == "sqlite" {
				dbPath, err := db.GetDBPath()
				if err != nil {
					return fmt.Errorf("failed to get database path: %w", err)
				}
				if _, err := db.GetDB(); err != nil {
					return fmt.Errorf("failed to initialize database: %w", err)
				}
				fmt.Printf("✓ Database initialized at %s\n", dbPath)
			}

			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  studiodesk client create \"My First Client\"")
			fmt.Println("  studiodesk serve")

			return nil
		},
	}

	cmd.Flags().StringVar(&adminID, "admin", "admin", "Admin identity for the dashboard")
	cmd.Flags().StringVar(&baseDir, "base-dir", "", "Data directory (defaults to ~/.studiodesk)")

	return cmd
}

func defaultBaseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".studiodesk"
	}
	return filepath.Join(home, ".studiodesk")
}
