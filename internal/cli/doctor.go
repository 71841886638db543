package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/studiodesk/internal/config"
	"github.com/example/studiodesk/internal/db"
	"github.com/example/studiodesk/internal/db/migrations"
	"github.com/example/studiodesk/internal/wire"
)

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	Status  string // "✓", "⚠", "✗"
	Details string // Only shown if Status != "✓"
}

// DoctorCmd returns the doctor command for environment validation
func DoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate the studiodesk environment",
		Long: `Health check for the studiodesk setup.

Validates:
- Config file presence and contents
- Store backend (SQLite schema, or REST credentials)
- Blob vault reachability

Examples:
  studiodesk doctor           # Run full health check
  studiodesk doctor --quiet   # Exit code only (0=healthy, 1=issues)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			results := []CheckResult{
				checkConfig(),
				checkStore(),
				checkVault(cmd),
			}

			hasErrors := false
			for _, r := range results {
				if r.Status == "✗" {
					hasErrors = true
					break
				}
			}

			if !quiet {
				fmt.Println()
				fmt.Println("Check         Status")
				fmt.Println("--------------------")
				for _, r := range results {
					fmt.Printf("%-13s %s\n", r.Name, r.Status)
				}
				fmt.Println()

				hasDetails := false
				for _, r := range results {
					if r.Status != "✓" && r.Details != "" {
						if !hasDetails {
							fmt.Println("Details:")
							hasDetails = true
						}
						fmt.Printf("\n%s:\n%s\n", r.Name, r.Details)
					}
				}

				if hasErrors {
					fmt.Println("\n⚠ Issues found. Run 'studiodesk init' or fix the config.")
				} else {
					fmt.Println("All checks passed.")
				}
			}

			if hasErrors {
				return fmt.Errorf("environment validation failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode - exit code only")

	return cmd
}

// checkConfig validates the config file
func checkConfig() CheckResult {
	path := os.Getenv("STUDIODESK_CONFIG")
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return CheckResult{Name: "Config", Status: "✗", Details: "  Cannot get home directory"}
		}
		path = p
	}

	cfg, err := config.ReadFromFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return CheckResult{
				Name:    "Config",
				Status:  "⚠",
				Details: fmt.Sprintf("  %s not found, running on defaults\n  Run: studiodesk init", path),
			}
		}
		return CheckResult{Name: "Config", Status: "✗", Details: "  " + err.Error()}
	}

	if err := cfg.Validate(); err != nil {
		return CheckResult{Name: "Config", Status: "✗", Details: "  " + err.Error()}
	}

	return CheckResult{Name: "Config", Status: "✓"}
}

// checkStore validates the configured persistence backend
func checkStore() CheckResult {
	cfg := wire.Config()

	if cfg.Store.Type == "rest" {
		if cfg.Store.BaseURL == "" || cfg.Store.APIKey == "" {
			return CheckResult{
				Name:    "Store",
				Status:  "✗",
				Details: "  REST store needs base_url and api_key",
			}
		}
		return CheckResult{Name: "Store", Status: "✓"}
	}

	database, err := db.GetDB()
	if err != nil {
		return CheckResult{Name: "Store", Status: "✗", Details: "  " + err.Error()}
	}
	if err := migrations.CheckDBMigrationStatus(database); err != nil {
		return CheckResult{
			Name:    "Store",
			Status:  "✗",
			Details: "  " + err.Error() + "\n  Run: studiodesk init",
		}
	}

	return CheckResult{Name: "Store", Status: "✓"}
}

// checkVault verifies the blob vault backend is reachable
func checkVault(cmd *cobra.Command) CheckResult {
	if err := wire.Vault().ValidateSetup(cmd.Context()); err != nil {
		return CheckResult{Name: "Vault", Status: "✗", Details: "  " + err.Error()}
	}
	return CheckResult{Name: "Vault", Status: "✓"}
}
