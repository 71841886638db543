package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/studiodesk/internal/cli"
	"github.com/example/studiodesk/internal/version"
	"github.com/example/studiodesk/internal/wire"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "studiodesk",
		Short:   "studiodesk - admin backend for a food-photography service",
		Version: version.String(),
		Long: `studiodesk manages clients, affiliates, leads, photo packages and
submissions for a food-photography studio. It serves the admin dashboard
API and offers the same operations on the command line.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// CLI runs report outcomes inline instead of over the event feed.
			if cmd.Name() != "serve" {
				wire.SetNotifier(cli.NewColorNotifier(os.Stdout))
			}
		},
	}

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.DoctorCmd())
	rootCmd.AddCommand(cli.ServeCmd())
	rootCmd.AddCommand(cli.ClientCmd())
	rootCmd.AddCommand(cli.AffiliateCmd())
	rootCmd.AddCommand(cli.LeadCmd())
	rootCmd.AddCommand(cli.PackageCmd())
	rootCmd.AddCommand(cli.SubmissionCmd())
	rootCmd.AddCommand(cli.CommentCmd())
	rootCmd.AddCommand(cli.SessionCmd())
	rootCmd.AddCommand(cli.ReportCmd())
	rootCmd.AddCommand(cli.VersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
