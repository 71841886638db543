package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/studiodesk/internal/wire"
)

// ReportCmd returns the report command
func ReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Aggregate reports",
	}

	cmd.AddCommand(reportCostCmd())

	return cmd
}

func reportCostCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "costs",
		Short: "Show AI training cost and package value per owner",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := wire.ReportService().CostReport(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("\nCost report (generated %s)\n\n", report.GeneratedAt)

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "OWNER\tNAME\tAI UNITS\tPACKAGE\tVALUE")
			fmt.Fprintln(w, "-----\t----\t--------\t-------\t-----")
			for _, row := range report.Rows {
				pkg := row.PackageID
				if pkg == "" {
					pkg = "-"
				}
				fmt.Fprintf(w, "%s/%s\t%s\t%d\t%s\t%.2f\n",
					row.OwnerType, row.OwnerID, row.Name, row.TrainingUnits, pkg, row.PackagePrice)
			}
			w.Flush()

			fmt.Printf("\nTotal AI training units: %d\n", report.TotalTrainingUnits)
			fmt.Printf("Total package value:     %.2f\n", report.TotalPackageValue)
			fmt.Println()
			return nil
		},
	}
}
