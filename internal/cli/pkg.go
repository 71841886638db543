package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/studiodesk/internal/ports/primary"
	"github.com/example/studiodesk/internal/wire"
)

// PackageCmd returns the package command
func PackageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "package",
		Short: "Manage service packages",
	}

	cmd.AddCommand(packageCreateCmd())
	cmd.AddCommand(packageListCmd())
	cmd.AddCommand(packageShowCmd())
	cmd.AddCommand(packageUpdateCmd())
	cmd.AddCommand(packageDeleteCmd())

	return cmd
}

func packageCreateCmd() *cobra.Command {
	var description string
	var servings, images, maxEdits, maxDays int
	var price float64
	var tags []string
	var inactive bool

	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a new service package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pkg, err := wire.PackageService().CreatePackage(cmd.Context(), primary.CreatePackageRequest{
				Name:                  args[0],
				Description:           description,
				TotalServings:         servings,
				TotalImages:           images,
				Price:                 price,
				IsActive:              !inactive,
				MaxEditsPerServing:    maxEdits,
				MaxProcessingTimeDays: maxDays,
				FeaturesTags:          tags,
			})
			if err != nil {
				return err
			}

			fmt.Printf("✓ Created package %s: %s (%d servings, %d images, %.2f)\n",
				pkg.ID, pkg.Name, pkg.TotalServings, pkg.TotalImages, pkg.Price)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Package description")
	cmd.Flags().IntVar(&servings, "servings", 0, "Total servings in the bundle")
	cmd.Flags().IntVar(&images, "images", 0, "Total images in the bundle")
	cmd.Flags().Float64Var(&price, "price", 0, "Package price")
	cmd.Flags().IntVar(&maxEdits, "max-edits", 0, "Max edits per serving")
	cmd.Flags().IntVar(&maxDays, "max-days", 0, "Max processing time in days")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "Comma-separated feature tags")
	cmd.Flags().BoolVar(&inactive, "inactive", false, "Create the package inactive")

	return cmd
}

func packageListCmd() *cobra.Command {
	var all bool
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List packages (active only by default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			packages, err := wire.PackageService().ListPackages(cmd.Context(), primary.PackageFilters{
				ActiveOnly: !all,
				Limit:      limit,
			})
			if err != nil {
				return err
			}

			if len(packages) == 0 {
				fmt.Println("No packages found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSERVINGS\tIMAGES\tPRICE\tACTIVE\tTAGS")
			fmt.Fprintln(w, "--\t----\t--------\t------\t-----\t------\t----")
			for _, p := range packages {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.2f\t%t\t%s\n",
					p.ID, p.Name, p.TotalServings, p.TotalImages, p.Price, p.IsActive,
					strings.Join(p.FeaturesTags, ","))
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include inactive packages")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of rows")

	return cmd
}

func packageShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show a package's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := wire.PackageService().GetPackage(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\nPackage: %s\n", p.ID)
			fmt.Printf("Name:        %s\n", p.Name)
			fmt.Printf("Description: %s\n", p.Description)
			fmt.Printf("Servings:    %d\n", p.TotalServings)
			fmt.Printf("Images:      %d\n", p.TotalImages)
			fmt.Printf("Price:       %.2f\n", p.Price)
			fmt.Printf("Active:      %t\n", p.IsActive)
			fmt.Printf("Max edits:   %d per serving\n", p.MaxEditsPerServing)
			fmt.Printf("Max days:    %d\n", p.MaxProcessingTimeDays)
			if len(p.FeaturesTags) > 0 {
				fmt.Printf("Tags:        %s\n", strings.Join(p.FeaturesTags, ", "))
			}
			fmt.Printf("Created:     %s\n", p.CreatedAt)
			fmt.Println()
			return nil
		},
	}
}

func packageUpdateCmd() *cobra.Command {
	var name, description string
	var servings, images, maxEdits, maxDays int
	var price float64
	var tags []string
	var active bool

	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update a package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := wire.PackageService()
			current, err := svc.GetPackage(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			req := primary.UpdatePackageRequest{
				PackageID:             args[0],
				Name:                  current.Name,
				Description:           current.Description,
				TotalServings:         current.TotalServings,
				TotalImages:           current.TotalImages,
				Price:                 current.Price,
				IsActive:              current.IsActive,
				MaxEditsPerServing:    current.MaxEditsPerServing,
				MaxProcessingTimeDays: current.MaxProcessingTimeDays,
				FeaturesTags:          current.FeaturesTags,
			}
			if cmd.Flags().Changed("name") {
				req.Name = name
			}
			if cmd.Flags().Changed("description") {
				req.Description = description
			}
			if cmd.Flags().Changed("servings") {
				req.TotalServings = servings
			}
			if cmd.Flags().Changed("images") {
				req.TotalImages = images
			}
			if cmd.Flags().Changed("price") {
				req.Price = price
			}
			if cmd.Flags().Changed("active") {
				req.IsActive = active
			}
			if cmd.Flags().Changed("max-edits") {
				req.MaxEditsPerServing = maxEdits
			}
			if cmd.Flags().Changed("max-days") {
				req.MaxProcessingTimeDays = maxDays
			}
			if cmd.Flags().Changed("tags") {
				req.FeaturesTags = tags
			}

			if err := svc.UpdatePackage(cmd.Context(), req); err != nil {
				return err
			}
			fmt.Printf("✓ Updated package %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().IntVar(&servings, "servings", 0, "New total servings")
	cmd.Flags().IntVar(&images, "images", 0, "New total images")
	cmd.Flags().Float64Var(&price, "price", 0, "New price")
	cmd.Flags().BoolVar(&active, "active", true, "Active flag")
	cmd.Flags().IntVar(&maxEdits, "max-edits", 0, "New max edits per serving")
	cmd.Flags().IntVar(&maxDays, "max-days", 0, "New max processing days")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "New feature tags")

	return cmd
}

func packageDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a package",
		Long: `Delete a package row. Clients and affiliates holding the package keep
their current_package_id and remaining counters; only cached package
projections are invalidated.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wire.PackageService().DeletePackage(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("✓ Deleted package %s\n", args[0])
			return nil
		},
	}
}
