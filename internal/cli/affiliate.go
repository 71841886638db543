package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/studiodesk/internal/ports/primary"
	"github.com/example/studiodesk/internal/wire"
)

// AffiliateCmd returns the affiliate command
func AffiliateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "affiliate",
		Short: "Manage affiliates and their resource counters",
	}

	cmd.AddCommand(affiliateCreateCmd())
	cmd.AddCommand(affiliateListCmd())
	cmd.AddCommand(affiliateShowCmd())
	cmd.AddCommand(affiliateUpdateCmd())
	cmd.AddCommand(affiliateDeleteCmd())
	cmd.AddCommand(affiliateAdjustCmd())
	cmd.AddCommand(affiliateAssignCmd())
	cmd.AddCommand(affiliateQuickAssignCmd())

	return cmd
}

func affiliateCreateCmd() *cobra.Command {
	var email, phone string
	var commission int

	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a new affiliate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			affiliate, err := wire.AffiliateService().CreateAffiliate(cmd.Context(), primary.CreateAffiliateRequest{
				Name:              args[0],
				Email:             email,
				Phone:             phone,
				CommissionPercent: commission,
			})
			if err != nil {
				return err
			}

			fmt.Printf("✓ Created affiliate %s: %s (%d%% commission)\n",
				affiliate.ID, affiliate.Name, affiliate.CommissionPercent)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Contact email")
	cmd.Flags().StringVar(&phone, "phone", "", "Contact phone")
	cmd.Flags().IntVar(&commission, "commission", 0, "Commission percent")

	return cmd
}

func affiliateListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List affiliates",
		RunE: func(cmd *cobra.Command, args []string) error {
			affiliates, err := wire.AffiliateService().ListAffiliates(cmd.Context(), primary.AffiliateFilters{
				Limit: limit,
			})
			if err != nil {
				return err
			}

			if len(affiliates) == 0 {
				fmt.Println("No affiliates found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCOMMISSION\tPACKAGE\tSERVINGS\tIMAGES\tAI UNITS")
			fmt.Fprintln(w, "--\t----\t----------\t-------\t--------\t------\t--------")
			for _, a := range affiliates {
				pkg := a.CurrentPackageID
				if pkg == "" {
					pkg = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%d%%\t%s\t%d\t%d\t%d\n",
					a.ID, a.Name, a.CommissionPercent, pkg, a.RemainingServings, a.RemainingImages, a.AITrainingUnits)
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of rows")

	return cmd
}

func affiliateShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show an affiliate's details and counters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := wire.AffiliateService().GetAffiliate(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\nAffiliate: %s\n", a.ID)
			fmt.Printf("Name:       %s\n", a.Name)
			fmt.Printf("Email:      %s\n", a.Email)
			fmt.Printf("Commission: %d%%\n", a.CommissionPercent)
			fmt.Printf("Package:    %s\n", a.CurrentPackageID)
			fmt.Printf("Servings:   %d remaining\n", a.RemainingServings)
			fmt.Printf("Images:     %d remaining\n", a.RemainingImages)
			fmt.Printf("AI units:   %d\n", a.AITrainingUnits)
			fmt.Printf("Created:    %s\n", a.CreatedAt)
			fmt.Println()
			return nil
		},
	}
}

func affiliateUpdateCmd() *cobra.Command {
	var name, email, phone string
	var commission int

	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update an affiliate's contact fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := wire.AffiliateService()
			a, err := svc.GetAffiliate(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			req := primary.UpdateAffiliateRequest{
				AffiliateID:       a.ID,
				Name:              a.Name,
				Email:             a.Email,
				Phone:             a.Phone,
				CommissionPercent: a.CommissionPercent,
			}
			if cmd.Flags().Changed("name") {
				req.Name = name
			}
			if cmd.Flags().Changed("email") {
				req.Email = email
			}
			if cmd.Flags().Changed("phone") {
				req.Phone = phone
			}
			if cmd.Flags().Changed("commission") {
				req.CommissionPercent = commission
			}

			if err := svc.UpdateAffiliate(cmd.Context(), req); err != nil {
				return err
			}
			fmt.Printf("✓ Updated affiliate %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Affiliate name")
	cmd.Flags().StringVar(&email, "email", "", "Contact email")
	cmd.Flags().StringVar(&phone, "phone", "", "Contact phone")
	cmd.Flags().IntVar(&commission, "commission", 0, "Commission percent")

	return cmd
}

func affiliateDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete an affiliate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wire.AffiliateService().DeleteAffiliate(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("✓ Deleted affiliate %s\n", args[0])
			return nil
		},
	}
}

func affiliateAdjustCmd() *cobra.Command {
	var servings, images, trainingUnits int

	cmd := &cobra.Command{
		Use:   "adjust [id]",
		Short: "Adjust an affiliate's resource counters by signed deltas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := wire.AffiliateService()
			ctx := cmd.Context()

			if cmd.Flags().Changed("servings") {
				if _, err := svc.AdjustServings(ctx, args[0], servings); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("images") {
				if _, err := svc.AdjustImages(ctx, args[0], images); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("training-units") {
				if _, err := svc.AdjustTrainingUnits(ctx, args[0], trainingUnits); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&servings, "servings", 0, "Signed delta for remaining servings")
	cmd.Flags().IntVar(&images, "images", 0, "Signed delta for remaining images")
	cmd.Flags().IntVar(&trainingUnits, "training-units", 0, "Signed delta for AI training units")

	return cmd
}

func affiliateAssignCmd() *cobra.Command {
	var servings, images int
	var note string

	cmd := &cobra.Command{
		Use:   "assign [id] [package-id]",
		Short: "Assign a package with explicit serving and image grants",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := primary.AssignPackageRequest{
				EntityID:  args[0],
				PackageID: args[1],
				Note:      note,
			}
			if cmd.Flags().Changed("servings") {
				req.Servings = &servings
			}
			if cmd.Flags().Changed("images") {
				req.Images = &images
			}

			if _, err := wire.AffiliateService().AssignPackage(cmd.Context(), req); err != nil {
				return err
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&servings, "servings", 0, "Serving grant (absolute)")
	cmd.Flags().IntVar(&images, "images", 0, "Image grant (absolute)")
	cmd.Flags().StringVar(&note, "note", "", "Assignment note")

	return cmd
}

func affiliateQuickAssignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quick-assign [id] [package-id]",
		Short: "Assign a package using its own totals as the grant",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := wire.AffiliateService().QuickAssignPackage(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			return nil
		},
	}
}
