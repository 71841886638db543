package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/studiodesk/internal/ports/primary"
	"github.com/example/studiodesk/internal/wire"
)

// ClientCmd returns the client command
func ClientCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Manage clients and their resource counters",
	}

	cmd.AddCommand(clientCreateCmd())
	cmd.AddCommand(clientListCmd())
	cmd.AddCommand(clientShowCmd())
	cmd.AddCommand(clientUpdateCmd())
	cmd.AddCommand(clientDeleteCmd())
	cmd.AddCommand(clientAdjustCmd())
	cmd.AddCommand(clientAssignCmd())
	cmd.AddCommand(clientQuickAssignCmd())

	return cmd
}

func clientCreateCmd() *cobra.Command {
	var email, phone, notes string

	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a new client with zeroed counters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := wire.ClientService().CreateClient(cmd.Context(), primary.CreateClientRequest{
				Name:  args[0],
				Email: email,
				Phone: phone,
				Notes: notes,
			})
			if err != nil {
				return err
			}

			fmt.Printf("✓ Created client %s: %s\n", client.ID, client.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Contact email")
	cmd.Flags().StringVar(&phone, "phone", "", "Contact phone")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")

	return cmd
}

func clientListCmd() *cobra.Command {
	var status string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List clients",
		RunE: func(cmd *cobra.Command, args []string) error {
			clients, err := wire.ClientService().ListClients(cmd.Context(), primary.ClientFilters{
				Status: status,
				Limit:  limit,
			})
			if err != nil {
				return err
			}

			if len(clients) == 0 {
				fmt.Println("No clients found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSTATUS\tPACKAGE\tSERVINGS\tIMAGES\tAI UNITS")
			fmt.Fprintln(w, "--\t----\t------\t-------\t--------\t------\t--------")
			for _, c := range clients {
				pkg := c.CurrentPackageID
				if pkg == "" {
					pkg = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%d\n",
					c.ID, c.Name, c.Status, pkg, c.RemainingServings, c.RemainingImages, c.AITrainingUnits)
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of rows")

	return cmd
}

func clientShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show a client's details and counters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := wire.ClientService().GetClient(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\nClient: %s\n", c.ID)
			fmt.Printf("Name:      %s\n", c.Name)
			fmt.Printf("Email:     %s\n", c.Email)
			fmt.Printf("Phone:     %s\n", c.Phone)
			fmt.Printf("Status:    %s\n", c.Status)
			fmt.Printf("Package:   %s\n", c.CurrentPackageID)
			fmt.Printf("Servings:  %d remaining\n", c.RemainingServings)
			fmt.Printf("Images:    %d remaining (%d consumed, %d reserved)\n",
				c.RemainingImages, c.ConsumedImages, c.ReservedImages)
			fmt.Printf("AI units:  %d\n", c.AITrainingUnits)
			if c.Notes != "" {
				fmt.Printf("Notes:     %s\n", c.Notes)
			}
			fmt.Printf("Created:   %s\n", c.CreatedAt)
			fmt.Println()
			return nil
		},
	}
}

func clientUpdateCmd() *cobra.Command {
	var name, email, phone, status, notes string

	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update a client's descriptive fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := wire.ClientService()
			current, err := svc.GetClient(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			req := primary.UpdateClientRequest{
				ClientID: args[0],
				Name:     current.Name,
				Email:    current.Email,
				Phone:    current.Phone,
				Status:   current.Status,
				Notes:    current.Notes,
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
			if cmd.Flags().Changed("status") {
				req.Status = status
			}
			if cmd.Flags().Changed("notes") {
				req.Notes = notes
			}

			if err := svc.UpdateClient(cmd.Context(), req); err != nil {
				return err
			}
			fmt.Printf("✓ Updated client %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&email, "email", "", "New email")
	cmd.Flags().StringVar(&phone, "phone", "", "New phone")
	cmd.Flags().StringVar(&status, "status", "", "New status")
	cmd.Flags().StringVar(&notes, "notes", "", "New notes")

	return cmd
}

func clientDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wire.ClientService().DeleteClient(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("✓ Deleted client %s\n", args[0])
			return nil
		},
	}
}

func clientAdjustCmd() *cobra.Command {
	var servings, images, trainingUnits int

	cmd := &cobra.Command{
		Use:   "adjust [id]",
		Short: "Adjust a client's resource counters by signed deltas",
		Long: `Adjust resource counters through the optimistic mutation pipeline.

Each flag runs as its own mutation; a decrement on a counter already at
zero is rejected before any write.

Examples:
  studiodesk client adjust CL-001 --servings -1
  studiodesk client adjust CL-001 --images 10 --training-units 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := wire.ClientService()
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

func clientAssignCmd() *cobra.Command {
	var servings, images int
	var note string

	cmd := &cobra.Command{
		Use:   "assign [id] [package-id]",
		Short: "Assign a package with explicit serving and image grants",
		Long: `Assign a package, replacing the remaining counters with the granted
amounts. When both grants are omitted or zero, the assignment grants
exactly one serving.`,
		Args: cobra.ExactArgs(2),
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

			if _, err := wire.ClientService().AssignPackage(cmd.Context(), req); err != nil {
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

func clientQuickAssignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quick-assign [id] [package-id]",
		Short: "Assign a package using its own totals as the grant",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := wire.ClientService().QuickAssignPackage(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			return nil
		},
	}
}
