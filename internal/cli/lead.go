package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/studiodesk/internal/ports/primary"
	"github.com/example/studiodesk/internal/wire"
)

// LeadCmd returns the lead command
func LeadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lead",
		Short: "Manage prospective clients",
	}

	cmd.AddCommand(leadCreateCmd())
	cmd.AddCommand(leadListCmd())
	cmd.AddCommand(leadShowCmd())
	cmd.AddCommand(leadUpdateCmd())
	cmd.AddCommand(leadDeleteCmd())
	cmd.AddCommand(leadConvertCmd())

	return cmd
}

func leadCreateCmd() *cobra.Command {
	var email, phone, source string

	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a new lead",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lead, err := wire.LeadService().CreateLead(cmd.Context(), primary.CreateLeadRequest{
				Name:   args[0],
				Email:  email,
				Phone:  phone,
				Source: source,
			})
			if err != nil {
				return err
			}

			fmt.Printf("✓ Created lead %s: %s\n", lead.ID, lead.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Contact email")
	cmd.Flags().StringVar(&phone, "phone", "", "Contact phone")
	cmd.Flags().StringVar(&source, "source", "", "Acquisition source")

	return cmd
}

func leadListCmd() *cobra.Command {
	var status string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List leads",
		RunE: func(cmd *cobra.Command, args []string) error {
			leads, err := wire.LeadService().ListLeads(cmd.Context(), primary.LeadFilters{
				Status: status,
				Limit:  limit,
			})
			if err != nil {
				return err
			}

			if len(leads) == 0 {
				fmt.Println("No leads found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tEMAIL\tSOURCE\tSTATUS")
			fmt.Fprintln(w, "--\t----\t-----\t------\t------")
			for _, l := range leads {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", l.ID, l.Name, l.Email, l.Source, l.Status)
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status (new, contacted, converted, lost)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of rows")

	return cmd
}

func leadShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show a lead's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := wire.LeadService().GetLead(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\nLead: %s\n", l.ID)
			fmt.Printf("Name:    %s\n", l.Name)
			fmt.Printf("Email:   %s\n", l.Email)
			fmt.Printf("Phone:   %s\n", l.Phone)
			fmt.Printf("Source:  %s\n", l.Source)
			fmt.Printf("Status:  %s\n", l.Status)
			fmt.Printf("Created: %s\n", l.CreatedAt)
			fmt.Println()
			return nil
		},
	}
}

func leadUpdateCmd() *cobra.Command {
	var name, email, phone, source, status string

	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update a lead",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := wire.LeadService()
			current, err := svc.GetLead(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			req := primary.UpdateLeadRequest{
				LeadID: args[0],
				Name:   current.Name,
				Email:  current.Email,
				Phone:  current.Phone,
				Source: current.Source,
				Status: current.Status,
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
			if cmd.Flags().Changed("source") {
				req.Source = source
			}
			if cmd.Flags().Changed("status") {
				req.Status = status
			}

			if err := svc.UpdateLead(cmd.Context(), req); err != nil {
				return err
			}
			fmt.Printf("✓ Updated lead %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&email, "email", "", "New email")
	cmd.Flags().StringVar(&phone, "phone", "", "New phone")
	cmd.Flags().StringVar(&source, "source", "", "New source")
	cmd.Flags().StringVar(&status, "status", "", "New status")

	return cmd
}

func leadDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a lead",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wire.LeadService().DeleteLead(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("✓ Deleted lead %s\n", args[0])
			return nil
		},
	}
}

func leadConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert [id]",
		Short: "Convert a lead into a client",
		Long: `Convert a lead into a client. The new client carries over the lead's
contact details and starts with zeroed counters; the lead is marked
converted and kept for history.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := wire.LeadService().ConvertLead(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("✓ Converted lead %s into client %s: %s\n", args[0], client.ID, client.Name)
			return nil
		},
	}
}
