package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/studiodesk/internal/ports/primary"
	"github.com/example/studiodesk/internal/wire"
)

// SessionCmd returns the session command
func SessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Track work time for clients and leads",
	}

	cmd.AddCommand(sessionStartCmd())
	cmd.AddCommand(sessionStopCmd())
	cmd.AddCommand(sessionLogCmd())
	cmd.AddCommand(sessionListCmd())

	return cmd
}

func sessionStartCmd() *cobra.Command {
	var ownerType string

	cmd := &cobra.Command{
		Use:   "start [owner-id]",
		Short: "Start the work timer for an owner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wire.WorkSessionService().StartTimer(cmd.Context(), ownerType, args[0]); err != nil {
				return err
			}
			fmt.Printf("✓ Timer started for %s %s\n", ownerType, args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&ownerType, "owner-type", primary.OwnerTypeClient, "Owner type (client or lead)")

	return cmd
}

func sessionStopCmd() *cobra.Command {
	var ownerType, workType, description string

	cmd := &cobra.Command{
		Use:   "stop [owner-id]",
		Short: "Stop the work timer and log the elapsed session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := wire.WorkSessionService().StopTimer(cmd.Context(), ownerType, args[0], workType, description)
			if err != nil {
				return err
			}
			if session == nil {
				fmt.Println("Timer stopped with no elapsed time; nothing logged.")
				return nil
			}

			fmt.Printf("✓ Logged %d minutes for %s %s\n", session.DurationMinutes, ownerType, args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&ownerType, "owner-type", primary.OwnerTypeClient, "Owner type (client or lead)")
	cmd.Flags().StringVar(&workType, "work-type", "", "Kind of work performed")
	cmd.Flags().StringVar(&description, "description", "", "Session description")

	return cmd
}

func sessionLogCmd() *cobra.Command {
	var ownerType, workType, description, date string
	var minutes int

	cmd := &cobra.Command{
		Use:   "log [owner-id]",
		Short: "Log a session with an explicit duration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := wire.WorkSessionService().LogSession(cmd.Context(), primary.LogSessionRequest{
				OwnerType:       ownerType,
				OwnerID:         args[0],
				DurationMinutes: minutes,
				WorkType:        workType,
				Description:     description,
				SessionDate:     date,
			})
			if err != nil {
				return err
			}

			fmt.Printf("✓ Logged %d minutes for %s %s on %s\n",
				session.DurationMinutes, ownerType, args[0], session.SessionDate)
			return nil
		},
	}

	cmd.Flags().StringVar(&ownerType, "owner-type", primary.OwnerTypeClient, "Owner type (client or lead)")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "Duration in minutes")
	cmd.Flags().StringVar(&workType, "work-type", "", "Kind of work performed")
	cmd.Flags().StringVar(&description, "description", "", "Session description")
	cmd.Flags().StringVar(&date, "date", "", "Session date (YYYY-MM-DD, defaults to today)")

	return cmd
}

func sessionListCmd() *cobra.Command {
	var ownerType, ownerID string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List logged work sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := wire.WorkSessionService().ListSessions(cmd.Context(), primary.WorkSessionFilters{
				OwnerType: ownerType,
				OwnerID:   ownerID,
				Limit:     limit,
			})
			if err != nil {
				return err
			}

			if len(sessions) == 0 {
				fmt.Println("No sessions found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "ID\tOWNER\tDATE\tMINUTES\tWORK TYPE\tDESCRIPTION")
			fmt.Fprintln(w, "--\t-----\t----\t-------\t---------\t-----------")
			for _, s := range sessions {
				fmt.Fprintf(w, "%s\t%s/%s\t%s\t%d\t%s\t%s\n",
					s.ID, s.OwnerType, s.OwnerID, s.SessionDate, s.DurationMinutes, s.WorkType, s.Description)
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().StringVar(&ownerType, "owner-type", "", "Filter by owner type")
	cmd.Flags().StringVar(&ownerID, "owner", "", "Filter by owner id")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of rows")

	return cmd
}
