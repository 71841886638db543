package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/studiodesk/internal/ports/primary"
	"github.com/example/studiodesk/internal/wire"
)

// SubmissionCmd returns the submission command
func SubmissionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submission",
		Short: "Manage food-photography submissions",
	}

	cmd.AddCommand(submissionCreateCmd())
	cmd.AddCommand(submissionListCmd())
	cmd.AddCommand(submissionShowCmd())
	cmd.AddCommand(submissionStatusCmd())
	cmd.AddCommand(submissionDeleteCmd())
	cmd.AddCommand(submissionAddImageCmd())
	cmd.AddCommand(submissionRemoveImageCmd())

	return cmd
}

func submissionCreateCmd() *cobra.Command {
	var ownerType, itemType, ingredients, category string
	var originals []string

	cmd := &cobra.Command{
		Use:   "create [owner-id] [item-name]",
		Short: "Create a submission for a client or lead",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			submission, err := wire.SubmissionService().CreateSubmission(cmd.Context(), primary.CreateSubmissionRequest{
				OwnerType:         ownerType,
				OwnerID:           args[0],
				ItemName:          args[1],
				ItemType:          itemType,
				Ingredients:       ingredients,
				Category:          category,
				OriginalImageURLs: originals,
			})
			if err != nil {
				return err
			}

			fmt.Printf("✓ Created submission %s: %s (%s)\n", submission.ID, submission.ItemName, submission.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&ownerType, "owner-type", primary.OwnerTypeClient, "Owner type (client or lead)")
	cmd.Flags().StringVar(&itemType, "item-type", "", "Item type")
	cmd.Flags().StringVar(&ingredients, "ingredients", "", "Ingredient list")
	cmd.Flags().StringVar(&category, "category", "", "Category")
	cmd.Flags().StringSliceVar(&originals, "original-urls", nil, "Original image URLs (write-once)")

	return cmd
}

func submissionListCmd() *cobra.Command {
	var ownerType, ownerID, status string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List submissions in active-work-first order",
		RunE: func(cmd *cobra.Command, args []string) error {
			submissions, err := wire.SubmissionService().ListSubmissions(cmd.Context(), primary.SubmissionFilters{
				OwnerType: ownerType,
				OwnerID:   ownerID,
				Status:    status,
				Limit:     limit,
			})
			if err != nil {
				return err
			}

			if len(submissions) == 0 {
				fmt.Println("No submissions found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "ID\tITEM\tOWNER\tSTATUS\tPROCESSED\tCREATED")
			fmt.Fprintln(w, "--\t----\t-----\t------\t---------\t-------")
			for _, s := range submissions {
				fmt.Fprintf(w, "%s\t%s\t%s/%s\t%s\t%d\t%s\n",
					s.ID, s.ItemName, s.OwnerType, s.OwnerID, s.Status, len(s.ProcessedImageURLs), s.CreatedAt)
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().StringVar(&ownerType, "owner-type", "", "Filter by owner type")
	cmd.Flags().StringVar(&ownerID, "owner", "", "Filter by owner id")
	cmd.Flags().StringVar(&status, "status", "", "Filter by workflow status")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of rows")

	return cmd
}

func submissionShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show a submission's details and image lists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := wire.SubmissionService().GetSubmission(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\nSubmission: %s\n", s.ID)
			fmt.Printf("Item:        %s (%s)\n", s.ItemName, s.ItemType)
			fmt.Printf("Owner:       %s %s\n", s.OwnerType, s.OwnerID)
			fmt.Printf("Category:    %s\n", s.Category)
			fmt.Printf("Status:      %s\n", s.Status)
			if s.Ingredients != "" {
				fmt.Printf("Ingredients: %s\n", s.Ingredients)
			}
			fmt.Printf("Created:     %s\n", s.CreatedAt)
			if len(s.OriginalImageURLs) > 0 {
				fmt.Println("\nOriginal images:")
				for _, u := range s.OriginalImageURLs {
					fmt.Printf("  %s\n", u)
				}
			}
			if len(s.ProcessedImageURLs) > 0 {
				fmt.Println("\nProcessed images:")
				for _, u := range s.ProcessedImageURLs {
					fmt.Printf("  %s\n", u)
				}
			}
			fmt.Println()
			return nil
		},
	}
}

func submissionStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [id] [status]",
		Short: "Move a submission to another workflow status",
		Long: `Move a submission to any workflow status:
  awaiting-processing, in-processing, ready-for-review,
  feedback-received, completed-approved`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wire.SubmissionService().UpdateStatus(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("✓ Submission %s moved to %s\n", args[0], args[1])
			return nil
		},
	}
}

func submissionDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a submission and its comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wire.SubmissionService().DeleteSubmission(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("✓ Deleted submission %s\n", args[0])
			return nil
		},
	}
}

func submissionAddImageCmd() *cobra.Command {
	var files []string
	var externalURL string

	cmd := &cobra.Command{
		Use:   "add-image [id]",
		Short: "Upload processed images and/or append an external URL",
		Long: `Upload processed image files to the blob vault and append their public
URLs to the submission, or append an externally hosted URL directly.

Examples:
  studiodesk submission add-image S-001 --file final1.jpg --file final2.jpg
  studiodesk submission add-image S-001 --url https://cdn.example.com/final.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var uploads []primary.ImageUpload
			var open []*os.File
			defer func() {
				for _, f := range open {
					f.Close()
				}
			}()

			for _, path := range files {
				f, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("failed to open %s: %w", path, err)
				}
				open = append(open, f)
				info, err := f.Stat()
				if err != nil {
					return fmt.Errorf("failed to stat %s: %w", path, err)
				}
				uploads = append(uploads, primary.ImageUpload{
					Name:    info.Name(),
					Content: f,
					Size:    info.Size(),
				})
			}

			submission, err := wire.SubmissionService().AddProcessedImages(cmd.Context(), args[0], uploads, externalURL)
			if err != nil {
				return err
			}

			fmt.Printf("✓ Submission %s now has %d processed images\n", submission.ID, len(submission.ProcessedImageURLs))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&files, "file", nil, "Image file to upload (repeatable)")
	cmd.Flags().StringVar(&externalURL, "url", "", "Externally hosted image URL to append")

	return cmd
}

func submissionRemoveImageCmd() *cobra.Command {
	var displayIndex int

	cmd := &cobra.Command{
		Use:   "remove-image [id] [url]",
		Short: "Remove one processed image URL from a submission",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			submission, index, err := wire.SubmissionService().RemoveProcessedImage(cmd.Context(), args[0], args[1], displayIndex)
			if err != nil {
				return err
			}

			fmt.Printf("✓ Removed image; %d remain (display index %d)\n", len(submission.ProcessedImageURLs), index)
			return nil
		},
	}

	cmd.Flags().IntVar(&displayIndex, "index", 0, "Current display index, clamped after removal")

	return cmd
}
