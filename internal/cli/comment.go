package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/studiodesk/internal/ports/primary"
	"github.com/example/studiodesk/internal/wire"
)

// CommentCmd returns the comment command
func CommentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Manage submission comments",
	}

	cmd.AddCommand(commentAddCmd())
	cmd.AddCommand(commentListCmd())
	cmd.AddCommand(commentDeleteCmd())

	return cmd
}

func commentAddCmd() *cobra.Command {
	var commentType, author string

	cmd := &cobra.Command{
		Use:   "add [submission-id] [content]",
		Short: "Add a comment to a submission",
		Long: `Add a comment. Visibility is derived from the type: client-visible
comments are shown to clients, internal and editor-note comments stay
staff-only.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			comment, err := wire.CommentService().CreateComment(cmd.Context(), primary.CreateCommentRequest{
				SubmissionID: args[0],
				Type:         commentType,
				Content:      args[1],
				AuthorID:     author,
			})
			if err != nil {
				return err
			}

			fmt.Printf("✓ Added %s comment %s (%s)\n", comment.Type, comment.ID, comment.Visibility)
			return nil
		},
	}

	cmd.Flags().StringVar(&commentType, "type", primary.CommentTypeInternal, "Comment type (internal, client-visible, editor-note)")
	cmd.Flags().StringVar(&author, "author", "", "Author id")

	return cmd
}

func commentListCmd() *cobra.Command {
	var visibility string

	cmd := &cobra.Command{
		Use:   "list [submission-id]",
		Short: "List a submission's comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			comments, err := wire.CommentService().ListComments(cmd.Context(), args[0], visibility)
			if err != nil {
				return err
			}

			if len(comments) == 0 {
				fmt.Println("No comments found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "ID\tTYPE\tVISIBILITY\tAUTHOR\tCONTENT")
			fmt.Fprintln(w, "--\t----\t----------\t------\t-------")
			for _, c := range comments {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.ID, c.Type, c.Visibility, c.AuthorID, c.Content)
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().StringVar(&visibility, "visibility", "", "Filter by visibility (staff or client)")

	return cmd
}

func commentDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a comment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wire.CommentService().DeleteComment(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("✓ Deleted comment %s\n", args[0])
			return nil
		},
	}
}
