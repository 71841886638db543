package primary

import "context"

// Comment types.
const (
	CommentTypeInternal      = "internal"
	CommentTypeClientVisible = "client-visible"
	CommentTypeEditorNote    = "editor-note"
)

// Comment visibilities, derived from the comment type.
const (
	VisibilityStaff  = "staff"
	VisibilityClient = "client"
)

// ValidCommentType reports whether t is a member of the comment type set.
func ValidCommentType(t string) bool {
	switch t {
	case CommentTypeInternal, CommentTypeClientVisible, CommentTypeEditorNote:
		return true
	}
	return false
}

// DeriveVisibility maps a comment type to the visibility used for
// downstream filtering.
func DeriveVisibility(commentType string) string {
	if commentType == CommentTypeClientVisible {
		return VisibilityClient
	}
	return VisibilityStaff
}

// Comment represents a comment on a submission.
type Comment struct {
	ID           string
	SubmissionID string
	Type         string
	Visibility   string
	Content      string
	AuthorID     string
	CreatedAt    string
}

// CreateCommentRequest contains the parameters for creating a comment.
type CreateCommentRequest struct {
	SubmissionID string
	Type         string
	Content      string
	AuthorID     string
}

// CommentService defines the primary port for submission comments.
type CommentService interface {
	CreateComment(ctx context.Context, req CreateCommentRequest) (*Comment, error)

	// ListComments returns a submission's comments, optionally filtered by
	// visibility ("" returns all).
	ListComments(ctx context.Context, submissionID, visibility string) ([]*Comment, error)
	DeleteComment(ctx context.Context, commentID string) error
}
