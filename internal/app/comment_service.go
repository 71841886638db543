package app

import (
	"context"
	"fmt"

	"github.com/example/studiodesk/internal/ports/primary"
	"github.com/example/studiodesk/internal/ports/secondary"
)

// CommentServiceImpl implements the CommentService interface.
type CommentServiceImpl struct {
	commentRepo    secondary.CommentRepository
	submissionRepo secondary.SubmissionRepository
	ids            secondary.IDGenerator
}

// NewCommentService creates a new CommentService with injected
// dependencies.
func NewCommentService(
	commentRepo secondary.CommentRepository,
	submissionRepo secondary.SubmissionRepository,
	ids secondary.IDGenerator,
) *CommentServiceImpl {
	return &CommentServiceImpl{
		commentRepo:    commentRepo,
		submissionRepo: submissionRepo,
		ids:            ids,
	}
}

// CreateComment creates a comment on a submission. Visibility is derived
// from the comment type, never supplied by the caller.
func (s *CommentServiceImpl) CreateComment(ctx context.Context, req primary.CreateCommentRequest) (*primary.Comment, error) {
	if !primary.ValidCommentType(req.Type) {
		return nil, fmt.Errorf("%w: invalid comment type %q", ErrValidation, req.Type)
	}
	if req.Content == "" {
		return nil, fmt.Errorf("%w: comment content is required", ErrValidation)
	}

	if _, err := s.submissionRepo.GetByID(ctx, req.SubmissionID); err != nil {
		return nil, fmt.Errorf("failed to validate submission: %w", err)
	}

	record := &secondary.CommentRecord{
		ID:           s.ids.New(),
		SubmissionID: req.SubmissionID,
		Type:         req.Type,
		Visibility:   primary.DeriveVisibility(req.Type),
		Content:      req.Content,
		AuthorID:     req.AuthorID,
	}
	if err := s.commentRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	created, err := s.commentRepo.GetByID(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created comment: %w", err)
	}
	return commentFromRecord(created), nil
}

// ListComments lists a submission's comments, optionally filtered by
// visibility.
func (s *CommentServiceImpl) ListComments(ctx context.Context, submissionID, visibility string) ([]*primary.Comment, error) {
	records, err := s.commentRepo.ListBySubmission(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	var comments []*primary.Comment
	for _, r := range records {
		if visibility != "" && r.Visibility != visibility {
			continue
		}
		comments = append(comments, commentFromRecord(r))
	}
	return comments, nil
}

// DeleteComment deletes a comment.
func (s *CommentServiceImpl) DeleteComment(ctx context.Context, commentID string) error {
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		return err
	}
	return s.commentRepo.Delete(ctx, commentID)
}

func commentFromRecord(r *secondary.CommentRecord) *primary.Comment {
	return &primary.Comment{
		ID:           r.ID,
		SubmissionID: r.SubmissionID,
		Type:         r.Type,
		Visibility:   r.Visibility,
		Content:      r.Content,
		AuthorID:     r.AuthorID,
		CreatedAt:    r.CreatedAt,
	}
}

// Ensure CommentServiceImpl implements the interface
var _ primary.CommentService = (*CommentServiceImpl)(nil)
