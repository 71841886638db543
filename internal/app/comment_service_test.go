package app

import (
	"context"
	"errors"
	"testing"

	"github.com/example/studiodesk/internal/ports/primary"
)

func newCommentFixture(t *testing.T) (*CommentServiceImpl, *mockCommentRepo) {
	t.Helper()
	comments := newMockCommentRepo()
	submissions := newMockSubmissionRepo(
		submissionRecord("S-1", primary.StatusInProcessing, "2026-08-01T10:00:00Z"),
	)
	return NewCommentService(comments, submissions, &seqIDs{}), comments
}

func TestCreateCommentDerivesVisibility(t *testing.T) {
	svc, _ := newCommentFixture(t)

	cases := []struct {
		commentType string
		want        string
	}{
		{primary.CommentTypeInternal, primary.VisibilityStaff},
		{primary.CommentTypeEditorNote, primary.VisibilityStaff},
		{primary.CommentTypeClientVisible, primary.VisibilityClient},
	}
	for _, tc := range cases {
		comment, err := svc.CreateComment(context.Background(), primary.CreateCommentRequest{
			SubmissionID: "S-1",
			Type:         tc.commentType,
			Content:      "looks great",
			AuthorID:     "admin-1",
		})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.commentType, err)
		}
		if comment.Visibility != tc.want {
			t.Errorf("%s: expected visibility %q, got %q", tc.commentType, tc.want, comment.Visibility)
		}
	}
}

func TestCreateCommentRejectsUnknownType(t *testing.T) {
	svc, _ := newCommentFixture(t)
	_, err := svc.CreateComment(context.Background(), primary.CreateCommentRequest{
		SubmissionID: "S-1",
		Type:         "shoutout",
		Content:      "hi",
	})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestCreateCommentRequiresExistingSubmission(t *testing.T) {
	svc, _ := newCommentFixture(t)
	_, err := svc.CreateComment(context.Background(), primary.CreateCommentRequest{
		SubmissionID: "S-404",
		Type:         primary.CommentTypeInternal,
		Content:      "hi",
	})
	if err == nil {
		t.Error("expected error for unknown submission")
	}
}

func TestListCommentsFiltersByVisibility(t *testing.T) {
	svc, _ := newCommentFixture(t)
	for _, typ := range []string{primary.CommentTypeInternal, primary.CommentTypeClientVisible} {
		if _, err := svc.CreateComment(context.Background(), primary.CreateCommentRequest{
			SubmissionID: "S-1",
			Type:         typ,
			Content:      "note",
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	clientVisible, err := svc.ListComments(context.Background(), "S-1", primary.VisibilityClient)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(clientVisible) != 1 || clientVisible[0].Type != primary.CommentTypeClientVisible {
		t.Errorf("expected only the client-visible comment, got %v", clientVisible)
	}

	all, err := svc.ListComments(context.Background(), "S-1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected both comments without a filter, got %d", len(all))
	}
}

func TestDeleteComment(t *testing.T) {
	svc, repo := newCommentFixture(t)
	comment, err := svc.CreateComment(context.Background(), primary.CreateCommentRequest{
		SubmissionID: "S-1",
		Type:         primary.CommentTypeInternal,
		Content:      "note",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.DeleteComment(context.Background(), comment.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.GetByID(context.Background(), comment.ID); err == nil {
		t.Error("expected comment gone after delete")
	}

	if err := svc.DeleteComment(context.Background(), "C-404"); err == nil {
		t.Error("expected error deleting unknown comment")
	}
}
