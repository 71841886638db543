package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/studiodesk/internal/ports/secondary"
)

// CommentRepository implements secondary.CommentRepository with SQLite.
type CommentRepository struct {
	db *sql.DB
}

// NewCommentRepository creates a new SQLite comment repository.
func NewCommentRepository(db *sql.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create persists a new comment.
func (r *CommentRepository) Create(ctx context.Context, comment *secondary.CommentRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO comments (id, submission_id, type, visibility, content, author_id) VALUES (?, ?, ?, ?, ?, ?)",
		comment.ID, comment.SubmissionID, comment.Type, comment.Visibility, comment.Content, comment.AuthorID,
	)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// GetByID retrieves a comment by its ID.
func (r *CommentRepository) GetByID(ctx context.Context, id string) (*secondary.CommentRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, submission_id, type, visibility, content, author_id, created_at FROM comments WHERE id = ?", id)
	record, err := scanComment(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("comment %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return record, nil
}

// Delete removes a comment.
func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM comments WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return requireRow(result, "comment", id)
}

// ListBySubmission retrieves a submission's comments, oldest first.
func (r *CommentRepository) ListBySubmission(ctx context.Context, submissionID string) ([]*secondary.CommentRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, submission_id, type, visibility, content, author_id, created_at FROM comments WHERE submission_id = ? ORDER BY created_at ASC",
		submissionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []*secondary.CommentRecord
	for rows.Next() {
		record, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, record)
	}
	return comments, rows.Err()
}

func scanComment(row rowScanner) (*secondary.CommentRecord, error) {
	var createdAt time.Time
	record := &secondary.CommentRecord{}
	err := row.Scan(&record.ID, &record.SubmissionID, &record.Type, &record.Visibility,
		&record.Content, &record.AuthorID, &createdAt)
	if err != nil {
		return nil, err
	}
	record.CreatedAt = createdAt.Format(time.RFC3339)
	return record, nil
}

var _ secondary.CommentRepository = (*CommentRepository)(nil)
