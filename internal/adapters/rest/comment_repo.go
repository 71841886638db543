package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/example/studiodesk/internal/ports/secondary"
)

type commentRow struct {
	ID           string `json:"id"`
	SubmissionID string `json:"submission_id"`
	Type         string `json:"type"`
	Visibility   string `json:"visibility"`
	Content      string `json:"content"`
	AuthorID     string `json:"author_id"`
	CreatedAt    string `json:"created_at,omitempty"`
}

// CommentRepository implements secondary.CommentRepository against the row
// API.
type CommentRepository struct {
	client *rowClient
}

// NewCommentRepository creates a row-API comment repository.
func NewCommentRepository(baseURL, apiKey string, httpClient *http.Client) *CommentRepository {
	return &CommentRepository{client: newRowClient(baseURL, apiKey, httpClient)}
}

func (r *CommentRepository) Create(ctx context.Context, comment *secondary.CommentRecord) error {
	row := commentRow{
		ID:           comment.ID,
		SubmissionID: comment.SubmissionID,
		Type:         comment.Type,
		Visibility:   comment.Visibility,
		Content:      comment.Content,
		AuthorID:     comment.AuthorID,
	}
	return r.client.insertRow(ctx, "comments", row, nil)
}

func (r *CommentRepository) GetByID(ctx context.Context, id string) (*secondary.CommentRecord, error) {
	var rows []commentRow
	if err := r.client.getRows(ctx, "comments", url.Values{"id": {eq(id)}}, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("comment %s not found", id)
	}
	return commentRecordFromRow(rows[0]), nil
}

func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	return r.client.deleteRows(ctx, "comments", url.Values{"id": {eq(id)}})
}

func (r *CommentRepository) ListBySubmission(ctx context.Context, submissionID string) ([]*secondary.CommentRecord, error) {
	query := url.Values{
		"submission_id": {eq(submissionID)},
		"order":         {"created_at.asc"},
	}

	var rows []commentRow
	if err := r.client.getRows(ctx, "comments", query, &rows); err != nil {
		return nil, err
	}
	records := make([]*secondary.CommentRecord, len(rows))
	for i, row := range rows {
		records[i] = commentRecordFromRow(row)
	}
	return records, nil
}

func commentRecordFromRow(row commentRow) *secondary.CommentRecord {
	return &secondary.CommentRecord{
		ID:           row.ID,
		SubmissionID: row.SubmissionID,
		Type:         row.Type,
		Visibility:   row.Visibility,
		Content:      row.Content,
		AuthorID:     row.AuthorID,
		CreatedAt:    row.CreatedAt,
	}
}

var _ secondary.CommentRepository = (*CommentRepository)(nil)
