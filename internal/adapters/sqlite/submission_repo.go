package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/studiodesk/internal/ports/secondary"
)

const submissionColumns = "id, owner_type, owner_id, item_name, item_type, ingredients, category, status, original_image_urls, processed_image_urls, created_at, updated_at"

// SubmissionRepository implements secondary.SubmissionRepository with
// SQLite. Image URL lists are stored as JSON arrays in text columns.
type SubmissionRepository struct {
	db *sql.DB
}

// NewSubmissionRepository creates a new SQLite submission repository.
func NewSubmissionRepository(db *sql.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// Create persists a new submission.
func (r *SubmissionRepository) Create(ctx context.Context, submission *secondary.SubmissionRecord) error {
	status := submission.Status
	if status == "" {
		status = "awaiting-processing"
	}
	original, err := encodeStrings(submission.OriginalImageURLs)
	if err != nil {
		return fmt.Errorf("failed to encode original image urls: %w", err)
	}
	processed, err := encodeStrings(submission.ProcessedImageURLs)
	if err != nil {
		return fmt.Errorf("failed to encode processed image urls: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		"INSERT INTO submissions (id, owner_type, owner_id, item_name, item_type, ingredients, category, status, original_image_urls, processed_image_urls) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		submission.ID, submission.OwnerType, submission.OwnerID, submission.ItemName,
		submission.ItemType, submission.Ingredients, submission.Category, status, original, processed,
	)
	if err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}
	return nil
}

// GetByID retrieves a submission by its ID.
func (r *SubmissionRepository) GetByID(ctx context.Context, id string) (*secondary.SubmissionRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+submissionColumns+" FROM submissions WHERE id = ?", id)
	record, err := scanSubmission(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("submission %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	return record, nil
}

// Delete removes a submission and, via cascade, its comments.
func (r *SubmissionRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM submissions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete submission: %w", err)
	}
	return requireRow(result, "submission", id)
}

// List retrieves submissions matching the given filters.
func (r *SubmissionRepository) List(ctx context.Context, filters secondary.SubmissionFilters) ([]*secondary.SubmissionRecord, error) {
	query := "SELECT " + submissionColumns + " FROM submissions WHERE 1=1"
	args := []any{}

	if filters.OwnerType != "" {
		query += " AND owner_type = ?"
		args = append(args, filters.OwnerType)
	}
	if filters.OwnerID != "" {
		query += " AND owner_id = ?"
		args = append(args, filters.OwnerID)
	}
	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}
	query += " ORDER BY created_at DESC"
	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	var submissions []*secondary.SubmissionRecord
	for rows.Next() {
		record, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		submissions = append(submissions, record)
	}
	return submissions, rows.Err()
}

// UpdateStatus writes the workflow status.
func (r *SubmissionRepository) UpdateStatus(ctx context.Context, id, status string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE submissions SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update submission status: %w", err)
	}
	return requireRow(result, "submission", id)
}

// UpdateProcessedImages replaces the processed-image URL list and returns
// the authoritative row.
func (r *SubmissionRepository) UpdateProcessedImages(ctx context.Context, id string, urls []string) (*secondary.SubmissionRecord, error) {
	encoded, err := encodeStrings(urls)
	if err != nil {
		return nil, fmt.Errorf("failed to encode processed image urls: %w", err)
	}

	result, err := r.db.ExecContext(ctx,
		"UPDATE submissions SET processed_image_urls = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		encoded, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update processed images: %w", err)
	}
	if err := requireRow(result, "submission", id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func scanSubmission(row rowScanner) (*secondary.SubmissionRecord, error) {
	var (
		original  string
		processed string
		createdAt time.Time
		updatedAt time.Time
	)
	record := &secondary.SubmissionRecord{}
	err := row.Scan(&record.ID, &record.OwnerType, &record.OwnerID, &record.ItemName,
		&record.ItemType, &record.Ingredients, &record.Category, &record.Status,
		&original, &processed, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	record.OriginalImageURLs, err = decodeStrings(original)
	if err != nil {
		return nil, fmt.Errorf("failed to decode original image urls: %w", err)
	}
	record.ProcessedImageURLs, err = decodeStrings(processed)
	if err != nil {
		return nil, fmt.Errorf("failed to decode processed image urls: %w", err)
	}
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)
	return record, nil
}

var _ secondary.SubmissionRepository = (*SubmissionRepository)(nil)
