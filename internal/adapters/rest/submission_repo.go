package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/example/studiodesk/internal/ports/secondary"
)

type submissionRow struct {
	ID                 string   `json:"id"`
	OwnerType          string   `json:"owner_type"`
	OwnerID            string   `json:"owner_id"`
	ItemName           string   `json:"item_name"`
	ItemType           string   `json:"item_type"`
	Ingredients        string   `json:"ingredients"`
	Category           string   `json:"category"`
	Status             string   `json:"status"`
	OriginalImageURLs  []string `json:"original_image_urls"`
	ProcessedImageURLs []string `json:"processed_image_urls"`
	CreatedAt          string   `json:"created_at,omitempty"`
	UpdatedAt          string   `json:"updated_at,omitempty"`
}

// SubmissionRepository implements secondary.SubmissionRepository against the
// row API.
type SubmissionRepository struct {
	client *rowClient
}

// NewSubmissionRepository creates a row-API submission repository.
func NewSubmissionRepository(baseURL, apiKey string, httpClient *http.Client) *SubmissionRepository {
	return &SubmissionRepository{client: newRowClient(baseURL, apiKey, httpClient)}
}

func (r *SubmissionRepository) Create(ctx context.Context, submission *secondary.SubmissionRecord) error {
	row := submissionRow{
		ID:                 submission.ID,
		OwnerType:          submission.OwnerType,
		OwnerID:            submission.OwnerID,
		ItemName:           submission.ItemName,
		ItemType:           submission.ItemType,
		Ingredients:        submission.Ingredients,
		Category:           submission.Category,
		Status:             submission.Status,
		OriginalImageURLs:  emptyIfNil(submission.OriginalImageURLs),
		ProcessedImageURLs: emptyIfNil(submission.ProcessedImageURLs),
	}
	return r.client.insertRow(ctx, "submissions", row, nil)
}

func (r *SubmissionRepository) GetByID(ctx context.Context, id string) (*secondary.SubmissionRecord, error) {
	var rows []submissionRow
	if err := r.client.getRows(ctx, "submissions", url.Values{"id": {eq(id)}}, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("submission %s not found", id)
	}
	return submissionRecordFromRow(rows[0]), nil
}

func (r *SubmissionRepository) Delete(ctx context.Context, id string) error {
	return r.client.deleteRows(ctx, "submissions", url.Values{"id": {eq(id)}})
}

func (r *SubmissionRepository) List(ctx context.Context, filters secondary.SubmissionFilters) ([]*secondary.SubmissionRecord, error) {
	query := url.Values{"order": {"created_at.desc"}}
	if filters.OwnerType != "" {
		query.Set("owner_type", eq(filters.OwnerType))
	}
	if filters.OwnerID != "" {
		query.Set("owner_id", eq(filters.OwnerID))
	}
	if filters.Status != "" {
		query.Set("status", eq(filters.Status))
	}
	if filters.Limit > 0 {
		query.Set("limit", strconv.Itoa(filters.Limit))
	}

	var rows []submissionRow
	if err := r.client.getRows(ctx, "submissions", query, &rows); err != nil {
		return nil, err
	}
	records := make([]*secondary.SubmissionRecord, len(rows))
	for i, row := range rows {
		records[i] = submissionRecordFromRow(row)
	}
	return records, nil
}

func (r *SubmissionRepository) UpdateStatus(ctx context.Context, id, status string) error {
	patch := map[string]any{"status": status}
	return r.client.updateRows(ctx, "submissions", url.Values{"id": {eq(id)}}, patch, nil)
}

func (r *SubmissionRepository) UpdateProcessedImages(ctx context.Context, id string, urls []string) (*secondary.SubmissionRecord, error) {
	patch := map[string]any{"processed_image_urls": emptyIfNil(urls)}

	var row submissionRow
	if err := r.client.updateRows(ctx, "submissions", url.Values{"id": {eq(id)}}, patch, &row); err != nil {
		return nil, err
	}
	return submissionRecordFromRow(row), nil
}

func submissionRecordFromRow(row submissionRow) *secondary.SubmissionRecord {
	return &secondary.SubmissionRecord{
		ID:                 row.ID,
		OwnerType:          row.OwnerType,
		OwnerID:            row.OwnerID,
		ItemName:           row.ItemName,
		ItemType:           row.ItemType,
		Ingredients:        row.Ingredients,
		Category:           row.Category,
		Status:             row.Status,
		OriginalImageURLs:  row.OriginalImageURLs,
		ProcessedImageURLs: row.ProcessedImageURLs,
		CreatedAt:          row.CreatedAt,
		UpdatedAt:          row.UpdatedAt,
	}
}

func emptyIfNil(urls []string) []string {
	if urls == nil {
		return []string{}
	}
	return urls
}

var _ secondary.SubmissionRepository = (*SubmissionRepository)(nil)
