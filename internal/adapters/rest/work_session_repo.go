package rest

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/example/studiodesk/internal/ports/secondary"
)

type workSessionRow struct {
	ID              string `json:"id"`
	OwnerType       string `json:"owner_type"`
	OwnerID         string `json:"owner_id"`
	DurationMinutes int    `json:"duration_minutes"`
	WorkType        string `json:"work_type"`
	Description     string `json:"description"`
	SessionDate     string `json:"session_date"`
	CreatedAt       string `json:"created_at,omitempty"`
}

// WorkSessionRepository implements secondary.WorkSessionRepository against
// the row API.
type WorkSessionRepository struct {
	client *rowClient
}

// NewWorkSessionRepository creates a row-API work session repository.
func NewWorkSessionRepository(baseURL, apiKey string, httpClient *http.Client) *WorkSessionRepository {
	return &WorkSessionRepository{client: newRowClient(baseURL, apiKey, httpClient)}
}

func (r *WorkSessionRepository) Create(ctx context.Context, session *secondary.WorkSessionRecord) error {
	row := workSessionRow{
		ID:              session.ID,
		OwnerType:       session.OwnerType,
		OwnerID:         session.OwnerID,
		DurationMinutes: session.DurationMinutes,
		WorkType:        session.WorkType,
		Description:     session.Description,
		SessionDate:     session.SessionDate,
	}
	return r.client.insertRow(ctx, "work_sessions", row, nil)
}

func (r *WorkSessionRepository) List(ctx context.Context, filters secondary.WorkSessionFilters) ([]*secondary.WorkSessionRecord, error) {
	query := url.Values{"order": {"session_date.desc,created_at.desc"}}
	if filters.OwnerType != "" {
		query.Set("owner_type", eq(filters.OwnerType))
	}
	if filters.OwnerID != "" {
		query.Set("owner_id", eq(filters.OwnerID))
	}
	if filters.Limit > 0 {
		query.Set("limit", strconv.Itoa(filters.Limit))
	}

	var rows []workSessionRow
	if err := r.client.getRows(ctx, "work_sessions", query, &rows); err != nil {
		return nil, err
	}
	records := make([]*secondary.WorkSessionRecord, len(rows))
	for i, row := range rows {
		records[i] = &secondary.WorkSessionRecord{
			ID:              row.ID,
			OwnerType:       row.OwnerType,
			OwnerID:         row.OwnerID,
			DurationMinutes: row.DurationMinutes,
			WorkType:        row.WorkType,
			Description:     row.Description,
			SessionDate:     row.SessionDate,
			CreatedAt:       row.CreatedAt,
		}
	}
	return records, nil
}

var _ secondary.WorkSessionRepository = (*WorkSessionRepository)(nil)
