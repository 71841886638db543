package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/example/studiodesk/internal/ports/secondary"
)

type leadRow struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Source    string `json:"source"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// LeadRepository implements secondary.LeadRepository against the row API.
type LeadRepository struct {
	client *rowClient
}

// NewLeadRepository creates a row-API lead repository.
func NewLeadRepository(baseURL, apiKey string, httpClient *http.Client) *LeadRepository {
	return &LeadRepository{client: newRowClient(baseURL, apiKey, httpClient)}
}

func (r *LeadRepository) Create(ctx context.Context, lead *secondary.LeadRecord) error {
	status := lead.Status
	if status == "" {
		status = "new"
	}
	row := leadRow{
		ID:     lead.ID,
		Name:   lead.Name,
		Email:  lead.Email,
		Phone:  lead.Phone,
		Source: lead.Source,
		Status: status,
	}
	return r.client.insertRow(ctx, "leads", row, nil)
}

func (r *LeadRepository) GetByID(ctx context.Context, id string) (*secondary.LeadRecord, error) {
	var rows []leadRow
	if err := r.client.getRows(ctx, "leads", url.Values{"id": {eq(id)}}, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("lead %s not found", id)
	}
	return leadRecordFromRow(rows[0]), nil
}

func (r *LeadRepository) Update(ctx context.Context, lead *secondary.LeadRecord) error {
	patch := map[string]any{
		"name":   lead.Name,
		"email":  lead.Email,
		"phone":  lead.Phone,
		"source": lead.Source,
		"status": lead.Status,
	}
	return r.client.updateRows(ctx, "leads", url.Values{"id": {eq(lead.ID)}}, patch, nil)
}

func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	return r.client.deleteRows(ctx, "leads", url.Values{"id": {eq(id)}})
}

func (r *LeadRepository) List(ctx context.Context, filters secondary.OwnerFilters) ([]*secondary.LeadRecord, error) {
	query := url.Values{"order": {"created_at.desc"}}
	if filters.Status != "" {
		query.Set("status", eq(filters.Status))
	}
	if filters.Limit > 0 {
		query.Set("limit", strconv.Itoa(filters.Limit))
	}

	var rows []leadRow
	if err := r.client.getRows(ctx, "leads", query, &rows); err != nil {
		return nil, err
	}
	records := make([]*secondary.LeadRecord, len(rows))
	for i, row := range rows {
		records[i] = leadRecordFromRow(row)
	}
	return records, nil
}

func leadRecordFromRow(row leadRow) *secondary.LeadRecord {
	return &secondary.LeadRecord{
		ID:        row.ID,
		Name:      row.Name,
		Email:     row.Email,
		Phone:     row.Phone,
		Source:    row.Source,
		Status:    row.Status,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

var _ secondary.LeadRepository = (*LeadRepository)(nil)
