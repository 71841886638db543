package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/example/studiodesk/internal/ports/secondary"
)

// clientRow is the wire shape of a client in the row API.
type clientRow struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	Status            string `json:"status"`
	CurrentPackageID  string `json:"current_package_id"`
	RemainingServings int    `json:"remaining_servings"`
	RemainingImages   int    `json:"remaining_images"`
	ConsumedImages    int    `json:"consumed_images"`
	ReservedImages    int    `json:"reserved_images"`
	AITrainingUnits   int    `json:"ai_training_units"`
	Notes             string `json:"notes"`
	CreatedAt         string `json:"created_at,omitempty"`
	UpdatedAt         string `json:"updated_at,omitempty"`
}

// ClientRepository implements secondary.ClientRepository against the row
// API.
type ClientRepository struct {
	client *rowClient
}

// NewClientRepository creates a row-API client repository.
func NewClientRepository(baseURL, apiKey string, httpClient *http.Client) *ClientRepository {
	return &ClientRepository{client: newRowClient(baseURL, apiKey, httpClient)}
}

func (r *ClientRepository) Create(ctx context.Context, client *secondary.ClientRecord) error {
	status := client.Status
	if status == "" {
		status = "active"
	}
	row := clientRow{
		ID:                client.ID,
		Name:              client.Name,
		Email:             client.Email,
		Phone:             client.Phone,
		Status:            status,
		CurrentPackageID:  client.CurrentPackageID,
		RemainingServings: client.RemainingServings,
		RemainingImages:   client.RemainingImages,
		ConsumedImages:    client.ConsumedImages,
		ReservedImages:    client.ReservedImages,
		AITrainingUnits:   client.AITrainingUnits,
		Notes:             client.Notes,
	}
	return r.client.insertRow(ctx, "clients", row, nil)
}

func (r *ClientRepository) GetByID(ctx context.Context, id string) (*secondary.ClientRecord, error) {
	var rows []clientRow
	query := url.Values{"id": {eq(id)}}
	if err := r.client.getRows(ctx, "clients", query, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("client %s not found", id)
	}
	return clientRecordFromRow(rows[0]), nil
}

func (r *ClientRepository) Update(ctx context.Context, client *secondary.ClientRecord) error {
	patch := map[string]any{
		"name":   client.Name,
		"email":  client.Email,
		"phone":  client.Phone,
		"status": client.Status,
		"notes":  client.Notes,
	}
	return r.client.updateRows(ctx, "clients", url.Values{"id": {eq(client.ID)}}, patch, nil)
}

func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	return r.client.deleteRows(ctx, "clients", url.Values{"id": {eq(id)}})
}

func (r *ClientRepository) List(ctx context.Context, filters secondary.OwnerFilters) ([]*secondary.ClientRecord, error) {
	query := url.Values{"order": {"created_at.desc"}}
	if filters.Status != "" {
		query.Set("status", eq(filters.Status))
	}
	if filters.Limit > 0 {
		query.Set("limit", strconv.Itoa(filters.Limit))
	}

	var rows []clientRow
	if err := r.client.getRows(ctx, "clients", query, &rows); err != nil {
		return nil, err
	}
	records := make([]*secondary.ClientRecord, len(rows))
	for i, row := range rows {
		records[i] = clientRecordFromRow(row)
	}
	return records, nil
}

// SetCounter patches exactly one counter column; the row API returns the
// authoritative row, which becomes the reconciliation source.
func (r *ClientRepository) SetCounter(ctx context.Context, id string, field secondary.CounterField, value int) (*secondary.ClientRecord, error) {
	if !secondary.ValidCounterField(field) {
		return nil, fmt.Errorf("invalid counter field: %s", field)
	}
	if value < 0 {
		return nil, fmt.Errorf("counter value must not be negative: %d", value)
	}

	var row clientRow
	patch := map[string]any{string(field): value}
	if err := r.client.updateRows(ctx, "clients", url.Values{"id": {eq(id)}}, patch, &row); err != nil {
		return nil, err
	}
	return clientRecordFromRow(row), nil
}

func (r *ClientRepository) AssignPackage(ctx context.Context, id, packageID string, servings, images int, note string) (*secondary.ClientRecord, error) {
	patch := map[string]any{
		"current_package_id": packageID,
		"remaining_servings": servings,
		"remaining_images":   images,
	}
	if note != "" {
		patch["notes"] = note
	}

	var row clientRow
	if err := r.client.updateRows(ctx, "clients", url.Values{"id": {eq(id)}}, patch, &row); err != nil {
		return nil, err
	}
	return clientRecordFromRow(row), nil
}

func clientRecordFromRow(row clientRow) *secondary.ClientRecord {
	return &secondary.ClientRecord{
		ID:                row.ID,
		Name:              row.Name,
		Email:             row.Email,
		Phone:             row.Phone,
		Status:            row.Status,
		CurrentPackageID:  row.CurrentPackageID,
		RemainingServings: row.RemainingServings,
		RemainingImages:   row.RemainingImages,
		ConsumedImages:    row.ConsumedImages,
		ReservedImages:    row.ReservedImages,
		AITrainingUnits:   row.AITrainingUnits,
		Notes:             row.Notes,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}
}

var _ secondary.ClientRepository = (*ClientRepository)(nil)
