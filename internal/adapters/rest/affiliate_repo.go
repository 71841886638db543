package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/example/studiodesk/internal/ports/secondary"
)

type affiliateRow struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	CommissionPercent int    `json:"commission_percent"`
	CurrentPackageID  string `json:"current_package_id"`
	RemainingServings int    `json:"remaining_servings"`
	RemainingImages   int    `json:"remaining_images"`
	ConsumedImages    int    `json:"consumed_images"`
	ReservedImages    int    `json:"reserved_images"`
	AITrainingUnits   int    `json:"ai_training_units"`
	CreatedAt         string `json:"created_at,omitempty"`
	UpdatedAt         string `json:"updated_at,omitempty"`
}

// AffiliateRepository implements secondary.AffiliateRepository against the
// row API.
type AffiliateRepository struct {
	client *rowClient
}

// NewAffiliateRepository creates a row-API affiliate repository.
func NewAffiliateRepository(baseURL, apiKey string, httpClient *http.Client) *AffiliateRepository {
	return &AffiliateRepository{client: newRowClient(baseURL, apiKey, httpClient)}
}

func (r *AffiliateRepository) Create(ctx context.Context, affiliate *secondary.AffiliateRecord) error {
	row := affiliateRow{
		ID:                affiliate.ID,
		Name:              affiliate.Name,
		Email:             affiliate.Email,
		Phone:             affiliate.Phone,
		CommissionPercent: affiliate.CommissionPercent,
		CurrentPackageID:  affiliate.CurrentPackageID,
		RemainingServings: affiliate.RemainingServings,
		RemainingImages:   affiliate.RemainingImages,
		ConsumedImages:    affiliate.ConsumedImages,
		ReservedImages:    affiliate.ReservedImages,
		AITrainingUnits:   affiliate.AITrainingUnits,
	}
	return r.client.insertRow(ctx, "affiliates", row, nil)
}

func (r *AffiliateRepository) GetByID(ctx context.Context, id string) (*secondary.AffiliateRecord, error) {
	var rows []affiliateRow
	if err := r.client.getRows(ctx, "affiliates", url.Values{"id": {eq(id)}}, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("affiliate %s not found", id)
	}
	return affiliateRecordFromRow(rows[0]), nil
}

func (r *AffiliateRepository) Update(ctx context.Context, affiliate *secondary.AffiliateRecord) error {
	patch := map[string]any{
		"name":               affiliate.Name,
		"email":              affiliate.Email,
		"phone":              affiliate.Phone,
		"commission_percent": affiliate.CommissionPercent,
	}
	return r.client.updateRows(ctx, "affiliates", url.Values{"id": {eq(affiliate.ID)}}, patch, nil)
}

func (r *AffiliateRepository) Delete(ctx context.Context, id string) error {
	return r.client.deleteRows(ctx, "affiliates", url.Values{"id": {eq(id)}})
}

func (r *AffiliateRepository) List(ctx context.Context, filters secondary.OwnerFilters) ([]*secondary.AffiliateRecord, error) {
	query := url.Values{"order": {"created_at.desc"}}
	if filters.Limit > 0 {
		query.Set("limit", strconv.Itoa(filters.Limit))
	}

	var rows []affiliateRow
	if err := r.client.getRows(ctx, "affiliates", query, &rows); err != nil {
		return nil, err
	}
	records := make([]*secondary.AffiliateRecord, len(rows))
	for i, row := range rows {
		records[i] = affiliateRecordFromRow(row)
	}
	return records, nil
}

func (r *AffiliateRepository) SetCounter(ctx context.Context, id string, field secondary.CounterField, value int) (*secondary.AffiliateRecord, error) {
	if !secondary.ValidCounterField(field) {
		return nil, fmt.Errorf("invalid counter field: %s", field)
	}
	if value < 0 {
		return nil, fmt.Errorf("counter value must not be negative: %d", value)
	}

	var row affiliateRow
	patch := map[string]any{string(field): value}
	if err := r.client.updateRows(ctx, "affiliates", url.Values{"id": {eq(id)}}, patch, &row); err != nil {
		return nil, err
	}
	return affiliateRecordFromRow(row), nil
}

func (r *AffiliateRepository) AssignPackage(ctx context.Context, id, packageID string, servings, images int, note string) (*secondary.AffiliateRecord, error) {
	patch := map[string]any{
		"current_package_id": packageID,
		"remaining_servings": servings,
		"remaining_images":   images,
	}

	var row affiliateRow
	if err := r.client.updateRows(ctx, "affiliates", url.Values{"id": {eq(id)}}, patch, &row); err != nil {
		return nil, err
	}
	return affiliateRecordFromRow(row), nil
}

func affiliateRecordFromRow(row affiliateRow) *secondary.AffiliateRecord {
	return &secondary.AffiliateRecord{
		ID:                row.ID,
		Name:              row.Name,
		Email:             row.Email,
		Phone:             row.Phone,
		CommissionPercent: row.CommissionPercent,
		CurrentPackageID:  row.CurrentPackageID,
		RemainingServings: row.RemainingServings,
		RemainingImages:   row.RemainingImages,
		ConsumedImages:    row.ConsumedImages,
		ReservedImages:    row.ReservedImages,
		AITrainingUnits:   row.AITrainingUnits,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}
}

var _ secondary.AffiliateRepository = (*AffiliateRepository)(nil)
