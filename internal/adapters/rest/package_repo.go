package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/example/studiodesk/internal/ports/secondary"
)

type packageRow struct {
	ID                    string   `json:"id"`
	Name                  string   `json:"name"`
	Description           string   `json:"description"`
	TotalServings         int      `json:"total_servings"`
	TotalImages           int      `json:"total_images"`
	Price                 float64  `json:"price"`
	IsActive              bool     `json:"is_active"`
	MaxEditsPerServing    int      `json:"max_edits_per_serving"`
	MaxProcessingTimeDays int      `json:"max_processing_time_days"`
	FeaturesTags          []string `json:"features_tags"`
	CreatedAt             string   `json:"created_at,omitempty"`
	UpdatedAt             string   `json:"updated_at,omitempty"`
}

// PackageRepository implements secondary.PackageRepository against the row
// API.
type PackageRepository struct {
	client *rowClient
}

// NewPackageRepository creates a row-API package repository.
func NewPackageRepository(baseURL, apiKey string, httpClient *http.Client) *PackageRepository {
	return &PackageRepository{client: newRowClient(baseURL, apiKey, httpClient)}
}

func (r *PackageRepository) Create(ctx context.Context, pkg *secondary.PackageRecord) error {
	return r.client.insertRow(ctx, "packages", packageRowFromRecord(pkg), nil)
}

func (r *PackageRepository) GetByID(ctx context.Context, id string) (*secondary.PackageRecord, error) {
	var rows []packageRow
	if err := r.client.getRows(ctx, "packages", url.Values{"id": {eq(id)}}, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("package %s not found", id)
	}
	return packageRecordFromRow(rows[0]), nil
}

func (r *PackageRepository) Update(ctx context.Context, pkg *secondary.PackageRecord) error {
	row := packageRowFromRecord(pkg)
	patch := map[string]any{
		"name":                     row.Name,
		"description":              row.Description,
		"total_servings":           row.TotalServings,
		"total_images":             row.TotalImages,
		"price":                    row.Price,
		"is_active":                row.IsActive,
		"max_edits_per_serving":    row.MaxEditsPerServing,
		"max_processing_time_days": row.MaxProcessingTimeDays,
		"features_tags":            row.FeaturesTags,
	}
	return r.client.updateRows(ctx, "packages", url.Values{"id": {eq(pkg.ID)}}, patch, nil)
}

// Delete removes only the package row. Owner rows referencing it are the
// store's concern, not this adapter's.
func (r *PackageRepository) Delete(ctx context.Context, id string) error {
	return r.client.deleteRows(ctx, "packages", url.Values{"id": {eq(id)}})
}

func (r *PackageRepository) List(ctx context.Context, filters secondary.PackageFilters) ([]*secondary.PackageRecord, error) {
	query := url.Values{"order": {"created_at.desc"}}
	if filters.ActiveOnly {
		query.Set("is_active", "is.true")
	}
	if filters.Limit > 0 {
		query.Set("limit", strconv.Itoa(filters.Limit))
	}

	var rows []packageRow
	if err := r.client.getRows(ctx, "packages", query, &rows); err != nil {
		return nil, err
	}
	records := make([]*secondary.PackageRecord, len(rows))
	for i, row := range rows {
		records[i] = packageRecordFromRow(row)
	}
	return records, nil
}

func packageRowFromRecord(pkg *secondary.PackageRecord) packageRow {
	tags := pkg.FeaturesTags
	if tags == nil {
		tags = []string{}
	}
	return packageRow{
		ID:                    pkg.ID,
		Name:                  pkg.Name,
		Description:           pkg.Description,
		TotalServings:         pkg.TotalServings,
		TotalImages:           pkg.TotalImages,
		Price:                 pkg.Price,
		IsActive:              pkg.IsActive,
		MaxEditsPerServing:    pkg.MaxEditsPerServing,
		MaxProcessingTimeDays: pkg.MaxProcessingTimeDays,
		FeaturesTags:          tags,
	}
}

func packageRecordFromRow(row packageRow) *secondary.PackageRecord {
	return &secondary.PackageRecord{
		ID:                    row.ID,
		Name:                  row.Name,
		Description:           row.Description,
		TotalServings:         row.TotalServings,
		TotalImages:           row.TotalImages,
		Price:                 row.Price,
		IsActive:              row.IsActive,
		MaxEditsPerServing:    row.MaxEditsPerServing,
		MaxProcessingTimeDays: row.MaxProcessingTimeDays,
		FeaturesTags:          row.FeaturesTags,
		CreatedAt:             row.CreatedAt,
		UpdatedAt:             row.UpdatedAt,
	}
}

var _ secondary.PackageRepository = (*PackageRepository)(nil)
