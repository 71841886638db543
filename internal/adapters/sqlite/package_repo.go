package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/studiodesk/internal/ports/secondary"
)

const packageColumns = "id, name, description, total_servings, total_images, price, is_active, max_edits_per_serving, max_processing_time_days, features_tags, created_at, updated_at"

// PackageRepository implements secondary.PackageRepository with SQLite.
// Feature tags are stored as a JSON array in a text column.
type PackageRepository struct {
	db *sql.DB
}

// NewPackageRepository creates a new SQLite package repository.
func NewPackageRepository(db *sql.DB) *PackageRepository {
	return &PackageRepository{db: db}
}

// Create persists a new package.
func (r *PackageRepository) Create(ctx context.Context, pkg *secondary.PackageRecord) error {
	tags, err := encodeStrings(pkg.FeaturesTags)
	if err != nil {
		return fmt.Errorf("failed to encode feature tags: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		"INSERT INTO packages (id, name, description, total_servings, total_images, price, is_active, max_edits_per_serving, max_processing_time_days, features_tags) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		pkg.ID, pkg.Name, pkg.Description, pkg.TotalServings, pkg.TotalImages, pkg.Price,
		pkg.IsActive, pkg.MaxEditsPerServing, pkg.MaxProcessingTimeDays, tags,
	)
	if err != nil {
		return fmt.Errorf("failed to create package: %w", err)
	}
	return nil
}

// GetByID retrieves a package by its ID.
func (r *PackageRepository) GetByID(ctx context.Context, id string) (*secondary.PackageRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+packageColumns+" FROM packages WHERE id = ?", id)
	record, err := scanPackage(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("package %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get package: %w", err)
	}
	return record, nil
}

// Update updates a package.
func (r *PackageRepository) Update(ctx context.Context, pkg *secondary.PackageRecord) error {
	tags, err := encodeStrings(pkg.FeaturesTags)
	if err != nil {
		return fmt.Errorf("failed to encode feature tags: %w", err)
	}

	result, err := r.db.ExecContext(ctx,
		"UPDATE packages SET name = ?, description = ?, total_servings = ?, total_images = ?, price = ?, is_active = ?, max_edits_per_serving = ?, max_processing_time_days = ?, features_tags = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		pkg.Name, pkg.Description, pkg.TotalServings, pkg.TotalImages, pkg.Price,
		pkg.IsActive, pkg.MaxEditsPerServing, pkg.MaxProcessingTimeDays, tags, pkg.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update package: %w", err)
	}
	return requireRow(result, "package", pkg.ID)
}

// Delete hard-deletes the package row only. Owner rows referencing the
// package are left untouched.
func (r *PackageRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM packages WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete package: %w", err)
	}
	return requireRow(result, "package", id)
}

// List retrieves packages matching the given filters.
func (r *PackageRepository) List(ctx context.Context, filters secondary.PackageFilters) ([]*secondary.PackageRecord, error) {
	query := "SELECT " + packageColumns + " FROM packages WHERE 1=1"
	args := []any{}

	if filters.ActiveOnly {
		query += " AND is_active = 1"
	}
	query += " ORDER BY created_at DESC"
	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	defer rows.Close()

	var packages []*secondary.PackageRecord
	for rows.Next() {
		record, err := scanPackage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan package: %w", err)
		}
		packages = append(packages, record)
	}
	return packages, rows.Err()
}

func scanPackage(row rowScanner) (*secondary.PackageRecord, error) {
	var (
		tags      string
		createdAt time.Time
		updatedAt time.Time
	)
	record := &secondary.PackageRecord{}
	err := row.Scan(&record.ID, &record.Name, &record.Description, &record.TotalServings,
		&record.TotalImages, &record.Price, &record.IsActive, &record.MaxEditsPerServing,
		&record.MaxProcessingTimeDays, &tags, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	record.FeaturesTags, err = decodeStrings(tags)
	if err != nil {
		return nil, fmt.Errorf("failed to decode feature tags: %w", err)
	}
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)
	return record, nil
}

// encodeStrings serializes a string slice as a JSON array, nil as [].
func encodeStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// decodeStrings parses a JSON array column, treating empty as none.
func decodeStrings(data string) ([]string, error) {
	if data == "" || data == "[]" {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(data), &values); err != nil {
		return nil, err
	}
	return values, nil
}

var _ secondary.PackageRepository = (*PackageRepository)(nil)
