package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/studiodesk/internal/ports/secondary"
)

const affiliateColumns = "id, name, email, phone, commission_percent, current_package_id, remaining_servings, remaining_images, consumed_images, reserved_images, ai_training_units, created_at, updated_at"

// AffiliateRepository implements secondary.AffiliateRepository with SQLite.
type AffiliateRepository struct {
	db *sql.DB
}

// NewAffiliateRepository creates a new SQLite affiliate repository.
func NewAffiliateRepository(db *sql.DB) *AffiliateRepository {
	return &AffiliateRepository{db: db}
}

// Create persists a new affiliate.
func (r *AffiliateRepository) Create(ctx context.Context, affiliate *secondary.AffiliateRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO affiliates (id, name, email, phone, commission_percent, current_package_id, remaining_servings, remaining_images, consumed_images, reserved_images, ai_training_units) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		affiliate.ID, affiliate.Name, affiliate.Email, affiliate.Phone, affiliate.CommissionPercent,
		affiliate.CurrentPackageID, affiliate.RemainingServings, affiliate.RemainingImages,
		affiliate.ConsumedImages, affiliate.ReservedImages, affiliate.AITrainingUnits,
	)
	if err != nil {
		return fmt.Errorf("failed to create affiliate: %w", err)
	}
	return nil
}

// GetByID retrieves an affiliate by its ID.
func (r *AffiliateRepository) GetByID(ctx context.Context, id string) (*secondary.AffiliateRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+affiliateColumns+" FROM affiliates WHERE id = ?", id)
	record, err := scanAffiliate(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("affiliate %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get affiliate: %w", err)
	}
	return record, nil
}

// Update updates an affiliate's descriptive fields.
func (r *AffiliateRepository) Update(ctx context.Context, affiliate *secondary.AffiliateRecord) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE affiliates SET name = ?, email = ?, phone = ?, commission_percent = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		affiliate.Name, affiliate.Email, affiliate.Phone, affiliate.CommissionPercent, affiliate.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update affiliate: %w", err)
	}
	return requireRow(result, "affiliate", affiliate.ID)
}

// Delete removes an affiliate.
func (r *AffiliateRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM affiliates WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete affiliate: %w", err)
	}
	return requireRow(result, "affiliate", id)
}

// List retrieves affiliates matching the given filters.
func (r *AffiliateRepository) List(ctx context.Context, filters secondary.OwnerFilters) ([]*secondary.AffiliateRecord, error) {
	query := "SELECT " + affiliateColumns + " FROM affiliates ORDER BY created_at DESC"
	args := []any{}
	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list affiliates: %w", err)
	}
	defer rows.Close()

	var affiliates []*secondary.AffiliateRecord
	for rows.Next() {
		record, err := scanAffiliate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan affiliate: %w", err)
		}
		affiliates = append(affiliates, record)
	}
	return affiliates, rows.Err()
}

// SetCounter writes one counter column and returns the authoritative row.
func (r *AffiliateRepository) SetCounter(ctx context.Context, id string, field secondary.CounterField, value int) (*secondary.AffiliateRecord, error) {
	if !secondary.ValidCounterField(field) {
		return nil, fmt.Errorf("invalid counter field: %s", field)
	}
	if value < 0 {
		return nil, fmt.Errorf("counter value must not be negative: %d", value)
	}

	query := fmt.Sprintf("UPDATE affiliates SET %s = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?", field)
	result, err := r.db.ExecContext(ctx, query, value, id)
	if err != nil {
		return nil, fmt.Errorf("failed to set counter: %w", err)
	}
	if err := requireRow(result, "affiliate", id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// AssignPackage sets the current package and replaces the remaining counts
// absolutely.
func (r *AffiliateRepository) AssignPackage(ctx context.Context, id, packageID string, servings, images int, note string) (*secondary.AffiliateRecord, error) {
	result, err := r.db.ExecContext(ctx,
		"UPDATE affiliates SET current_package_id = ?, remaining_servings = ?, remaining_images = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		packageID, servings, images, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to assign package: %w", err)
	}
	if err := requireRow(result, "affiliate", id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func scanAffiliate(row rowScanner) (*secondary.AffiliateRecord, error) {
	var (
		createdAt time.Time
		updatedAt time.Time
	)
	record := &secondary.AffiliateRecord{}
	err := row.Scan(&record.ID, &record.Name, &record.Email, &record.Phone, &record.CommissionPercent,
		&record.CurrentPackageID, &record.RemainingServings, &record.RemainingImages,
		&record.ConsumedImages, &record.ReservedImages, &record.AITrainingUnits,
		&createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)
	return record, nil
}

var _ secondary.AffiliateRepository = (*AffiliateRepository)(nil)
