package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/studiodesk/internal/ports/secondary"
)

// LeadRepository implements secondary.LeadRepository with SQLite.
type LeadRepository struct {
	db *sql.DB
}

// NewLeadRepository creates a new SQLite lead repository.
func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

// Create persists a new lead.
func (r *LeadRepository) Create(ctx context.Context, lead *secondary.LeadRecord) error {
	status := lead.Status
	if status == "" {
		status = "new"
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO leads (id, name, email, phone, source, status) VALUES (?, ?, ?, ?, ?, ?)",
		lead.ID, lead.Name, lead.Email, lead.Phone, lead.Source, status,
	)
	if err != nil {
		return fmt.Errorf("failed to create lead: %w", err)
	}
	return nil
}

// GetByID retrieves a lead by its ID.
func (r *LeadRepository) GetByID(ctx context.Context, id string) (*secondary.LeadRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, name, email, phone, source, status, created_at, updated_at FROM leads WHERE id = ?", id)
	record, err := scanLead(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("lead %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}
	return record, nil
}

// Update updates a lead.
func (r *LeadRepository) Update(ctx context.Context, lead *secondary.LeadRecord) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE leads SET name = ?, email = ?, phone = ?, source = ?, status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		lead.Name, lead.Email, lead.Phone, lead.Source, lead.Status, lead.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update lead: %w", err)
	}
	return requireRow(result, "lead", lead.ID)
}

// Delete removes a lead.
func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM leads WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete lead: %w", err)
	}
	return requireRow(result, "lead", id)
}

// List retrieves leads matching the given filters.
func (r *LeadRepository) List(ctx context.Context, filters secondary.OwnerFilters) ([]*secondary.LeadRecord, error) {
	query := "SELECT id, name, email, phone, source, status, created_at, updated_at FROM leads WHERE 1=1"
	args := []any{}

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
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	defer rows.Close()

	var leads []*secondary.LeadRecord
	for rows.Next() {
		record, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lead: %w", err)
		}
		leads = append(leads, record)
	}
	return leads, rows.Err()
}

func scanLead(row rowScanner) (*secondary.LeadRecord, error) {
	var (
		createdAt time.Time
		updatedAt time.Time
	)
	record := &secondary.LeadRecord{}
	err := row.Scan(&record.ID, &record.Name, &record.Email, &record.Phone,
		&record.Source, &record.Status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)
	return record, nil
}

var _ secondary.LeadRepository = (*LeadRepository)(nil)
