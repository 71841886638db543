// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/studiodesk/internal/ports/secondary"
)

const clientColumns = "id, name, email, phone, status, current_package_id, remaining_servings, remaining_images, consumed_images, reserved_images, ai_training_units, notes, created_at, updated_at"

// ClientRepository implements secondary.ClientRepository with SQLite.
type ClientRepository struct {
	db *sql.DB
}

// NewClientRepository creates a new SQLite client repository.
func NewClientRepository(db *sql.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// Create persists a new client.
func (r *ClientRepository) Create(ctx context.Context, client *secondary.ClientRecord) error {
	status := client.Status
	if status == "" {
		status = "active"
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO clients (id, name, email, phone, status, current_package_id, remaining_servings, remaining_images, consumed_images, reserved_images, ai_training_units, notes) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		client.ID, client.Name, client.Email, client.Phone, status, client.CurrentPackageID,
		client.RemainingServings, client.RemainingImages, client.ConsumedImages, client.ReservedImages,
		client.AITrainingUnits, client.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

// GetByID retrieves a client by its ID.
func (r *ClientRepository) GetByID(ctx context.Context, id string) (*secondary.ClientRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+clientColumns+" FROM clients WHERE id = ?", id)
	record, err := scanClient(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("client %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return record, nil
}

// Update updates a client's descriptive fields.
func (r *ClientRepository) Update(ctx context.Context, client *secondary.ClientRecord) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE clients SET name = ?, email = ?, phone = ?, status = ?, notes = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		client.Name, client.Email, client.Phone, client.Status, client.Notes, client.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}
	return requireRow(result, "client", client.ID)
}

// Delete removes a client.
func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM clients WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return requireRow(result, "client", id)
}

// List retrieves clients matching the given filters.
func (r *ClientRepository) List(ctx context.Context, filters secondary.OwnerFilters) ([]*secondary.ClientRecord, error) {
	query := "SELECT " + clientColumns + " FROM clients WHERE 1=1"
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
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var clients []*secondary.ClientRecord
	for rows.Next() {
		record, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, record)
	}
	return clients, rows.Err()
}

// SetCounter writes one counter column and returns the authoritative row.
func (r *ClientRepository) SetCounter(ctx context.Context, id string, field secondary.CounterField, value int) (*secondary.ClientRecord, error) {
	if !secondary.ValidCounterField(field) {
		return nil, fmt.Errorf("invalid counter field: %s", field)
	}
	if value < 0 {
		return nil, fmt.Errorf("counter value must not be negative: %d", value)
	}

	// field is constrained to the known column names above.
	query := fmt.Sprintf("UPDATE clients SET %s = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?", field)
	result, err := r.db.ExecContext(ctx, query, value, id)
	if err != nil {
		return nil, fmt.Errorf("failed to set counter: %w", err)
	}
	if err := requireRow(result, "client", id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// AssignPackage sets the current package and replaces the remaining counts
// absolutely.
func (r *ClientRepository) AssignPackage(ctx context.Context, id, packageID string, servings, images int, note string) (*secondary.ClientRecord, error) {
	query := "UPDATE clients SET current_package_id = ?, remaining_servings = ?, remaining_images = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	args := []any{packageID, servings, images, id}
	if note != "" {
		query = "UPDATE clients SET current_package_id = ?, remaining_servings = ?, remaining_images = ?, notes = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
		args = []any{packageID, servings, images, note, id}
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to assign package: %w", err)
	}
	if err := requireRow(result, "client", id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClient(row rowScanner) (*secondary.ClientRecord, error) {
	var (
		createdAt time.Time
		updatedAt time.Time
	)
	record := &secondary.ClientRecord{}
	err := row.Scan(&record.ID, &record.Name, &record.Email, &record.Phone, &record.Status,
		&record.CurrentPackageID, &record.RemainingServings, &record.RemainingImages,
		&record.ConsumedImages, &record.ReservedImages, &record.AITrainingUnits,
		&record.Notes, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)
	return record, nil
}

// requireRow turns a zero-row update or delete into a not-found error.
func requireRow(result sql.Result, entity, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s not found", entity, id)
	}
	return nil
}

var _ secondary.ClientRepository = (*ClientRepository)(nil)
