package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/studiodesk/internal/ports/secondary"
)

// WorkSessionRepository implements secondary.WorkSessionRepository with
// SQLite. Sessions are append-only.
type WorkSessionRepository struct {
	db *sql.DB
}

// NewWorkSessionRepository creates a new SQLite work session repository.
func NewWorkSessionRepository(db *sql.DB) *WorkSessionRepository {
	return &WorkSessionRepository{db: db}
}

// Create persists a new work session.
func (r *WorkSessionRepository) Create(ctx context.Context, session *secondary.WorkSessionRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO work_sessions (id, owner_type, owner_id, duration_minutes, work_type, description, session_date) VALUES (?, ?, ?, ?, ?, ?, ?)",
		session.ID, session.OwnerType, session.OwnerID, session.DurationMinutes,
		session.WorkType, session.Description, session.SessionDate,
	)
	if err != nil {
		return fmt.Errorf("failed to create work session: %w", err)
	}
	return nil
}

// List retrieves work sessions matching the given filters, newest first.
func (r *WorkSessionRepository) List(ctx context.Context, filters secondary.WorkSessionFilters) ([]*secondary.WorkSessionRecord, error) {
	query := "SELECT id, owner_type, owner_id, duration_minutes, work_type, description, session_date, created_at FROM work_sessions WHERE 1=1"
	args := []any{}

	if filters.OwnerType != "" {
		query += " AND owner_type = ?"
		args = append(args, filters.OwnerType)
	}
	if filters.OwnerID != "" {
		query += " AND owner_id = ?"
		args = append(args, filters.OwnerID)
	}
	query += " ORDER BY session_date DESC, created_at DESC"
	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list work sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*secondary.WorkSessionRecord
	for rows.Next() {
		var createdAt time.Time
		record := &secondary.WorkSessionRecord{}
		err := rows.Scan(&record.ID, &record.OwnerType, &record.OwnerID, &record.DurationMinutes,
			&record.WorkType, &record.Description, &record.SessionDate, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work session: %w", err)
		}
		record.CreatedAt = createdAt.Format(time.RFC3339)
		sessions = append(sessions, record)
	}
	return sessions, rows.Err()
}

var _ secondary.WorkSessionRepository = (*WorkSessionRepository)(nil)
