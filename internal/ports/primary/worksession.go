package primary

import "context"

// WorkSession represents a logged block of work time for a client or lead.
// Sessions are created only when a timer stops with nonzero elapsed time
// and are never mutated after creation.
type WorkSession struct {
	ID              string
	OwnerType       string
	OwnerID         string
	DurationMinutes int
	WorkType        string
	Description     string
	SessionDate     string
	CreatedAt       string
}

// LogSessionRequest contains the parameters for logging a session with an
// explicit duration, bypassing the timer.
type LogSessionRequest struct {
	OwnerType       string
	OwnerID         string
	DurationMinutes int
	WorkType        string
	Description     string
	SessionDate     string
}

// WorkSessionFilters contains filter options for listing work sessions.
type WorkSessionFilters struct {
	OwnerType string
	OwnerID   string
	Limit     int
}

// WorkSessionService defines the primary port for time tracking.
type WorkSessionService interface {
	// StartTimer begins tracking time for an owner. Only one timer may run
	// per owner.
	StartTimer(ctx context.Context, ownerType, ownerID string) error

	// StopTimer ends tracking and creates a session from the elapsed wall
	// clock, rounded to minutes. A stop with zero elapsed time creates
	// nothing and returns a nil session.
	StopTimer(ctx context.Context, ownerType, ownerID, workType, description string) (*WorkSession, error)

	// LogSession records a session with an explicit duration.
	LogSession(ctx context.Context, req LogSessionRequest) (*WorkSession, error)

	ListSessions(ctx context.Context, filters WorkSessionFilters) ([]*WorkSession, error)
}
