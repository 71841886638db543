package app

import (
	"context"
	"fmt"
	"time"

	"github.com/example/studiodesk/internal/ports/primary"
	"github.com/example/studiodesk/internal/ports/secondary"
)

// WorkSessionServiceImpl implements the WorkSessionService interface.
// Sessions are created only when a timer stops with nonzero elapsed time
// and are immutable afterwards.
type WorkSessionServiceImpl struct {
	sessionRepo secondary.WorkSessionRepository
	timers      secondary.TimerStore
	clock       secondary.Clock
	ids         secondary.IDGenerator
	hub         *Hub
	logger      secondary.Logger
}

// NewWorkSessionService creates a new WorkSessionService with injected
// dependencies.
func NewWorkSessionService(
	sessionRepo secondary.WorkSessionRepository,
	timers secondary.TimerStore,
	clock secondary.Clock,
	ids secondary.IDGenerator,
	hub *Hub,
	logger secondary.Logger,
) *WorkSessionServiceImpl {
	return &WorkSessionServiceImpl{
		sessionRepo: sessionRepo,
		timers:      timers,
		clock:       clock,
		ids:         ids,
		hub:         hub,
		logger:      logger,
	}
}

// StartTimer begins tracking time for an owner. Only one timer may run per
// owner.
func (s *WorkSessionServiceImpl) StartTimer(ctx context.Context, ownerType, ownerID string) error {
	if err := validateOwner(ownerType, ownerID); err != nil {
		return err
	}
	if err := s.timers.Start(ownerType, ownerID, s.clock.Now()); err != nil {
		return fmt.Errorf("failed to start timer: %w", err)
	}
	s.logger.Info("timer started", "owner_type", ownerType, "owner_id", ownerID)
	return nil
}

// StopTimer ends tracking and creates a session from the rounded elapsed
// minutes. Elapsed time under half a minute still counts as one minute;
// zero elapsed time creates nothing and returns a nil session.
func (s *WorkSessionServiceImpl) StopTimer(ctx context.Context, ownerType, ownerID, workType, description string) (*primary.WorkSession, error) {
	if err := validateOwner(ownerType, ownerID); err != nil {
		return nil, err
	}

	started, running, err := s.timers.Get(ownerType, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to read timer: %w", err)
	}
	if !running {
		return nil, fmt.Errorf("%w: no timer running for %s %s", ErrValidation, ownerType, ownerID)
	}

	now := s.clock.Now()
	if err := s.timers.Clear(ownerType, ownerID); err != nil {
		return nil, fmt.Errorf("failed to clear timer: %w", err)
	}

	elapsed := now.Sub(started)
	if elapsed <= 0 {
		s.logger.Info("timer discarded, no elapsed time", "owner_type", ownerType, "owner_id", ownerID)
		return nil, nil
	}

	minutes := int(elapsed.Round(time.Minute) / time.Minute)
	if minutes == 0 {
		minutes = 1
	}

	return s.createSession(ctx, &secondary.WorkSessionRecord{
		ID:              s.ids.New(),
		OwnerType:       ownerType,
		OwnerID:         ownerID,
		DurationMinutes: minutes,
		WorkType:        workType,
		Description:     description,
		SessionDate:     now.Format("2006-01-02"),
	})
}

// LogSession records a session with an explicit duration.
func (s *WorkSessionServiceImpl) LogSession(ctx context.Context, req primary.LogSessionRequest) (*primary.WorkSession, error) {
	if err := validateOwner(req.OwnerType, req.OwnerID); err != nil {
		return nil, err
	}
	if req.DurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", ErrValidation)
	}

	sessionDate := req.SessionDate
	if sessionDate == "" {
		sessionDate = s.clock.Now().Format("2006-01-02")
	}

	return s.createSession(ctx, &secondary.WorkSessionRecord{
		ID:              s.ids.New(),
		OwnerType:       req.OwnerType,
		OwnerID:         req.OwnerID,
		DurationMinutes: req.DurationMinutes,
		WorkType:        req.WorkType,
		Description:     req.Description,
		SessionDate:     sessionDate,
	})
}

// ListSessions lists work sessions with optional filters.
func (s *WorkSessionServiceImpl) ListSessions(ctx context.Context, filters primary.WorkSessionFilters) ([]*primary.WorkSession, error) {
	records, err := s.sessionRepo.List(ctx, secondary.WorkSessionFilters{
		OwnerType: filters.OwnerType,
		OwnerID:   filters.OwnerID,
		Limit:     filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list work sessions: %w", err)
	}

	sessions := make([]*primary.WorkSession, len(records))
	for i, r := range records {
		sessions[i] = workSessionFromRecord(r)
	}
	return sessions, nil
}

func (s *WorkSessionServiceImpl) createSession(ctx context.Context, record *secondary.WorkSessionRecord) (*primary.WorkSession, error) {
	if err := s.sessionRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create work session: %w", err)
	}

	session := workSessionFromRecord(record)
	s.hub.Publish(Event{
		Kind:       EventWorkSessionSaved,
		EntityType: record.OwnerType,
		EntityID:   record.OwnerID,
		Message:    fmt.Sprintf("%d minutes of %s", record.DurationMinutes, record.WorkType),
	})
	return session, nil
}

func validateOwner(ownerType, ownerID string) error {
	if ownerType != primary.OwnerTypeClient && ownerType != primary.OwnerTypeLead {
		return fmt.Errorf("%w: owner type must be %q or %q", ErrValidation, primary.OwnerTypeClient, primary.OwnerTypeLead)
	}
	if ownerID == "" {
		return fmt.Errorf("%w: owner id is required", ErrValidation)
	}
	return nil
}

func workSessionFromRecord(r *secondary.WorkSessionRecord) *primary.WorkSession {
	return &primary.WorkSession{
		ID:              r.ID,
		OwnerType:       r.OwnerType,
		OwnerID:         r.OwnerID,
		DurationMinutes: r.DurationMinutes,
		WorkType:        r.WorkType,
		Description:     r.Description,
		SessionDate:     r.SessionDate,
		CreatedAt:       r.CreatedAt,
	}
}

// Ensure WorkSessionServiceImpl implements the interface
var _ primary.WorkSessionService = (*WorkSessionServiceImpl)(nil)
