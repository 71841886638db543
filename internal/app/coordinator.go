// Package app implements the application services behind the primary ports.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/example/studiodesk/internal/cache"
	"github.com/example/studiodesk/internal/ports/secondary"
)

// ErrMutationInFlight is returned when a mutation targets a logical
// (entity, field) pair that already has a mutation in flight. The intent is
// ignored, not queued: no snapshot is taken and no remote call is made.
var ErrMutationInFlight = errors.New("mutation already in flight")

// ErrValidation marks failures caught before any optimistic write or
// network call. Wrap with fmt.Errorf("%w: ...", ErrValidation).
var ErrValidation = errors.New("validation failed")

// Mutation describes one optimistic state change: the optimistic cache
// patches to apply immediately, the single authoritative remote write, and
// how to reconcile the cache with the server's answer.
type Mutation struct {
	// Guard is the logical target, e.g. "clients/CL-001/remaining_servings"
	// for a counter or "clients/CL-001" for a package assignment.
	Guard string

	// Patches are the optimistic values written per fan-out key before the
	// remote call. Keys never fetched are skipped.
	Patches map[cache.Key]cache.PatchFunc

	// Commit performs the single authoritative remote write and returns
	// the server's authoritative outcome.
	Commit func(ctx context.Context) (any, error)

	// Reconcile maps the authoritative outcome to the patches that
	// overwrite every fan-out key with server state. The whole entity is
	// written back, not just the mutated field, since the server write may
	// carry derived fields.
	Reconcile func(outcome any) map[cache.Key]cache.PatchFunc

	// Invalidate lists aggregate keys (server-computed from multiple
	// entities) that are marked stale rather than patched.
	Invalidate []cache.Key

	// SuccessMessage builds the success notification from the outcome.
	SuccessMessage func(outcome any) string
}

// Coordinator runs mutations with snapshot/apply/commit/rollback semantics
// across every cache key that denormalizes the mutated entity.
type Coordinator struct {
	cache    *cache.Store
	notifier secondary.Notifier
	logger   secondary.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewCoordinator creates a mutation coordinator over the given cache.
func NewCoordinator(store *cache.Store, notifier secondary.Notifier, logger secondary.Logger) *Coordinator {
	return &Coordinator{
		cache:    store,
		notifier: notifier,
		logger:   logger,
		inFlight: make(map[string]struct{}),
	}
}

// InFlight reports whether a mutation is currently running for the guard.
func (c *Coordinator) InFlight(guard string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.inFlight[guard]
	return ok
}

// Run executes the mutation. On success every fan-out key holds the
// reconciled authoritative value; on failure every snapshotted key is
// restored verbatim and the error notification carries the underlying
// message. Exactly one remote write is issued per accepted mutation.
func (c *Coordinator) Run(ctx context.Context, m Mutation) (any, error) {
	c.mu.Lock()
	if _, busy := c.inFlight[m.Guard]; busy {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrMutationInFlight, m.Guard)
	}
	c.inFlight[m.Guard] = struct{}{}
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.inFlight, m.Guard)
		c.mu.Unlock()
	}()

	keys := make([]cache.Key, 0, len(m.Patches))
	for k := range m.Patches {
		keys = append(keys, k)
	}
	snap := c.cache.Snapshot(keys...)

	for k, fn := range m.Patches {
		c.cache.Patch(k, fn)
	}

	outcome, err := m.Commit(ctx)
	if err != nil {
		snap.Restore()
		msg := errorMessage(err)
		c.notifier.Error(msg)
		c.logger.Error("mutation failed", "guard", m.Guard, "err", err)
		return nil, fmt.Errorf("failed to commit mutation %s: %w", m.Guard, err)
	}

	if m.Reconcile != nil {
		for k, fn := range m.Reconcile(outcome) {
			c.cache.Patch(k, fn)
		}
	}
	for _, k := range m.Invalidate {
		c.cache.Invalidate(k)
	}

	if m.SuccessMessage != nil {
		c.notifier.Success(m.SuccessMessage(outcome))
	}
	c.logger.Debug("mutation committed", "guard", m.Guard)
	return outcome, nil
}

// errorMessage extracts a user-facing message from a remote failure,
// falling back to a generic string when the error carries no message.
func errorMessage(err error) string {
	if err == nil {
		return "unknown error"
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return "unknown error"
}
