package secondary

import "time"

// TimerStore persists the start instant of the active work timer per owner,
// so a timer started in one CLI invocation can be stopped in another.
type TimerStore interface {
	// Start records the timer start for an owner. Returns an error if a
	// timer is already running for that owner.
	Start(ownerType, ownerID string, at time.Time) error

	// Get returns the start instant for an owner's running timer.
	// The second return is false when no timer is running.
	Get(ownerType, ownerID string) (time.Time, bool, error)

	// Clear removes the running timer for an owner.
	Clear(ownerType, ownerID string) error
}
