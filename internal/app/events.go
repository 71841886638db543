package app

import (
	"sync"
	"time"
)

// EventKind identifies a typed cross-component event.
type EventKind string

const (
	// EventWorkSessionSaved fires when a timer stop or manual log creates
	// a work session.
	EventWorkSessionSaved EventKind = "work-session-saved"
	// EventSubmissionStatusChanged fires after a successful status write.
	EventSubmissionStatusChanged EventKind = "submission-status-changed"
	// EventMutationSucceeded fires after a coordinator commit.
	EventMutationSucceeded EventKind = "mutation-succeeded"
	// EventMutationFailed fires after a coordinator rollback.
	EventMutationFailed EventKind = "mutation-failed"
)

// Event is a typed notification published on the hub, replacing the
// process-wide untyped event bus of the original dashboard.
type Event struct {
	Kind       EventKind `json:"kind"`
	EntityType string    `json:"entity_type,omitempty"`
	EntityID   string    `json:"entity_id,omitempty"`
	Message    string    `json:"message,omitempty"`
	At         time.Time `json:"at"`
}

// Hub is a typed publish/subscribe channel. Publish never blocks: a
// subscriber that falls behind drops events rather than stalling mutations.
type Hub struct {
	mu   sync.Mutex
	subs map[int]chan Event
	next int
}

// NewHub creates an event hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[int]chan Event)}
}

// Subscribe registers a subscriber. The returned cancel func must be called
// to release the subscription; the channel is closed on cancel.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.next
	h.next++
	ch := make(chan Event, 16)
	h.subs[id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if c, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

// Publish delivers the event to every subscriber without blocking.
func (h *Hub) Publish(ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// HubNotifier is a secondary.Notifier that publishes mutation outcomes on
// the hub, used by the HTTP server to push toasts to dashboard sessions.
type HubNotifier struct {
	hub *Hub
}

// NewHubNotifier creates a notifier publishing to the given hub.
func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) Success(msg string) {
	n.hub.Publish(Event{Kind: EventMutationSucceeded, Message: msg})
}

func (n *HubNotifier) Error(msg string) {
	n.hub.Publish(Event{Kind: EventMutationFailed, Message: msg})
}
