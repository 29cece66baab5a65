package session

import (
	"time"

	"github.com/google/uuid"
)

// EventType identifies a state change published by the accumulator
type EventType string

const (
	// EventSessionStarted is published when a new session becomes active
	EventSessionStarted EventType = "session_started"

	// EventMetricsUpdated is published after each processed sample
	EventMetricsUpdated EventType = "metrics_updated"

	// EventSessionEnded is published when the active session is finalized
	EventSessionEnded EventType = "session_ended"
)

// Event is a change notification published on mutation of the accumulator
// state. Subscribers receive events best-effort: a slow subscriber misses
// events rather than blocking the processing worker.
type Event struct {
	Type      EventType `json:"type"`
	SessionID uuid.UUID `json:"sessionId"`
	Timestamp time.Time `json:"timestamp"`
}
