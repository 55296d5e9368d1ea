package models

import "time"

// DryerEvent is a single audit-trail entry for the sampling engine.
type DryerEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // LOGGER_START | LOGGER_STOP | SAMPLE | ERROR
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
