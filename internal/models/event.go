package models

import "time"

// Event represents a loggable action in the system, e.g. a shelf update or
// a challenge goal change.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`  // e.g., "shelf.status.update", "challenge.goal.set"
	Level     string    `json:"level"` // e.g., "info", "warn", "error"
	Message   string    `json:"message"`
	UserID    *string   `json:"userId,omitempty"` // Nullable for system-wide events
	CreatedAt time.Time `json:"createdAt"`
}
