package model

import "time"

// LogEntry is one attributed record in the append-only activity log.
// Entries are never updated or deleted once written.
type LogEntry struct {
	ID           string    `json:"id"`
	ItemID       string    `json:"item_id"`
	ItemName     string    `json:"item_name"`
	Action       string    `json:"action"`
	FromLocation string    `json:"from_location,omitempty"`
	ToLocation   string    `json:"to_location,omitempty"`
	Details      string    `json:"details,omitempty"`
	LoggedBy     string    `json:"logged_by"`
	LoggedAt     time.Time `json:"logged_at"`
	OwnerID      string    `json:"owner_id"`
}

// Log actions.
const (
	ActionCreated = "Created"
	ActionUpdated = "Updated"
	ActionMoved   = "Moved"
	ActionDeleted = "Deleted"
)
