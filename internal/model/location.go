package model

import "time"

// Location represents a named place items can be kept. Deleting a location
// does not touch items still naming it.
type Location struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}
