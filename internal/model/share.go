package model

import "time"

// Share is a one-directional grant of read access from a sharer's records to
// the user registered under ShareeEmail. Only an accepted share grants
// visibility; a pending one is just an invitation.
//
// State machine: pending --accept--> accepted; pending --decline--> deleted;
// pending|accepted --revoke--> deleted. There is no un-accept.
type Share struct {
	ID          string    `json:"id"`
	SharerID    string    `json:"sharer_id"`
	SharerEmail string    `json:"sharer_email"`
	ShareeEmail string    `json:"sharee_email"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// Share statuses.
const (
	ShareStatusPending  = "pending"
	ShareStatusAccepted = "accepted"
)
