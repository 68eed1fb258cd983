package model

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// User represents a registered account. The email column doubles as the
// lookup table for addressing share invitations.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	DisplayName  string     `json:"display_name,omitempty"`
	PhotoURL     string     `json:"photo_url,omitempty"`
	PasswordHash string     `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}

// Actor is the authenticated identity threaded explicitly through every core
// operation. There is no ambient current-user state.
type Actor struct {
	UID         string
	Email       string
	DisplayName string
}

// LogName returns the name an actor's log entries are attributed to.
func (a Actor) LogName() string {
	if a.DisplayName != "" {
		return a.DisplayName
	}
	if a.Email != "" {
		return a.Email
	}
	return "Anonymous"
}

// ValidateEmail checks that an address is a plausible single email.
func ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return fmt.Errorf("invalid email address")
	}
	// Reject display-name forms like "Bob <bob@example.com>".
	if addr.Address != strings.TrimSpace(email) {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

// ValidatePassword checks password requirements.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}
