package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/zalar/inventar/internal/model"
)

// newActor registers a user and returns the matching actor identity.
func newActor(t *testing.T, db *sql.DB, email, displayName string) model.Actor {
	t.Helper()

	user, err := CreateUser(context.Background(), db, email, displayName, "test-hash")
	if err != nil {
		t.Fatalf("creating test user %s: %v", email, err)
	}
	return model.Actor{UID: user.ID, Email: user.Email, DisplayName: user.DisplayName}
}
