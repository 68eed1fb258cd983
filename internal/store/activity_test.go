package store

import (
	"context"
	"testing"

	"github.com/zalar/inventar/internal/db"
	"github.com/zalar/inventar/internal/model"
)

func TestOneLogEntryPerMutation(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	alice := newActor(t, database, "alice@example.com", "Alice")

	item, _ := CreateItem(ctx, database, alice, "Laptop", "", "Shelf 1")
	UpdateItem(ctx, database, alice, item.ID, model.ItemPatch{Description: strptr("work machine")})
	CreateMovement(ctx, database, alice, item.ID, "Shelf 2")
	DeleteItem(ctx, database, alice, item.ID)

	history, err := ListItemActivity(ctx, database, alice, item.ID)
	if err != nil {
		t.Fatalf("ListItemActivity: %v", err)
	}
	if len(history) != 4 {
		t.Fatalf("expected 4 entries (one per mutation), got %d", len(history))
	}

	// Newest first.
	wantActions := []string{model.ActionDeleted, model.ActionMoved, model.ActionUpdated, model.ActionCreated}
	for i, want := range wantActions {
		if history[i].Action != want {
			t.Errorf("entry %d: expected action %q, got %q", i, want, history[i].Action)
		}
	}

	// loggedAt is non-decreasing from oldest to newest.
	for i := 1; i < len(history); i++ {
		if history[i-1].LoggedAt.Before(history[i].LoggedAt) {
			t.Errorf("entry %d logged before its predecessor: %v < %v",
				i-1, history[i-1].LoggedAt, history[i].LoggedAt)
		}
	}
}

func TestLogEntryAttribution(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	named := newActor(t, database, "alice@example.com", "Alice")
	unnamed := newActor(t, database, "bob@example.com", "")

	itemA, _ := CreateItem(ctx, database, named, "A", "", "")
	itemB, _ := CreateItem(ctx, database, unnamed, "B", "", "")

	historyA, _ := ListItemActivity(ctx, database, named, itemA.ID)
	if historyA[0].LoggedBy != "Alice" {
		t.Errorf("expected logged_by 'Alice', got %q", historyA[0].LoggedBy)
	}

	// Without a display name, attribution falls back to the email.
	historyB, _ := ListItemActivity(ctx, database, unnamed, itemB.ID)
	if historyB[0].LoggedBy != "bob@example.com" {
		t.Errorf("expected logged_by 'bob@example.com', got %q", historyB[0].LoggedBy)
	}
}

func TestLogEntryStampedFields(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	alice := newActor(t, database, "alice@example.com", "Alice")

	item, _ := CreateItem(ctx, database, alice, "Laptop", "", "Shelf 1")

	history, _ := ListItemActivity(ctx, database, alice, item.ID)
	entry := history[0]
	if entry.ID == "" {
		t.Error("expected generated entry id")
	}
	if entry.OwnerID != alice.UID {
		t.Errorf("expected owner %q, got %q", alice.UID, entry.OwnerID)
	}
	if entry.LoggedAt.IsZero() {
		t.Error("expected server-stamped logged_at")
	}
	if entry.ToLocation != "Shelf 1" {
		t.Errorf("expected to_location 'Shelf 1', got %q", entry.ToLocation)
	}
}
