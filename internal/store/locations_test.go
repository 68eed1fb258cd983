package store

import (
	"context"
	"errors"
	"testing"

	"github.com/zalar/inventar/internal/db"
	"github.com/zalar/inventar/internal/model"
)

func TestCreateAndGetLocation(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	alice := newActor(t, database, "alice@example.com", "Alice")

	created, err := CreateLocation(ctx, database, alice, "Shelf 1")
	if err != nil {
		t.Fatalf("CreateLocation: %v", err)
	}
	if created.ID == "" || created.Name != "Shelf 1" || created.OwnerID != alice.UID {
		t.Errorf("unexpected location: %+v", created)
	}

	got, err := GetLocation(ctx, database, created.ID)
	if err != nil {
		t.Fatalf("GetLocation: %v", err)
	}
	if got == nil || got.Name != "Shelf 1" {
		t.Errorf("GetLocation returned %+v", got)
	}
}

func TestCreateLocationUnauthenticated(t *testing.T) {
	database := db.NewTestDB(t)

	_, err := CreateLocation(context.Background(), database, model.Actor{}, "Shelf 1")
	if !errors.Is(err, model.ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestUpdateLocationKeepsItemReference(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	alice := newActor(t, database, "alice@example.com", "Alice")

	loc, _ := CreateLocation(ctx, database, alice, "Shelf 1")
	item, _ := CreateItem(ctx, database, alice, "Laptop", "", "Shelf 1")

	updated, err := UpdateLocation(ctx, database, alice, loc.ID, "Shelf A")
	if err != nil {
		t.Fatalf("UpdateLocation: %v", err)
	}
	if updated.Name != "Shelf A" {
		t.Errorf("expected renamed location, got %q", updated.Name)
	}

	// Items store the location by name; renames do not follow.
	got, _ := GetItem(ctx, database, item.ID)
	if got.Location != "Shelf 1" {
		t.Errorf("expected item to keep old location name, got %q", got.Location)
	}
}

func TestUpdateLocationNotOwned(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	alice := newActor(t, database, "alice@example.com", "Alice")
	bob := newActor(t, database, "bob@example.com", "Bob")

	loc, _ := CreateLocation(ctx, database, alice, "Shelf 1")

	_, err := UpdateLocation(ctx, database, bob, loc.ID, "Mine now")
	if !errors.Is(err, model.ErrPermissionDenied) {
		t.Errorf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestDeleteLocation(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	alice := newActor(t, database, "alice@example.com", "Alice")

	loc, _ := CreateLocation(ctx, database, alice, "Shelf 1")
	if err := DeleteLocation(ctx, database, alice, loc.ID); err != nil {
		t.Fatalf("DeleteLocation: %v", err)
	}

	got, _ := GetLocation(ctx, database, loc.ID)
	if got != nil {
		t.Errorf("expected location gone, got %+v", got)
	}

	if err := DeleteLocation(ctx, database, alice, loc.ID); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}
