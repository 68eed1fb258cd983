package store

import (
	"context"
	"testing"

	"github.com/zalar/inventar/internal/db"
	"github.com/zalar/inventar/internal/model"
)

func TestListVisibleItemsOwnedOnly(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	alice := newActor(t, database, "alice@example.com", "Alice")
	bob := newActor(t, database, "bob@example.com", "Bob")

	CreateItem(ctx, database, alice, "Laptop", "", "Shelf 1")
	CreateItem(ctx, database, bob, "Camera", "", "Drawer")

	items, err := ListVisibleItems(ctx, database, alice)
	if err != nil {
		t.Fatalf("ListVisibleItems: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Laptop" {
		t.Errorf("expected only Alice's 'Laptop', got %+v", items)
	}
}

func TestListVisibleUnauthenticatedEmpty(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	alice := newActor(t, database, "alice@example.com", "Alice")
	CreateItem(ctx, database, alice, "Laptop", "", "")

	// No session, no data: empty result, not an error.
	items, err := ListVisibleItems(ctx, database, model.Actor{})
	if err != nil {
		t.Fatalf("ListVisibleItems: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected no items for unauthenticated actor, got %d", len(items))
	}
}

func TestPendingShareGrantsNothing(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	alice := newActor(t, database, "alice@example.com", "Alice")
	bob := newActor(t, database, "bob@example.com", "Bob")

	CreateItem(ctx, database, alice, "Laptop", "", "")
	CreateShare(ctx, database, alice, bob.Email)

	items, _ := ListVisibleItems(ctx, database, bob)
	if len(items) != 0 {
		t.Errorf("pending share leaked %d items", len(items))
	}

	sharers, _ := AcceptedSharerIDs(ctx, database, bob.Email)
	if len(sharers) != 0 {
		t.Errorf("pending share counted as accepted sharer: %v", sharers)
	}
}

func TestAcceptedShareUnlocksRecords(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	alice := newActor(t, database, "alice@example.com", "Alice")
	bob := newActor(t, database, "bob@example.com", "Bob")

	CreateItem(ctx, database, alice, "Laptop", "", "Shelf 1")
	CreateLocation(ctx, database, alice, "Shelf 1")
	share, _ := CreateShare(ctx, database, alice, bob.Email)
	AcceptShare(ctx, database, bob, share.ID)

	items, _ := ListVisibleItems(ctx, database, bob)
	if len(items) != 1 || items[0].OwnerID != alice.UID {
		t.Errorf("expected Alice's item visible to Bob, got %+v", items)
	}

	locations, _ := ListVisibleLocations(ctx, database, bob)
	if len(locations) != 1 {
		t.Errorf("expected Alice's location visible to Bob, got %d", len(locations))
	}

	activity, _ := ListVisibleActivity(ctx, database, bob)
	if len(activity) != 1 {
		t.Errorf("expected Alice's activity visible to Bob, got %d", len(activity))
	}

	// Sharing is one-directional: Alice sees nothing of Bob's (he has nothing,
	// but more to the point, no share names her as sharee).
	CreateItem(ctx, database, bob, "Camera", "", "")
	items, _ = ListVisibleItems(ctx, database, alice)
	if len(items) != 1 {
		t.Errorf("expected Alice to see only her own item, got %d", len(items))
	}
}

func TestRevokeClosesVisibility(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	alice := newActor(t, database, "alice@example.com", "Alice")
	bob := newActor(t, database, "bob@example.com", "Bob")

	CreateItem(ctx, database, alice, "Laptop", "", "")
	share, _ := CreateShare(ctx, database, alice, bob.Email)
	AcceptShare(ctx, database, bob, share.ID)
	RevokeShare(ctx, database, alice, share.ID)

	items, _ := ListVisibleItems(ctx, database, bob)
	if len(items) != 0 {
		t.Errorf("revoked share still grants %d items", len(items))
	}
}

func TestVisible(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	alice := newActor(t, database, "alice@example.com", "Alice")
	bob := newActor(t, database, "bob@example.com", "Bob")

	if ok, _ := Visible(ctx, database, alice, alice.UID); !ok {
		t.Error("expected own partition to be visible")
	}
	if ok, _ := Visible(ctx, database, bob, alice.UID); ok {
		t.Error("expected foreign partition to be hidden without a share")
	}

	share, _ := CreateShare(ctx, database, alice, bob.Email)
	AcceptShare(ctx, database, bob, share.ID)

	if ok, _ := Visible(ctx, database, bob, alice.UID); !ok {
		t.Error("expected shared partition to be visible after accept")
	}
}

// TestSharingScenario walks the full flow: item creation, movement,
// invitation, acceptance, and the visibility changes at each step.
func TestSharingScenario(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	a := newActor(t, database, "a@x.com", "A")
	b := newActor(t, database, "b@x.com", "B")

	item, err := CreateItem(ctx, database, a, "Laptop", "", "Shelf 1")
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	items, _ := ListVisibleItems(ctx, database, a)
	if len(items) != 1 || items[0].Name != "Laptop" || items[0].Location != "Shelf 1" {
		t.Fatalf("expected one 'Laptop' at 'Shelf 1' for A, got %+v", items)
	}

	if _, err := CreateMovement(ctx, database, a, item.ID, "Shelf 2"); err != nil {
		t.Fatalf("CreateMovement: %v", err)
	}
	got, _ := GetItem(ctx, database, item.ID)
	if got.Location != "Shelf 2" {
		t.Fatalf("expected item at 'Shelf 2', got %q", got.Location)
	}
	history, _ := ListItemActivity(ctx, database, a, item.ID)
	moved := history[0]
	if moved.Action != model.ActionMoved || moved.FromLocation != "Shelf 1" || moved.ToLocation != "Shelf 2" {
		t.Fatalf("unexpected movement entry: %+v", moved)
	}

	// B has no share: sees nothing.
	if items, _ := ListVisibleItems(ctx, database, b); len(items) != 0 {
		t.Fatalf("expected B to see nothing, got %d items", len(items))
	}

	// A invites B. Still pending: still nothing.
	share, err := CreateShare(ctx, database, a, "b@x.com")
	if err != nil {
		t.Fatalf("CreateShare: %v", err)
	}
	if pending, _ := ListPendingShares(ctx, database, b); len(pending) != 1 {
		t.Fatalf("expected one pending invitation for B")
	}
	if items, _ := ListVisibleItems(ctx, database, b); len(items) != 0 {
		t.Fatalf("pending share should grant nothing, B sees %d items", len(items))
	}

	// B accepts: A's laptop becomes visible.
	if err := AcceptShare(ctx, database, b, share.ID); err != nil {
		t.Fatalf("AcceptShare: %v", err)
	}
	items, _ = ListVisibleItems(ctx, database, b)
	if len(items) != 1 || items[0].Name != "Laptop" {
		t.Fatalf("expected B to see the 'Laptop' after accepting, got %+v", items)
	}
}
