package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zalar/inventar/internal/model"
)

// CreateItem creates a new item owned by the actor and records a Created
// log entry. The item succeeds even if the log append fails.
func CreateItem(ctx context.Context, db *sql.DB, actor model.Actor, name, description, location string) (*model.Item, error) {
	if actor.UID == "" {
		return nil, model.ErrUnauthenticated
	}

	id := uuid.NewString()
	now := time.Now().UTC()

	_, err := db.ExecContext(ctx,
		`INSERT INTO items (id, name, description, location, owner_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, name, description, location, actor.UID, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	if _, err := appendLog(ctx, db, actor, model.LogEntry{
		ItemID:     id,
		ItemName:   name,
		Action:     model.ActionCreated,
		ToLocation: location,
		Details:    "Item created",
	}); err != nil {
		slog.Warn("item created but activity append failed", "item", id, "error", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns an item by ID.
func GetItem(ctx context.Context, db *sql.DB, id string) (*model.Item, error) {
	item := &model.Item{}
	var description, imageMime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, name, description, location, image_mime, owner_id, created_at, updated_at
		 FROM items WHERE id = ?`, id,
	).Scan(&item.ID, &item.Name, &description, &item.Location, &imageMime, &item.OwnerID, &item.CreatedAt, &item.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	item.Description = description.String
	item.ImageMime = imageMime.String
	return item, nil
}

// UpdateItem applies a partial merge to an item the actor owns and records an
// Updated log entry whose details name the fields that actually changed.
// Fields absent from the patch are left untouched.
func UpdateItem(ctx context.Context, db *sql.DB, actor model.Actor, id string, patch model.ItemPatch) (*model.Item, error) {
	item, err := GetItem(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, model.ErrNotFound
	}
	if err := assertOwnership(item.OwnerID, actor); err != nil {
		return nil, err
	}

	var changes []string
	if patch.Name != nil {
		if *patch.Name != item.Name {
			changes = append(changes, "name changed")
		}
		item.Name = *patch.Name
	}
	if patch.Description != nil {
		if *patch.Description != item.Description {
			changes = append(changes, "description changed")
		}
		item.Description = *patch.Description
	}
	if patch.Location != nil {
		if *patch.Location != item.Location {
			changes = append(changes, "location changed")
		}
		item.Location = *patch.Location
	}

	item.UpdatedAt = time.Now().UTC()
	_, err = db.ExecContext(ctx,
		`UPDATE items SET name = ?, description = ?, location = ?, updated_at = ? WHERE id = ?`,
		item.Name, item.Description, item.Location, item.UpdatedAt, id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating item: %w", err)
	}

	details := strings.Join(changes, ", ")
	if details == "" {
		details = "Item details updated."
	}
	if _, err := appendLog(ctx, db, actor, model.LogEntry{
		ItemID:   id,
		ItemName: item.Name,
		Action:   model.ActionUpdated,
		Details:  details,
	}); err != nil {
		slog.Warn("item updated but activity append failed", "item", id, "error", err)
	}

	return item, nil
}

// DeleteItem removes an item the actor owns and records a Deleted log entry
// carrying the item's last known location. The delete is permanent; only the
// activity log keeps a trace of the item.
func DeleteItem(ctx context.Context, db *sql.DB, actor model.Actor, id string) error {
	item, err := GetItem(ctx, db, id)
	if err != nil {
		return err
	}
	if item == nil {
		return model.ErrNotFound
	}
	if err := assertOwnership(item.OwnerID, actor); err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}

	if _, err := appendLog(ctx, db, actor, model.LogEntry{
		ItemID:       id,
		ItemName:     item.Name,
		Action:       model.ActionDeleted,
		FromLocation: item.Location,
		Details:      "Item permanently deleted.",
	}); err != nil {
		slog.Warn("item deleted but activity append failed", "item", id, "error", err)
	}

	return nil
}

// SetItemImage replaces the photo of an item the actor owns and records an
// Updated log entry. Callers normalize the data first (see internal/imaging).
func SetItemImage(ctx context.Context, db *sql.DB, actor model.Actor, id string, image []byte, mime string) error {
	item, err := GetItem(ctx, db, id)
	if err != nil {
		return err
	}
	if item == nil {
		return model.ErrNotFound
	}
	if err := assertOwnership(item.OwnerID, actor); err != nil {
		return err
	}

	_, err = db.ExecContext(ctx,
		`UPDATE items SET image = ?, image_mime = ?, updated_at = ? WHERE id = ?`,
		image, mime, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("setting item image: %w", err)
	}

	if _, err := appendLog(ctx, db, actor, model.LogEntry{
		ItemID:   id,
		ItemName: item.Name,
		Action:   model.ActionUpdated,
		Details:  "photo updated",
	}); err != nil {
		slog.Warn("item photo set but activity append failed", "item", id, "error", err)
	}

	return nil
}

// GetItemImage returns an item's photo for any user the item is visible to.
func GetItemImage(ctx context.Context, db *sql.DB, actor model.Actor, id string) ([]byte, string, error) {
	item, err := GetItem(ctx, db, id)
	if err != nil {
		return nil, "", err
	}
	if item == nil {
		return nil, "", model.ErrNotFound
	}

	visible, err := Visible(ctx, db, actor, item.OwnerID)
	if err != nil {
		return nil, "", err
	}
	if !visible {
		return nil, "", model.ErrPermissionDenied
	}

	var image []byte
	var mime sql.NullString
	err = db.QueryRowContext(ctx,
		`SELECT image, image_mime FROM items WHERE id = ?`, id,
	).Scan(&image, &mime)
	if err != nil {
		return nil, "", fmt.Errorf("getting item image: %w", err)
	}
	return image, mime.String, nil
}
