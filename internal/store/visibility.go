package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/zalar/inventar/internal/model"
)

// Reads are owner-scoped: a user sees their own partition plus the
// partitions of every owner with an accepted share naming them as sharee.
// Partitions are disjoint by construction, so the union needs no dedup.
// An unauthenticated actor gets an empty result, not an error.

// AcceptedSharerIDs returns the owner IDs that have an accepted share
// naming shareeEmail as sharee. Pending shares grant nothing.
func AcceptedSharerIDs(ctx context.Context, db *sql.DB, shareeEmail string) ([]string, error) {
	if shareeEmail == "" {
		return nil, nil
	}

	rows, err := db.QueryContext(ctx,
		`SELECT sharer_id FROM shares WHERE sharee_email = ? AND status = ?`,
		shareeEmail, model.ShareStatusAccepted,
	)
	if err != nil {
		return nil, fmt.Errorf("resolving sharers: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning sharer id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Visible reports whether records owned by ownerID are readable by the actor.
func Visible(ctx context.Context, db *sql.DB, actor model.Actor, ownerID string) (bool, error) {
	if actor.UID == "" {
		return false, nil
	}
	if ownerID == actor.UID {
		return true, nil
	}

	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM shares WHERE sharer_id = ? AND sharee_email = ? AND status = ?`,
		ownerID, actor.Email, model.ShareStatusAccepted,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking visibility: %w", err)
	}
	return count > 0, nil
}

// visibleOwnerIDs returns the actor's own ID plus all accepted sharers, or
// nil for an unauthenticated actor.
func visibleOwnerIDs(ctx context.Context, db *sql.DB, actor model.Actor) ([]string, error) {
	if actor.UID == "" {
		return nil, nil
	}
	ids, err := AcceptedSharerIDs(ctx, db, actor.Email)
	if err != nil {
		return nil, err
	}
	return append(ids, actor.UID), nil
}

// placeholders returns "?, ?, ..." for n parameters.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func ownerArgs(ids []string) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

// ListVisibleItems returns all items the actor may read, ordered by name.
func ListVisibleItems(ctx context.Context, db *sql.DB, actor model.Actor) ([]model.Item, error) {
	owners, err := visibleOwnerIDs(ctx, db, actor)
	if err != nil || len(owners) == 0 {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		`SELECT id, name, description, location, image_mime, owner_id, created_at, updated_at
		 FROM items WHERE owner_id IN (`+placeholders(len(owners))+`) ORDER BY name`,
		ownerArgs(owners)...,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		var item model.Item
		var description, imageMime sql.NullString
		if err := rows.Scan(&item.ID, &item.Name, &description, &item.Location,
			&imageMime, &item.OwnerID, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		item.Description = description.String
		item.ImageMime = imageMime.String
		items = append(items, item)
	}
	return items, rows.Err()
}

// ListVisibleLocations returns all locations the actor may read, ordered by name.
func ListVisibleLocations(ctx context.Context, db *sql.DB, actor model.Actor) ([]model.Location, error) {
	owners, err := visibleOwnerIDs(ctx, db, actor)
	if err != nil || len(owners) == 0 {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		`SELECT id, name, owner_id, created_at
		 FROM locations WHERE owner_id IN (`+placeholders(len(owners))+`) ORDER BY name`,
		ownerArgs(owners)...,
	)
	if err != nil {
		return nil, fmt.Errorf("listing locations: %w", err)
	}
	defer rows.Close()

	var locations []model.Location
	for rows.Next() {
		var l model.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.OwnerID, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning location: %w", err)
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}

// ListVisibleActivity returns the activity log entries the actor may read,
// newest first.
func ListVisibleActivity(ctx context.Context, db *sql.DB, actor model.Actor) ([]model.LogEntry, error) {
	owners, err := visibleOwnerIDs(ctx, db, actor)
	if err != nil || len(owners) == 0 {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		`SELECT id, item_id, item_name, action, from_location, to_location, details, logged_by, logged_at, owner_id
		 FROM activity WHERE owner_id IN (`+placeholders(len(owners))+`) ORDER BY logged_at DESC, id`,
		ownerArgs(owners)...,
	)
	if err != nil {
		return nil, fmt.Errorf("listing activity: %w", err)
	}
	defer rows.Close()

	return scanLogEntries(rows)
}

// ListItemActivity returns one item's history, newest first, restricted to
// the partitions visible to the actor.
func ListItemActivity(ctx context.Context, db *sql.DB, actor model.Actor, itemID string) ([]model.LogEntry, error) {
	owners, err := visibleOwnerIDs(ctx, db, actor)
	if err != nil || len(owners) == 0 {
		return nil, err
	}

	args := append([]any{itemID}, ownerArgs(owners)...)
	rows, err := db.QueryContext(ctx,
		`SELECT id, item_id, item_name, action, from_location, to_location, details, logged_by, logged_at, owner_id
		 FROM activity WHERE item_id = ? AND owner_id IN (`+placeholders(len(owners))+`)
		 ORDER BY logged_at DESC, id`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("listing item activity: %w", err)
	}
	defer rows.Close()

	return scanLogEntries(rows)
}
