package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zalar/inventar/internal/model"
)

// Location mutations write no activity log entries: the log is
// item-scoped, keyed by item_id and item_name.

// CreateLocation creates a new location owned by the actor.
func CreateLocation(ctx context.Context, db *sql.DB, actor model.Actor, name string) (*model.Location, error) {
	if actor.UID == "" {
		return nil, model.ErrUnauthenticated
	}

	id := uuid.NewString()
	now := time.Now().UTC()

	_, err := db.ExecContext(ctx,
		`INSERT INTO locations (id, name, owner_id, created_at) VALUES (?, ?, ?, ?)`,
		id, name, actor.UID, now,
	)
	if err != nil {
		return nil, fmt.Errorf("creating location: %w", err)
	}

	return GetLocation(ctx, db, id)
}

// GetLocation returns a location by ID.
func GetLocation(ctx context.Context, db *sql.DB, id string) (*model.Location, error) {
	l := &model.Location{}
	err := db.QueryRowContext(ctx,
		`SELECT id, name, owner_id, created_at FROM locations WHERE id = ?`, id,
	).Scan(&l.ID, &l.Name, &l.OwnerID, &l.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting location: %w", err)
	}
	return l, nil
}

// UpdateLocation renames a location the actor owns. Items referencing the
// old name keep it; there is no referential integrity between the two.
func UpdateLocation(ctx context.Context, db *sql.DB, actor model.Actor, id, name string) (*model.Location, error) {
	l, err := GetLocation(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, model.ErrNotFound
	}
	if err := assertOwnership(l.OwnerID, actor); err != nil {
		return nil, err
	}

	_, err = db.ExecContext(ctx,
		`UPDATE locations SET name = ? WHERE id = ?`, name, id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating location: %w", err)
	}

	l.Name = name
	return l, nil
}

// DeleteLocation removes a location the actor owns. Items still naming the
// location are not cascaded.
func DeleteLocation(ctx context.Context, db *sql.DB, actor model.Actor, id string) error {
	l, err := GetLocation(ctx, db, id)
	if err != nil {
		return err
	}
	if l == nil {
		return model.ErrNotFound
	}
	if err := assertOwnership(l.OwnerID, actor); err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, `DELETE FROM locations WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting location: %w", err)
	}
	return nil
}
