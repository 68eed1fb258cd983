package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/zalar/inventar/internal/model"
)

// CreateMovement moves an item the actor owns to a new location and records
// a Moved log entry. This is the only place an item's location changes
// outside a direct edit. Unlike the other mutators, a movement whose log
// append fails is reported as a failure, since the log entry is the
// movement record.
func CreateMovement(ctx context.Context, db *sql.DB, actor model.Actor, itemID, toLocation string) (*model.LogEntry, error) {
	item, err := GetItem(ctx, db, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, model.ErrNotFound
	}
	if err := assertOwnership(item.OwnerID, actor); err != nil {
		return nil, err
	}

	from := item.Location

	_, err = db.ExecContext(ctx,
		`UPDATE items SET location = ?, updated_at = ? WHERE id = ?`,
		toLocation, time.Now().UTC(), itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("moving item: %w", err)
	}

	entry, err := appendLog(ctx, db, actor, model.LogEntry{
		ItemID:       itemID,
		ItemName:     item.Name,
		Action:       model.ActionMoved,
		FromLocation: from,
		ToLocation:   toLocation,
		Details:      fmt.Sprintf("Moved from %s to %s", from, toLocation),
	})
	if err != nil {
		return nil, fmt.Errorf("recording movement: %w", err)
	}

	return entry, nil
}
