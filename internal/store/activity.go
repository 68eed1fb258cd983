package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zalar/inventar/internal/model"
)

// logTimeLayout is a fixed-width UTC layout so that lexicographic ordering
// of stored logged_at values matches chronological ordering.
const logTimeLayout = "2006-01-02 15:04:05.000000000-07:00"

// appendLog writes one attributed entry to the append-only activity log.
// The entry's ID, LoggedBy, LoggedAt and OwnerID are stamped here, from the
// actor and the server clock, never from the caller. There are deliberately
// no update or delete functions for this collection.
//
// A log append is a separate statement from the mutation it describes; a
// failed append does not roll the mutation back.
func appendLog(ctx context.Context, db *sql.DB, actor model.Actor, entry model.LogEntry) (*model.LogEntry, error) {
	if actor.UID == "" {
		return nil, model.ErrUnauthenticated
	}

	entry.ID = uuid.NewString()
	entry.LoggedBy = actor.LogName()
	entry.LoggedAt = time.Now().UTC()
	entry.OwnerID = actor.UID

	_, err := db.ExecContext(ctx,
		`INSERT INTO activity (id, item_id, item_name, action, from_location, to_location, details, logged_by, logged_at, owner_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.ItemID, entry.ItemName, entry.Action,
		nullIfEmpty(entry.FromLocation), nullIfEmpty(entry.ToLocation), nullIfEmpty(entry.Details),
		entry.LoggedBy, entry.LoggedAt.Format(logTimeLayout), entry.OwnerID,
	)
	if err != nil {
		return nil, fmt.Errorf("recording activity: %w", err)
	}

	return &entry, nil
}

// nullIfEmpty maps "" to NULL for optional text columns.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func scanLogEntries(rows *sql.Rows) ([]model.LogEntry, error) {
	var entries []model.LogEntry
	for rows.Next() {
		var e model.LogEntry
		var from, to, details sql.NullString
		if err := rows.Scan(&e.ID, &e.ItemID, &e.ItemName, &e.Action,
			&from, &to, &details, &e.LoggedBy, &e.LoggedAt, &e.OwnerID); err != nil {
			return nil, fmt.Errorf("scanning log entry: %w", err)
		}
		e.FromLocation = from.String
		e.ToLocation = to.String
		e.Details = details.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
