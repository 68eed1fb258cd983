package db

import (
	"database/sql"
	"fmt"
)

// migrations is a list of SQL statements applied in order after schema creation.
// Each migration must be idempotent. Append new migrations at the end.
var migrations = []string{
	// Migration 1: Deduplicate share invitations. A sharer may hold at most one
	// share row (pending or accepted) per sharee email; re-inviting after a
	// decline or revoke is fine because those delete the row.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_shares_pair
	     ON shares(sharer_id, sharee_email)`,
}

// Migrate runs the database schema migrations.
func Migrate(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}

	return nil
}
