package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Open opens the inventory database, creating the file on first run.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",    // readers stay unblocked during photo writes
		"PRAGMA busy_timeout=5000",   // wait out the single writer instead of erroring
		"PRAGMA foreign_keys=ON",     // owner_id references are enforced
		"PRAGMA synchronous=NORMAL",  // durable enough under WAL
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	return db, nil
}
