package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema. Each collection the application exposes
// (items, locations, activity, shares) is a table of generated string keys
// partitioned by owner_id; activity is append-only and intentionally has no
// foreign key on item_id so log entries outlive deleted items.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            TEXT PRIMARY KEY,
    email         TEXT NOT NULL,
    display_name  TEXT,
    photo_url     TEXT,
    password_hash TEXT NOT NULL,
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    deleted_at    DATETIME
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_active
    ON users(email) WHERE deleted_at IS NULL;

CREATE TABLE IF NOT EXISTS items (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    description TEXT,
    location    TEXT NOT NULL DEFAULT '',
    image       BLOB,
    image_mime  TEXT,
    owner_id    TEXT NOT NULL REFERENCES users(id),
    created_at  DATETIME NOT NULL,
    updated_at  DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_items_owner ON items(owner_id);

CREATE TABLE IF NOT EXISTS locations (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    owner_id   TEXT NOT NULL REFERENCES users(id),
    created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_locations_owner ON locations(owner_id);

CREATE TABLE IF NOT EXISTS activity (
    id            TEXT PRIMARY KEY,
    item_id       TEXT NOT NULL,
    item_name     TEXT NOT NULL,
    action        TEXT NOT NULL CHECK (action IN ('Created', 'Updated', 'Moved', 'Deleted')),
    from_location TEXT,
    to_location   TEXT,
    details       TEXT,
    logged_by     TEXT NOT NULL,
    logged_at     DATETIME NOT NULL,
    owner_id      TEXT NOT NULL REFERENCES users(id)
);

CREATE INDEX IF NOT EXISTS idx_activity_owner ON activity(owner_id);
CREATE INDEX IF NOT EXISTS idx_activity_item ON activity(item_id);

CREATE TABLE IF NOT EXISTS shares (
    id           TEXT PRIMARY KEY,
    sharer_id    TEXT NOT NULL REFERENCES users(id),
    sharer_email TEXT NOT NULL,
    sharee_email TEXT NOT NULL,
    status       TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'accepted')),
    created_at   DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_shares_sharer ON shares(sharer_id);
CREATE INDEX IF NOT EXISTS idx_shares_sharee ON shares(sharee_email);

CREATE UNIQUE INDEX IF NOT EXISTS idx_shares_pair
    ON shares(sharer_id, sharee_email);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
