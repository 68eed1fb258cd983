package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zalar/inventar/internal/model"
)

// CreateUser registers a new user.
func CreateUser(ctx context.Context, db *sql.DB, email, displayName, passwordHash string) (*model.User, error) {
	id := uuid.NewString()

	_, err := db.ExecContext(ctx,
		`INSERT INTO users (id, email, display_name, password_hash) VALUES (?, ?, ?, ?)`,
		id, email, displayName, passwordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return GetUser(ctx, db, id)
}

// GetUser returns a user by ID.
func GetUser(ctx context.Context, db *sql.DB, id string) (*model.User, error) {
	u := &model.User{}
	var displayName, photoURL sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, email, display_name, photo_url, password_hash, created_at, deleted_at
		 FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Email, &displayName, &photoURL, &u.PasswordHash, &u.CreatedAt, &u.DeletedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	u.DisplayName = displayName.String
	u.PhotoURL = photoURL.String
	return u, nil
}

// GetUserByEmail returns a user by email. Deactivated rows are returned too
// so callers can distinguish "never existed" from "deactivated", but when a
// freed address has been re-registered the active row wins.
func GetUserByEmail(ctx context.Context, db *sql.DB, email string) (*model.User, error) {
	u := &model.User{}
	var displayName, photoURL sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, email, display_name, photo_url, password_hash, created_at, deleted_at
		 FROM users WHERE email = ?
		 ORDER BY (deleted_at IS NULL) DESC, created_at DESC LIMIT 1`, email,
	).Scan(&u.ID, &u.Email, &displayName, &photoURL, &u.PasswordHash, &u.CreatedAt, &u.DeletedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by email: %w", err)
	}
	u.DisplayName = displayName.String
	u.PhotoURL = photoURL.String
	return u, nil
}

// UpdateUserProfile updates a user's display name and photo URL.
func UpdateUserProfile(ctx context.Context, db *sql.DB, id, displayName, photoURL string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE users SET display_name = ?, photo_url = ? WHERE id = ? AND deleted_at IS NULL`,
		displayName, photoURL, id,
	)
	if err != nil {
		return fmt.Errorf("updating user profile: %w", err)
	}
	return nil
}

// DeactivateUser soft-deletes an account. The row stays so past activity
// attribution and share records remain resolvable; the partial unique index
// on email frees the address for a fresh registration. Login and sharing
// treat a deactivated account as nonexistent.
func DeactivateUser(ctx context.Context, db *sql.DB, id string) error {
	res, err := db.ExecContext(ctx,
		`UPDATE users SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
		time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("deactivating user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}

	// Shares the account created or received no longer grant anything.
	if _, err := db.ExecContext(ctx,
		`DELETE FROM shares WHERE sharer_id = ? OR sharee_email = (SELECT email FROM users WHERE id = ?)`,
		id, id,
	); err != nil {
		return fmt.Errorf("removing shares of deactivated user: %w", err)
	}

	return nil
}

// UpdateUserPassword updates a user's password hash.
func UpdateUserPassword(ctx context.Context, db *sql.DB, id, passwordHash string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE users SET password_hash = ? WHERE id = ? AND deleted_at IS NULL`,
		passwordHash, id,
	)
	if err != nil {
		return fmt.Errorf("updating user password: %w", err)
	}
	return nil
}
