package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zalar/inventar/internal/model"
)

// CreateShare invites the user registered under shareeEmail to read the
// actor's records. The share starts pending and grants nothing until
// accepted. The sharee must be a registered user, keeping invitations
// deliverable; unknown emails fail with ErrNotFound.
func CreateShare(ctx context.Context, db *sql.DB, actor model.Actor, shareeEmail string) (*model.Share, error) {
	if actor.UID == "" || actor.Email == "" {
		return nil, model.ErrUnauthenticated
	}
	if shareeEmail == actor.Email {
		return nil, fmt.Errorf("cannot share with yourself")
	}

	sharee, err := GetUserByEmail(ctx, db, shareeEmail)
	if err != nil {
		return nil, err
	}
	if sharee == nil || sharee.DeletedAt != nil {
		return nil, model.ErrNotFound
	}

	existing, err := getShareByPair(ctx, db, actor.UID, shareeEmail)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("already shared with %s", shareeEmail)
	}

	share := &model.Share{
		ID:          uuid.NewString(),
		SharerID:    actor.UID,
		SharerEmail: actor.Email,
		ShareeEmail: shareeEmail,
		Status:      model.ShareStatusPending,
		CreatedAt:   time.Now().UTC(),
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO shares (id, sharer_id, sharer_email, sharee_email, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		share.ID, share.SharerID, share.SharerEmail, share.ShareeEmail, share.Status, share.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating share: %w", err)
	}

	return share, nil
}

// GetShare returns a share by ID.
func GetShare(ctx context.Context, db *sql.DB, id string) (*model.Share, error) {
	s := &model.Share{}
	err := db.QueryRowContext(ctx,
		`SELECT id, sharer_id, sharer_email, sharee_email, status, created_at
		 FROM shares WHERE id = ?`, id,
	).Scan(&s.ID, &s.SharerID, &s.SharerEmail, &s.ShareeEmail, &s.Status, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting share: %w", err)
	}
	return s, nil
}

func getShareByPair(ctx context.Context, db *sql.DB, sharerID, shareeEmail string) (*model.Share, error) {
	s := &model.Share{}
	err := db.QueryRowContext(ctx,
		`SELECT id, sharer_id, sharer_email, sharee_email, status, created_at
		 FROM shares WHERE sharer_id = ? AND sharee_email = ?`, sharerID, shareeEmail,
	).Scan(&s.ID, &s.SharerID, &s.SharerEmail, &s.ShareeEmail, &s.Status, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting share by pair: %w", err)
	}
	return s, nil
}

// ListMyShares returns the shares the actor created, any status.
func ListMyShares(ctx context.Context, db *sql.DB, actor model.Actor) ([]model.Share, error) {
	return listShares(ctx, db,
		`SELECT id, sharer_id, sharer_email, sharee_email, status, created_at
		 FROM shares WHERE sharer_id = ? ORDER BY created_at DESC`, actor.UID)
}

// ListPendingShares returns invitations addressed to the actor that are
// still awaiting a response.
func ListPendingShares(ctx context.Context, db *sql.DB, actor model.Actor) ([]model.Share, error) {
	return listShares(ctx, db,
		`SELECT id, sharer_id, sharer_email, sharee_email, status, created_at
		 FROM shares WHERE sharee_email = ? AND status = ? ORDER BY created_at DESC`,
		actor.Email, model.ShareStatusPending)
}

func listShares(ctx context.Context, db *sql.DB, query string, args ...any) ([]model.Share, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing shares: %w", err)
	}
	defer rows.Close()

	var shares []model.Share
	for rows.Next() {
		var s model.Share
		if err := rows.Scan(&s.ID, &s.SharerID, &s.SharerEmail, &s.ShareeEmail, &s.Status, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning share: %w", err)
		}
		shares = append(shares, s)
	}
	return shares, rows.Err()
}

// AcceptShare transitions a pending share to accepted. Only the user the
// invitation names as sharee may accept.
func AcceptShare(ctx context.Context, db *sql.DB, actor model.Actor, id string) error {
	share, err := GetShare(ctx, db, id)
	if err != nil {
		return err
	}
	if share == nil {
		return model.ErrNotFound
	}
	if actor.Email == "" || share.ShareeEmail != actor.Email {
		return model.ErrPermissionDenied
	}

	_, err = db.ExecContext(ctx,
		`UPDATE shares SET status = ? WHERE id = ?`, model.ShareStatusAccepted, id,
	)
	if err != nil {
		return fmt.Errorf("accepting share: %w", err)
	}
	return nil
}

// DeclineShare deletes a share the actor was invited to. Declining removes
// the record entirely; there is no retained rejected state.
func DeclineShare(ctx context.Context, db *sql.DB, actor model.Actor, id string) error {
	share, err := GetShare(ctx, db, id)
	if err != nil {
		return err
	}
	if share == nil {
		return model.ErrNotFound
	}
	if actor.Email == "" || share.ShareeEmail != actor.Email {
		return model.ErrPermissionDenied
	}

	return deleteShare(ctx, db, id)
}

// RevokeShare deletes a share the actor created, pending or accepted.
func RevokeShare(ctx context.Context, db *sql.DB, actor model.Actor, id string) error {
	share, err := GetShare(ctx, db, id)
	if err != nil {
		return err
	}
	if share == nil {
		return model.ErrNotFound
	}
	if actor.UID == "" || share.SharerID != actor.UID {
		return model.ErrPermissionDenied
	}

	return deleteShare(ctx, db, id)
}

func deleteShare(ctx context.Context, db *sql.DB, id string) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM shares WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting share: %w", err)
	}
	return nil
}
