package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/zalar/inventar/internal/model"
	"github.com/zalar/inventar/internal/store"
)

// SharesHandler handles share lifecycle endpoints.
type SharesHandler struct {
	DB *sql.DB
}

type createShareRequest struct {
	Email string `json:"email"`
}

// ListMine handles GET /api/shares (shares the actor created, any status).
func (h *SharesHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	shares, err := store.ListMyShares(r.Context(), h.DB, actorFrom(r.Context()))
	if err != nil {
		coreError(w, err, "failed to list shares")
		return
	}
	if shares == nil {
		shares = []model.Share{}
	}
	jsonResponse(w, http.StatusOK, shares)
}

// ListPending handles GET /api/shares/pending (invitations awaiting the actor).
func (h *SharesHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	shares, err := store.ListPendingShares(r.Context(), h.DB, actorFrom(r.Context()))
	if err != nil {
		coreError(w, err, "failed to list pending shares")
		return
	}
	if shares == nil {
		shares = []model.Share{}
	}
	jsonResponse(w, http.StatusOK, shares)
}

// Create handles POST /api/shares.
func (h *SharesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createShareRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := model.ValidateEmail(req.Email); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	actor := actorFrom(r.Context())
	share, err := store.CreateShare(r.Context(), h.DB, actor, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNotFound):
			jsonError(w, http.StatusNotFound, "no registered user with that email")
		case errors.Is(err, model.ErrUnauthenticated):
			jsonError(w, http.StatusUnauthorized, "not authenticated")
		default:
			// Validation failures like self-shares and duplicates.
			jsonError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	slog.Info("share invitation created", "sharer", share.SharerEmail, "sharee", share.ShareeEmail)
	jsonResponse(w, http.StatusCreated, share)
}

// Accept handles POST /api/shares/{id}/accept.
func (h *SharesHandler) Accept(w http.ResponseWriter, r *http.Request) {
	if err := store.AcceptShare(r.Context(), h.DB, actorFrom(r.Context()), r.PathValue("id")); err != nil {
		coreError(w, err, "failed to accept share")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "share accepted"})
}

// Decline handles POST /api/shares/{id}/decline.
func (h *SharesHandler) Decline(w http.ResponseWriter, r *http.Request) {
	if err := store.DeclineShare(r.Context(), h.DB, actorFrom(r.Context()), r.PathValue("id")); err != nil {
		coreError(w, err, "failed to decline share")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "share declined"})
}

// Revoke handles DELETE /api/shares/{id}.
func (h *SharesHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	if err := store.RevokeShare(r.Context(), h.DB, actorFrom(r.Context()), r.PathValue("id")); err != nil {
		coreError(w, err, "failed to revoke share")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "share revoked"})
}
