package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/zalar/inventar/internal/model"
	"github.com/zalar/inventar/internal/store"
)

// MovementsHandler handles item movement endpoints.
type MovementsHandler struct {
	DB *sql.DB
}

type createMovementRequest struct {
	ItemID     string `json:"item_id"`
	ToLocation string `json:"to_location"`
}

// Create handles POST /api/movements. It rewrites the item's location and
// returns the Moved log entry that records the movement.
func (h *MovementsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createMovementRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.ItemID == "" || req.ToLocation == "" {
		jsonError(w, http.StatusBadRequest, "item_id and to_location required")
		return
	}

	entry, err := store.CreateMovement(r.Context(), h.DB, actorFrom(r.Context()), req.ItemID, req.ToLocation)
	if err != nil {
		coreError(w, err, "failed to create movement")
		return
	}

	slog.Info("item moved", "item", entry.ItemName, "from", entry.FromLocation, "to", entry.ToLocation)
	jsonResponse(w, http.StatusCreated, entry)
}

// ActivityHandler handles the activity log endpoint.
type ActivityHandler struct {
	DB *sql.DB
}

// List handles GET /api/activity, newest entries first.
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := store.ListVisibleActivity(r.Context(), h.DB, actorFrom(r.Context()))
	if err != nil {
		coreError(w, err, "failed to list activity")
		return
	}
	if entries == nil {
		entries = []model.LogEntry{}
	}
	jsonResponse(w, http.StatusOK, entries)
}
