package api

import (
	"database/sql"
	"net/http"

	"github.com/zalar/inventar/internal/model"
	"github.com/zalar/inventar/internal/store"
)

// LocationsHandler handles location CRUD endpoints.
type LocationsHandler struct {
	DB *sql.DB
}

type locationRequest struct {
	Name string `json:"name"`
}

// List handles GET /api/locations.
func (h *LocationsHandler) List(w http.ResponseWriter, r *http.Request) {
	locations, err := store.ListVisibleLocations(r.Context(), h.DB, actorFrom(r.Context()))
	if err != nil {
		coreError(w, err, "failed to list locations")
		return
	}
	if locations == nil {
		locations = []model.Location{}
	}
	jsonResponse(w, http.StatusOK, locations)
}

// Create handles POST /api/locations.
func (h *LocationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req locationRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" {
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}

	location, err := store.CreateLocation(r.Context(), h.DB, actorFrom(r.Context()), req.Name)
	if err != nil {
		coreError(w, err, "failed to create location")
		return
	}

	jsonResponse(w, http.StatusCreated, location)
}

// Update handles PUT /api/locations/{id}.
func (h *LocationsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req locationRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" {
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}

	location, err := store.UpdateLocation(r.Context(), h.DB, actorFrom(r.Context()), r.PathValue("id"), req.Name)
	if err != nil {
		coreError(w, err, "failed to update location")
		return
	}

	jsonResponse(w, http.StatusOK, location)
}

// Delete handles DELETE /api/locations/{id}.
func (h *LocationsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := store.DeleteLocation(r.Context(), h.DB, actorFrom(r.Context()), r.PathValue("id")); err != nil {
		coreError(w, err, "failed to delete location")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "location deleted"})
}
