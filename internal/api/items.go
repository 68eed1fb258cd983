package api

import (
	"database/sql"
	"net/http"

	"github.com/zalar/inventar/internal/imaging"
	"github.com/zalar/inventar/internal/model"
	"github.com/zalar/inventar/internal/store"
)

// ItemsHandler handles item CRUD endpoints.
type ItemsHandler struct {
	DB *sql.DB
}

type createItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

// withImageURL fills the derived image URL on items that carry a photo.
func withImageURL(item *model.Item) *model.Item {
	if item != nil && item.ImageMime != "" {
		item.ImageURL = "/api/items/" + item.ID + "/image"
	}
	return item
}

// List handles GET /api/items. The result is the union of the actor's own
// items and those of every owner with an accepted share naming the actor.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := store.ListVisibleItems(r.Context(), h.DB, actorFrom(r.Context()))
	if err != nil {
		coreError(w, err, "failed to list items")
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	for i := range items {
		withImageURL(&items[i])
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" {
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}

	item, err := store.CreateItem(r.Context(), h.DB, actorFrom(r.Context()), req.Name, req.Description, req.Location)
	if err != nil {
		coreError(w, err, "failed to create item")
		return
	}

	jsonResponse(w, http.StatusCreated, withImageURL(item))
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r.Context())

	item, err := store.GetItem(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		coreError(w, err, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	visible, err := store.Visible(r.Context(), h.DB, actor, item.OwnerID)
	if err != nil {
		coreError(w, err, "failed to get item")
		return
	}
	if !visible {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	jsonResponse(w, http.StatusOK, withImageURL(item))
}

// Update handles PUT /api/items/{id}. The body is a partial merge; absent
// fields stay untouched.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch model.ItemPatch
	if err := decodeJSON(r, &patch); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if patch.Name != nil && *patch.Name == "" {
		jsonError(w, http.StatusBadRequest, "name cannot be empty")
		return
	}

	item, err := store.UpdateItem(r.Context(), h.DB, actorFrom(r.Context()), r.PathValue("id"), patch)
	if err != nil {
		coreError(w, err, "failed to update item")
		return
	}

	jsonResponse(w, http.StatusOK, withImageURL(item))
}

// Delete handles DELETE /api/items/{id}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := store.DeleteItem(r.Context(), h.DB, actorFrom(r.Context()), r.PathValue("id")); err != nil {
		coreError(w, err, "failed to delete item")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "item deleted"})
}

// UploadImage handles PUT /api/items/{id}/image.
func (h *ItemsHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	// Limit to 5 MB.
	r.Body = http.MaxBytesReader(w, r.Body, 5<<20)

	if err := r.ParseMultipartForm(5 << 20); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer file.Close()

	data, mime, err := imaging.Normalize(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := store.SetItemImage(r.Context(), h.DB, actorFrom(r.Context()), r.PathValue("id"), data, mime); err != nil {
		coreError(w, err, "failed to save image")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "image uploaded"})
}

// GetImage handles GET /api/items/{id}/image.
func (h *ItemsHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	data, mime, err := store.GetItemImage(r.Context(), h.DB, actorFrom(r.Context()), r.PathValue("id"))
	if err != nil {
		coreError(w, err, "failed to get image")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no image")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.Write(data)
}

// GetHistory handles GET /api/items/{id}/history.
func (h *ItemsHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	history, err := store.ListItemActivity(r.Context(), h.DB, actorFrom(r.Context()), r.PathValue("id"))
	if err != nil {
		coreError(w, err, "failed to get item history")
		return
	}
	if history == nil {
		history = []model.LogEntry{}
	}
	jsonResponse(w, http.StatusOK, history)
}
