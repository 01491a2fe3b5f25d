package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/islamizindagi/backend/internal/middleware"
	"github.com/islamizindagi/backend/internal/models"
	"github.com/islamizindagi/backend/internal/views"
	"go.uber.org/zap"
)

// SavedCache is the interface that wraps the per-user saved item slice
// of the entity cache together with the toggle operations.
type SavedCache interface {
	// SavedItems returns a copy of the cached saved items slice.
	SavedItems() []models.SavedItem
	// ToggleFavorite flips the favorite marker; returns whether the item
	// is saved after the call.
	ToggleFavorite(ctx context.Context, userID, itemID string, itemType models.ItemType) (bool, error)
	// ToggleReadLater flips the read-later marker; returns whether the
	// item is saved after the call.
	ToggleReadLater(ctx context.Context, userID, itemID string, itemType models.ItemType) (bool, error)
}

// SavedHandler handles favorite and read-later HTTP requests
type SavedHandler struct {
	BaseHandler
	cache SavedCache
}

// NewSavedHandler creates a new saved items handler
func NewSavedHandler(cache SavedCache, logger *zap.Logger) *SavedHandler {
	return &SavedHandler{
		BaseHandler: BaseHandler{Logger: logger},
		cache:       cache,
	}
}

// RegisterProtectedRoutes registers the saved item routes; all require a session
func (h *SavedHandler) RegisterProtectedRoutes(r chi.Router) {
	r.Route("/saved", func(r chi.Router) {
		r.Get("/favorites", h.ListFavorites)
		r.Get("/read-later", h.ListReadLater)
		r.Post("/favorites/toggle", h.ToggleFavorite)
		r.Post("/read-later/toggle", h.ToggleReadLater)
	})
}

// ListFavorites handles GET /saved/favorites
// @Summary List the user's favorites
// @Tags saved
// @Produce json
// @Success 200 {array} models.SavedItem
// @Failure 401 {object} map[string]string
// @Router /saved/favorites [get]
func (h *SavedHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	h.listSaved(w, r, models.ListTypeFavorite)
}

// ListReadLater handles GET /saved/read-later
// @Summary List the user's read-later items
// @Tags saved
// @Produce json
// @Success 200 {array} models.SavedItem
// @Failure 401 {object} map[string]string
// @Router /saved/read-later [get]
func (h *SavedHandler) ListReadLater(w http.ResponseWriter, r *http.Request) {
	h.listSaved(w, r, models.ListTypeReadLater)
}

func (h *SavedHandler) listSaved(w http.ResponseWriter, r *http.Request, listType models.ListType) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	h.RespondJSON(w, http.StatusOK, views.SavedFor(h.cache.SavedItems(), user.ID, listType))
}

// ToggleFavorite handles POST /saved/favorites/toggle
// @Summary Toggle a favorite marker
// @Description Saves the item when absent, removes it when present; responds with the post-toggle state
// @Tags saved
// @Accept json
// @Produce json
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /saved/favorites/toggle [post]
func (h *SavedHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.cache.ToggleFavorite)
}

// ToggleReadLater handles POST /saved/read-later/toggle
// @Summary Toggle a read-later marker
// @Description Saves the item when absent, removes it when present; responds with the post-toggle state
// @Tags saved
// @Accept json
// @Produce json
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /saved/read-later/toggle [post]
func (h *SavedHandler) ToggleReadLater(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.cache.ToggleReadLater)
}

func (h *SavedHandler) toggle(
	w http.ResponseWriter,
	r *http.Request,
	fn func(ctx context.Context, userID, itemID string, itemType models.ItemType) (bool, error),
) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req struct {
		ItemID   string          `json:"itemId"`
		ItemType models.ItemType `json:"itemType"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ItemID == "" || req.ItemType == "" {
		h.RespondError(w, http.StatusBadRequest, "itemId and itemType are required")
		return
	}

	saved, err := fn(r.Context(), user.ID, req.ItemID, req.ItemType)
	if err != nil {
		h.Logger.Error("failed to toggle saved item", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to toggle saved item")
		return
	}
	h.RespondJSON(w, http.StatusOK, map[string]bool{"saved": saved})
}
