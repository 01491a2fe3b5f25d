package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// InternalHandler handles the API-key-gated maintenance requests
type InternalHandler struct {
	BaseHandler
	cache CacheRefresher
}

// NewInternalHandler creates a new internal handler
func NewInternalHandler(cache CacheRefresher, logger *zap.Logger) *InternalHandler {
	return &InternalHandler{
		BaseHandler: BaseHandler{Logger: logger},
		cache:       cache,
	}
}

// RegisterRoutes registers the internal routes; the caller mounts them
// behind the API key gate
func (h *InternalHandler) RegisterRoutes(r chi.Router) {
	r.Post("/refresh", h.Refresh)
}

// Refresh handles POST /internal/refresh
// @Summary Force a full cache refresh
// @Description Refetches every collection using the privileged API key; the refresh carries no user, so the per-user slices (saved items, progress) are cleared until the next login
// @Tags internal
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /internal/refresh [post]
func (h *InternalHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.cache.RefreshData(r.Context(), "")
	h.Logger.Info("cache refresh forced via internal surface")
	h.RespondJSON(w, http.StatusOK, map[string]string{"status": "refreshed"})
}
