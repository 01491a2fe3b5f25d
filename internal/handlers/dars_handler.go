package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/islamizindagi/backend/internal/middleware"
	"github.com/islamizindagi/backend/internal/models"
	"github.com/islamizindagi/backend/internal/sanitize"
	"github.com/islamizindagi/backend/internal/views"
	"go.uber.org/zap"
)

// DarsCache is the interface that wraps the lesson slices of the entity
// cache together with the progress mutations.
type DarsCache interface {
	// Dars returns a copy of the cached dars slice.
	Dars() []models.Dars
	// Series returns a copy of the cached series slice.
	Series() []models.Series
	// Progress returns a copy of the cached progress slice, most recently
	// visited first.
	Progress() []models.DarsProgress
	// TouchDarsProgress upserts the (user, dars) visit record.
	TouchDarsProgress(ctx context.Context, userID, darsID string) (*models.DarsProgress, error)
	// SetDarsCompleted upserts the (user, dars) record with the completion flag.
	SetDarsCompleted(ctx context.Context, userID, darsID string, completed bool) (*models.DarsProgress, error)
}

// DarsHandler handles lesson and series HTTP requests
type DarsHandler struct {
	BaseHandler
	cache DarsCache
}

// NewDarsHandler creates a new dars handler
func NewDarsHandler(cache DarsCache, logger *zap.Logger) *DarsHandler {
	return &DarsHandler{
		BaseHandler: BaseHandler{Logger: logger},
		cache:       cache,
	}
}

// RegisterRoutes registers the public dars routes
func (h *DarsHandler) RegisterRoutes(r chi.Router) {
	r.Route("/dars", func(r chi.Router) {
		r.Get("/", h.ListDars)
		r.Get("/random", h.RandomDars)
		r.Get("/{id}", h.GetDars)
	})
	r.Route("/series", func(r chi.Router) {
		r.Get("/", h.ListSeries)
		r.Get("/{id}", h.GetSeries)
	})
}

// RegisterProtectedRoutes registers the progress routes requiring a session
func (h *DarsHandler) RegisterProtectedRoutes(r chi.Router) {
	r.Post("/dars/{id}/visit", h.VisitDars)
	r.Put("/dars/{id}/completed", h.SetCompleted)
	r.Get("/recently-visited", h.RecentlyVisited)
}

// ListDars handles GET /dars
// @Summary List dars
// @Description List lessons, optionally narrowed by search term and category; standalone lessons and series members are returned as separate sections
// @Tags dars
// @Produce json
// @Param search query string false "Case-insensitive search over title and description"
// @Param category query string false "Category filter; 'all' or empty means no filter"
// @Success 200 {object} map[string]interface{}
// @Router /dars [get]
func (h *DarsHandler) ListDars(w http.ResponseWriter, r *http.Request) {
	dars := h.cache.Dars()

	if term := r.URL.Query().Get("search"); term != "" {
		dars = views.SearchDars(dars, term)
	}
	dars = views.FilterDarsByCategory(dars, r.URL.Query().Get("category"))

	h.RespondJSON(w, http.StatusOK, map[string]any{
		"standalone": views.StandaloneDars(dars),
		"all":        dars,
	})
}

// RandomDars handles GET /dars/random
// @Summary Random dars
// @Description Return n distinct random lessons, reshuffled on every call
// @Tags dars
// @Produce json
// @Param count query int false "Number of lessons" default(3)
// @Success 200 {array} models.Dars
// @Router /dars/random [get]
func (h *DarsHandler) RandomDars(w http.ResponseWriter, r *http.Request) {
	count := queryInt(r, "count", 3)
	h.RespondJSON(w, http.StatusOK, views.RandomDars(h.cache.Dars(), count))
}

// GetDars handles GET /dars/{id}
// @Summary Get a dars
// @Tags dars
// @Produce json
// @Param id path string true "Dars ID"
// @Success 200 {object} models.Dars
// @Failure 404 {object} map[string]string
// @Router /dars/{id} [get]
func (h *DarsHandler) GetDars(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	for _, d := range h.cache.Dars() {
		if d.ID == id {
			// The remote store sometimes round-trips HTML strings with an
			// extra surrounding quote pair
			d.Content = sanitize.TrimStoredQuotes(d.Content)
			h.RespondJSON(w, http.StatusOK, d)
			return
		}
	}
	h.RespondError(w, http.StatusNotFound, "dars not found")
}

// ListSeries handles GET /series
// @Summary List series
// @Tags series
// @Produce json
// @Success 200 {array} models.Series
// @Router /series [get]
func (h *DarsHandler) ListSeries(w http.ResponseWriter, r *http.Request) {
	h.RespondJSON(w, http.StatusOK, h.cache.Series())
}

// GetSeries handles GET /series/{id}
// @Summary Get a series with its member lessons
// @Description Member lessons are ordered by their position in the series
// @Tags series
// @Produce json
// @Param id path string true "Series ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /series/{id} [get]
func (h *DarsHandler) GetSeries(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	for _, s := range h.cache.Series() {
		if s.ID == id {
			h.RespondJSON(w, http.StatusOK, map[string]any{
				"series": s,
				"dars":   views.DarsInSeries(h.cache.Dars(), id),
			})
			return
		}
	}
	h.RespondError(w, http.StatusNotFound, "series not found")
}

// VisitDars handles POST /dars/{id}/visit
// @Summary Record a lesson visit
// @Description Upserts the visit timestamp; emits no notification as visits are navigation, not user actions
// @Tags dars
// @Produce json
// @Param id path string true "Dars ID"
// @Success 200 {object} models.DarsProgress
// @Failure 401 {object} map[string]string
// @Router /dars/{id}/visit [post]
func (h *DarsHandler) VisitDars(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	progress, err := h.cache.TouchDarsProgress(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		h.Logger.Error("failed to record dars visit", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to record visit")
		return
	}
	h.RespondJSON(w, http.StatusOK, progress)
}

// SetCompleted handles PUT /dars/{id}/completed
// @Summary Mark a lesson completed or not
// @Tags dars
// @Accept json
// @Produce json
// @Param id path string true "Dars ID"
// @Success 200 {object} models.DarsProgress
// @Failure 401 {object} map[string]string
// @Router /dars/{id}/completed [put]
func (h *DarsHandler) SetCompleted(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req struct {
		Completed bool `json:"completed"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	progress, err := h.cache.SetDarsCompleted(r.Context(), user.ID, chi.URLParam(r, "id"), req.Completed)
	if err != nil {
		h.Logger.Error("failed to set dars completion", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to update completion")
		return
	}
	h.RespondJSON(w, http.StatusOK, progress)
}

// RecentlyVisited handles GET /recently-visited
// @Summary Recently visited lessons
// @Description Joins the user's visit order onto the lesson list, most recent first; visits to since-deleted lessons are skipped
// @Tags dars
// @Produce json
// @Param count query int false "Maximum number of lessons" default(5)
// @Success 200 {array} models.Dars
// @Failure 401 {object} map[string]string
// @Router /recently-visited [get]
func (h *DarsHandler) RecentlyVisited(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUser(r.Context()); !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	count := queryInt(r, "count", 5)
	h.RespondJSON(w, http.StatusOK, views.RecentlyVisited(h.cache.Progress(), h.cache.Dars(), count))
}

// queryInt reads an integer query parameter, falling back on absence or garbage
func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
