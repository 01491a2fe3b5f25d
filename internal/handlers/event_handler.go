package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/islamizindagi/backend/internal/models"
	"github.com/islamizindagi/backend/internal/views"
	"go.uber.org/zap"
)

// EventCache is the interface that wraps the event and category slices
// of the entity cache.
type EventCache interface {
	// Events returns a copy of the cached events slice, soonest first.
	Events() []models.Event
	// Categories returns a copy of the cached dars/question categories.
	Categories() []models.Category
	// EventCategories returns a copy of the cached event categories.
	EventCategories() []models.EventCategory
}

// EventHandler handles event and category HTTP requests
type EventHandler struct {
	BaseHandler
	cache EventCache
}

// NewEventHandler creates a new event handler
func NewEventHandler(cache EventCache, logger *zap.Logger) *EventHandler {
	return &EventHandler{
		BaseHandler: BaseHandler{Logger: logger},
		cache:       cache,
	}
}

// RegisterRoutes registers the public event routes
func (h *EventHandler) RegisterRoutes(r chi.Router) {
	r.Route("/events", func(r chi.Router) {
		r.Get("/", h.ListEvents)
		r.Get("/{id}", h.GetEvent)
	})
	r.Get("/categories", h.ListCategories)
	r.Get("/event-categories", h.ListEventCategories)
}

// ListEvents handles GET /events
// @Summary List events
// @Description List events soonest first, optionally narrowed by category and date window; upcoming=true drops past events
// @Tags events
// @Produce json
// @Param category query string false "Category filter; 'all' or empty means no filter"
// @Param upcoming query bool false "Only events today or later"
// @Param days query int false "Only events within this many days from now"
// @Success 200 {array} models.Event
// @Router /events [get]
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events := views.FilterEventsByCategory(h.cache.Events(), r.URL.Query().Get("category"))

	now := time.Now()
	if r.URL.Query().Get("upcoming") == "true" {
		events = views.UpcomingEvents(events, now)
	}
	if days := queryInt(r, "days", 0); days > 0 {
		events = views.EventsWithinDays(events, now, days)
	}

	h.RespondJSON(w, http.StatusOK, events)
}

// GetEvent handles GET /events/{id}
// @Summary Get an event
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} models.Event
// @Failure 404 {object} map[string]string
// @Router /events/{id} [get]
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	for _, e := range h.cache.Events() {
		if e.ID == id {
			h.RespondJSON(w, http.StatusOK, e)
			return
		}
	}
	h.RespondError(w, http.StatusNotFound, "event not found")
}

// ListCategories handles GET /categories
// @Summary List dars/question categories
// @Tags categories
// @Produce json
// @Success 200 {array} models.Category
// @Router /categories [get]
func (h *EventHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	h.RespondJSON(w, http.StatusOK, h.cache.Categories())
}

// ListEventCategories handles GET /event-categories
// @Summary List event categories
// @Tags categories
// @Produce json
// @Success 200 {array} models.EventCategory
// @Router /event-categories [get]
func (h *EventHandler) ListEventCategories(w http.ResponseWriter, r *http.Request) {
	h.RespondJSON(w, http.StatusOK, h.cache.EventCategories())
}
