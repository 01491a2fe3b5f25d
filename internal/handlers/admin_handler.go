package handlers

import (
	"context"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/islamizindagi/backend/internal/models"
	"go.uber.org/zap"
)

// maxUploadMemory bounds the in-memory part of multipart parsing
const maxUploadMemory = 32 << 20

// AdminCache is the interface that wraps every admin mutation of the
// entity cache.
type AdminCache interface {
	CreateDars(ctx context.Context, req *models.CreateDarsRequest) (*models.Dars, error)
	UpdateDars(ctx context.Context, id string, req *models.UpdateDarsRequest) (*models.Dars, error)
	DeleteDars(ctx context.Context, id string) error

	CreateSeries(ctx context.Context, req *models.CreateSeriesRequest) (*models.Series, error)
	UpdateSeries(ctx context.Context, id string, req *models.UpdateSeriesRequest) (*models.Series, error)
	DeleteSeries(ctx context.Context, id string) error

	UpdateQuestion(ctx context.Context, id string, req *models.UpdateQuestionRequest) (*models.Question, error)
	DeleteQuestion(ctx context.Context, id string) error
	AddAnswer(ctx context.Context, questionID string, req *models.CreateAnswerRequest) (*models.Question, error)
	UpdateAnswer(ctx context.Context, questionID, answerID string, req *models.UpdateAnswerRequest) (*models.Question, error)
	DeleteAnswer(ctx context.Context, questionID, answerID string) (*models.Question, error)

	CreateEvent(ctx context.Context, req *models.CreateEventRequest) (*models.Event, error)
	UpdateEvent(ctx context.Context, id string, req *models.UpdateEventRequest) (*models.Event, error)
	DeleteEvent(ctx context.Context, id string) error

	CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	CreateEventCategory(ctx context.Context, req *models.CreateEventCategoryRequest) (*models.EventCategory, error)
	DeleteEventCategory(ctx context.Context, id string) error
}

// AdminHandler handles the role-gated content management requests
type AdminHandler struct {
	BaseHandler
	cache AdminCache
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(cache AdminCache, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		BaseHandler: BaseHandler{Logger: logger},
		cache:       cache,
	}
}

// RegisterRoutes registers the admin routes; the caller mounts them
// behind the admin role gate
func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Route("/dars", func(r chi.Router) {
		r.Post("/", h.CreateDars)
		r.Put("/{id}", h.UpdateDars)
		r.Delete("/{id}", h.DeleteDars)
	})
	r.Route("/series", func(r chi.Router) {
		r.Post("/", h.CreateSeries)
		r.Put("/{id}", h.UpdateSeries)
		r.Delete("/{id}", h.DeleteSeries)
	})
	r.Route("/questions", func(r chi.Router) {
		r.Put("/{id}", h.UpdateQuestion)
		r.Delete("/{id}", h.DeleteQuestion)
		r.Post("/{id}/answers", h.AddAnswer)
		r.Put("/{id}/answers/{answerId}", h.UpdateAnswer)
		r.Delete("/{id}/answers/{answerId}", h.DeleteAnswer)
	})
	r.Route("/events", func(r chi.Router) {
		r.Post("/", h.CreateEvent)
		r.Put("/{id}", h.UpdateEvent)
		r.Delete("/{id}", h.DeleteEvent)
	})
	r.Route("/categories", func(r chi.Router) {
		r.Post("/", h.CreateCategory)
		r.Delete("/{id}", h.DeleteCategory)
	})
	r.Route("/event-categories", func(r chi.Router) {
		r.Post("/", h.CreateEventCategory)
		r.Delete("/{id}", h.DeleteEventCategory)
	})
}

// CreateDars handles POST /admin/dars
// @Summary Create a dars
// @Description Multipart body; files under the "attachments" field are uploaded strictly one after another before the record is written
// @Tags admin
// @Accept mpfd
// @Produce json
// @Success 201 {object} models.Dars
// @Failure 400 {object} map[string]string
// @Router /admin/dars [post]
func (h *AdminHandler) CreateDars(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	defer closeMultipart(r)

	req := &models.CreateDarsRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Content:     r.FormValue("content"),
		Teacher:     r.FormValue("teacher"),
		Duration:    r.FormValue("duration"),
		Category:    r.FormValue("category"),
		Type:        models.DarsType(r.FormValue("type")),
		VideoURL:    r.FormValue("videoUrl"),
		Image:       r.FormValue("image"),
		SeriesID:    r.FormValue("seriesId"),
		SeriesOrder: formInt(r, "seriesOrder"),
	}

	uploads, closers, err := formUploads(r, "attachments")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid attachment")
		return
	}
	defer closeAll(closers)
	req.Attachments = uploads

	dars, err := h.cache.CreateDars(r.Context(), req)
	if err != nil {
		h.Logger.Error("failed to create dars", zap.Error(err))
		h.RespondError(w, mutationErrorStatus(err), "failed to create dars")
		return
	}
	h.RespondJSON(w, http.StatusCreated, dars)
}

// UpdateDars handles PUT /admin/dars/{id}
// @Summary Update a dars
// @Description Full replace of the application fields; attachments is the already-stored list to keep
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Dars ID"
// @Success 200 {object} models.Dars
// @Failure 404 {object} map[string]string
// @Router /admin/dars/{id} [put]
func (h *AdminHandler) UpdateDars(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string              `json:"title"`
		Description string              `json:"description"`
		Content     string              `json:"content"`
		Teacher     string              `json:"teacher"`
		Duration    string              `json:"duration"`
		Category    string              `json:"category"`
		Type        models.DarsType     `json:"type"`
		VideoURL    string              `json:"videoUrl"`
		Image       string              `json:"image"`
		SeriesID    string              `json:"seriesId"`
		SeriesOrder int                 `json:"seriesOrder"`
		Attachments []models.Attachment `json:"attachments"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	dars, err := h.cache.UpdateDars(r.Context(), chi.URLParam(r, "id"), &models.UpdateDarsRequest{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		Teacher:     req.Teacher,
		Duration:    req.Duration,
		Category:    req.Category,
		Type:        req.Type,
		VideoURL:    req.VideoURL,
		Image:       req.Image,
		SeriesID:    req.SeriesID,
		SeriesOrder: req.SeriesOrder,
		Attachments: req.Attachments,
	})
	if err != nil {
		h.Logger.Error("failed to update dars", zap.Error(err))
		h.RespondError(w, mutationErrorStatus(err), "failed to update dars")
		return
	}
	h.RespondJSON(w, http.StatusOK, dars)
}

// DeleteDars handles DELETE /admin/dars/{id}
// @Summary Delete a dars
// @Tags admin
// @Produce json
// @Param id path string true "Dars ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/dars/{id} [delete]
func (h *AdminHandler) DeleteDars(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.cache.DeleteDars, "dars")
}

// CreateSeries handles POST /admin/series
// @Summary Create a series
// @Tags admin
// @Accept json
// @Produce json
// @Success 201 {object} models.Series
// @Failure 400 {object} map[string]string
// @Router /admin/series [post]
func (h *AdminHandler) CreateSeries(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Image       string `json:"image"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	series, err := h.cache.CreateSeries(r.Context(), &models.CreateSeriesRequest{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
	})
	if err != nil {
		h.Logger.Error("failed to create series", zap.Error(err))
		h.RespondError(w, mutationErrorStatus(err), "failed to create series")
		return
	}
	h.RespondJSON(w, http.StatusCreated, series)
}

// UpdateSeries handles PUT /admin/series/{id}
// @Summary Update a series
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Series ID"
// @Success 200 {object} models.Series
// @Failure 404 {object} map[string]string
// @Router /admin/series/{id} [put]
func (h *AdminHandler) UpdateSeries(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Image       string `json:"image"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	series, err := h.cache.UpdateSeries(r.Context(), chi.URLParam(r, "id"), &models.UpdateSeriesRequest{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
	})
	if err != nil {
		h.Logger.Error("failed to update series", zap.Error(err))
		h.RespondError(w, mutationErrorStatus(err), "failed to update series")
		return
	}
	h.RespondJSON(w, http.StatusOK, series)
}

// DeleteSeries handles DELETE /admin/series/{id}
// @Summary Delete a series
// @Description Member lessons keep their seriesId; deletion does not cascade
// @Tags admin
// @Produce json
// @Param id path string true "Series ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/series/{id} [delete]
func (h *AdminHandler) DeleteSeries(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.cache.DeleteSeries, "series")
}

// UpdateQuestion handles PUT /admin/questions/{id}
// @Summary Update a question
// @Description Replaces the question fields; the embedded answer list is preserved
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Question ID"
// @Success 200 {object} models.Question
// @Failure 404 {object} map[string]string
// @Router /admin/questions/{id} [put]
func (h *AdminHandler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string              `json:"title"`
		Content     string              `json:"content"`
		Author      string              `json:"author"`
		Category    string              `json:"category"`
		Attachments []models.Attachment `json:"attachments"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	question, err := h.cache.UpdateQuestion(r.Context(), chi.URLParam(r, "id"), &models.UpdateQuestionRequest{
		Title:       req.Title,
		Content:     req.Content,
		Author:      req.Author,
		Category:    req.Category,
		Attachments: req.Attachments,
	})
	if err != nil {
		h.Logger.Error("failed to update question", zap.Error(err))
		h.RespondError(w, mutationErrorStatus(err), "failed to update question")
		return
	}
	h.RespondJSON(w, http.StatusOK, question)
}

// DeleteQuestion handles DELETE /admin/questions/{id}
// @Summary Delete a question and its embedded answers
// @Tags admin
// @Produce json
// @Param id path string true "Question ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/questions/{id} [delete]
func (h *AdminHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.cache.DeleteQuestion, "question")
}

// AddAnswer handles POST /admin/questions/{id}/answers
// @Summary Add an answer to a question
// @Description By convention one answer per question is official; the flag is not enforced
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Question ID"
// @Success 200 {object} models.Question
// @Failure 404 {object} map[string]string
// @Router /admin/questions/{id}/answers [post]
func (h *AdminHandler) AddAnswer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content    string `json:"content"`
		Author     string `json:"author"`
		IsOfficial bool   `json:"isOfficial"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	question, err := h.cache.AddAnswer(r.Context(), chi.URLParam(r, "id"), &models.CreateAnswerRequest{
		Content:    req.Content,
		Author:     req.Author,
		IsOfficial: req.IsOfficial,
	})
	if err != nil {
		h.Logger.Error("failed to add answer", zap.Error(err))
		h.RespondError(w, mutationErrorStatus(err), "failed to add answer")
		return
	}
	h.RespondJSON(w, http.StatusOK, question)
}

// UpdateAnswer handles PUT /admin/questions/{id}/answers/{answerId}
// @Summary Update an answer
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Question ID"
// @Param answerId path string true "Answer ID"
// @Success 200 {object} models.Question
// @Failure 404 {object} map[string]string
// @Router /admin/questions/{id}/answers/{answerId} [put]
func (h *AdminHandler) UpdateAnswer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content    string `json:"content"`
		Author     string `json:"author"`
		IsOfficial bool   `json:"isOfficial"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	question, err := h.cache.UpdateAnswer(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "answerId"), &models.UpdateAnswerRequest{
		Content:    req.Content,
		Author:     req.Author,
		IsOfficial: req.IsOfficial,
	})
	if err != nil {
		h.Logger.Error("failed to update answer", zap.Error(err))
		h.RespondError(w, mutationErrorStatus(err), "failed to update answer")
		return
	}
	h.RespondJSON(w, http.StatusOK, question)
}

// DeleteAnswer handles DELETE /admin/questions/{id}/answers/{answerId}
// @Summary Delete an answer
// @Tags admin
// @Produce json
// @Param id path string true "Question ID"
// @Param answerId path string true "Answer ID"
// @Success 200 {object} models.Question
// @Failure 404 {object} map[string]string
// @Router /admin/questions/{id}/answers/{answerId} [delete]
func (h *AdminHandler) DeleteAnswer(w http.ResponseWriter, r *http.Request) {
	question, err := h.cache.DeleteAnswer(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "answerId"))
	if err != nil {
		h.Logger.Error("failed to delete answer", zap.Error(err))
		h.RespondError(w, mutationErrorStatus(err), "failed to delete answer")
		return
	}
	h.RespondJSON(w, http.StatusOK, question)
}

// CreateEvent handles POST /admin/events
// @Summary Create an event
// @Tags admin
// @Accept json
// @Produce json
// @Success 201 {object} models.Event
// @Failure 400 {object} map[string]string
// @Router /admin/events [post]
func (h *AdminHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	req, err := decodeEventBody(r)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	event, err := h.cache.CreateEvent(r.Context(), (*models.CreateEventRequest)(req))
	if err != nil {
		h.Logger.Error("failed to create event", zap.Error(err))
		h.RespondError(w, mutationErrorStatus(err), "failed to create event")
		return
	}
	h.RespondJSON(w, http.StatusCreated, event)
}

// UpdateEvent handles PUT /admin/events/{id}
// @Summary Update an event
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} models.Event
// @Failure 404 {object} map[string]string
// @Router /admin/events/{id} [put]
func (h *AdminHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	req, err := decodeEventBody(r)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	event, err := h.cache.UpdateEvent(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.Logger.Error("failed to update event", zap.Error(err))
		h.RespondError(w, mutationErrorStatus(err), "failed to update event")
		return
	}
	h.RespondJSON(w, http.StatusOK, event)
}

// DeleteEvent handles DELETE /admin/events/{id}
// @Summary Delete an event
// @Tags admin
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/events/{id} [delete]
func (h *AdminHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.cache.DeleteEvent, "event")
}

// CreateCategory handles POST /admin/categories
// @Summary Create a category
// @Tags admin
// @Accept json
// @Produce json
// @Success 201 {object} models.Category
// @Failure 400 {object} map[string]string
// @Router /admin/categories [post]
func (h *AdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := h.cache.CreateCategory(r.Context(), &models.CreateCategoryRequest{Name: req.Name})
	if err != nil {
		h.Logger.Error("failed to create category", zap.Error(err))
		h.RespondError(w, mutationErrorStatus(err), "failed to create category")
		return
	}
	h.RespondJSON(w, http.StatusCreated, category)
}

// DeleteCategory handles DELETE /admin/categories/{id}
// @Summary Delete a category
// @Description Content tagged with the category keeps its tag; deletion does not cascade
// @Tags admin
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/categories/{id} [delete]
func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.cache.DeleteCategory, "category")
}

// CreateEventCategory handles POST /admin/event-categories
// @Summary Create an event category
// @Tags admin
// @Accept json
// @Produce json
// @Success 201 {object} models.EventCategory
// @Failure 400 {object} map[string]string
// @Router /admin/event-categories [post]
func (h *AdminHandler) CreateEventCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Color       string `json:"color"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := h.cache.CreateEventCategory(r.Context(), &models.CreateEventCategoryRequest{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		h.Logger.Error("failed to create event category", zap.Error(err))
		h.RespondError(w, mutationErrorStatus(err), "failed to create event category")
		return
	}
	h.RespondJSON(w, http.StatusCreated, category)
}

// DeleteEventCategory handles DELETE /admin/event-categories/{id}
// @Summary Delete an event category
// @Tags admin
// @Produce json
// @Param id path string true "Event category ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/event-categories/{id} [delete]
func (h *AdminHandler) DeleteEventCategory(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.cache.DeleteEventCategory, "event category")
}

func (h *AdminHandler) deleteByID(
	w http.ResponseWriter,
	r *http.Request,
	fn func(ctx context.Context, id string) error,
	entity string,
) {
	if err := fn(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.Logger.Error("failed to delete "+entity, zap.Error(err))
		h.RespondError(w, mutationErrorStatus(err), "failed to delete "+entity)
		return
	}
	h.RespondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// decodeEventBody decodes the shared create/update event body
func decodeEventBody(r *http.Request) (*models.UpdateEventRequest, error) {
	var req struct {
		Title       string    `json:"title"`
		Description string    `json:"description"`
		ImageURL    string    `json:"imageUrl"`
		EventDate   time.Time `json:"eventDate"`
		Location    string    `json:"location"`
		Organizer   string    `json:"organizer"`
		Category    string    `json:"category"`
	}
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}
	return &models.UpdateEventRequest{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		EventDate:   req.EventDate,
		Location:    req.Location,
		Organizer:   req.Organizer,
		Category:    req.Category,
	}, nil
}

// formUploads opens every file under the given multipart field as an
// attachment upload. The returned closers must be closed by the caller
// after the mutation completes.
func formUploads(r *http.Request, field string) ([]models.AttachmentUpload, []multipart.File, error) {
	if r.MultipartForm == nil {
		return nil, nil, nil
	}

	var uploads []models.AttachmentUpload
	var closers []multipart.File
	for _, header := range r.MultipartForm.File[field] {
		file, err := header.Open()
		if err != nil {
			closeAll(closers)
			return nil, nil, err
		}
		closers = append(closers, file)
		uploads = append(uploads, models.AttachmentUpload{
			Name:   header.Filename,
			Reader: file,
		})
	}
	return uploads, closers, nil
}

func closeAll(closers []multipart.File) {
	for _, c := range closers {
		c.Close()
	}
}

func closeMultipart(r *http.Request) {
	if r.MultipartForm != nil {
		r.MultipartForm.RemoveAll()
	}
}

// formInt reads an integer form value, zero on absence or garbage
func formInt(r *http.Request, name string) int {
	n, err := strconv.Atoi(r.FormValue(name))
	if err != nil {
		return 0
	}
	return n
}
