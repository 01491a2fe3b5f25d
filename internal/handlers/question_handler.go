package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/islamizindagi/backend/internal/middleware"
	"github.com/islamizindagi/backend/internal/models"
	"github.com/islamizindagi/backend/internal/sanitize"
	"github.com/islamizindagi/backend/internal/views"
	"go.uber.org/zap"
)

// QuestionCache is the interface that wraps the question slice of the
// entity cache together with question submission.
type QuestionCache interface {
	// Questions returns a copy of the cached questions slice.
	Questions() []models.Question
	// CreateQuestion validates, writes remotely, and mirrors the new question.
	CreateQuestion(ctx context.Context, req *models.CreateQuestionRequest) (*models.Question, error)
}

// QuestionHandler handles question HTTP requests
type QuestionHandler struct {
	BaseHandler
	cache QuestionCache
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(cache QuestionCache, logger *zap.Logger) *QuestionHandler {
	return &QuestionHandler{
		BaseHandler: BaseHandler{Logger: logger},
		cache:       cache,
	}
}

// RegisterRoutes registers the public question routes
func (h *QuestionHandler) RegisterRoutes(r chi.Router) {
	r.Route("/questions", func(r chi.Router) {
		r.Get("/", h.ListQuestions)
		r.Get("/{id}", h.GetQuestion)
	})
}

// RegisterProtectedRoutes registers question routes requiring a verified session
func (h *QuestionHandler) RegisterProtectedRoutes(r chi.Router) {
	r.Post("/questions", h.CreateQuestion)
}

// ListQuestions handles GET /questions
// @Summary List questions
// @Description List questions, optionally narrowed by search term, category and recency window
// @Tags questions
// @Produce json
// @Param search query string false "Case-insensitive search over title and tag-stripped content"
// @Param category query string false "Category filter; 'all' or empty means no filter"
// @Param days query int false "Only questions asked within this many days"
// @Success 200 {array} models.Question
// @Router /questions [get]
func (h *QuestionHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	questions := h.cache.Questions()

	if term := r.URL.Query().Get("search"); term != "" {
		questions = views.SearchQuestions(questions, term)
	}
	questions = views.FilterQuestionsByCategory(questions, r.URL.Query().Get("category"))
	if days := queryInt(r, "days", 0); days > 0 {
		questions = views.QuestionsWithinDays(questions, time.Now(), days)
	}

	h.RespondJSON(w, http.StatusOK, questions)
}

// GetQuestion handles GET /questions/{id}
// @Summary Get a question with its answers
// @Tags questions
// @Produce json
// @Param id path string true "Question ID"
// @Success 200 {object} models.Question
// @Failure 404 {object} map[string]string
// @Router /questions/{id} [get]
func (h *QuestionHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	for _, q := range h.cache.Questions() {
		if q.ID == id {
			// The remote store sometimes round-trips HTML strings with an
			// extra surrounding quote pair
			q.Content = sanitize.TrimStoredQuotes(q.Content)
			// Copy before trimming: the answers slice is shared with the cache
			answers := append([]models.Answer(nil), q.Answers...)
			for i := range answers {
				answers[i].Content = sanitize.TrimStoredQuotes(answers[i].Content)
			}
			q.Answers = answers
			h.RespondJSON(w, http.StatusOK, q)
			return
		}
	}
	h.RespondError(w, http.StatusNotFound, "question not found")
}

// CreateQuestion handles POST /questions
// @Summary Submit a question
// @Description The author is always the authenticated user's display name
// @Tags questions
// @Accept json
// @Produce json
// @Success 201 {object} models.Question
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /questions [post]
func (h *QuestionHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req struct {
		Title    string `json:"title"`
		Content  string `json:"content"`
		Category string `json:"category"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	question, err := h.cache.CreateQuestion(r.Context(), &models.CreateQuestionRequest{
		Title:    req.Title,
		Content:  req.Content,
		Author:   user.Name,
		Category: req.Category,
	})
	if err != nil {
		h.Logger.Error("failed to create question", zap.Error(err))
		h.RespondError(w, mutationErrorStatus(err), "failed to submit question")
		return
	}
	h.RespondJSON(w, http.StatusCreated, question)
}
