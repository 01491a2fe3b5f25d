package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/islamizindagi/backend/internal/middleware"
	"github.com/islamizindagi/backend/internal/models"
	"github.com/islamizindagi/backend/internal/remote"
	"github.com/islamizindagi/backend/internal/session"
	"go.uber.org/zap"
)

// SessionStore is the interface that wraps the session store operations.
type SessionStore interface {
	// Login exchanges credentials for a session and resolves the user's role.
	//
	// "email" and "password" are the user's credentials.
	//
	// Returns the authenticated user, the remote session secret, and an error if any.
	Login(ctx context.Context, email, password string) (*models.AuthUser, string, error)
	// Register creates an account, opens a session, and sends the verification email.
	//
	// "email", "password" and "name" describe the new account.
	//
	// Returns the authenticated user, the remote session secret, and an error if any.
	Register(ctx context.Context, email, password, name string) (*models.AuthUser, string, error)
	// Logout invalidates the remote session; remote failures are swallowed.
	Logout(ctx context.Context)
	// UpdateProfile applies name and/or password changes to the current identity.
	UpdateProfile(ctx context.Context, req *models.UpdateProfileRequest) error
	// SendVerificationEmail (re)sends the verification email for the current identity.
	SendVerificationEmail(ctx context.Context) error
	// ConfirmVerification confirms an email verification token.
	ConfirmVerification(ctx context.Context, userID, secret string) error
	// Current resolves the identity and role for the session in the context.
	Current(ctx context.Context) (*models.AuthUser, error)
}

// CacheRefresher is the interface that wraps the entity cache refresh.
type CacheRefresher interface {
	// RefreshData replaces every in-memory collection; per-user
	// collections are loaded for userID or cleared when it is empty.
	RefreshData(ctx context.Context, userID string)
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	sessionStore SessionStore
	cache        CacheRefresher
	cookies      sessions.Store
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	sessionStore SessionStore,
	cache CacheRefresher,
	cookies sessions.Store,
	logger *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		BaseHandler:  BaseHandler{Logger: logger},
		sessionStore: sessionStore,
		cache:        cache,
		cookies:      cookies,
	}
}

// RegisterRoutes registers the public auth routes
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
	})
	// Thin proxies to the identity contract
	r.Post("/verify-email", h.VerifyEmail)
}

// RegisterProtectedRoutes registers routes requiring an authenticated session
func (h *AuthHandler) RegisterProtectedRoutes(r chi.Router) {
	r.Post("/auth/logout", h.Logout)
	r.Get("/auth/me", h.Me)
	r.Put("/auth/profile", h.UpdateProfile)
	r.Post("/resend-verification", h.ResendVerification)
}

// Register handles POST /auth/register
// @Summary Register a new user
// @Description Create an account, open a session, and send the verification email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration data"
// @Success 201 {object} models.AuthUser
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 409 {object} map[string]string "Account already exists"
// @Failure 429 {object} map[string]string "Rate limited"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		h.RespondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, secret, err := h.sessionStore.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		h.Logger.Error("failed to register user", zap.Error(err))
		h.RespondError(w, identityErrorStatus(err), err.Error())
		return
	}

	if err := h.saveSessionCookie(w, r, secret); err != nil {
		h.Logger.Error("failed to save session cookie", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to establish session")
		return
	}

	// Authentication identity changed: reload every collection,
	// including the new user's saved items and progress
	h.cache.RefreshData(remote.WithSessionSecret(r.Context(), secret), user.ID)

	h.RespondJSON(w, http.StatusCreated, user)
}

// Login handles POST /auth/login
// @Summary Log in
// @Description Exchange credentials for a session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.AuthUser
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		h.RespondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, secret, err := h.sessionStore.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.Logger.Error("failed to log in user", zap.Error(err))
		h.RespondError(w, identityErrorStatus(err), err.Error())
		return
	}

	if err := h.saveSessionCookie(w, r, secret); err != nil {
		h.Logger.Error("failed to save session cookie", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to establish session")
		return
	}

	h.cache.RefreshData(remote.WithSessionSecret(r.Context(), secret), user.ID)

	h.RespondJSON(w, http.StatusOK, user)
}

// Logout handles POST /auth/logout
// @Summary Log out
// @Description Clear the local session unconditionally; the remote session delete is best-effort
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	// Best-effort remote invalidation; local identity clears regardless
	h.sessionStore.Logout(r.Context())

	cookie, _ := h.cookies.Get(r, middleware.SessionName)
	cookie.Options.MaxAge = -1
	if err := cookie.Save(r, w); err != nil {
		h.Logger.Error("failed to clear session cookie", zap.Error(err))
	}

	// Per-user collections are cleared on logout
	h.cache.RefreshData(r.Context(), "")

	h.RespondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Me handles GET /auth/me
// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} models.AuthUser
// @Failure 401 {object} map[string]string
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	h.RespondJSON(w, http.StatusOK, user)
}

// UpdateProfile handles PUT /auth/profile
// @Summary Update profile
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.UpdateProfileRequest true "Profile changes"
// @Success 200 {object} models.AuthUser
// @Failure 400 {object} map[string]string
// @Router /auth/profile [put]
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" && req.Password == "" {
		h.RespondError(w, http.StatusBadRequest, "nothing to update")
		return
	}

	if err := h.sessionStore.UpdateProfile(r.Context(), &req); err != nil {
		h.Logger.Error("failed to update profile", zap.Error(err))
		h.RespondError(w, identityErrorStatus(err), err.Error())
		return
	}

	user, err := h.sessionStore.Current(r.Context())
	if err != nil {
		h.Logger.Error("failed to resolve identity after profile update", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "profile updated but identity refresh failed")
		return
	}
	h.RespondJSON(w, http.StatusOK, user)
}

// VerifyEmail handles POST /verify-email
// @Summary Confirm an email verification token
// @Description Direct proxy to the identity service's verification confirmation
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /verify-email [post]
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"userId"`
		Secret string `json:"secret"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" || req.Secret == "" {
		h.RespondError(w, http.StatusBadRequest, "userId and secret are required")
		return
	}

	if err := h.sessionStore.ConfirmVerification(r.Context(), req.UserID, req.Secret); err != nil {
		h.Logger.Error("failed to confirm verification", zap.Error(err))
		h.RespondError(w, identityErrorStatus(err), err.Error())
		return
	}
	h.RespondJSON(w, http.StatusOK, map[string]string{"status": "verified"})
}

// ResendVerification handles POST /resend-verification
// @Summary Resend the verification email
// @Description Direct proxy to the identity service's verification creation
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /resend-verification [post]
func (h *AuthHandler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionStore.SendVerificationEmail(r.Context()); err != nil {
		h.Logger.Error("failed to resend verification email", zap.Error(err))
		h.RespondError(w, identityErrorStatus(err), err.Error())
		return
	}
	h.RespondJSON(w, http.StatusOK, map[string]string{"status": "verification email sent"})
}

// saveSessionCookie stores the remote session secret in the browser cookie
func (h *AuthHandler) saveSessionCookie(w http.ResponseWriter, r *http.Request, secret string) error {
	cookie, _ := h.cookies.Get(r, middleware.SessionName)
	cookie.Values[middleware.SessionSecretField] = secret
	cookie.Options.HttpOnly = true
	cookie.Options.SameSite = http.SameSiteLaxMode
	cookie.Options.Path = "/"
	return cookie.Save(r, w)
}

// identityErrorStatus maps the categorized identity errors onto HTTP statuses
func identityErrorStatus(err error) int {
	switch {
	case errors.Is(err, session.ErrDuplicateAccount):
		return http.StatusConflict
	case errors.Is(err, session.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, session.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, session.ErrServiceMisconfigured):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
