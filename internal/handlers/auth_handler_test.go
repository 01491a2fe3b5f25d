package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/islamizindagi/backend/internal/middleware"
	"github.com/islamizindagi/backend/internal/models"
	"github.com/islamizindagi/backend/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockSessionStore struct {
	user     *models.AuthUser
	secret   string
	loginErr error

	logoutCalls int
	verified    map[string]string
}

func (m *mockSessionStore) Login(ctx context.Context, email, password string) (*models.AuthUser, string, error) {
	if m.loginErr != nil {
		return nil, "", m.loginErr
	}
	return m.user, m.secret, nil
}

func (m *mockSessionStore) Register(ctx context.Context, email, password, name string) (*models.AuthUser, string, error) {
	if m.loginErr != nil {
		return nil, "", m.loginErr
	}
	return m.user, m.secret, nil
}

func (m *mockSessionStore) Logout(ctx context.Context) {
	m.logoutCalls++
}

func (m *mockSessionStore) UpdateProfile(ctx context.Context, req *models.UpdateProfileRequest) error {
	return nil
}

func (m *mockSessionStore) SendVerificationEmail(ctx context.Context) error { return nil }

func (m *mockSessionStore) ConfirmVerification(ctx context.Context, userID, secret string) error {
	if m.verified == nil {
		m.verified = make(map[string]string)
	}
	m.verified[userID] = secret
	return nil
}

func (m *mockSessionStore) Current(ctx context.Context) (*models.AuthUser, error) {
	return m.user, nil
}

type mockRefresher struct {
	calls   int
	userIDs []string
}

func (m *mockRefresher) RefreshData(ctx context.Context, userID string) {
	m.calls++
	m.userIDs = append(m.userIDs, userID)
}

func newAuthRouter(store *mockSessionStore, cache *mockRefresher) chi.Router {
	h := NewAuthHandler(store, cache, sessions.NewCookieStore([]byte("test-secret")), zap.NewNop())
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	h.RegisterProtectedRoutes(r)
	return r
}

func TestLogin(t *testing.T) {
	t.Run("sets the session cookie and reloads the cache", func(t *testing.T) {
		store := &mockSessionStore{
			user:   &models.AuthUser{ID: "u1", Email: "a@example.com", Role: models.RoleUser},
			secret: "remote-secret",
		}
		cache := &mockRefresher{}

		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"a@example.com","password":"pw"}`))
		rec := httptest.NewRecorder()
		newAuthRouter(store, cache).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var sawCookie bool
		for _, c := range rec.Result().Cookies() {
			if c.Name == middleware.SessionName {
				sawCookie = true
			}
		}
		assert.True(t, sawCookie, "expected the session cookie to be set")

		require.Equal(t, 1, cache.calls)
		assert.Equal(t, []string{"u1"}, cache.userIDs)
	})

	t.Run("maps invalid credentials to 401", func(t *testing.T) {
		store := &mockSessionStore{loginErr: session.ErrInvalidCredentials}
		cache := &mockRefresher{}

		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"a@example.com","password":"bad"}`))
		rec := httptest.NewRecorder()
		newAuthRouter(store, cache).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Zero(t, cache.calls)
	})

	t.Run("maps rate limiting to 429", func(t *testing.T) {
		store := &mockSessionStore{loginErr: session.ErrRateLimited}

		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"a@example.com","password":"pw"}`))
		rec := httptest.NewRecorder()
		newAuthRouter(store, &mockRefresher{}).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	})

	t.Run("rejects missing credentials", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"a@example.com"}`))
		rec := httptest.NewRecorder()
		newAuthRouter(&mockSessionStore{}, &mockRefresher{}).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRegister_MapsDuplicateTo409(t *testing.T) {
	store := &mockSessionStore{loginErr: session.ErrDuplicateAccount}

	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{"email":"a@example.com","password":"pw","name":"Aisha"}`))
	rec := httptest.NewRecorder()
	newAuthRouter(store, &mockRefresher{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLogout_ClearsPerUserCollections(t *testing.T) {
	store := &mockSessionStore{}
	cache := &mockRefresher{}

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	newAuthRouter(store, cache).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, store.logoutCalls)
	require.Equal(t, 1, cache.calls)
	assert.Equal(t, []string{""}, cache.userIDs)
}

func TestVerifyEmail(t *testing.T) {
	store := &mockSessionStore{}

	req := httptest.NewRequest(http.MethodPost, "/verify-email", strings.NewReader(`{"userId":"u1","secret":"tok"}`))
	rec := httptest.NewRecorder()
	newAuthRouter(store, &mockRefresher{}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "tok", store.verified["u1"])

	req = httptest.NewRequest(http.MethodPost, "/verify-email", strings.NewReader(`{"userId":"u1"}`))
	rec = httptest.NewRecorder()
	newAuthRouter(store, &mockRefresher{}).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
