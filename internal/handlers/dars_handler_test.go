package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/islamizindagi/backend/internal/middleware"
	"github.com/islamizindagi/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockDarsCache struct {
	dars     []models.Dars
	series   []models.Series
	progress []models.DarsProgress

	touchCalls    int
	touchedDarsID string
	touchErr      error
}

func (m *mockDarsCache) Dars() []models.Dars             { return m.dars }
func (m *mockDarsCache) Series() []models.Series         { return m.series }
func (m *mockDarsCache) Progress() []models.DarsProgress { return m.progress }

func (m *mockDarsCache) TouchDarsProgress(ctx context.Context, userID, darsID string) (*models.DarsProgress, error) {
	m.touchCalls++
	m.touchedDarsID = darsID
	if m.touchErr != nil {
		return nil, m.touchErr
	}
	return &models.DarsProgress{UserID: userID, DarsID: darsID, LastVisitedAt: time.Now()}, nil
}

func (m *mockDarsCache) SetDarsCompleted(ctx context.Context, userID, darsID string, completed bool) (*models.DarsProgress, error) {
	return &models.DarsProgress{UserID: userID, DarsID: darsID, Completed: completed}, nil
}

func newDarsRouter(cache *mockDarsCache) chi.Router {
	h := NewDarsHandler(cache, zap.NewNop())
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	h.RegisterProtectedRoutes(r)
	return r
}

func authedRequest(method, target string, user *models.AuthUser) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	return req.WithContext(middleware.WithUser(req.Context(), user))
}

func TestListDars_SeparatesStandaloneFromSeriesMembers(t *testing.T) {
	cache := &mockDarsCache{dars: []models.Dars{
		{ID: "d1", Title: "Tawheed Basics", Category: "aqeedah"},
		{ID: "d2", Title: "Fasting Rulings", Category: "fiqh", SeriesID: "s1", SeriesOrder: 1},
	}}

	rec := httptest.NewRecorder()
	newDarsRouter(cache).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dars", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Standalone []models.Dars `json:"standalone"`
		All        []models.Dars `json:"all"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Len(t, body.All, 2)
	require.Len(t, body.Standalone, 1)
	assert.Equal(t, "d1", body.Standalone[0].ID)
}

func TestListDars_SearchAndCategory(t *testing.T) {
	cache := &mockDarsCache{dars: []models.Dars{
		{ID: "d1", Title: "Tawheed Basics", Category: "aqeedah"},
		{ID: "d2", Title: "Fasting Rulings", Category: "fiqh"},
	}}

	tests := []struct {
		name    string
		target  string
		wantIDs []string
	}{
		{
			name:    "search matches title case-insensitively",
			target:  "/dars?search=tawheed",
			wantIDs: []string{"d1"},
		},
		{
			name:    "category filter",
			target:  "/dars?category=fiqh",
			wantIDs: []string{"d2"},
		},
		{
			name:    "all sentinel disables the filter",
			target:  "/dars?category=All",
			wantIDs: []string{"d1", "d2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newDarsRouter(cache).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			require.Equal(t, http.StatusOK, rec.Code)

			var body struct {
				All []models.Dars `json:"all"`
			}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))

			gotIDs := make([]string, 0, len(body.All))
			for _, d := range body.All {
				gotIDs = append(gotIDs, d.ID)
			}
			assert.Equal(t, tt.wantIDs, gotIDs)
		})
	}
}

func TestGetDars(t *testing.T) {
	cache := &mockDarsCache{dars: []models.Dars{{ID: "d1", Title: "Tawheed Basics"}}}
	router := newDarsRouter(cache)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dars/d1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dars/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "dars not found")
}

func TestGetSeries_IncludesOrderedMembers(t *testing.T) {
	cache := &mockDarsCache{
		series: []models.Series{{ID: "s1", Name: "Seerah"}},
		dars: []models.Dars{
			{ID: "d2", SeriesID: "s1", SeriesOrder: 2},
			{ID: "d1", SeriesID: "s1", SeriesOrder: 1},
			{ID: "d3"},
		},
	}

	rec := httptest.NewRecorder()
	newDarsRouter(cache).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/series/s1", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Series models.Series `json:"series"`
		Dars   []models.Dars `json:"dars"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Seerah", body.Series.Name)
	require.Len(t, body.Dars, 2)
	assert.Equal(t, "d1", body.Dars[0].ID)
	assert.Equal(t, "d2", body.Dars[1].ID)
}

func TestVisitDars(t *testing.T) {
	t.Run("requires authentication", func(t *testing.T) {
		cache := &mockDarsCache{}
		rec := httptest.NewRecorder()
		newDarsRouter(cache).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/dars/d1/visit", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Zero(t, cache.touchCalls)
	})

	t.Run("records the visit for the session user", func(t *testing.T) {
		cache := &mockDarsCache{}
		user := &models.AuthUser{ID: "u1", Name: "Aisha", Role: models.RoleUser}

		rec := httptest.NewRecorder()
		newDarsRouter(cache).ServeHTTP(rec, authedRequest(http.MethodPost, "/dars/d1/visit", user))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, cache.touchCalls)
		assert.Equal(t, "d1", cache.touchedDarsID)
	})
}

func TestSetCompleted(t *testing.T) {
	cache := &mockDarsCache{}
	user := &models.AuthUser{ID: "u1", Role: models.RoleUser}

	req := httptest.NewRequest(http.MethodPut, "/dars/d1/completed", strings.NewReader(`{"completed":true}`))
	req = req.WithContext(middleware.WithUser(req.Context(), user))

	rec := httptest.NewRecorder()
	newDarsRouter(cache).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var progress models.DarsProgress
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&progress))
	assert.True(t, progress.Completed)
	assert.Equal(t, "d1", progress.DarsID)
}

func TestRecentlyVisited_SkipsDeletedDars(t *testing.T) {
	cache := &mockDarsCache{
		dars: []models.Dars{{ID: "d1"}, {ID: "d2"}},
		progress: []models.DarsProgress{
			{DarsID: "gone", LastVisitedAt: time.Now()},
			{DarsID: "d2", LastVisitedAt: time.Now().Add(-time.Hour)},
		},
	}
	user := &models.AuthUser{ID: "u1", Role: models.RoleUser}

	rec := httptest.NewRecorder()
	newDarsRouter(cache).ServeHTTP(rec, authedRequest(http.MethodGet, "/recently-visited", user))

	require.Equal(t, http.StatusOK, rec.Code)

	var dars []models.Dars
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&dars))
	require.Len(t, dars, 1)
	assert.Equal(t, "d2", dars[0].ID)
}
