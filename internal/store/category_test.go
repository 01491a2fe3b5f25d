package store

import (
	"context"
	"testing"

	"github.com/islamizindagi/backend/internal/models"
	"github.com/islamizindagi/backend/internal/remote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCategory(t *testing.T) {
	docs := &mockDocuments{}
	s, notifier := newTestStore(docs, &mockFiles{})

	created, err := s.CreateCategory(context.Background(), &models.CreateCategoryRequest{Name: "Fiqh"})

	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	require.Len(t, s.Categories(), 1)
	assert.Equal(t, "Fiqh", s.Categories()[0].Name)
	assert.Equal(t, []string{"Category created"}, notifier.successes)
}

func TestCreateCategory_ValidationSilentlyNoOps(t *testing.T) {
	docs := &mockDocuments{}
	s, notifier := newTestStore(docs, &mockFiles{})

	_, err := s.CreateCategory(context.Background(), &models.CreateCategoryRequest{})

	assert.ErrorIs(t, err, ErrValidation)
	assert.Zero(t, docs.createCalls)
	assert.Empty(t, s.Categories())
	assert.Empty(t, notifier.successes)
	assert.Empty(t, notifier.errors)
}

func TestDeleteCategory_DoesNotCascadeToTaggedContent(t *testing.T) {
	docs := &mockDocuments{
		lists: map[string]any{
			CollectionCategories: []models.Category{{ID: "c1", Name: "Fiqh"}},
			CollectionDars: []models.Dars{
				{ID: "d1", Title: "Intro to Fiqh", Category: "Fiqh"},
			},
		},
	}
	s, notifier := newTestStore(docs, &mockFiles{})
	s.RefreshData(context.Background(), "")

	require.NoError(t, s.DeleteCategory(context.Background(), "c1"))

	assert.Empty(t, s.Categories())
	// Tagged content keeps its free-text category value
	require.Len(t, s.Dars(), 1)
	assert.Equal(t, "Fiqh", s.Dars()[0].Category)
	assert.Equal(t, []string{"Category deleted"}, notifier.successes)
}

func TestCreateEventCategory(t *testing.T) {
	docs := &mockDocuments{}
	s, notifier := newTestStore(docs, &mockFiles{})

	created, err := s.CreateEventCategory(context.Background(), &models.CreateEventCategoryRequest{
		Name:  "Lectures",
		Color: "#2e7d32",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	require.Len(t, s.EventCategories(), 1)
	assert.Equal(t, "#2e7d32", s.EventCategories()[0].Color)
	assert.Equal(t, []string{"Event category created"}, notifier.successes)
}

func TestCreateEventCategory_RemoteFailureLeavesCache(t *testing.T) {
	docs := &mockDocuments{
		createErr: &remote.Error{Code: 503, Message: "unavailable"},
	}
	s, notifier := newTestStore(docs, &mockFiles{})

	_, err := s.CreateEventCategory(context.Background(), &models.CreateEventCategoryRequest{
		Name: "Lectures",
	})

	require.Error(t, err)
	assert.Empty(t, s.EventCategories())
	assert.Equal(t, []string{"Failed to create event category"}, notifier.errors)
}

func TestDeleteEventCategory(t *testing.T) {
	docs := &mockDocuments{
		lists: map[string]any{
			CollectionEventCategories: []models.EventCategory{{ID: "ec1", Name: "Lectures"}},
		},
	}
	s, notifier := newTestStore(docs, &mockFiles{})
	s.RefreshData(context.Background(), "")

	require.NoError(t, s.DeleteEventCategory(context.Background(), "ec1"))

	assert.Empty(t, s.EventCategories())
	assert.Equal(t, []string{CollectionEventCategories + "/ec1"}, docs.deleted)
	assert.Equal(t, []string{"Event category deleted"}, notifier.successes)
}
