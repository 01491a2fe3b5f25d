package store

import (
	"context"
	"testing"

	"github.com/islamizindagi/backend/internal/models"
	"github.com/islamizindagi/backend/internal/remote"
	"github.com/islamizindagi/backend/internal/views"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSeries(t *testing.T) {
	docs := &mockDocuments{}
	s, notifier := newTestStore(docs, &mockFiles{})

	created, err := s.CreateSeries(context.Background(), &models.CreateSeriesRequest{
		Name:        "Tafsir Series",
		Description: "Verse by verse",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Len(t, s.Series(), 1)
	assert.Equal(t, []string{"Series created"}, notifier.successes)
}

func TestCreateSeries_ValidationSilentlyNoOps(t *testing.T) {
	docs := &mockDocuments{}
	s, notifier := newTestStore(docs, &mockFiles{})

	_, err := s.CreateSeries(context.Background(), &models.CreateSeriesRequest{
		Description: "name is missing",
	})

	assert.ErrorIs(t, err, ErrValidation)
	assert.Zero(t, docs.createCalls)
	assert.Empty(t, s.Series())
	assert.Empty(t, notifier.successes)
	assert.Empty(t, notifier.errors)
}

func TestUpdateSeries(t *testing.T) {
	docs := &mockDocuments{
		lists: map[string]any{
			CollectionSeries: []models.Series{{ID: "s1", Name: "Old name"}},
		},
	}
	s, notifier := newTestStore(docs, &mockFiles{})
	s.RefreshData(context.Background(), "")

	updated, err := s.UpdateSeries(context.Background(), "s1", &models.UpdateSeriesRequest{
		Name: "Seerah Series",
	})

	require.NoError(t, err)
	assert.Equal(t, "Seerah Series", updated.Name)
	require.Len(t, s.Series(), 1)
	assert.Equal(t, "Seerah Series", s.Series()[0].Name)
	assert.Equal(t, []string{"Series updated"}, notifier.successes)
}

func TestUpdateSeries_RemoteFailureLeavesCache(t *testing.T) {
	docs := &mockDocuments{
		lists: map[string]any{
			CollectionSeries: []models.Series{{ID: "s1", Name: "Old name"}},
		},
		updateErr: &remote.Error{Code: 503, Message: "unavailable"},
	}
	s, notifier := newTestStore(docs, &mockFiles{})
	s.RefreshData(context.Background(), "")

	_, err := s.UpdateSeries(context.Background(), "s1", &models.UpdateSeriesRequest{
		Name: "Seerah Series",
	})

	require.Error(t, err)
	assert.Equal(t, "Old name", s.Series()[0].Name)
	assert.Equal(t, []string{"Failed to update series"}, notifier.errors)
}

func TestDeleteSeries_DoesNotCascadeToMembers(t *testing.T) {
	docs := &mockDocuments{
		lists: map[string]any{
			CollectionSeries: []models.Series{{ID: "s1", Name: "Tafsir Series"}},
			CollectionDars: []models.Dars{
				{ID: "d1", Title: "Surah al-Fatiha", SeriesID: "s1", SeriesOrder: 1},
			},
		},
	}
	s, notifier := newTestStore(docs, &mockFiles{})
	s.RefreshData(context.Background(), "")

	require.NoError(t, s.DeleteSeries(context.Background(), "s1"))

	assert.Empty(t, s.Series())
	assert.Equal(t, []string{CollectionSeries + "/s1"}, docs.deleted)
	// The member keeps its dangling seriesId
	require.Len(t, s.Dars(), 1)
	assert.Equal(t, "s1", s.Dars()[0].SeriesID)
	assert.Equal(t, []string{"Series deleted"}, notifier.successes)
}

func TestSeriesLifecycleFeedsDerivedViews(t *testing.T) {
	docs := &mockDocuments{}
	s, _ := newTestStore(docs, &mockFiles{})

	series, err := s.CreateSeries(context.Background(), &models.CreateSeriesRequest{
		Name: "Tafsir Series",
	})
	require.NoError(t, err)

	member, err := s.CreateDars(context.Background(), &models.CreateDarsRequest{
		Title:       "Surah al-Fatiha",
		Description: "Opening chapter",
		Teacher:     "Mufti Abdullah",
		Category:    "Tafsir",
		SeriesID:    series.ID,
		SeriesOrder: 1,
	})
	require.NoError(t, err)

	inSeries := views.DarsInSeries(s.Dars(), series.ID)
	require.Len(t, inSeries, 1)
	assert.Equal(t, member.ID, inSeries[0].ID)
	assert.Empty(t, views.StandaloneDars(s.Dars()))
}
