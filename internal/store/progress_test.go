package store

import (
	"context"
	"testing"
	"time"

	"github.com/islamizindagi/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTouchDarsProgress_UpsertNeverDuplicates(t *testing.T) {
	docs := &mockDocuments{}
	s, _ := newTestStore(docs, &mockFiles{})

	first, err := s.TouchDarsProgress(context.Background(), "u1", "d1")
	require.NoError(t, err)
	require.Len(t, s.Progress(), 1)

	second, err := s.TouchDarsProgress(context.Background(), "u1", "d1")
	require.NoError(t, err)

	// Still one record for the (user, dars) pair, timestamp advanced
	require.Len(t, s.Progress(), 1)
	assert.Equal(t, first.ID, second.ID)
	assert.False(t, second.LastVisitedAt.Before(first.LastVisitedAt))
}

func TestTouchDarsProgress_SortsMostRecentFirst(t *testing.T) {
	docs := &mockDocuments{}
	s, _ := newTestStore(docs, &mockFiles{})
	old := time.Now().UTC().Add(-time.Hour)
	s.progress = []models.DarsProgress{
		{ID: "p1", UserID: "u1", DarsID: "d1", LastVisitedAt: time.Now().UTC()},
		{ID: "p2", UserID: "u1", DarsID: "d2", LastVisitedAt: old},
	}

	_, err := s.TouchDarsProgress(context.Background(), "u1", "d2")
	require.NoError(t, err)

	progress := s.Progress()
	require.Len(t, progress, 2)
	assert.Equal(t, "d2", progress[0].DarsID)
}

func TestTouchDarsProgress_PreservesCompletion(t *testing.T) {
	docs := &mockDocuments{}
	s, _ := newTestStore(docs, &mockFiles{})
	s.progress = []models.DarsProgress{
		{ID: "p1", UserID: "u1", DarsID: "d1", LastVisitedAt: time.Now().UTC().Add(-time.Hour), Completed: true},
	}

	updated, err := s.TouchDarsProgress(context.Background(), "u1", "d1")
	require.NoError(t, err)
	assert.True(t, updated.Completed)
}

func TestSetDarsCompleted(t *testing.T) {
	t.Run("creates record when none exists", func(t *testing.T) {
		docs := &mockDocuments{}
		s, notifier := newTestStore(docs, &mockFiles{})

		record, err := s.SetDarsCompleted(context.Background(), "u1", "d1", true)
		require.NoError(t, err)
		assert.True(t, record.Completed)
		assert.Len(t, s.Progress(), 1)
		assert.Equal(t, []string{"Dars marked as completed"}, notifier.successes)
	})

	t.Run("updates existing record", func(t *testing.T) {
		docs := &mockDocuments{}
		s, _ := newTestStore(docs, &mockFiles{})
		s.progress = []models.DarsProgress{
			{ID: "p1", UserID: "u1", DarsID: "d1", LastVisitedAt: time.Now().UTC(), Completed: true},
		}

		record, err := s.SetDarsCompleted(context.Background(), "u1", "d1", false)
		require.NoError(t, err)
		assert.False(t, record.Completed)
		assert.Len(t, s.Progress(), 1)
	})
}

func TestTouchDarsProgress_Validation(t *testing.T) {
	docs := &mockDocuments{}
	s, _ := newTestStore(docs, &mockFiles{})

	_, err := s.TouchDarsProgress(context.Background(), "", "d1")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Zero(t, docs.createCalls)
}
