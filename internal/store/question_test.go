package store

import (
	"context"
	"testing"

	"github.com/islamizindagi/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededQuestionStore() (*Store, *mockDocuments, *recorderNotifier) {
	docs := &mockDocuments{}
	s, notifier := newTestStore(docs, &mockFiles{})
	s.questions = []models.Question{
		{
			ID:       "q1",
			Title:    "What breaks wudu?",
			Content:  "<p>Details inside</p>",
			Author:   "Ahmed",
			Category: "Fiqh",
			Answers: []models.Answer{
				{ID: "a1", Content: "First answer", Author: "Mufti Abdullah", IsOfficial: true},
			},
		},
	}
	return s, docs, notifier
}

func TestAddAnswer_RewritesWholeAnswerList(t *testing.T) {
	s, docs, notifier := seededQuestionStore()

	updated, err := s.AddAnswer(context.Background(), "q1", &models.CreateAnswerRequest{
		Content: "Second answer",
		Author:  "Ustadh Bilal",
	})

	require.NoError(t, err)
	require.Len(t, updated.Answers, 2)
	assert.NotEmpty(t, updated.Answers[1].ID)
	assert.Equal(t, "Second answer", updated.Answers[1].Content)

	// The remote write carried the full answer list, not a delta
	answers, ok := docs.lastData["answers"].([]any)
	require.True(t, ok)
	assert.Len(t, answers, 2)
	assert.Equal(t, []string{"Answer posted"}, notifier.successes)
}

func TestAddAnswer_SecondOfficialAnswerIsAccepted(t *testing.T) {
	s, _, _ := seededQuestionStore()

	// Singularity of the official answer is a UI convention, not a
	// data-layer constraint
	updated, err := s.AddAnswer(context.Background(), "q1", &models.CreateAnswerRequest{
		Content:    "Also official",
		Author:     "Ustadh Bilal",
		IsOfficial: true,
	})

	require.NoError(t, err)
	official := 0
	for _, answer := range updated.Answers {
		if answer.IsOfficial {
			official++
		}
	}
	assert.Equal(t, 2, official)
}

func TestUpdateAnswer(t *testing.T) {
	s, _, _ := seededQuestionStore()

	updated, err := s.UpdateAnswer(context.Background(), "q1", "a1", &models.UpdateAnswerRequest{
		Content:    "Revised answer",
		IsOfficial: true,
	})

	require.NoError(t, err)
	assert.Equal(t, "Revised answer", updated.Answers[0].Content)
	assert.Equal(t, "Mufti Abdullah", updated.Answers[0].Author)
}

func TestUpdateAnswer_UnknownAnswer(t *testing.T) {
	s, docs, _ := seededQuestionStore()

	_, err := s.UpdateAnswer(context.Background(), "q1", "missing", &models.UpdateAnswerRequest{Content: "x"})

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, docs.updateCalls)
}

func TestDeleteAnswer(t *testing.T) {
	s, _, _ := seededQuestionStore()

	updated, err := s.DeleteAnswer(context.Background(), "q1", "a1")

	require.NoError(t, err)
	assert.Empty(t, updated.Answers)
	assert.Empty(t, s.Questions()[0].Answers)
}

func TestDeleteQuestion_RemovesEmbeddedAnswers(t *testing.T) {
	s, docs, notifier := seededQuestionStore()

	err := s.DeleteQuestion(context.Background(), "q1")

	require.NoError(t, err)
	assert.Empty(t, s.Questions())
	assert.Equal(t, []string{"questions/q1"}, docs.deleted)
	assert.Equal(t, []string{"Question deleted"}, notifier.successes)
}

func TestCreateQuestion(t *testing.T) {
	docs := &mockDocuments{}
	s, _ := newTestStore(docs, &mockFiles{})

	created, err := s.CreateQuestion(context.Background(), &models.CreateQuestionRequest{
		Title:    "Is fasting valid while traveling?",
		Content:  "<p>Long question</p>",
		Author:   "Fatima",
		Category: "Fiqh",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Empty(t, created.Answers)
	assert.Len(t, s.Questions(), 1)
}

func TestCreateQuestion_Validation(t *testing.T) {
	docs := &mockDocuments{}
	s, _ := newTestStore(docs, &mockFiles{})

	_, err := s.CreateQuestion(context.Background(), &models.CreateQuestionRequest{Title: "No content"})

	assert.ErrorIs(t, err, ErrValidation)
	assert.Zero(t, docs.createCalls)
}
