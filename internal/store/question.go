package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/islamizindagi/backend/internal/models"
	"go.uber.org/zap"
)

// questionData builds the application fields written to the questions
// collection. Answers are embedded: every answer mutation rewrites the
// parent question's whole answer list.
func questionData(title, content, author, category string, attachments []models.Attachment, answers []models.Answer) map[string]any {
	return map[string]any{
		"title":       title,
		"content":     content,
		"author":      author,
		"category":    category,
		"attachments": attachments,
		"answers":     answers,
	}
}

// CreateQuestion uploads any attachments, writes one question document,
// and mirrors the created record into the cache
func (s *Store) CreateQuestion(ctx context.Context, req *models.CreateQuestionRequest) (*models.Question, error) {
	if req.Title == "" || req.Content == "" || req.Category == "" {
		return nil, ErrValidation
	}

	attachments, err := s.uploadAttachments(ctx, req.Attachments)
	if err != nil {
		s.logger.Error("failed to upload question attachments", zap.Error(err))
		s.notifier.Error("Failed to upload attachment")
		return nil, err
	}

	data := questionData(req.Title, req.Content, req.Author, req.Category, attachments, nil)

	var created models.Question
	if err := s.docs.CreateDocument(ctx, CollectionQuestions, data, &created); err != nil {
		s.logger.Error("failed to create question", zap.Error(err))
		s.notifier.Error("Failed to submit question")
		return nil, err
	}

	s.mu.Lock()
	s.questions = append([]models.Question{created}, s.questions...)
	s.mu.Unlock()

	s.notifier.Success("Question submitted")
	return &created, nil
}

// UpdateQuestion writes the full application record for a question
// (keeping its current answers) and mirrors the change into the cache
func (s *Store) UpdateQuestion(ctx context.Context, id string, req *models.UpdateQuestionRequest) (*models.Question, error) {
	if req.Title == "" || req.Content == "" || req.Category == "" {
		return nil, ErrValidation
	}

	existing, ok := s.questionByID(id)
	if !ok {
		return nil, ErrNotFound
	}

	data := questionData(req.Title, req.Content, req.Author, req.Category, req.Attachments, existing.Answers)
	return s.writeQuestion(ctx, id, data, "Question updated", "Failed to update question")
}

// DeleteQuestion removes a question remotely and from the cache.
// Its embedded answers go with it.
func (s *Store) DeleteQuestion(ctx context.Context, id string) error {
	if err := s.docs.DeleteDocument(ctx, CollectionQuestions, id); err != nil {
		s.logger.Error("failed to delete question", zap.String("id", id), zap.Error(err))
		s.notifier.Error("Failed to delete question")
		return err
	}

	s.mu.Lock()
	for i := range s.questions {
		if s.questions[i].ID == id {
			s.questions = append(s.questions[:i], s.questions[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.notifier.Success("Question deleted")
	return nil
}

// AddAnswer appends an answer to a question's embedded list and rewrites
// the whole question document.
// Official-answer singularity is a UI convention only: the store accepts
// a second official answer without complaint.
func (s *Store) AddAnswer(ctx context.Context, questionID string, req *models.CreateAnswerRequest) (*models.Question, error) {
	if req.Content == "" || req.Author == "" {
		return nil, ErrValidation
	}

	existing, ok := s.questionByID(questionID)
	if !ok {
		return nil, ErrNotFound
	}

	answer := models.Answer{
		ID:         uuid.New().String(),
		Content:    req.Content,
		Author:     req.Author,
		IsOfficial: req.IsOfficial,
		CreatedAt:  time.Now().UTC(),
	}
	answers := append(append([]models.Answer(nil), existing.Answers...), answer)

	data := questionData(existing.Title, existing.Content, existing.Author, existing.Category, existing.Attachments, answers)
	return s.writeQuestion(ctx, questionID, data, "Answer posted", "Failed to post answer")
}

// UpdateAnswer replaces one answer in a question's embedded list and
// rewrites the whole question document
func (s *Store) UpdateAnswer(ctx context.Context, questionID, answerID string, req *models.UpdateAnswerRequest) (*models.Question, error) {
	if req.Content == "" {
		return nil, ErrValidation
	}

	existing, ok := s.questionByID(questionID)
	if !ok {
		return nil, ErrNotFound
	}

	answers := append([]models.Answer(nil), existing.Answers...)
	found := false
	for i := range answers {
		if answers[i].ID == answerID {
			answers[i].Content = req.Content
			if req.Author != "" {
				answers[i].Author = req.Author
			}
			answers[i].IsOfficial = req.IsOfficial
			found = true
			break
		}
	}
	if !found {
		return nil, ErrNotFound
	}

	data := questionData(existing.Title, existing.Content, existing.Author, existing.Category, existing.Attachments, answers)
	return s.writeQuestion(ctx, questionID, data, "Answer updated", "Failed to update answer")
}

// DeleteAnswer removes one answer from a question's embedded list and
// rewrites the whole question document
func (s *Store) DeleteAnswer(ctx context.Context, questionID, answerID string) (*models.Question, error) {
	existing, ok := s.questionByID(questionID)
	if !ok {
		return nil, ErrNotFound
	}

	answers := make([]models.Answer, 0, len(existing.Answers))
	found := false
	for _, answer := range existing.Answers {
		if answer.ID == answerID {
			found = true
			continue
		}
		answers = append(answers, answer)
	}
	if !found {
		return nil, ErrNotFound
	}

	data := questionData(existing.Title, existing.Content, existing.Author, existing.Category, existing.Attachments, answers)
	return s.writeQuestion(ctx, questionID, data, "Answer deleted", "Failed to delete answer")
}

// questionByID looks up a question in the cache
func (s *Store) questionByID(id string) (models.Question, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, question := range s.questions {
		if question.ID == id {
			return question, true
		}
	}
	return models.Question{}, false
}

// writeQuestion issues the single remote update for a question and
// mirrors the result into the cache
func (s *Store) writeQuestion(ctx context.Context, id string, data map[string]any, successMsg, errorMsg string) (*models.Question, error) {
	var updated models.Question
	if err := s.docs.UpdateDocument(ctx, CollectionQuestions, id, data, &updated); err != nil {
		s.logger.Error("failed to write question", zap.String("id", id), zap.Error(err))
		s.notifier.Error(errorMsg)
		return nil, err
	}

	s.mu.Lock()
	for i := range s.questions {
		if s.questions[i].ID == id {
			s.questions[i] = updated
			break
		}
	}
	s.mu.Unlock()

	s.notifier.Success(successMsg)
	return &updated, nil
}
