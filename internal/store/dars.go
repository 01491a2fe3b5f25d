package store

import (
	"context"

	"github.com/islamizindagi/backend/internal/models"
	"go.uber.org/zap"
)

// darsData builds the application fields written to the dars collection
func darsData(title, description, content, teacher, duration, category string, darsType models.DarsType, videoURL, image, seriesID string, seriesOrder int, attachments []models.Attachment) map[string]any {
	return map[string]any{
		"title":       title,
		"description": description,
		"content":     content,
		"teacher":     teacher,
		"duration":    duration,
		"category":    category,
		"type":        darsType,
		"videoUrl":    videoURL,
		"image":       image,
		"seriesId":    seriesID,
		"seriesOrder": seriesOrder,
		"attachments": attachments,
	}
}

// CreateDars uploads any attachments, writes one dars document, and
// mirrors the created record into the cache
func (s *Store) CreateDars(ctx context.Context, req *models.CreateDarsRequest) (*models.Dars, error) {
	if req.Title == "" || req.Description == "" || req.Category == "" || req.Teacher == "" {
		return nil, ErrValidation
	}
	darsType := req.Type
	if darsType == "" {
		darsType = models.DarsTypeArticle
	}

	attachments, err := s.uploadAttachments(ctx, req.Attachments)
	if err != nil {
		s.logger.Error("failed to upload dars attachments", zap.Error(err))
		s.notifier.Error("Failed to upload attachment")
		return nil, err
	}

	data := darsData(req.Title, req.Description, req.Content, req.Teacher, req.Duration,
		req.Category, darsType, req.VideoURL, req.Image, req.SeriesID, req.SeriesOrder, attachments)

	var created models.Dars
	if err := s.docs.CreateDocument(ctx, CollectionDars, data, &created); err != nil {
		s.logger.Error("failed to create dars", zap.Error(err))
		s.notifier.Error("Failed to create dars")
		return nil, err
	}

	s.mu.Lock()
	s.dars = append([]models.Dars{created}, s.dars...)
	s.mu.Unlock()

	s.notifier.Success("Dars created")
	return &created, nil
}

// UpdateDars writes the full application record for an existing dars and
// mirrors the change into the cache
func (s *Store) UpdateDars(ctx context.Context, id string, req *models.UpdateDarsRequest) (*models.Dars, error) {
	if req.Title == "" || req.Description == "" || req.Category == "" || req.Teacher == "" {
		return nil, ErrValidation
	}

	data := darsData(req.Title, req.Description, req.Content, req.Teacher, req.Duration,
		req.Category, req.Type, req.VideoURL, req.Image, req.SeriesID, req.SeriesOrder, req.Attachments)

	var updated models.Dars
	if err := s.docs.UpdateDocument(ctx, CollectionDars, id, data, &updated); err != nil {
		s.logger.Error("failed to update dars", zap.String("id", id), zap.Error(err))
		s.notifier.Error("Failed to update dars")
		return nil, err
	}

	s.mu.Lock()
	for i := range s.dars {
		if s.dars[i].ID == id {
			s.dars[i] = updated
			break
		}
	}
	s.mu.Unlock()

	s.notifier.Success("Dars updated")
	return &updated, nil
}

// DeleteDars removes a dars remotely and from the cache
func (s *Store) DeleteDars(ctx context.Context, id string) error {
	if err := s.docs.DeleteDocument(ctx, CollectionDars, id); err != nil {
		s.logger.Error("failed to delete dars", zap.String("id", id), zap.Error(err))
		s.notifier.Error("Failed to delete dars")
		return err
	}

	s.mu.Lock()
	for i := range s.dars {
		if s.dars[i].ID == id {
			s.dars = append(s.dars[:i], s.dars[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.notifier.Success("Dars deleted")
	return nil
}
