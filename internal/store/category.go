package store

import (
	"context"

	"github.com/islamizindagi/backend/internal/models"
	"go.uber.org/zap"
)

// CreateCategory writes one category document and mirrors it into the cache
func (s *Store) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {
	if req.Name == "" {
		return nil, ErrValidation
	}

	var created models.Category
	if err := s.docs.CreateDocument(ctx, CollectionCategories, map[string]any{"name": req.Name}, &created); err != nil {
		s.logger.Error("failed to create category", zap.Error(err))
		s.notifier.Error("Failed to create category")
		return nil, err
	}

	s.mu.Lock()
	s.categories = append(s.categories, created)
	s.mu.Unlock()

	s.notifier.Success("Category created")
	return &created, nil
}

// DeleteCategory removes a category remotely and from the cache.
// Content referencing the category keeps its free-text value.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	if err := s.docs.DeleteDocument(ctx, CollectionCategories, id); err != nil {
		s.logger.Error("failed to delete category", zap.String("id", id), zap.Error(err))
		s.notifier.Error("Failed to delete category")
		return err
	}

	s.mu.Lock()
	for i := range s.categories {
		if s.categories[i].ID == id {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.notifier.Success("Category deleted")
	return nil
}

// CreateEventCategory writes one event category document and mirrors it
// into the cache
func (s *Store) CreateEventCategory(ctx context.Context, req *models.CreateEventCategoryRequest) (*models.EventCategory, error) {
	if req.Name == "" {
		return nil, ErrValidation
	}

	data := map[string]any{
		"name":        req.Name,
		"description": req.Description,
		"color":       req.Color,
	}

	var created models.EventCategory
	if err := s.docs.CreateDocument(ctx, CollectionEventCategories, data, &created); err != nil {
		s.logger.Error("failed to create event category", zap.Error(err))
		s.notifier.Error("Failed to create event category")
		return nil, err
	}

	s.mu.Lock()
	s.eventCategories = append(s.eventCategories, created)
	s.mu.Unlock()

	s.notifier.Success("Event category created")
	return &created, nil
}

// DeleteEventCategory removes an event category remotely and from the cache
func (s *Store) DeleteEventCategory(ctx context.Context, id string) error {
	if err := s.docs.DeleteDocument(ctx, CollectionEventCategories, id); err != nil {
		s.logger.Error("failed to delete event category", zap.String("id", id), zap.Error(err))
		s.notifier.Error("Failed to delete event category")
		return err
	}

	s.mu.Lock()
	for i := range s.eventCategories {
		if s.eventCategories[i].ID == id {
			s.eventCategories = append(s.eventCategories[:i], s.eventCategories[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.notifier.Success("Event category deleted")
	return nil
}
