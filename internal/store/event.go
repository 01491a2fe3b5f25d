package store

import (
	"context"

	"github.com/islamizindagi/backend/internal/models"
	"go.uber.org/zap"
)

// eventData builds the application fields written to the events collection
func eventData(req models.UpdateEventRequest) map[string]any {
	return map[string]any{
		"title":       req.Title,
		"description": req.Description,
		"imageUrl":    req.ImageURL,
		"eventDate":   req.EventDate,
		"location":    req.Location,
		"organizer":   req.Organizer,
		"category":    req.Category,
	}
}

// CreateEvent writes one event document and mirrors it into the cache
func (s *Store) CreateEvent(ctx context.Context, req *models.CreateEventRequest) (*models.Event, error) {
	if req.Title == "" || req.Description == "" || req.Category == "" || req.EventDate.IsZero() {
		return nil, ErrValidation
	}

	var created models.Event
	if err := s.docs.CreateDocument(ctx, CollectionEvents, eventData(models.UpdateEventRequest(*req)), &created); err != nil {
		s.logger.Error("failed to create event", zap.Error(err))
		s.notifier.Error("Failed to create event")
		return nil, err
	}

	s.mu.Lock()
	s.events = append(s.events, created)
	s.mu.Unlock()

	s.notifier.Success("Event created")
	return &created, nil
}

// UpdateEvent writes the full application record for an event and
// mirrors the change into the cache
func (s *Store) UpdateEvent(ctx context.Context, id string, req *models.UpdateEventRequest) (*models.Event, error) {
	if req.Title == "" || req.Description == "" || req.Category == "" || req.EventDate.IsZero() {
		return nil, ErrValidation
	}

	var updated models.Event
	if err := s.docs.UpdateDocument(ctx, CollectionEvents, id, eventData(*req), &updated); err != nil {
		s.logger.Error("failed to update event", zap.String("id", id), zap.Error(err))
		s.notifier.Error("Failed to update event")
		return nil, err
	}

	s.mu.Lock()
	for i := range s.events {
		if s.events[i].ID == id {
			s.events[i] = updated
			break
		}
	}
	s.mu.Unlock()

	s.notifier.Success("Event updated")
	return &updated, nil
}

// DeleteEvent removes an event remotely and from the cache
func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	if err := s.docs.DeleteDocument(ctx, CollectionEvents, id); err != nil {
		s.logger.Error("failed to delete event", zap.String("id", id), zap.Error(err))
		s.notifier.Error("Failed to delete event")
		return err
	}

	s.mu.Lock()
	for i := range s.events {
		if s.events[i].ID == id {
			s.events = append(s.events[:i], s.events[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.notifier.Success("Event deleted")
	return nil
}
