package store

import (
	"context"

	"github.com/islamizindagi/backend/internal/models"
	"go.uber.org/zap"
)

// CreateSeries writes one series document and mirrors it into the cache
func (s *Store) CreateSeries(ctx context.Context, req *models.CreateSeriesRequest) (*models.Series, error) {
	if req.Name == "" {
		return nil, ErrValidation
	}

	data := map[string]any{
		"name":        req.Name,
		"description": req.Description,
		"image":       req.Image,
	}

	var created models.Series
	if err := s.docs.CreateDocument(ctx, CollectionSeries, data, &created); err != nil {
		s.logger.Error("failed to create series", zap.Error(err))
		s.notifier.Error("Failed to create series")
		return nil, err
	}

	s.mu.Lock()
	s.series = append(s.series, created)
	s.mu.Unlock()

	s.notifier.Success("Series created")
	return &created, nil
}

// UpdateSeries writes the full application record for a series and
// mirrors the change into the cache
func (s *Store) UpdateSeries(ctx context.Context, id string, req *models.UpdateSeriesRequest) (*models.Series, error) {
	if req.Name == "" {
		return nil, ErrValidation
	}

	data := map[string]any{
		"name":        req.Name,
		"description": req.Description,
		"image":       req.Image,
	}

	var updated models.Series
	if err := s.docs.UpdateDocument(ctx, CollectionSeries, id, data, &updated); err != nil {
		s.logger.Error("failed to update series", zap.String("id", id), zap.Error(err))
		s.notifier.Error("Failed to update series")
		return nil, err
	}

	s.mu.Lock()
	for i := range s.series {
		if s.series[i].ID == id {
			s.series[i] = updated
			break
		}
	}
	s.mu.Unlock()

	s.notifier.Success("Series updated")
	return &updated, nil
}

// DeleteSeries removes a series remotely and from the cache.
// Member dars are not cascaded: they keep a dangling seriesId until
// edited, which is an accepted data-integrity gap.
func (s *Store) DeleteSeries(ctx context.Context, id string) error {
	if err := s.docs.DeleteDocument(ctx, CollectionSeries, id); err != nil {
		s.logger.Error("failed to delete series", zap.String("id", id), zap.Error(err))
		s.notifier.Error("Failed to delete series")
		return err
	}

	s.mu.Lock()
	for i := range s.series {
		if s.series[i].ID == id {
			s.series = append(s.series[:i], s.series[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.notifier.Success("Series deleted")
	return nil
}
