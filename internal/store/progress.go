package store

import (
	"context"
	"time"

	"github.com/islamizindagi/backend/internal/models"
	"go.uber.org/zap"
)

// TouchDarsProgress records a visit to a dars with upsert semantics:
// an existing (user, dars) record gets a fresh lastVisitedAt, otherwise
// a new record is created. Visits never produce duplicate records.
// Touches are silent: they happen on navigation, not on a user action
// worth a notification.
func (s *Store) TouchDarsProgress(ctx context.Context, userID, darsID string) (*models.DarsProgress, error) {
	if userID == "" || darsID == "" {
		return nil, ErrValidation
	}

	now := time.Now().UTC()
	existing, found := s.progressFor(userID, darsID)
	if found {
		data := map[string]any{
			"userId":        userID,
			"darsId":        darsID,
			"lastVisitedAt": now,
			"completed":     existing.Completed,
		}

		var updated models.DarsProgress
		if err := s.docs.UpdateDocument(ctx, CollectionDarsProgress, existing.ID, data, &updated); err != nil {
			s.logger.Error("failed to touch dars progress", zap.String("id", existing.ID), zap.Error(err))
			return nil, err
		}
		s.replaceProgress(updated)
		return &updated, nil
	}

	data := map[string]any{
		"userId":        userID,
		"darsId":        darsID,
		"lastVisitedAt": now,
		"completed":     false,
	}

	var created models.DarsProgress
	if err := s.docs.CreateDocument(ctx, CollectionDarsProgress, data, &created); err != nil {
		s.logger.Error("failed to create dars progress", zap.Error(err))
		return nil, err
	}

	s.mu.Lock()
	s.progress = append(s.progress, created)
	s.sortProgressLocked()
	s.mu.Unlock()

	return &created, nil
}

// SetDarsCompleted marks a dars completed or not for a user, creating
// the progress record when none exists yet
func (s *Store) SetDarsCompleted(ctx context.Context, userID, darsID string, completed bool) (*models.DarsProgress, error) {
	if userID == "" || darsID == "" {
		return nil, ErrValidation
	}

	now := time.Now().UTC()
	existing, found := s.progressFor(userID, darsID)
	if found {
		data := map[string]any{
			"userId":        userID,
			"darsId":        darsID,
			"lastVisitedAt": existing.LastVisitedAt,
			"completed":     completed,
		}

		var updated models.DarsProgress
		if err := s.docs.UpdateDocument(ctx, CollectionDarsProgress, existing.ID, data, &updated); err != nil {
			s.logger.Error("failed to update dars completion", zap.String("id", existing.ID), zap.Error(err))
			s.notifier.Error("Failed to update progress")
			return nil, err
		}
		s.replaceProgress(updated)
		s.notifyCompletion(completed)
		return &updated, nil
	}

	data := map[string]any{
		"userId":        userID,
		"darsId":        darsID,
		"lastVisitedAt": now,
		"completed":     completed,
	}

	var created models.DarsProgress
	if err := s.docs.CreateDocument(ctx, CollectionDarsProgress, data, &created); err != nil {
		s.logger.Error("failed to create dars progress", zap.Error(err))
		s.notifier.Error("Failed to update progress")
		return nil, err
	}

	s.mu.Lock()
	s.progress = append(s.progress, created)
	s.sortProgressLocked()
	s.mu.Unlock()

	s.notifyCompletion(completed)
	return &created, nil
}

func (s *Store) notifyCompletion(completed bool) {
	if completed {
		s.notifier.Success("Dars marked as completed")
	} else {
		s.notifier.Success("Dars marked as not completed")
	}
}

// progressFor finds the cached record for a (user, dars) pair
func (s *Store) progressFor(userID, darsID string) (models.DarsProgress, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, record := range s.progress {
		if record.UserID == userID && record.DarsID == darsID {
			return record, true
		}
	}
	return models.DarsProgress{}, false
}

// replaceProgress swaps an updated record into the cache and restores
// the most-recently-visited-first order the views depend on
func (s *Store) replaceProgress(updated models.DarsProgress) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.progress {
		if s.progress[i].ID == updated.ID {
			s.progress[i] = updated
			break
		}
	}
	s.sortProgressLocked()
}
