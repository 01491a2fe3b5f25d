package store

import (
	"context"
	"time"

	"github.com/islamizindagi/backend/internal/models"
	"go.uber.org/zap"
)

// ToggleFavorite flips the favorite marker for an item.
// Returns true when the item is saved after the call.
func (s *Store) ToggleFavorite(ctx context.Context, userID, itemID string, itemType models.ItemType) (bool, error) {
	return s.toggleSaved(ctx, userID, itemID, itemType, models.ListTypeFavorite,
		"Added to favorites", "Removed from favorites")
}

// ToggleReadLater flips the read-later marker for an item.
// Returns true when the item is saved after the call.
func (s *Store) ToggleReadLater(ctx context.Context, userID, itemID string, itemType models.ItemType) (bool, error) {
	return s.toggleSaved(ctx, userID, itemID, itemType, models.ListTypeReadLater,
		"Saved for later", "Removed from read later")
}

// toggleSaved is the three-way branch behind both toggles: the decision
// to save or un-save is read from the local cache, not the remote store.
// Two concurrent toggles from the same user would race; single-user
// usage makes this an accepted limitation.
func (s *Store) toggleSaved(ctx context.Context, userID, itemID string, itemType models.ItemType, listType models.ListType, savedMsg, removedMsg string) (bool, error) {
	if userID == "" || itemID == "" {
		return false, ErrValidation
	}

	existing, found := s.savedItemFor(userID, itemID, listType)
	if found {
		if err := s.docs.DeleteDocument(ctx, CollectionSavedItems, existing.ID); err != nil {
			s.logger.Error("failed to delete saved item", zap.String("id", existing.ID), zap.Error(err))
			s.notifier.Error("Failed to update saved items")
			return true, err
		}

		s.mu.Lock()
		for i := range s.savedItems {
			if s.savedItems[i].ID == existing.ID {
				s.savedItems = append(s.savedItems[:i], s.savedItems[i+1:]...)
				break
			}
		}
		s.mu.Unlock()

		s.notifier.Success(removedMsg)
		return false, nil
	}

	data := map[string]any{
		"userId":   userID,
		"itemId":   itemID,
		"itemType": itemType,
		"listType": listType,
		"savedAt":  time.Now().UTC(),
	}

	var created models.SavedItem
	if err := s.docs.CreateDocument(ctx, CollectionSavedItems, data, &created); err != nil {
		s.logger.Error("failed to create saved item", zap.Error(err))
		s.notifier.Error("Failed to update saved items")
		return false, err
	}

	s.mu.Lock()
	s.savedItems = append(s.savedItems, created)
	s.mu.Unlock()

	s.notifier.Success(savedMsg)
	return true, nil
}

// savedItemFor finds the cached record for a (user, item, list) triple
func (s *Store) savedItemFor(userID, itemID string, listType models.ListType) (models.SavedItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.savedItems {
		if item.UserID == userID && item.ItemID == itemID && item.ListType == listType {
			return item, true
		}
	}
	return models.SavedItem{}, false
}
