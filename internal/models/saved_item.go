package models

import "time"

// ItemType identifies what kind of entity a saved item points at
type ItemType string

const (
	ItemTypeLesson   ItemType = "lesson"
	ItemTypeQuestion ItemType = "question"
	ItemTypeSeries   ItemType = "series"
)

// ListType identifies which per-user list a saved item belongs to
type ListType string

const (
	ListTypeFavorite  ListType = "favorite"
	ListTypeReadLater ListType = "read_later"
)

// SavedItem represents a per-user favorite or read-later marker
// A user has at most one record per (item, list) pair
type SavedItem struct {
	ID       string    `json:"id"`
	UserID   string    `json:"userId"`
	ItemID   string    `json:"itemId"`
	ItemType ItemType  `json:"itemType"`
	ListType ListType  `json:"listType"`
	SavedAt  time.Time `json:"savedAt"`
}
