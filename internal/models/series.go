package models

import "time"

// Series represents a named grouping of dars items
// Deleting a series does not cascade to its member dars
type Series struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateSeriesRequest represents a request to create a series
type CreateSeriesRequest struct {
	Name        string
	Description string
	Image       string
}

// UpdateSeriesRequest represents a request to update a series
type UpdateSeriesRequest struct {
	Name        string
	Description string
	Image       string
}
