package models

import "time"

// Category represents a dars/question category tag
// Categories are flat registries with no hierarchy
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// EventCategory represents an event category tag with display color
type EventCategory struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name string
}

// CreateEventCategoryRequest represents a request to create an event category
type CreateEventCategoryRequest struct {
	Name        string
	Description string
	Color       string
}
