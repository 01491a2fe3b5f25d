package models

import "time"

// Event represents a scheduled community event
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	EventDate   time.Time `json:"eventDate"`
	Location    string    `json:"location,omitempty"`
	Organizer   string    `json:"organizer,omitempty"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateEventRequest represents a request to create an event
type CreateEventRequest struct {
	Title       string
	Description string
	ImageURL    string
	EventDate   time.Time
	Location    string
	Organizer   string
	Category    string
}

// UpdateEventRequest represents a request to update an event
type UpdateEventRequest struct {
	Title       string
	Description string
	ImageURL    string
	EventDate   time.Time
	Location    string
	Organizer   string
	Category    string
}
