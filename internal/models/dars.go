package models

import (
	"io"
	"time"
)

// DarsType represents the content type of a dars
type DarsType string

const (
	DarsTypeArticle DarsType = "article"
	DarsTypeVideo   DarsType = "video"
)

// Attachment represents an uploaded file linked to a dars or question
type Attachment struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// AttachmentUpload carries a file to be uploaded as part of a mutation
type AttachmentUpload struct {
	Name   string
	Reader io.Reader
}

// Dars represents an Islamic lesson, either an article or a video
type Dars struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Content     string       `json:"content,omitempty"`
	Teacher     string       `json:"teacher"`
	Duration    string       `json:"duration,omitempty"`
	Category    string       `json:"category"`
	Type        DarsType     `json:"type"`
	VideoURL    string       `json:"videoUrl,omitempty"`
	Image       string       `json:"image,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
	SeriesID    string       `json:"seriesId,omitempty"`
	SeriesOrder int          `json:"seriesOrder,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// CreateDarsRequest represents a request to create a dars
type CreateDarsRequest struct {
	Title       string
	Description string
	Content     string
	Teacher     string
	Duration    string
	Category    string
	Type        DarsType
	VideoURL    string
	Image       string
	SeriesID    string
	SeriesOrder int
	Attachments []AttachmentUpload
}

// UpdateDarsRequest represents a request to update a dars (full replace of application fields)
type UpdateDarsRequest struct {
	Title       string
	Description string
	Content     string
	Teacher     string
	Duration    string
	Category    string
	Type        DarsType
	VideoURL    string
	Image       string
	SeriesID    string
	SeriesOrder int
	Attachments []Attachment
}
