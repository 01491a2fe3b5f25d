package models

import "time"

// Answer represents a single answer embedded in a question
// Answers have no independent lifecycle: mutating one rewrites the
// parent question's whole answer list
type Answer struct {
	ID         string    `json:"id"`
	Content    string    `json:"content"`
	Author     string    `json:"author"`
	IsOfficial bool      `json:"isOfficial"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Question represents a user-submitted question with embedded answers
type Question struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Content     string       `json:"content"`
	Author      string       `json:"author"`
	Category    string       `json:"category"`
	Attachments []Attachment `json:"attachments,omitempty"`
	Answers     []Answer     `json:"answers,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// CreateQuestionRequest represents a request to create a question
type CreateQuestionRequest struct {
	Title       string
	Content     string
	Author      string
	Category    string
	Attachments []AttachmentUpload
}

// UpdateQuestionRequest represents a request to update a question
type UpdateQuestionRequest struct {
	Title       string
	Content     string
	Author      string
	Category    string
	Attachments []Attachment
}

// CreateAnswerRequest represents a request to add an answer to a question
type CreateAnswerRequest struct {
	Content    string
	Author     string
	IsOfficial bool
}

// UpdateAnswerRequest represents a request to update an existing answer
type UpdateAnswerRequest struct {
	Content    string
	Author     string
	IsOfficial bool
}
