package models

import "time"

// DarsProgress represents a user's visit history for a single dars
// One record exists per (user, dars) pair; visits upsert the timestamp
type DarsProgress struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	DarsID        string    `json:"darsId"`
	LastVisitedAt time.Time `json:"lastVisitedAt"`
	Completed     bool      `json:"completed"`
}
