package domain

import "time"

// Category is static reference data describing a line of work.
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Icon        *string   `json:"icon,omitempty"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
