// Package timeline is the root level of the story hierarchy.
//
// A timeline is addressed by its globally unique name. Deleting a timeline
// cascades through every arc, episode, part, and chapter beneath it.
package timeline

import "time"

// Timeline represents one continuity of the story world.
type Timeline struct {
	ID          int64     `json:"-"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Update is a partial-update payload. Nil fields are left unchanged.
type Update struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// Global field names for validation
const (
	FieldName        = "name"
	FieldDescription = "description"
)
