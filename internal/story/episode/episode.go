// Package episode is the third level of the story hierarchy. An episode is
// addressed by (timeline, arc, episode number).
package episode

import "time"

// Episode represents one published installment within an arc.
type Episode struct {
	ID          int64     `json:"-"`
	ArcID       int64     `json:"-"`
	Number      int       `json:"number"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Update is a partial-update payload. Nil fields are left unchanged.
type Update struct {
	Number      *int    `json:"number"`
	Slug        *string `json:"slug"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// Global field names for validation
const (
	FieldNumber      = "number"
	FieldSlug        = "slug"
	FieldTitle       = "title"
	FieldDescription = "description"
)
