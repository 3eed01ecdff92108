// Package part is the fourth level of the story hierarchy. A part is an
// optional grouping of chapters within an episode and is addressed by
// (timeline, arc, episode number, part number).
package part

import "time"

// Part represents one titled section of an episode.
type Part struct {
	ID          int64     `json:"-"`
	EpisodeID   int64     `json:"-"`
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
