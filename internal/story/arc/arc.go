// Package arc is the second level of the story hierarchy, grouping episodes
// under a timeline.
//
// An arc is addressed by (timeline name, arc name); the pair is unique. Its
// number orders sibling arcs but carries no uniqueness guarantee.
package arc

import "time"

// Arc represents one narrative arc within a timeline.
type Arc struct {
	ID          int64     `json:"-"`
	TimelineID  int64     `json:"-"`
	Name        string    `json:"name"`
	Number      int       `json:"number"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Update is a partial-update payload. Nil fields are left unchanged.
type Update struct {
	Name        *string `json:"name"`
	Number      *int    `json:"number"`
	Description *string `json:"description"`
}

// Global field names for validation
const (
	FieldName        = "name"
	FieldNumber      = "number"
	FieldDescription = "description"
)
