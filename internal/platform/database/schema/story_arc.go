package schema

// StoryArcTable represents the 'story_arc' table
type StoryArcTable struct {
	Table       string
	ID          string
	TimelineID  string
	Name        string
	Number      string
	Description string
	CreatedAt   string
	UpdatedAt   string
}

// StoryArc is the schema definition for story_arc
var StoryArc = StoryArcTable{
	Table:       "story_arc",
	ID:          "id",
	TimelineID:  "timeline_id",
	Name:        "name",
	Number:      "number",
	Description: "description",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",
}

func (t StoryArcTable) Columns() []string {
	return []string{t.ID, t.TimelineID, t.Name, t.Number, t.Description, t.CreatedAt, t.UpdatedAt}
}
