package schema

// StoryTimelineTable represents the 'story_timeline' table
type StoryTimelineTable struct {
	Table       string
	ID          string
	Name        string
	Description string
	CreatedAt   string
	UpdatedAt   string
}

// StoryTimeline is the schema definition for story_timeline
var StoryTimeline = StoryTimelineTable{
	Table:       "story_timeline",
	ID:          "id",
	Name:        "name",
	Description: "description",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",
}

func (t StoryTimelineTable) Columns() []string {
	return []string{t.ID, t.Name, t.Description, t.CreatedAt, t.UpdatedAt}
}
