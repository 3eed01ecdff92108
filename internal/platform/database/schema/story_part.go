package schema

// StoryPartTable represents the 'story_part' table
type StoryPartTable struct {
	Table       string
	ID          string
	EpisodeID   string
	Number      string
	Slug        string
	Title       string
	Description string
	CreatedAt   string
	UpdatedAt   string
}

// StoryPart is the schema definition for story_part
var StoryPart = StoryPartTable{
	Table:       "story_part",
	ID:          "id",
	EpisodeID:   "episode_id",
	Number:      "number",
	Slug:        "slug",
	Title:       "title",
	Description: "description",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",
}

func (t StoryPartTable) Columns() []string {
	return []string{t.ID, t.EpisodeID, t.Number, t.Slug, t.Title, t.Description, t.CreatedAt, t.UpdatedAt}
}
