package schema

// StoryEpisodeTable represents the 'story_episode' table
type StoryEpisodeTable struct {
	Table       string
	ID          string
	ArcID       string
	Number      string
	Slug        string
	Title       string
	Description string
	CreatedAt   string
	UpdatedAt   string
}

// StoryEpisode is the schema definition for story_episode
var StoryEpisode = StoryEpisodeTable{
	Table:       "story_episode",
	ID:          "id",
	ArcID:       "arc_id",
	Number:      "number",
	Slug:        "slug",
	Title:       "title",
	Description: "description",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",
}

func (t StoryEpisodeTable) Columns() []string {
	return []string{t.ID, t.ArcID, t.Number, t.Slug, t.Title, t.Description, t.CreatedAt, t.UpdatedAt}
}
