package schema

// StoryChapterTable represents the 'story_chapter' table
type StoryChapterTable struct {
	Table          string
	ID             string
	EpisodeID      string
	PartID         string
	Number         string
	Pov            string
	Title          string
	Date           string
	Summary        string
	Location       string
	Outfit         string
	Kink           string
	WordCount      string
	CharacterCount string
	ParagraphCount string
	SentenceCount  string
	ReadingMinutes string
	CreatedAt      string
	UpdatedAt      string
}

// StoryChapter is the schema definition for story_chapter
var StoryChapter = StoryChapterTable{
	Table:          "story_chapter",
	ID:             "id",
	EpisodeID:      "episode_id",
	PartID:         "part_id",
	Number:         "number",
	Pov:            "pov",
	Title:          "title",
	Date:           "date",
	Summary:        "summary",
	Location:       "location",
	Outfit:         "outfit",
	Kink:           "kink",
	WordCount:      "word_count",
	CharacterCount: "character_count",
	ParagraphCount: "paragraph_count",
	SentenceCount:  "sentence_count",
	ReadingMinutes: "reading_minutes",
	CreatedAt:      "created_at",
	UpdatedAt:      "updated_at",
}

func (t StoryChapterTable) Columns() []string {
	return []string{
		t.ID, t.EpisodeID, t.PartID, t.Number, t.Pov, t.Title, t.Date,
		t.Summary, t.Location, t.Outfit, t.Kink, t.WordCount, t.CharacterCount,
		t.ParagraphCount, t.SentenceCount, t.ReadingMinutes, t.CreatedAt, t.UpdatedAt,
	}
}
