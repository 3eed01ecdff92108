package part

import "context"

// Repository defines the data access contract for parts.
type Repository interface {

	// ResolveEpisode returns the surrogate key of the episode at
	// (timeline, arc, episode number), or a NOT_FOUND error.
	ResolveEpisode(ctx context.Context, timelineName, arcName string, episodeNumber int) (int64, error)

	// ListByEpisode returns all parts of the episode, ordered ascending
	// by number.
	ListByEpisode(ctx context.Context, timelineName, arcName string, episodeNumber int) ([]*Part, error)

	// FindByNumber returns the part at (timeline, arc, episode, number).
	FindByNumber(ctx context.Context, timelineName, arcName string, episodeNumber, number int) (*Part, error)

	// Create persists a new part (EpisodeID must be set) and fills the
	// store-assigned ID and timestamps.
	Create(ctx context.Context, part *Part) error

	// Update persists changes to an existing part by ID and refreshes its
	// updated_at.
	Update(ctx context.Context, part *Part) error

	// Delete removes the part at (timeline, arc, episode, number);
	// cascades to its chapters.
	Delete(ctx context.Context, timelineName, arcName string, episodeNumber, number int) error
}
