package episode

import "context"

// Repository defines the data access contract for episodes.
type Repository interface {

	// ResolveArc returns the surrogate key of the arc at (timeline, arc
	// name), or a NOT_FOUND error.
	ResolveArc(ctx context.Context, timelineName, arcName string) (int64, error)

	// ListByArc returns all episodes of the arc, ordered ascending by
	// number. Ties on number come back in unspecified order.
	ListByArc(ctx context.Context, timelineName, arcName string) ([]*Episode, error)

	// FindByNumber returns the episode at (timeline, arc, number).
	FindByNumber(ctx context.Context, timelineName, arcName string, number int) (*Episode, error)

	// Create persists a new episode (ArcID must be set) and fills the
	// store-assigned ID and timestamps.
	Create(ctx context.Context, episode *Episode) error

	// Update persists changes to an existing episode by ID and refreshes
	// its updated_at.
	Update(ctx context.Context, episode *Episode) error

	// Delete removes the episode at (timeline, arc, number); cascades to
	// its parts and chapters.
	Delete(ctx context.Context, timelineName, arcName string, number int) error
}
