package timeline

import "context"

// Repository defines the data access contract for timelines.
type Repository interface {

	// List returns every timeline, ordered by name.
	List(ctx context.Context) ([]*Timeline, error)

	// FindByName returns the timeline with the given unique name.
	// Returns a NOT_FOUND error if missing.
	FindByName(ctx context.Context, name string) (*Timeline, error)

	// Create persists a new timeline and fills the store-assigned ID and
	// timestamps on the passed struct.
	Create(ctx context.Context, timeline *Timeline) error

	// Update persists changes to an existing timeline by ID and refreshes
	// its updated_at on the passed struct.
	Update(ctx context.Context, timeline *Timeline) error

	// DeleteByName removes the named timeline. The store's cascading foreign
	// keys remove every descendant row; no application fan-out happens here.
	DeleteByName(ctx context.Context, name string) error
}
