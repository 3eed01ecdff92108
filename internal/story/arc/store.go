package arc

import "context"

// Repository defines the data access contract for arcs.
//
// Arcs are addressed by their human path (timeline name, arc name); the
// implementation joins up the chain to resolve surrogate keys.
type Repository interface {

	// ResolveTimeline returns the surrogate key of the named timeline, or a
	// NOT_FOUND error. Services call this before inserting a child row so a
	// missing parent surfaces as not-found rather than a constraint failure.
	ResolveTimeline(ctx context.Context, timelineName string) (int64, error)

	// ListByTimeline returns all arcs of the named timeline, ordered
	// ascending by number. Ties on number come back in unspecified order.
	ListByTimeline(ctx context.Context, timelineName string) ([]*Arc, error)

	// FindByName returns the arc at (timeline, name).
	FindByName(ctx context.Context, timelineName, arcName string) (*Arc, error)

	// Create persists a new arc (TimelineID must be set) and fills the
	// store-assigned ID and timestamps.
	Create(ctx context.Context, arc *Arc) error

	// Update persists changes to an existing arc by ID and refreshes its
	// updated_at.
	Update(ctx context.Context, arc *Arc) error

	// Delete removes the arc at (timeline, name); cascades to its episodes,
	// parts, and chapters.
	Delete(ctx context.Context, timelineName, arcName string) error
}
