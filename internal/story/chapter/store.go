// Copyright (c) 2026 Taleweave. All rights reserved.
// Author: quyen.lam.dev@gmail.com

package chapter

import "context"

// # Storage Contract

// Repository defines the data access contract for chapters.
type Repository interface {

	// ResolveEpisode returns the surrogate key of the episode at
	// (timeline, arc, episode number), or a NOT_FOUND error.
	ResolveEpisode(ctx context.Context, timelineName, arcName string, episodeNumber int) (int64, error)

	// ResolvePart returns the surrogate key of the part with the given
	// number inside the episode, or a NOT_FOUND error. The lookup is
	// scoped to the episode so a part of a sibling episode never matches.
	ResolvePart(ctx context.Context, episodeID int64, partNumber int) (int64, error)

	// ListByEpisode returns one page of the episode's chapters ordered
	// ascending by number, plus the total count across all pages.
	ListByEpisode(ctx context.Context, timelineName, arcName string, episodeNumber, limit, offset int) ([]*Chapter, int, error)

	// FindByNumber returns the chapter at (timeline, arc, episode, number).
	FindByNumber(ctx context.Context, timelineName, arcName string, episodeNumber, number int) (*Chapter, error)

	// Create persists a new chapter (EpisodeID, and PartID when attached,
	// must be set) and fills the store-assigned ID and timestamps.
	Create(ctx context.Context, chapter *Chapter) error

	// Update persists changes to an existing chapter by ID and refreshes
	// its updated_at.
	Update(ctx context.Context, chapter *Chapter) error

	// Delete removes the chapter at (timeline, arc, episode, number).
	Delete(ctx context.Context, timelineName, arcName string, episodeNumber, number int) error
}
