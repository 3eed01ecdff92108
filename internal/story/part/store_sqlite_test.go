// Copyright (c) 2026 Taleweave. All rights reserved.
// Author: quyen.lam.dev@gmail.com

package part_test

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taleweave/taleweave/internal/platform/apperr"
	"github.com/taleweave/taleweave/internal/platform/database/migrations"
	"github.com/taleweave/taleweave/internal/platform/migration"
	"github.com/taleweave/taleweave/internal/platform/sqlite"
	"github.com/taleweave/taleweave/internal/story/arc"
	"github.com/taleweave/taleweave/internal/story/episode"
	"github.com/taleweave/taleweave/internal/story/part"
	"github.com/taleweave/taleweave/internal/story/timeline"
	"github.com/taleweave/taleweave/pkg/pointer"
)

// newPartService seeds the path prime/genesis/episode 1 on a fresh store.
func newPartService(t *testing.T) (*part.Service, *sql.DB) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := sqlite.Open(context.Background(), sqlite.MemoryMarker, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	runner := migration.NewRunner(db, migrations.All(), logger)
	require.NoError(t, runner.Run(context.Background()))

	ctx := context.Background()
	timelines := timeline.NewService(timeline.NewSQLiteRepository(db), logger)
	arcs := arc.NewService(arc.NewSQLiteRepository(db), logger)
	episodes := episode.NewService(episode.NewSQLiteRepository(db), logger)

	require.NoError(t, timelines.CreateTimeline(ctx, &timeline.Timeline{Name: "prime"}))
	require.NoError(t, arcs.CreateArc(ctx, "prime", &arc.Arc{Name: "genesis", Number: 1}))
	require.NoError(t, episodes.CreateEpisode(ctx, "prime", "genesis", &episode.Episode{
		Number: 1, Title: "Opening Night",
	}))

	return part.NewService(part.NewSQLiteRepository(db), logger), db
}

func TestPart_CreateGetRoundTrip(t *testing.T) {
	parts, _ := newPartService(t)
	ctx := context.Background()

	created := &part.Part{Number: 1, Title: "Act One", Description: "The setup"}
	require.NoError(t, parts.CreatePart(ctx, "prime", "genesis", 1, created))
	assert.Equal(t, "act-one", created.Slug)

	found, err := parts.GetPart(ctx, "prime", "genesis", 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "Act One", found.Title)
	assert.Equal(t, "The setup", found.Description)
}

func TestPart_CreateUnderMissingEpisodeReturnsNotFound(t *testing.T) {
	parts, _ := newPartService(t)

	err := parts.CreatePart(context.Background(), "prime", "genesis", 42, &part.Part{
		Number: 1, Title: "Orphan",
	})
	assert.True(t, apperr.IsNotFound(err))
}

func TestPart_ListSortsByNumber(t *testing.T) {
	parts, _ := newPartService(t)
	ctx := context.Background()

	for _, p := range []part.Part{
		{Number: 3, Title: "Act Three"},
		{Number: 1, Title: "Act One"},
		{Number: 2, Title: "Act Two"},
	} {
		spec := p
		require.NoError(t, parts.CreatePart(ctx, "prime", "genesis", 1, &spec))
	}

	listed, err := parts.ListParts(ctx, "prime", "genesis", 1)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{listed[0].Number, listed[1].Number, listed[2].Number})
}

func TestPart_PartialUpdate(t *testing.T) {
	parts, _ := newPartService(t)
	ctx := context.Background()

	require.NoError(t, parts.CreatePart(ctx, "prime", "genesis", 1, &part.Part{
		Number: 1, Title: "Act One", Description: "keep me",
	}))

	updated, err := parts.UpdatePart(ctx, "prime", "genesis", 1, 1, &part.Update{
		Title: pointer.To("Act One, Revised"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Act One, Revised", updated.Title)
	assert.Equal(t, "keep me", updated.Description)
}

func TestPart_DeleteCascadesToChapters(t *testing.T) {
	parts, db := newPartService(t)
	ctx := context.Background()

	require.NoError(t, parts.CreatePart(ctx, "prime", "genesis", 1, &part.Part{
		Number: 1, Title: "Act One",
	}))

	// Seed a chapter attached to the part via the raw handle; a part's
	// deletion must sweep it even though the chapter also references the
	// episode directly.
	var episodeID, partID int64
	require.NoError(t, db.QueryRow(`SELECT id FROM story_episode LIMIT 1`).Scan(&episodeID))
	require.NoError(t, db.QueryRow(`SELECT id FROM story_part LIMIT 1`).Scan(&partID))

	_, err := db.Exec(`
		INSERT INTO story_chapter (episode_id, part_id, number, pov, title, date, summary, location)
		VALUES (?, ?, 1, '', 'Attached', '', '', '')
	`, episodeID, partID)
	require.NoError(t, err)

	require.NoError(t, parts.DeletePart(ctx, "prime", "genesis", 1, 1))

	var chapters int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM story_chapter`).Scan(&chapters))
	assert.Zero(t, chapters)
}
