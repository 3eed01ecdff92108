// Copyright (c) 2026 Taleweave. All rights reserved.
// Author: quyen.lam.dev@gmail.com

package chapter_test

import (
	"context"
	"database/sql"
	"fmt"
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
	"github.com/taleweave/taleweave/internal/story/chapter"
	"github.com/taleweave/taleweave/internal/story/episode"
	"github.com/taleweave/taleweave/internal/story/part"
	"github.com/taleweave/taleweave/internal/story/timeline"
	"github.com/taleweave/taleweave/pkg/pointer"
)

// fixture wires the whole hierarchy against one in-memory store.
type fixture struct {
	timelines *timeline.Service
	arcs      *arc.Service
	episodes  *episode.Service
	parts     *part.Service
	chapters  *chapter.Service
	db        *sql.DB
}

// newFixture opens a migrated in-memory store and seeds the path
// prime/genesis/episode 1.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := sqlite.Open(context.Background(), sqlite.MemoryMarker, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	runner := migration.NewRunner(db, migrations.All(), logger)
	require.NoError(t, runner.Run(context.Background()))

	f := &fixture{
		timelines: timeline.NewService(timeline.NewSQLiteRepository(db), logger),
		arcs:      arc.NewService(arc.NewSQLiteRepository(db), logger),
		episodes:  episode.NewService(episode.NewSQLiteRepository(db), logger),
		parts:     part.NewService(part.NewSQLiteRepository(db), logger),
		chapters:  chapter.NewService(chapter.NewSQLiteRepository(db), logger),
		db:        db,
	}

	ctx := context.Background()
	require.NoError(t, f.timelines.CreateTimeline(ctx, &timeline.Timeline{Name: "prime"}))
	require.NoError(t, f.arcs.CreateArc(ctx, "prime", &arc.Arc{Name: "genesis", Number: 1}))
	require.NoError(t, f.episodes.CreateEpisode(ctx, "prime", "genesis", &episode.Episode{
		Number: 1, Title: "Opening Night",
	}))
	return f
}

// rowCount counts rows in a table via the raw handle.
func (f *fixture) rowCount(t *testing.T, table string) int {
	t.Helper()

	var count int
	err := f.db.QueryRow(fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table)).Scan(&count)
	require.NoError(t, err)
	return count
}

// Chapters created directly under an episode need no part.
func TestChapter_CreateUnderEpisodeWithoutPart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created := &chapter.Chapter{
		Number:   1,
		Pov:      "Mira",
		Title:    "First Light",
		Date:     "2024-03-01",
		Summary:  "Mira arrives in the city.",
		Location: "Harbor district",
	}
	require.NoError(t, f.chapters.CreateChapter(ctx, "prime", "genesis", 1, created))

	found, err := f.chapters.GetChapter(ctx, "prime", "genesis", 1, 1)
	require.NoError(t, err)
	assert.Nil(t, found.PartNumber)
	assert.Equal(t, "Mira", found.Pov)
	assert.Equal(t, "2024-03-01", found.Date)
	assert.Equal(t, "Harbor district", found.Location)
}

func TestChapter_CreateAttachedToPart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.parts.CreatePart(ctx, "prime", "genesis", 1, &part.Part{
		Number: 2, Title: "Act Two",
	}))

	created := &chapter.Chapter{
		Number:     1,
		Title:      "Turning Point",
		PartNumber: pointer.To(2),
	}
	require.NoError(t, f.chapters.CreateChapter(ctx, "prime", "genesis", 1, created))

	found, err := f.chapters.GetChapter(ctx, "prime", "genesis", 1, 1)
	require.NoError(t, err)
	require.NotNil(t, found.PartNumber)
	assert.Equal(t, 2, *found.PartNumber)
}

func TestChapter_CreateWithMissingPartReturnsNotFound(t *testing.T) {
	f := newFixture(t)

	err := f.chapters.CreateChapter(context.Background(), "prime", "genesis", 1, &chapter.Chapter{
		Number:     1,
		Title:      "Orphan",
		PartNumber: pointer.To(99),
	})
	assert.True(t, apperr.IsNotFound(err))
}

// NULL wardrobe fields mean "not recorded" and must survive round trips
// distinct from the empty string.
func TestChapter_WardrobeFieldsAbsentVersusSet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.chapters.CreateChapter(ctx, "prime", "genesis", 1, &chapter.Chapter{
		Number: 1, Title: "Bare",
	}))
	require.NoError(t, f.chapters.CreateChapter(ctx, "prime", "genesis", 1, &chapter.Chapter{
		Number: 2, Title: "Dressed",
		Outfit: pointer.To("red coat"),
		Kink:   pointer.To(""),
	}))

	bare, err := f.chapters.GetChapter(ctx, "prime", "genesis", 1, 1)
	require.NoError(t, err)
	assert.Nil(t, bare.Outfit)
	assert.Nil(t, bare.Kink)

	dressed, err := f.chapters.GetChapter(ctx, "prime", "genesis", 1, 2)
	require.NoError(t, err)
	require.NotNil(t, dressed.Outfit)
	assert.Equal(t, "red coat", *dressed.Outfit)
	require.NotNil(t, dressed.Kink)
	assert.Equal(t, "", *dressed.Kink)
}

func TestChapter_ReadingMinutesDerivedFromWordCount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// 500 words at 225 wpm rounds up to 3 minutes.
	created := &chapter.Chapter{Number: 1, Title: "Long Read", WordCount: 500}
	require.NoError(t, f.chapters.CreateChapter(ctx, "prime", "genesis", 1, created))
	assert.Equal(t, 3, created.ReadingMinutes)

	// An explicit estimate is kept as supplied.
	explicit := &chapter.Chapter{Number: 2, Title: "Skim", WordCount: 500, ReadingMinutes: 1}
	require.NoError(t, f.chapters.CreateChapter(ctx, "prime", "genesis", 1, explicit))
	assert.Equal(t, 1, explicit.ReadingMinutes)

	// Patching the word count alone recomputes the estimate.
	updated, err := f.chapters.UpdateChapter(ctx, "prime", "genesis", 1, 1, &chapter.Update{
		WordCount: pointer.To(100),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.ReadingMinutes)
}

func TestChapter_PartialUpdateLeavesOtherFieldsAlone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.chapters.CreateChapter(ctx, "prime", "genesis", 1, &chapter.Chapter{
		Number:  1,
		Pov:     "Mira",
		Title:   "First Light",
		Summary: "keep me",
	}))

	updated, err := f.chapters.UpdateChapter(ctx, "prime", "genesis", 1, 1, &chapter.Update{
		Pov: pointer.To("Sable"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Sable", updated.Pov)
	assert.Equal(t, "First Light", updated.Title)
	assert.Equal(t, "keep me", updated.Summary)
}

func TestChapter_InvalidDateRejected(t *testing.T) {
	f := newFixture(t)

	err := f.chapters.CreateChapter(context.Background(), "prime", "genesis", 1, &chapter.Chapter{
		Number: 1, Title: "Bad Date", Date: "March 1st, 2024",
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

// Out-of-order inserts come back sorted and paginate with a stable total.
func TestChapter_ListSortsAndPaginates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, number := range []int{5, 1, 4, 2, 3} {
		require.NoError(t, f.chapters.CreateChapter(ctx, "prime", "genesis", 1, &chapter.Chapter{
			Number: number,
			Title:  fmt.Sprintf("Chapter %d", number),
		}))
	}

	page, total, err := f.chapters.ListChapters(ctx, "prime", "genesis", 1, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, page, 2)
	assert.Equal(t, 1, page[0].Number)
	assert.Equal(t, 2, page[1].Number)

	page, total, err = f.chapters.ListChapters(ctx, "prime", "genesis", 1, 2, 4)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, page, 1)
	assert.Equal(t, 5, page[0].Number)
}

// Creating the full three-level path and reading the chapter back through
// its address exercises every join in the hierarchy.
func TestChapter_ThreeLevelScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.timelines.CreateTimeline(ctx, &timeline.Timeline{Name: "mirror"}))
	require.NoError(t, f.arcs.CreateArc(ctx, "mirror", &arc.Arc{Name: "inversion", Number: 1}))
	require.NoError(t, f.episodes.CreateEpisode(ctx, "mirror", "inversion", &episode.Episode{
		Number: 1, Title: "Reflections",
	}))
	require.NoError(t, f.chapters.CreateChapter(ctx, "mirror", "inversion", 1, &chapter.Chapter{
		Number: 1, Title: "Through the Glass",
	}))

	found, err := f.chapters.GetChapter(ctx, "mirror", "inversion", 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "Through the Glass", found.Title)
	assert.Nil(t, found.PartNumber)

	// The identical address on the seeded timeline stays independent.
	_, err = f.chapters.GetChapter(ctx, "prime", "genesis", 1, 1)
	assert.True(t, apperr.IsNotFound(err))
}

// Deleting a timeline must sweep every descendant row in all five tables.
func TestChapter_TimelineDeleteCascadesToAllLevels(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.parts.CreatePart(ctx, "prime", "genesis", 1, &part.Part{
		Number: 1, Title: "Act One",
	}))
	require.NoError(t, f.chapters.CreateChapter(ctx, "prime", "genesis", 1, &chapter.Chapter{
		Number: 1, Title: "Attached", PartNumber: pointer.To(1),
	}))
	require.NoError(t, f.chapters.CreateChapter(ctx, "prime", "genesis", 1, &chapter.Chapter{
		Number: 2, Title: "Loose",
	}))

	require.NoError(t, f.timelines.DeleteTimeline(ctx, "prime"))

	for _, table := range []string{
		"story_timeline", "story_arc", "story_episode", "story_part", "story_chapter",
	} {
		assert.Zero(t, f.rowCount(t, table), "expected no rows left in %s", table)
	}
}

// Deleting an arc removes its episodes and their chapters but leaves the
// timeline intact.
func TestChapter_ArcDeleteCascadesBelowOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.chapters.CreateChapter(ctx, "prime", "genesis", 1, &chapter.Chapter{
		Number: 1, Title: "Doomed",
	}))

	require.NoError(t, f.arcs.DeleteArc(ctx, "prime", "genesis"))

	_, err := f.timelines.GetTimeline(ctx, "prime")
	assert.NoError(t, err)

	_, err = f.episodes.ListEpisodes(ctx, "prime", "genesis")
	assert.True(t, apperr.IsNotFound(err))

	_, err = f.chapters.GetChapter(ctx, "prime", "genesis", 1, 1)
	assert.True(t, apperr.IsNotFound(err))

	assert.Zero(t, f.rowCount(t, "story_chapter"))
	assert.Zero(t, f.rowCount(t, "story_episode"))
}

// Re-attaching a chapter to a different part through a patch.
func TestChapter_UpdateReattachesPart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.parts.CreatePart(ctx, "prime", "genesis", 1, &part.Part{Number: 1, Title: "Act One"}))
	require.NoError(t, f.parts.CreatePart(ctx, "prime", "genesis", 1, &part.Part{Number: 2, Title: "Act Two"}))

	require.NoError(t, f.chapters.CreateChapter(ctx, "prime", "genesis", 1, &chapter.Chapter{
		Number: 1, Title: "Wanderer", PartNumber: pointer.To(1),
	}))

	updated, err := f.chapters.UpdateChapter(ctx, "prime", "genesis", 1, 1, &chapter.Update{
		PartNumber: pointer.To(2),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.PartNumber)
	assert.Equal(t, 2, *updated.PartNumber)
}
