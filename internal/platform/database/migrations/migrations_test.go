// Copyright (c) 2026 Taleweave. All rights reserved.
// Author: quyen.lam.dev@gmail.com

package migrations_test

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taleweave/taleweave/internal/platform/database/migrations"
	"github.com/taleweave/taleweave/internal/platform/migration"
	"github.com/taleweave/taleweave/internal/platform/sqlite"
)

func migratedDB(t *testing.T) *sql.DB {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := sqlite.Open(context.Background(), sqlite.MemoryMarker, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	runner := migration.NewRunner(db, migrations.All(), logger)
	require.NoError(t, runner.Run(context.Background()))
	return db
}

/*
TestAll_RegistryIsWellFormed guards the static registry itself: ascending
unique prefixes and an Apply on every unit.
*/
func TestAll_RegistryIsWellFormed(t *testing.T) {
	units := migrations.All()
	require.NotEmpty(t, units)
	assert.NoError(t, migration.ValidateSequence(units))

	for _, unit := range units {
		assert.NotNil(t, unit.Revert, "every unit documents a revert, even if no-op: %s", unit.Name)
	}
}

/*
TestAll_CreatesFullHierarchy applies the registry to a fresh store and
verifies every table, the wardrobe/metric columns, and the FK indexes exist.
*/
func TestAll_CreatesFullHierarchy(t *testing.T) {
	db := migratedDB(t)

	for _, table := range []string{
		"story_timeline", "story_arc", "story_episode", "story_part", "story_chapter",
		"schema_migrations",
	} {
		var count int
		err := db.QueryRow(`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "missing table %s", table)
	}

	// Columns added by later units must be present after a full run.
	rows, err := db.Query(`SELECT name FROM pragma_table_info('story_chapter')`)
	require.NoError(t, err)
	defer rows.Close()

	columns := map[string]bool{}
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		columns[name] = true
	}
	require.NoError(t, rows.Err())

	for _, column := range []string{"word_count", "character_count", "paragraph_count", "sentence_count", "reading_minutes", "outfit", "kink"} {
		assert.True(t, columns[column], "missing story_chapter column %s", column)
	}

	for _, index := range []string{
		"idx_story_arc_timeline", "idx_story_episode_arc", "idx_story_part_episode",
		"idx_story_chapter_episode", "idx_story_chapter_part",
	} {
		var count int
		err := db.QueryRow(`SELECT count(*) FROM sqlite_master WHERE type = 'index' AND name = ?`, index).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "missing index %s", index)
	}
}

/*
TestAll_RunTwiceIsIdempotent re-runs the registry against an already
migrated store: zero new units, identical ledger.
*/
func TestAll_RunTwiceIsIdempotent(t *testing.T) {
	db := migratedDB(t)

	var before int
	require.NoError(t, db.QueryRow(`SELECT count(*) FROM schema_migrations`).Scan(&before))
	assert.Equal(t, len(migrations.All()), before)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	runner := migration.NewRunner(db, migrations.All(), logger)
	require.NoError(t, runner.Run(context.Background()))

	var after int
	require.NoError(t, db.QueryRow(`SELECT count(*) FROM schema_migrations`).Scan(&after))
	assert.Equal(t, before, after)
}

/*
TestAll_DateNormalizationIsOneWay verifies the 0005 unit trims legacy
timestamp values to calendar dates and that its revert touches nothing.
*/
func TestAll_DateNormalizationIsOneWay(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := sqlite.Open(context.Background(), sqlite.MemoryMarker, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	// Apply everything up to, but not including, the normalization unit.
	units := migrations.All()
	runner := migration.NewRunner(db, units[:len(units)-1], logger)
	require.NoError(t, runner.Run(context.Background()))

	// Seed a legacy-format chapter under a minimal hierarchy.
	ctx := context.Background()
	_, err = db.ExecContext(ctx, `INSERT INTO story_timeline (name) VALUES ('t')`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO story_arc (timeline_id, name, number) VALUES (1, 'a', 1)`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO story_episode (arc_id, number, slug, title) VALUES (1, 1, 's', 'T')`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO story_chapter (episode_id, number, title, date) VALUES (1, 1, 'C', '2024-03-01T20:15:00')`)
	require.NoError(t, err)

	// Now run the full registry; only 0005 is pending.
	runner = migration.NewRunner(db, units, logger)
	require.NoError(t, runner.Run(context.Background()))

	var date string
	require.NoError(t, db.QueryRow(`SELECT date FROM story_chapter WHERE number = 1`).Scan(&date))
	assert.Equal(t, "2024-03-01", date)

	// Revert is a documented no-op on data; it only clears the ledger row.
	require.NoError(t, runner.Revert(ctx, "0005_normalize_chapter_dates"))
	require.NoError(t, db.QueryRow(`SELECT date FROM story_chapter WHERE number = 1`).Scan(&date))
	assert.Equal(t, "2024-03-01", date)
}
