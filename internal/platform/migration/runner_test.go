// Copyright (c) 2026 Taleweave. All rights reserved.
// Author: quyen.lam.dev@gmail.com

package migration_test

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taleweave/taleweave/internal/platform/migration"
	"github.com/taleweave/taleweave/internal/platform/sqlite"
)

// testDB opens a fresh private in-memory store for one test.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := sqlite.Open(context.Background(), sqlite.MemoryMarker, logger)
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// createTableUnit returns a unit whose Apply creates a single empty table.
func createTableUnit(name, table string) migration.Unit {
	return migration.Unit{
		Name: name,
		Apply: func(ctx context.Context, tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, `CREATE TABLE `+table+` (id INTEGER PRIMARY KEY)`)
			return err
		},
		Revert: func(ctx context.Context, tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, `DROP TABLE `+table)
			return err
		},
	}
}

// ledgerNames reads the applied set straight from the ledger table.
func ledgerNames(t *testing.T, db *sql.DB) map[string]bool {
	t.Helper()

	rows, err := db.Query(`SELECT name FROM schema_migrations`)
	require.NoError(t, err)
	defer rows.Close()

	names := map[string]bool{}
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		names[name] = true
	}
	require.NoError(t, rows.Err())
	return names
}

func tableExists(t *testing.T, db *sql.DB, table string) bool {
	t.Helper()

	var count int
	err := db.QueryRow(`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&count)
	require.NoError(t, err)
	return count == 1
}

/*
TestRunner_AppliesPendingUnitsInOrder runs a two-unit registry and verifies
both schema changes land and both ledger rows exist.
*/
func TestRunner_AppliesPendingUnitsInOrder(t *testing.T) {
	db := testDB(t)

	var order []string
	units := []migration.Unit{
		{
			Name: "0001_first",
			Apply: func(ctx context.Context, tx *sql.Tx) error {
				order = append(order, "0001_first")
				_, err := tx.ExecContext(ctx, `CREATE TABLE first_t (id INTEGER PRIMARY KEY)`)
				return err
			},
		},
		{
			Name: "0002_second",
			Apply: func(ctx context.Context, tx *sql.Tx) error {
				order = append(order, "0002_second")
				// Depends on the first unit having committed its table.
				_, err := tx.ExecContext(ctx, `CREATE TABLE second_t (first_id INTEGER REFERENCES first_t(id))`)
				return err
			},
		},
	}

	runner := migration.NewRunner(db, units, testLogger())
	require.NoError(t, runner.Run(context.Background()))

	assert.Equal(t, []string{"0001_first", "0002_second"}, order)
	assert.True(t, tableExists(t, db, "first_t"))
	assert.True(t, tableExists(t, db, "second_t"))

	applied := ledgerNames(t, db)
	assert.True(t, applied["0001_first"])
	assert.True(t, applied["0002_second"])
}

/*
TestRunner_SecondRunAppliesNothing is the idempotence law: after one
successful run, a second run must change nothing and apply zero units.
*/
func TestRunner_SecondRunAppliesNothing(t *testing.T) {
	db := testDB(t)

	applies := 0
	units := []migration.Unit{
		{
			Name: "0001_counted",
			Apply: func(ctx context.Context, tx *sql.Tx) error {
				applies++
				_, err := tx.ExecContext(ctx, `CREATE TABLE counted_t (id INTEGER PRIMARY KEY)`)
				return err
			},
		},
	}

	runner := migration.NewRunner(db, units, testLogger())
	require.NoError(t, runner.Run(context.Background()))
	firstApplied := ledgerNames(t, db)

	require.NoError(t, runner.Run(context.Background()))
	secondApplied := ledgerNames(t, db)

	assert.Equal(t, 1, applies)
	assert.Equal(t, firstApplied, secondApplied)
}

/*
TestRunner_FailingUnitRollsBackAndHalts covers the mid-unit failure
scenario: the failing unit's first statement must not survive, its ledger
row must not exist, a previously committed unit stays recorded, and units
after the failure never run.
*/
func TestRunner_FailingUnitRollsBackAndHalts(t *testing.T) {
	db := testDB(t)

	thirdRan := false
	units := []migration.Unit{
		createTableUnit("0001_keep", "keep_t"),
		{
			Name: "0002_broken",
			Apply: func(ctx context.Context, tx *sql.Tx) error {
				// First statement succeeds inside the transaction.
				if _, err := tx.ExecContext(ctx, `CREATE TABLE broken_t (id INTEGER PRIMARY KEY)`); err != nil {
					return err
				}
				// Second statement fails: table does not exist.
				_, err := tx.ExecContext(ctx, `INSERT INTO missing_t (id) VALUES (1)`)
				return err
			},
		},
		{
			Name: "0003_after",
			Apply: func(ctx context.Context, tx *sql.Tx) error {
				thirdRan = true
				return nil
			},
		},
	}

	runner := migration.NewRunner(db, units, testLogger())
	err := runner.Run(context.Background())
	require.Error(t, err)

	var unitErr *migration.UnitError
	require.True(t, errors.As(err, &unitErr))
	assert.Equal(t, "0002_broken", unitErr.Unit)

	applied := ledgerNames(t, db)
	assert.True(t, applied["0001_keep"], "prior unit stays recorded")
	assert.False(t, applied["0002_broken"], "failed unit leaves no ledger row")
	assert.False(t, applied["0003_after"])
	assert.False(t, thirdRan, "sequence halts after the failure")

	assert.True(t, tableExists(t, db, "keep_t"))
	assert.False(t, tableExists(t, db, "broken_t"), "partial unit work rolled back")

	// The failed unit is treated as not-applied: fixing it allows a retry.
	units[1] = createTableUnit("0002_broken", "broken_t")
	runner = migration.NewRunner(db, units, testLogger())
	require.NoError(t, runner.Run(context.Background()))
	assert.True(t, tableExists(t, db, "broken_t"))
	assert.True(t, ledgerNames(t, db)["0003_after"])
}

/*
TestValidateSequence rejects malformed registries before any database work.
*/
func TestValidateSequence(t *testing.T) {
	noop := func(ctx context.Context, tx *sql.Tx) error { return nil }

	tests := []struct {
		name    string
		units   []migration.Unit
		wantErr string
	}{
		{
			name: "valid_ascending",
			units: []migration.Unit{
				{Name: "0001_a", Apply: noop},
				{Name: "0002_b", Apply: noop},
				{Name: "0010_c", Apply: noop},
			},
		},
		{
			name: "duplicate_prefix",
			units: []migration.Unit{
				{Name: "0001_a", Apply: noop},
				{Name: "0001_b", Apply: noop},
			},
			wantErr: "duplicate unit prefix",
		},
		{
			name: "descending_prefix",
			units: []migration.Unit{
				{Name: "0002_a", Apply: noop},
				{Name: "0001_b", Apply: noop},
			},
			wantErr: "out of order",
		},
		{
			name:    "missing_prefix",
			units:   []migration.Unit{{Name: "create_stuff", Apply: noop}},
			wantErr: "invalid unit name",
		},
		{
			name:    "non_numeric_prefix",
			units:   []migration.Unit{{Name: "abcd_stuff", Apply: noop}},
			wantErr: "invalid unit name",
		},
		{
			name:    "nil_apply",
			units:   []migration.Unit{{Name: "0001_a"}},
			wantErr: "no apply function",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := migration.ValidateSequence(tt.units)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

/*
TestRunner_Revert manually rolls back one applied unit: the schema change is
undone and the ledger row removed, so the next run re-applies it.
*/
func TestRunner_Revert(t *testing.T) {
	db := testDB(t)

	units := []migration.Unit{createTableUnit("0001_thing", "thing_t")}
	runner := migration.NewRunner(db, units, testLogger())
	require.NoError(t, runner.Run(context.Background()))
	require.True(t, tableExists(t, db, "thing_t"))

	require.NoError(t, runner.Revert(context.Background(), "0001_thing"))
	assert.False(t, tableExists(t, db, "thing_t"))
	assert.False(t, ledgerNames(t, db)["0001_thing"])

	// Reverting something that is not applied is an error, not a no-op.
	err := runner.Revert(context.Background(), "0001_thing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not applied")

	err = runner.Revert(context.Background(), "9999_unknown")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown unit")

	// A re-run applies the reverted unit again.
	require.NoError(t, runner.Run(context.Background()))
	assert.True(t, tableExists(t, db, "thing_t"))
}
