// Copyright (c) 2026 Taleweave. All rights reserved.
// Author: quyen.lam.dev@gmail.com

/*
Package migrations holds the static, ordered registry of schema-change units
for the story hierarchy.

Units are registered in code, not discovered on disk: the ordering is the
literal order of [All], guarded by the runner's prefix validation, and there
are no import-time side effects.

To add a unit, append a new unit0NNN.go file with the next prefix and list it
in [All]. Never rewrite a unit that has shipped; the ledger records it by
name only.
*/
package migrations

import (
	"context"
	"database/sql"

	"github.com/taleweave/taleweave/internal/platform/migration"
)

// All returns the full ordered unit sequence.
func All() []migration.Unit {
	return []migration.Unit{
		unit0001CreateStoryHierarchy(),
		unit0002AddHierarchyIndexes(),
		unit0003AddChapterMetrics(),
		unit0004AddChapterWardrobe(),
		unit0005NormalizeChapterDates(),
	}
}

// execAll runs each statement in order, stopping at the first failure.
func execAll(ctx context.Context, tx *sql.Tx, statements []string) error {
	for _, statement := range statements {
		if _, err := tx.ExecContext(ctx, statement); err != nil {
			return err
		}
	}
	return nil
}
