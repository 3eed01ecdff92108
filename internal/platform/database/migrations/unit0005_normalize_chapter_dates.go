// Copyright (c) 2026 Taleweave. All rights reserved.
// Author: quyen.lam.dev@gmail.com

package migrations

import (
	"context"
	"database/sql"

	"github.com/taleweave/taleweave/internal/platform/migration"
)

// unit0005NormalizeChapterDates rewrites legacy chapter dates into the
// canonical YYYY-MM-DD form.
//
// # Irreversible
//
// This is a one-way transformation: the original free-form values are
// discarded during normalization, so Revert is a documented no-op. Reverting
// it only clears the ledger row.
func unit0005NormalizeChapterDates() migration.Unit {
	return migration.Unit{
		Name: "0005_normalize_chapter_dates",
		Apply: func(ctx context.Context, tx *sql.Tx) error {
			return execAll(ctx, tx, []string{
				// Legacy rows stored full timestamps ("2024-03-01T20:15:00" or
				// "2024-03-01 20:15:00"); keep the calendar-date prefix.
				`UPDATE story_chapter
				 SET date = substr(date, 1, 10)
				 WHERE length(date) > 10 AND date GLOB '[0-9][0-9][0-9][0-9]-[0-9][0-9]-[0-9][0-9]*'`,
			})
		},
		Revert: func(ctx context.Context, tx *sql.Tx) error {
			// No-op: the pre-normalization values no longer exist.
			return nil
		},
	}
}
