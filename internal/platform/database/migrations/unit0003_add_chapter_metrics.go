// Copyright (c) 2026 Taleweave. All rights reserved.
// Author: quyen.lam.dev@gmail.com

package migrations

import (
	"context"
	"database/sql"

	"github.com/taleweave/taleweave/internal/platform/migration"
)

// unit0003AddChapterMetrics adds the prose-metric columns to story_chapter:
// word, character, paragraph, and sentence counts plus the derived
// reading-time estimate in minutes.
func unit0003AddChapterMetrics() migration.Unit {
	return migration.Unit{
		Name: "0003_add_chapter_metrics",
		Apply: func(ctx context.Context, tx *sql.Tx) error {
			return execAll(ctx, tx, []string{
				`ALTER TABLE story_chapter ADD COLUMN word_count INTEGER NOT NULL DEFAULT 0`,
				`ALTER TABLE story_chapter ADD COLUMN character_count INTEGER NOT NULL DEFAULT 0`,
				`ALTER TABLE story_chapter ADD COLUMN paragraph_count INTEGER NOT NULL DEFAULT 0`,
				`ALTER TABLE story_chapter ADD COLUMN sentence_count INTEGER NOT NULL DEFAULT 0`,
				`ALTER TABLE story_chapter ADD COLUMN reading_minutes INTEGER NOT NULL DEFAULT 0`,
			})
		},
		Revert: func(ctx context.Context, tx *sql.Tx) error {
			return execAll(ctx, tx, []string{
				`ALTER TABLE story_chapter DROP COLUMN reading_minutes`,
				`ALTER TABLE story_chapter DROP COLUMN sentence_count`,
				`ALTER TABLE story_chapter DROP COLUMN paragraph_count`,
				`ALTER TABLE story_chapter DROP COLUMN character_count`,
				`ALTER TABLE story_chapter DROP COLUMN word_count`,
			})
		},
	}
}
