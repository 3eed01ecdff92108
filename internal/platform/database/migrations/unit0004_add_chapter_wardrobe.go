// Copyright (c) 2026 Taleweave. All rights reserved.
// Author: quyen.lam.dev@gmail.com

package migrations

import (
	"context"
	"database/sql"

	"github.com/taleweave/taleweave/internal/platform/migration"
)

// unit0004AddChapterWardrobe adds the optional outfit and kink columns to
// story_chapter.
//
// Both are nullable on purpose: NULL is the explicit absence marker and is
// rehydrated as "not present" on read, distinct from an empty string a
// writer may have stored deliberately.
func unit0004AddChapterWardrobe() migration.Unit {
	return migration.Unit{
		Name: "0004_add_chapter_wardrobe",
		Apply: func(ctx context.Context, tx *sql.Tx) error {
			return execAll(ctx, tx, []string{
				`ALTER TABLE story_chapter ADD COLUMN outfit TEXT`,
				`ALTER TABLE story_chapter ADD COLUMN kink TEXT`,
			})
		},
		Revert: func(ctx context.Context, tx *sql.Tx) error {
			return execAll(ctx, tx, []string{
				`ALTER TABLE story_chapter DROP COLUMN kink`,
				`ALTER TABLE story_chapter DROP COLUMN outfit`,
			})
		},
	}
}
