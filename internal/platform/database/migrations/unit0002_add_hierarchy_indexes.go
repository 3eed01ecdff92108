// Copyright (c) 2026 Taleweave. All rights reserved.
// Author: quyen.lam.dev@gmail.com

package migrations

import (
	"context"
	"database/sql"

	"github.com/taleweave/taleweave/internal/platform/migration"
)

// unit0002AddHierarchyIndexes creates the supporting index for every
// foreign-key column.
//
// Hierarchy listings filter by parent reference and sort ascending by
// number, so each index is (parent_id, number) to serve that access path
// directly. The nullable chapter→part edge gets a plain part_id index for
// cascade bookkeeping.
func unit0002AddHierarchyIndexes() migration.Unit {
	return migration.Unit{
		Name: "0002_add_hierarchy_indexes",
		Apply: func(ctx context.Context, tx *sql.Tx) error {
			return execAll(ctx, tx, []string{
				`CREATE INDEX idx_story_arc_timeline ON story_arc(timeline_id, number)`,
				`CREATE INDEX idx_story_episode_arc ON story_episode(arc_id, number)`,
				`CREATE INDEX idx_story_part_episode ON story_part(episode_id, number)`,
				`CREATE INDEX idx_story_chapter_episode ON story_chapter(episode_id, number)`,
				`CREATE INDEX idx_story_chapter_part ON story_chapter(part_id)`,
			})
		},
		Revert: func(ctx context.Context, tx *sql.Tx) error {
			return execAll(ctx, tx, []string{
				`DROP INDEX IF EXISTS idx_story_chapter_part`,
				`DROP INDEX IF EXISTS idx_story_chapter_episode`,
				`DROP INDEX IF EXISTS idx_story_part_episode`,
				`DROP INDEX IF EXISTS idx_story_episode_arc`,
				`DROP INDEX IF EXISTS idx_story_arc_timeline`,
			})
		},
	}
}
