// Copyright (c) 2026 Taleweave. All rights reserved.
// Author: quyen.lam.dev@gmail.com

package migrations

import (
	"context"
	"database/sql"

	"github.com/taleweave/taleweave/internal/platform/migration"
)

// unit0001CreateStoryHierarchy creates the five hierarchy tables.
//
// # Cascade model
//
// Every parent→child foreign key declares ON DELETE CASCADE, so deleting a
// timeline removes its arcs, their episodes, and every part and chapter
// beneath them without any application-level fan-out. The chapter→part edge
// is the only nullable reference; its cascade still deletes the row when the
// part goes away, matching the chapter→episode edge.
//
// Note: `number` carries no uniqueness constraint on any level. Listings
// order by it; ties come back in unspecified order.
func unit0001CreateStoryHierarchy() migration.Unit {
	return migration.Unit{
		Name: "0001_create_story_hierarchy",
		Apply: func(ctx context.Context, tx *sql.Tx) error {
			return execAll(ctx, tx, []string{
				`CREATE TABLE story_timeline (
					id          INTEGER PRIMARY KEY AUTOINCREMENT,
					name        TEXT NOT NULL UNIQUE,
					description TEXT NOT NULL DEFAULT '',
					created_at  DATETIME NOT NULL DEFAULT (datetime('now')),
					updated_at  DATETIME NOT NULL DEFAULT (datetime('now'))
				)`,
				`CREATE TABLE story_arc (
					id          INTEGER PRIMARY KEY AUTOINCREMENT,
					timeline_id INTEGER NOT NULL REFERENCES story_timeline(id) ON DELETE CASCADE,
					name        TEXT NOT NULL,
					number      INTEGER NOT NULL,
					description TEXT NOT NULL DEFAULT '',
					created_at  DATETIME NOT NULL DEFAULT (datetime('now')),
					updated_at  DATETIME NOT NULL DEFAULT (datetime('now')),
					UNIQUE (timeline_id, name)
				)`,
				`CREATE TABLE story_episode (
					id          INTEGER PRIMARY KEY AUTOINCREMENT,
					arc_id      INTEGER NOT NULL REFERENCES story_arc(id) ON DELETE CASCADE,
					number      INTEGER NOT NULL,
					slug        TEXT NOT NULL,
					title       TEXT NOT NULL,
					description TEXT NOT NULL DEFAULT '',
					created_at  DATETIME NOT NULL DEFAULT (datetime('now')),
					updated_at  DATETIME NOT NULL DEFAULT (datetime('now'))
				)`,
				`CREATE TABLE story_part (
					id          INTEGER PRIMARY KEY AUTOINCREMENT,
					episode_id  INTEGER NOT NULL REFERENCES story_episode(id) ON DELETE CASCADE,
					number      INTEGER NOT NULL,
					slug        TEXT NOT NULL,
					title       TEXT NOT NULL,
					description TEXT NOT NULL DEFAULT '',
					created_at  DATETIME NOT NULL DEFAULT (datetime('now')),
					updated_at  DATETIME NOT NULL DEFAULT (datetime('now'))
				)`,
				`CREATE TABLE story_chapter (
					id          INTEGER PRIMARY KEY AUTOINCREMENT,
					episode_id  INTEGER NOT NULL REFERENCES story_episode(id) ON DELETE CASCADE,
					part_id     INTEGER REFERENCES story_part(id) ON DELETE CASCADE,
					number      INTEGER NOT NULL,
					pov         TEXT NOT NULL DEFAULT '',
					title       TEXT NOT NULL,
					date        TEXT NOT NULL DEFAULT '',
					summary     TEXT NOT NULL DEFAULT '',
					location    TEXT NOT NULL DEFAULT '',
					created_at  DATETIME NOT NULL DEFAULT (datetime('now')),
					updated_at  DATETIME NOT NULL DEFAULT (datetime('now'))
				)`,
			})
		},
		Revert: func(ctx context.Context, tx *sql.Tx) error {
			// Children first, so the drops never trip their own FKs.
			return execAll(ctx, tx, []string{
				`DROP TABLE IF EXISTS story_chapter`,
				`DROP TABLE IF EXISTS story_part`,
				`DROP TABLE IF EXISTS story_episode`,
				`DROP TABLE IF EXISTS story_arc`,
				`DROP TABLE IF EXISTS story_timeline`,
			})
		},
	}
}
