package episode

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/taleweave/taleweave/internal/platform/apperr"
	"github.com/taleweave/taleweave/internal/platform/database/schema"
	"github.com/taleweave/taleweave/internal/platform/dberr"
)

// SQLiteRepository implements [Repository] on the embedded store.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// episodeColumns is the SELECT list shared by the read queries.
func episodeColumns() string {
	return fmt.Sprintf("e.%s, e.%s, e.%s, e.%s, e.%s, e.%s, e.%s, e.%s",
		schema.StoryEpisode.ID, schema.StoryEpisode.ArcID, schema.StoryEpisode.Number,
		schema.StoryEpisode.Slug, schema.StoryEpisode.Title, schema.StoryEpisode.Description,
		schema.StoryEpisode.CreatedAt, schema.StoryEpisode.UpdatedAt,
	)
}

// pathJoin joins story_episode to its arc and timeline for human-path
// addressing.
func pathJoin() string {
	return fmt.Sprintf(`
		FROM %s e
		JOIN %s a ON e.%s = a.%s
		JOIN %s t ON a.%s = t.%s
		WHERE t.%s = ? AND a.%s = ?`,
		schema.StoryEpisode.Table,
		schema.StoryArc.Table, schema.StoryEpisode.ArcID, schema.StoryArc.ID,
		schema.StoryTimeline.Table, schema.StoryArc.TimelineID, schema.StoryTimeline.ID,
		schema.StoryTimeline.Name, schema.StoryArc.Name,
	)
}

func (repository *SQLiteRepository) ResolveArc(ctx context.Context, timelineName, arcName string) (int64, error) {
	query := fmt.Sprintf(`
		SELECT a.%s
		FROM %s a
		JOIN %s t ON a.%s = t.%s
		WHERE t.%s = ? AND a.%s = ?
	`,
		schema.StoryArc.ID,
		schema.StoryArc.Table,
		schema.StoryTimeline.Table, schema.StoryArc.TimelineID, schema.StoryTimeline.ID,
		schema.StoryTimeline.Name, schema.StoryArc.Name,
	)

	var id int64
	err := repository.db.QueryRowContext(ctx, query, timelineName, arcName).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, apperr.NotFound("Arc")
		}
		return 0, dberr.Wrap(err, "resolve_arc")
	}
	return id, nil
}

func (repository *SQLiteRepository) ListByArc(ctx context.Context, timelineName, arcName string) ([]*Episode, error) {
	query := fmt.Sprintf(`SELECT %s %s ORDER BY e.%s ASC`,
		episodeColumns(), pathJoin(), schema.StoryEpisode.Number,
	)

	rows, err := repository.db.QueryContext(ctx, query, timelineName, arcName)
	if err != nil {
		return nil, dberr.Wrap(err, "list_episodes")
	}
	defer rows.Close()

	var episodes []*Episode
	for rows.Next() {
		e := &Episode{}
		if err := rows.Scan(&e.ID, &e.ArcID, &e.Number, &e.Slug, &e.Title, &e.Description, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_episode")
		}
		episodes = append(episodes, e)
	}

	return episodes, dberr.Wrap(rows.Err(), "iterate_episodes")
}

func (repository *SQLiteRepository) FindByNumber(ctx context.Context, timelineName, arcName string, number int) (*Episode, error) {
	query := fmt.Sprintf(`SELECT %s %s AND e.%s = ? LIMIT 1`,
		episodeColumns(), pathJoin(), schema.StoryEpisode.Number,
	)

	e := &Episode{}
	err := repository.db.QueryRowContext(ctx, query, timelineName, arcName, number).Scan(
		&e.ID, &e.ArcID, &e.Number, &e.Slug, &e.Title, &e.Description, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("Episode")
		}
		return nil, dberr.Wrap(err, "get_episode")
	}

	return e, nil
}

func (repository *SQLiteRepository) Create(ctx context.Context, e *Episode) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES (?, ?, ?, ?, ?)
		RETURNING %s, %s, %s
	`,
		schema.StoryEpisode.Table,
		schema.StoryEpisode.ArcID, schema.StoryEpisode.Number, schema.StoryEpisode.Slug,
		schema.StoryEpisode.Title, schema.StoryEpisode.Description,
		schema.StoryEpisode.ID, schema.StoryEpisode.CreatedAt, schema.StoryEpisode.UpdatedAt,
	)

	err := repository.db.QueryRowContext(ctx, query, e.ArcID, e.Number, e.Slug, e.Title, e.Description).
		Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	return dberr.Wrap(err, "create_episode")
}

func (repository *SQLiteRepository) Update(ctx context.Context, e *Episode) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = ?, %s = ?, %s = ?, %s = ?, %s = datetime('now')
		WHERE %s = ?
		RETURNING %s
	`,
		schema.StoryEpisode.Table,
		schema.StoryEpisode.Number, schema.StoryEpisode.Slug, schema.StoryEpisode.Title,
		schema.StoryEpisode.Description, schema.StoryEpisode.UpdatedAt,
		schema.StoryEpisode.ID,
		schema.StoryEpisode.UpdatedAt,
	)

	err := repository.db.QueryRowContext(ctx, query, e.Number, e.Slug, e.Title, e.Description, e.ID).Scan(&e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("Episode")
	}
	return dberr.Wrap(err, "update_episode")
}

func (repository *SQLiteRepository) Delete(ctx context.Context, timelineName, arcName string, number int) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE %s IN (
			SELECT e.%s %s AND e.%s = ?
		)
	`,
		schema.StoryEpisode.Table,
		schema.StoryEpisode.ID,
		schema.StoryEpisode.ID, pathJoin(), schema.StoryEpisode.Number,
	)

	result, err := repository.db.ExecContext(ctx, query, timelineName, arcName, number)
	if err != nil {
		return dberr.Wrap(err, "delete_episode")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return dberr.Wrap(err, "delete_episode_rows_affected")
	}
	if affected == 0 {
		return apperr.NotFound("Episode")
	}

	return nil
}
