package part

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

// partColumns is the SELECT list shared by the read queries.
func partColumns() string {
	return fmt.Sprintf("p.%s, p.%s, p.%s, p.%s, p.%s, p.%s, p.%s, p.%s",
		schema.StoryPart.ID, schema.StoryPart.EpisodeID, schema.StoryPart.Number,
		schema.StoryPart.Slug, schema.StoryPart.Title, schema.StoryPart.Description,
		schema.StoryPart.CreatedAt, schema.StoryPart.UpdatedAt,
	)
}

// pathJoin joins story_part up to its timeline for human-path addressing.
func pathJoin() string {
	return fmt.Sprintf(`
		FROM %s p
		JOIN %s e ON p.%s = e.%s
		JOIN %s a ON e.%s = a.%s
		JOIN %s t ON a.%s = t.%s
		WHERE t.%s = ? AND a.%s = ? AND e.%s = ?`,
		schema.StoryPart.Table,
		schema.StoryEpisode.Table, schema.StoryPart.EpisodeID, schema.StoryEpisode.ID,
		schema.StoryArc.Table, schema.StoryEpisode.ArcID, schema.StoryArc.ID,
		schema.StoryTimeline.Table, schema.StoryArc.TimelineID, schema.StoryTimeline.ID,
		schema.StoryTimeline.Name, schema.StoryArc.Name, schema.StoryEpisode.Number,
	)
}

func (repository *SQLiteRepository) ResolveEpisode(ctx context.Context, timelineName, arcName string, episodeNumber int) (int64, error) {
	query := fmt.Sprintf(`
		SELECT e.%s
		FROM %s e
		JOIN %s a ON e.%s = a.%s
		JOIN %s t ON a.%s = t.%s
		WHERE t.%s = ? AND a.%s = ? AND e.%s = ?
		LIMIT 1
	`,
		schema.StoryEpisode.ID,
		schema.StoryEpisode.Table,
		schema.StoryArc.Table, schema.StoryEpisode.ArcID, schema.StoryArc.ID,
		schema.StoryTimeline.Table, schema.StoryArc.TimelineID, schema.StoryTimeline.ID,
		schema.StoryTimeline.Name, schema.StoryArc.Name, schema.StoryEpisode.Number,
	)

	var id int64
	err := repository.db.QueryRowContext(ctx, query, timelineName, arcName, episodeNumber).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, apperr.NotFound("Episode")
		}
		return 0, dberr.Wrap(err, "resolve_episode")
	}
	return id, nil
}

func (repository *SQLiteRepository) ListByEpisode(ctx context.Context, timelineName, arcName string, episodeNumber int) ([]*Part, error) {
	query := fmt.Sprintf(`SELECT %s %s ORDER BY p.%s ASC`,
		partColumns(), pathJoin(), schema.StoryPart.Number,
	)

	rows, err := repository.db.QueryContext(ctx, query, timelineName, arcName, episodeNumber)
	if err != nil {
		return nil, dberr.Wrap(err, "list_parts")
	}
	defer rows.Close()

	var parts []*Part
	for rows.Next() {
		p := &Part{}
		if err := rows.Scan(&p.ID, &p.EpisodeID, &p.Number, &p.Slug, &p.Title, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_part")
		}
		parts = append(parts, p)
	}

	return parts, dberr.Wrap(rows.Err(), "iterate_parts")
}

func (repository *SQLiteRepository) FindByNumber(ctx context.Context, timelineName, arcName string, episodeNumber, number int) (*Part, error) {
	query := fmt.Sprintf(`SELECT %s %s AND p.%s = ? LIMIT 1`,
		partColumns(), pathJoin(), schema.StoryPart.Number,
	)

	p := &Part{}
	err := repository.db.QueryRowContext(ctx, query, timelineName, arcName, episodeNumber, number).Scan(
		&p.ID, &p.EpisodeID, &p.Number, &p.Slug, &p.Title, &p.Description, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("Part")
		}
		return nil, dberr.Wrap(err, "get_part")
	}

	return p, nil
}

func (repository *SQLiteRepository) Create(ctx context.Context, p *Part) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES (?, ?, ?, ?, ?)
		RETURNING %s, %s, %s
	`,
		schema.StoryPart.Table,
		schema.StoryPart.EpisodeID, schema.StoryPart.Number, schema.StoryPart.Slug,
		schema.StoryPart.Title, schema.StoryPart.Description,
		schema.StoryPart.ID, schema.StoryPart.CreatedAt, schema.StoryPart.UpdatedAt,
	)

	err := repository.db.QueryRowContext(ctx, query, p.EpisodeID, p.Number, p.Slug, p.Title, p.Description).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	return dberr.Wrap(err, "create_part")
}

func (repository *SQLiteRepository) Update(ctx context.Context, p *Part) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = ?, %s = ?, %s = ?, %s = ?, %s = datetime('now')
		WHERE %s = ?
		RETURNING %s
	`,
		schema.StoryPart.Table,
		schema.StoryPart.Number, schema.StoryPart.Slug, schema.StoryPart.Title,
		schema.StoryPart.Description, schema.StoryPart.UpdatedAt,
		schema.StoryPart.ID,
		schema.StoryPart.UpdatedAt,
	)

	err := repository.db.QueryRowContext(ctx, query, p.Number, p.Slug, p.Title, p.Description, p.ID).Scan(&p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("Part")
	}
	return dberr.Wrap(err, "update_part")
}

func (repository *SQLiteRepository) Delete(ctx context.Context, timelineName, arcName string, episodeNumber, number int) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE %s IN (
			SELECT p.%s %s AND p.%s = ?
		)
	`,
		schema.StoryPart.Table,
		schema.StoryPart.ID,
		schema.StoryPart.ID, pathJoin(), schema.StoryPart.Number,
	)

	result, err := repository.db.ExecContext(ctx, query, timelineName, arcName, episodeNumber, number)
	if err != nil {
		return dberr.Wrap(err, "delete_part")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return dberr.Wrap(err, "delete_part_rows_affected")
	}
	if affected == 0 {
		return apperr.NotFound("Part")
	}

	return nil
}
