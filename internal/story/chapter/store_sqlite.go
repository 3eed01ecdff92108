package chapter

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

// chapterColumns is the SELECT list shared by the read queries. The part
// number comes from a LEFT JOIN so unattached chapters scan it as NULL.
func chapterColumns() string {
	return fmt.Sprintf(
		"c.%s, c.%s, c.%s, p.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, "+
			"c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s",
		schema.StoryChapter.ID, schema.StoryChapter.EpisodeID, schema.StoryChapter.PartID,
		schema.StoryPart.Number,
		schema.StoryChapter.Number, schema.StoryChapter.Pov, schema.StoryChapter.Title,
		schema.StoryChapter.Date, schema.StoryChapter.Summary, schema.StoryChapter.Location,
		schema.StoryChapter.Outfit, schema.StoryChapter.Kink,
		schema.StoryChapter.WordCount, schema.StoryChapter.CharacterCount,
		schema.StoryChapter.ParagraphCount, schema.StoryChapter.SentenceCount,
		schema.StoryChapter.ReadingMinutes,
		schema.StoryChapter.CreatedAt, schema.StoryChapter.UpdatedAt,
	)
}

// pathJoin joins story_chapter up to its timeline for human-path addressing
// and left-joins the optional part.
func pathJoin() string {
	return fmt.Sprintf(`
		FROM %s c
		JOIN %s e ON c.%s = e.%s
		JOIN %s a ON e.%s = a.%s
		JOIN %s t ON a.%s = t.%s
		LEFT JOIN %s p ON c.%s = p.%s
		WHERE t.%s = ? AND a.%s = ? AND e.%s = ?`,
		schema.StoryChapter.Table,
		schema.StoryEpisode.Table, schema.StoryChapter.EpisodeID, schema.StoryEpisode.ID,
		schema.StoryArc.Table, schema.StoryEpisode.ArcID, schema.StoryArc.ID,
		schema.StoryTimeline.Table, schema.StoryArc.TimelineID, schema.StoryTimeline.ID,
		schema.StoryPart.Table, schema.StoryChapter.PartID, schema.StoryPart.ID,
		schema.StoryTimeline.Name, schema.StoryArc.Name, schema.StoryEpisode.Number,
	)
}

func scanChapter(row interface{ Scan(...any) error }, c *Chapter) error {
	return row.Scan(
		&c.ID, &c.EpisodeID, &c.PartID, &c.PartNumber,
		&c.Number, &c.Pov, &c.Title, &c.Date, &c.Summary, &c.Location,
		&c.Outfit, &c.Kink,
		&c.WordCount, &c.CharacterCount, &c.ParagraphCount, &c.SentenceCount,
		&c.ReadingMinutes,
		&c.CreatedAt, &c.UpdatedAt,
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

func (repository *SQLiteRepository) ResolvePart(ctx context.Context, episodeID int64, partNumber int) (int64, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE %s = ? AND %s = ? LIMIT 1
	`,
		schema.StoryPart.ID, schema.StoryPart.Table,
		schema.StoryPart.EpisodeID, schema.StoryPart.Number,
	)

	var id int64
	err := repository.db.QueryRowContext(ctx, query, episodeID, partNumber).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, apperr.NotFound("Part")
		}
		return 0, dberr.Wrap(err, "resolve_part")
	}
	return id, nil
}

func (repository *SQLiteRepository) ListByEpisode(ctx context.Context, timelineName, arcName string, episodeNumber, limit, offset int) ([]*Chapter, int, error) {
	query := fmt.Sprintf(`SELECT %s, COUNT(*) OVER() AS total_count %s ORDER BY c.%s ASC LIMIT ? OFFSET ?`,
		chapterColumns(), pathJoin(), schema.StoryChapter.Number,
	)

	rows, err := repository.db.QueryContext(ctx, query, timelineName, arcName, episodeNumber, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_chapters")
	}
	defer rows.Close()

	var chapters []*Chapter
	var total int
	for rows.Next() {
		c := &Chapter{}
		if err := rows.Scan(
			&c.ID, &c.EpisodeID, &c.PartID, &c.PartNumber,
			&c.Number, &c.Pov, &c.Title, &c.Date, &c.Summary, &c.Location,
			&c.Outfit, &c.Kink,
			&c.WordCount, &c.CharacterCount, &c.ParagraphCount, &c.SentenceCount,
			&c.ReadingMinutes,
			&c.CreatedAt, &c.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_chapter")
		}
		chapters = append(chapters, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate_chapters")
	}

	return chapters, total, nil
}

func (repository *SQLiteRepository) FindByNumber(ctx context.Context, timelineName, arcName string, episodeNumber, number int) (*Chapter, error) {
	query := fmt.Sprintf(`SELECT %s %s AND c.%s = ? LIMIT 1`,
		chapterColumns(), pathJoin(), schema.StoryChapter.Number,
	)

	c := &Chapter{}
	row := repository.db.QueryRowContext(ctx, query, timelineName, arcName, episodeNumber, number)
	if err := scanChapter(row, c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("Chapter")
		}
		return nil, dberr.Wrap(err, "get_chapter")
	}

	return c, nil
}

func (repository *SQLiteRepository) Create(ctx context.Context, c *Chapter) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING %s, %s, %s
	`,
		schema.StoryChapter.Table,
		schema.StoryChapter.EpisodeID, schema.StoryChapter.PartID, schema.StoryChapter.Number,
		schema.StoryChapter.Pov, schema.StoryChapter.Title, schema.StoryChapter.Date,
		schema.StoryChapter.Summary, schema.StoryChapter.Location,
		schema.StoryChapter.Outfit, schema.StoryChapter.Kink,
		schema.StoryChapter.WordCount, schema.StoryChapter.CharacterCount,
		schema.StoryChapter.ParagraphCount, schema.StoryChapter.SentenceCount,
		schema.StoryChapter.ReadingMinutes,
		schema.StoryChapter.ID, schema.StoryChapter.CreatedAt, schema.StoryChapter.UpdatedAt,
	)

	err := repository.db.QueryRowContext(ctx, query,
		c.EpisodeID, c.PartID, c.Number,
		c.Pov, c.Title, c.Date, c.Summary, c.Location,
		c.Outfit, c.Kink,
		c.WordCount, c.CharacterCount, c.ParagraphCount, c.SentenceCount,
		c.ReadingMinutes,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return dberr.Wrap(err, "create_chapter")
}

func (repository *SQLiteRepository) Update(ctx context.Context, c *Chapter) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = ?, %s = ?, %s = ?, %s = ?, %s = ?, %s = ?, %s = ?,
			%s = ?, %s = ?, %s = ?, %s = ?, %s = ?, %s = ?, %s = ?,
			%s = datetime('now')
		WHERE %s = ?
		RETURNING %s
	`,
		schema.StoryChapter.Table,
		schema.StoryChapter.PartID, schema.StoryChapter.Number, schema.StoryChapter.Pov,
		schema.StoryChapter.Title, schema.StoryChapter.Date, schema.StoryChapter.Summary,
		schema.StoryChapter.Location,
		schema.StoryChapter.Outfit, schema.StoryChapter.Kink,
		schema.StoryChapter.WordCount, schema.StoryChapter.CharacterCount,
		schema.StoryChapter.ParagraphCount, schema.StoryChapter.SentenceCount,
		schema.StoryChapter.ReadingMinutes,
		schema.StoryChapter.UpdatedAt,
		schema.StoryChapter.ID,
		schema.StoryChapter.UpdatedAt,
	)

	err := repository.db.QueryRowContext(ctx, query,
		c.PartID, c.Number, c.Pov, c.Title, c.Date, c.Summary, c.Location,
		c.Outfit, c.Kink,
		c.WordCount, c.CharacterCount, c.ParagraphCount, c.SentenceCount,
		c.ReadingMinutes,
		c.ID,
	).Scan(&c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("Chapter")
	}
	return dberr.Wrap(err, "update_chapter")
}

func (repository *SQLiteRepository) Delete(ctx context.Context, timelineName, arcName string, episodeNumber, number int) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE %s IN (
			SELECT c.%s %s AND c.%s = ?
		)
	`,
		schema.StoryChapter.Table,
		schema.StoryChapter.ID,
		schema.StoryChapter.ID, pathJoin(), schema.StoryChapter.Number,
	)

	result, err := repository.db.ExecContext(ctx, query, timelineName, arcName, episodeNumber, number)
	if err != nil {
		return dberr.Wrap(err, "delete_chapter")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return dberr.Wrap(err, "delete_chapter_rows_affected")
	}
	if affected == 0 {
		return apperr.NotFound("Chapter")
	}

	return nil
}
