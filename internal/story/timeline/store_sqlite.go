package timeline

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

func (repository *SQLiteRepository) List(ctx context.Context) ([]*Timeline, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		ORDER BY %s ASC
	`,
		schema.StoryTimeline.ID, schema.StoryTimeline.Name, schema.StoryTimeline.Description,
		schema.StoryTimeline.CreatedAt, schema.StoryTimeline.UpdatedAt,
		schema.StoryTimeline.Table,
		schema.StoryTimeline.Name,
	)

	rows, err := repository.db.QueryContext(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_timelines")
	}
	defer rows.Close()

	var timelines []*Timeline
	for rows.Next() {
		t := &Timeline{}
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_timeline")
		}
		timelines = append(timelines, t)
	}

	return timelines, dberr.Wrap(rows.Err(), "iterate_timelines")
}

func (repository *SQLiteRepository) FindByName(ctx context.Context, name string) (*Timeline, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = ?
	`,
		schema.StoryTimeline.ID, schema.StoryTimeline.Name, schema.StoryTimeline.Description,
		schema.StoryTimeline.CreatedAt, schema.StoryTimeline.UpdatedAt,
		schema.StoryTimeline.Table,
		schema.StoryTimeline.Name,
	)

	t := &Timeline{}
	err := repository.db.QueryRowContext(ctx, query, name).Scan(
		&t.ID, &t.Name, &t.Description, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("Timeline")
		}
		return nil, dberr.Wrap(err, "get_timeline")
	}

	return t, nil
}

func (repository *SQLiteRepository) Create(ctx context.Context, t *Timeline) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES (?, ?)
		RETURNING %s, %s, %s
	`,
		schema.StoryTimeline.Table, schema.StoryTimeline.Name, schema.StoryTimeline.Description,
		schema.StoryTimeline.ID, schema.StoryTimeline.CreatedAt, schema.StoryTimeline.UpdatedAt,
	)

	err := repository.db.QueryRowContext(ctx, query, t.Name, t.Description).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	return dberr.Wrap(err, "create_timeline")
}

func (repository *SQLiteRepository) Update(ctx context.Context, t *Timeline) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = ?, %s = ?, %s = datetime('now')
		WHERE %s = ?
		RETURNING %s
	`,
		schema.StoryTimeline.Table,
		schema.StoryTimeline.Name, schema.StoryTimeline.Description, schema.StoryTimeline.UpdatedAt,
		schema.StoryTimeline.ID,
		schema.StoryTimeline.UpdatedAt,
	)

	err := repository.db.QueryRowContext(ctx, query, t.Name, t.Description, t.ID).Scan(&t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("Timeline")
	}
	return dberr.Wrap(err, "update_timeline")
}

func (repository *SQLiteRepository) DeleteByName(ctx context.Context, name string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`,
		schema.StoryTimeline.Table, schema.StoryTimeline.Name,
	)

	result, err := repository.db.ExecContext(ctx, query, name)
	if err != nil {
		return dberr.Wrap(err, "delete_timeline")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return dberr.Wrap(err, "delete_timeline_rows_affected")
	}
	if affected == 0 {
		return apperr.NotFound("Timeline")
	}

	return nil
}
