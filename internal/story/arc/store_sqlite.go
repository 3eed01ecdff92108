package arc

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

func (repository *SQLiteRepository) ResolveTimeline(ctx context.Context, timelineName string) (int64, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ?`,
		schema.StoryTimeline.ID, schema.StoryTimeline.Table, schema.StoryTimeline.Name,
	)

	var id int64
	err := repository.db.QueryRowContext(ctx, query, timelineName).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, apperr.NotFound("Timeline")
		}
		return 0, dberr.Wrap(err, "resolve_timeline")
	}
	return id, nil
}

func (repository *SQLiteRepository) ListByTimeline(ctx context.Context, timelineName string) ([]*Arc, error) {
	query := fmt.Sprintf(`
		SELECT a.%s, a.%s, a.%s, a.%s, a.%s, a.%s, a.%s
		FROM %s a
		JOIN %s t ON a.%s = t.%s
		WHERE t.%s = ?
		ORDER BY a.%s ASC
	`,
		schema.StoryArc.ID, schema.StoryArc.TimelineID, schema.StoryArc.Name, schema.StoryArc.Number,
		schema.StoryArc.Description, schema.StoryArc.CreatedAt, schema.StoryArc.UpdatedAt,
		schema.StoryArc.Table,
		schema.StoryTimeline.Table, schema.StoryArc.TimelineID, schema.StoryTimeline.ID,
		schema.StoryTimeline.Name,
		schema.StoryArc.Number,
	)

	rows, err := repository.db.QueryContext(ctx, query, timelineName)
	if err != nil {
		return nil, dberr.Wrap(err, "list_arcs")
	}
	defer rows.Close()

	var arcs []*Arc
	for rows.Next() {
		a := &Arc{}
		if err := rows.Scan(&a.ID, &a.TimelineID, &a.Name, &a.Number, &a.Description, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_arc")
		}
		arcs = append(arcs, a)
	}

	return arcs, dberr.Wrap(rows.Err(), "iterate_arcs")
}

func (repository *SQLiteRepository) FindByName(ctx context.Context, timelineName, arcName string) (*Arc, error) {
	query := fmt.Sprintf(`
		SELECT a.%s, a.%s, a.%s, a.%s, a.%s, a.%s, a.%s
		FROM %s a
		JOIN %s t ON a.%s = t.%s
		WHERE t.%s = ? AND a.%s = ?
	`,
		schema.StoryArc.ID, schema.StoryArc.TimelineID, schema.StoryArc.Name, schema.StoryArc.Number,
		schema.StoryArc.Description, schema.StoryArc.CreatedAt, schema.StoryArc.UpdatedAt,
		schema.StoryArc.Table,
		schema.StoryTimeline.Table, schema.StoryArc.TimelineID, schema.StoryTimeline.ID,
		schema.StoryTimeline.Name, schema.StoryArc.Name,
	)

	a := &Arc{}
	err := repository.db.QueryRowContext(ctx, query, timelineName, arcName).Scan(
		&a.ID, &a.TimelineID, &a.Name, &a.Number, &a.Description, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("Arc")
		}
		return nil, dberr.Wrap(err, "get_arc")
	}

	return a, nil
}

func (repository *SQLiteRepository) Create(ctx context.Context, a *Arc) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES (?, ?, ?, ?)
		RETURNING %s, %s, %s
	`,
		schema.StoryArc.Table,
		schema.StoryArc.TimelineID, schema.StoryArc.Name, schema.StoryArc.Number, schema.StoryArc.Description,
		schema.StoryArc.ID, schema.StoryArc.CreatedAt, schema.StoryArc.UpdatedAt,
	)

	err := repository.db.QueryRowContext(ctx, query, a.TimelineID, a.Name, a.Number, a.Description).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	return dberr.Wrap(err, "create_arc")
}

func (repository *SQLiteRepository) Update(ctx context.Context, a *Arc) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = ?, %s = ?, %s = ?, %s = datetime('now')
		WHERE %s = ?
		RETURNING %s
	`,
		schema.StoryArc.Table,
		schema.StoryArc.Name, schema.StoryArc.Number, schema.StoryArc.Description, schema.StoryArc.UpdatedAt,
		schema.StoryArc.ID,
		schema.StoryArc.UpdatedAt,
	)

	err := repository.db.QueryRowContext(ctx, query, a.Name, a.Number, a.Description, a.ID).Scan(&a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("Arc")
	}
	return dberr.Wrap(err, "update_arc")
}

func (repository *SQLiteRepository) Delete(ctx context.Context, timelineName, arcName string) error {
	// Address the row by its human path via a correlated subquery; the
	// cascade does the rest.
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE %s = (SELECT %s FROM %s WHERE %s = ?) AND %s = ?
	`,
		schema.StoryArc.Table,
		schema.StoryArc.TimelineID, schema.StoryTimeline.ID, schema.StoryTimeline.Table, schema.StoryTimeline.Name,
		schema.StoryArc.Name,
	)

	result, err := repository.db.ExecContext(ctx, query, timelineName, arcName)
	if err != nil {
		return dberr.Wrap(err, "delete_arc")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return dberr.Wrap(err, "delete_arc_rows_affected")
	}
	if affected == 0 {
		return apperr.NotFound("Arc")
	}

	return nil
}
