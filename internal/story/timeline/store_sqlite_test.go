// Copyright (c) 2026 Taleweave. All rights reserved.
// Author: quyen.lam.dev@gmail.com

package timeline_test

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taleweave/taleweave/internal/platform/apperr"
	"github.com/taleweave/taleweave/internal/platform/database/migrations"
	"github.com/taleweave/taleweave/internal/platform/migration"
	"github.com/taleweave/taleweave/internal/platform/sqlite"
	"github.com/taleweave/taleweave/internal/story/timeline"
	"github.com/taleweave/taleweave/pkg/pointer"
)

func testService(t *testing.T) (*timeline.Service, *sql.DB) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := sqlite.Open(context.Background(), sqlite.MemoryMarker, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	runner := migration.NewRunner(db, migrations.All(), logger)
	require.NoError(t, runner.Run(context.Background()))

	return timeline.NewService(timeline.NewSQLiteRepository(db), logger), db
}

func TestTimeline_CreateGetRoundTrip(t *testing.T) {
	service, _ := testService(t)
	ctx := context.Background()

	created := &timeline.Timeline{Name: "prime", Description: "The canonical continuity"}
	require.NoError(t, service.CreateTimeline(ctx, created))
	assert.False(t, created.CreatedAt.IsZero())

	found, err := service.GetTimeline(ctx, "prime")
	require.NoError(t, err)
	assert.Equal(t, "prime", found.Name)
	assert.Equal(t, "The canonical continuity", found.Description)
}

func TestTimeline_GetMissingReturnsNotFound(t *testing.T) {
	service, _ := testService(t)

	_, err := service.GetTimeline(context.Background(), "nowhere")
	assert.True(t, apperr.IsNotFound(err))
}

func TestTimeline_DuplicateNameConflicts(t *testing.T) {
	service, _ := testService(t)
	ctx := context.Background()

	require.NoError(t, service.CreateTimeline(ctx, &timeline.Timeline{Name: "prime"}))

	err := service.CreateTimeline(ctx, &timeline.Timeline{Name: "prime"})
	assert.True(t, apperr.IsConflict(err))
}

func TestTimeline_ValidationRejectsEmptyName(t *testing.T) {
	service, _ := testService(t)

	err := service.CreateTimeline(context.Background(), &timeline.Timeline{Name: ""})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

// Partial updates must only touch the fields present in the patch.
func TestTimeline_PartialUpdateLeavesOtherFieldsAlone(t *testing.T) {
	service, _ := testService(t)
	ctx := context.Background()

	require.NoError(t, service.CreateTimeline(ctx, &timeline.Timeline{
		Name:        "prime",
		Description: "original description",
	}))

	updated, err := service.UpdateTimeline(ctx, "prime", &timeline.Update{
		Description: pointer.To("revised description"),
	})
	require.NoError(t, err)
	assert.Equal(t, "prime", updated.Name)
	assert.Equal(t, "revised description", updated.Description)

	renamed, err := service.UpdateTimeline(ctx, "prime", &timeline.Update{
		Name: pointer.To("prime-rebooted"),
	})
	require.NoError(t, err)
	assert.Equal(t, "prime-rebooted", renamed.Name)
	assert.Equal(t, "revised description", renamed.Description)

	// The old name no longer resolves.
	_, err = service.GetTimeline(ctx, "prime")
	assert.True(t, apperr.IsNotFound(err))
}

func TestTimeline_ListReturnsAll(t *testing.T) {
	service, _ := testService(t)
	ctx := context.Background()

	for _, name := range []string{"prime", "mirror", "dreaming"} {
		require.NoError(t, service.CreateTimeline(ctx, &timeline.Timeline{Name: name}))
	}

	all, err := service.ListTimelines(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestTimeline_DeleteMissingReturnsNotFound(t *testing.T) {
	service, _ := testService(t)

	err := service.DeleteTimeline(context.Background(), "nowhere")
	assert.True(t, apperr.IsNotFound(err))
}
