package arc

import (
	"context"
	"log/slog"

	"github.com/taleweave/taleweave/internal/platform/validate"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListArcs(ctx context.Context, timelineName string) ([]*Arc, error) {
	// Distinguish "empty timeline" from "no such timeline".
	if _, err := service.repo.ResolveTimeline(ctx, timelineName); err != nil {
		return nil, err
	}
	return service.repo.ListByTimeline(ctx, timelineName)
}

func (service *Service) GetArc(ctx context.Context, timelineName, arcName string) (*Arc, error) {
	return service.repo.FindByName(ctx, timelineName, arcName)
}

// CreateArc validates the payload, resolves the parent timeline, and
// persists the new arc. A missing timeline is a NOT_FOUND error; the store's
// foreign key remains the backstop against a concurrent timeline delete.
func (service *Service) CreateArc(ctx context.Context, timelineName string, arc *Arc) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, arc.Name).MaxLen(FieldName, arc.Name, 200)
	validator.NonNegative(FieldNumber, arc.Number)
	validator.MaxLen(FieldDescription, arc.Description, 5000)

	if err := validator.Err(); err != nil {
		return err
	}

	timelineID, err := service.repo.ResolveTimeline(ctx, timelineName)
	if err != nil {
		return err
	}
	arc.TimelineID = timelineID

	if err := service.repo.Create(ctx, arc); err != nil {
		return err
	}

	service.logger.Info("arc_created",
		slog.String("timeline", timelineName),
		slog.String("name", arc.Name),
		slog.Int("number", arc.Number),
	)
	return nil
}

// UpdateArc applies a partial update to the arc at (timeline, name).
func (service *Service) UpdateArc(ctx context.Context, timelineName, arcName string, patch *Update) (*Arc, error) {
	existing, err := service.repo.FindByName(ctx, timelineName, arcName)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		existing.Name = *patch.Name
	}
	if patch.Number != nil {
		existing.Number = *patch.Number
	}
	if patch.Description != nil {
		existing.Description = *patch.Description
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, existing.Name).MaxLen(FieldName, existing.Name, 200)
	validator.NonNegative(FieldNumber, existing.Number)
	validator.MaxLen(FieldDescription, existing.Description, 5000)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	service.logger.Info("arc_updated",
		slog.String("timeline", timelineName),
		slog.String("name", existing.Name),
	)
	return existing, nil
}

func (service *Service) DeleteArc(ctx context.Context, timelineName, arcName string) error {
	if err := service.repo.Delete(ctx, timelineName, arcName); err != nil {
		return err
	}

	service.logger.Warn("arc_deleted",
		slog.String("timeline", timelineName),
		slog.String("name", arcName),
	)
	return nil
}
