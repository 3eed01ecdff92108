package timeline

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

func (service *Service) ListTimelines(ctx context.Context) ([]*Timeline, error) {
	return service.repo.List(ctx)
}

func (service *Service) GetTimeline(ctx context.Context, name string) (*Timeline, error) {
	return service.repo.FindByName(ctx, name)
}

func (service *Service) CreateTimeline(ctx context.Context, timeline *Timeline) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, timeline.Name).MaxLen(FieldName, timeline.Name, 200)
	validator.MaxLen(FieldDescription, timeline.Description, 5000)

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.Create(ctx, timeline); err != nil {
		return err
	}

	service.logger.Info("timeline_created", slog.String("name", timeline.Name))
	return nil
}

// UpdateTimeline applies a partial update to the named timeline. Fields
// absent from the payload keep their stored values; the refreshed record is
// returned.
func (service *Service) UpdateTimeline(ctx context.Context, name string, patch *Update) (*Timeline, error) {
	existing, err := service.repo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		existing.Name = *patch.Name
	}
	if patch.Description != nil {
		existing.Description = *patch.Description
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, existing.Name).MaxLen(FieldName, existing.Name, 200)
	validator.MaxLen(FieldDescription, existing.Description, 5000)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	service.logger.Info("timeline_updated", slog.String("name", existing.Name))
	return existing, nil
}

func (service *Service) DeleteTimeline(ctx context.Context, name string) error {
	if err := service.repo.DeleteByName(ctx, name); err != nil {
		return err
	}

	service.logger.Warn("timeline_deleted", slog.String("name", name))
	return nil
}
