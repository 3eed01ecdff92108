package episode

import (
	"context"
	"log/slog"

	"github.com/taleweave/taleweave/internal/platform/validate"
	"github.com/taleweave/taleweave/pkg/slug"
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

func (service *Service) ListEpisodes(ctx context.Context, timelineName, arcName string) ([]*Episode, error) {
	if _, err := service.repo.ResolveArc(ctx, timelineName, arcName); err != nil {
		return nil, err
	}
	return service.repo.ListByArc(ctx, timelineName, arcName)
}

func (service *Service) GetEpisode(ctx context.Context, timelineName, arcName string, number int) (*Episode, error) {
	return service.repo.FindByNumber(ctx, timelineName, arcName, number)
}

// CreateEpisode validates the payload, derives the slug from the title when
// absent, resolves the parent arc, and persists the new episode.
func (service *Service) CreateEpisode(ctx context.Context, timelineName, arcName string, episode *Episode) error {
	if episode.Slug == "" {
		episode.Slug = slug.From(episode.Title)
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, episode.Title).MaxLen(FieldTitle, episode.Title, 300)
	validator.NonNegative(FieldNumber, episode.Number)
	validator.Slug(FieldSlug, episode.Slug)
	validator.MaxLen(FieldDescription, episode.Description, 5000)

	if err := validator.Err(); err != nil {
		return err
	}

	arcID, err := service.repo.ResolveArc(ctx, timelineName, arcName)
	if err != nil {
		return err
	}
	episode.ArcID = arcID

	if err := service.repo.Create(ctx, episode); err != nil {
		return err
	}

	service.logger.Info("episode_created",
		slog.String("timeline", timelineName),
		slog.String("arc", arcName),
		slog.Int("number", episode.Number),
		slog.String("slug", episode.Slug),
	)
	return nil
}

// UpdateEpisode applies a partial update to the episode at the given path.
func (service *Service) UpdateEpisode(ctx context.Context, timelineName, arcName string, number int, patch *Update) (*Episode, error) {
	existing, err := service.repo.FindByNumber(ctx, timelineName, arcName, number)
	if err != nil {
		return nil, err
	}

	if patch.Number != nil {
		existing.Number = *patch.Number
	}
	if patch.Slug != nil {
		existing.Slug = *patch.Slug
	}
	if patch.Title != nil {
		existing.Title = *patch.Title
	}
	if patch.Description != nil {
		existing.Description = *patch.Description
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, existing.Title).MaxLen(FieldTitle, existing.Title, 300)
	validator.NonNegative(FieldNumber, existing.Number)
	validator.Slug(FieldSlug, existing.Slug)
	validator.MaxLen(FieldDescription, existing.Description, 5000)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	service.logger.Info("episode_updated",
		slog.String("timeline", timelineName),
		slog.String("arc", arcName),
		slog.Int("number", existing.Number),
	)
	return existing, nil
}

func (service *Service) DeleteEpisode(ctx context.Context, timelineName, arcName string, number int) error {
	if err := service.repo.Delete(ctx, timelineName, arcName, number); err != nil {
		return err
	}

	service.logger.Warn("episode_deleted",
		slog.String("timeline", timelineName),
		slog.String("arc", arcName),
		slog.Int("number", number),
	)
	return nil
}
