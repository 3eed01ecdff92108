package part

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

func (service *Service) ListParts(ctx context.Context, timelineName, arcName string, episodeNumber int) ([]*Part, error) {
	if _, err := service.repo.ResolveEpisode(ctx, timelineName, arcName, episodeNumber); err != nil {
		return nil, err
	}
	return service.repo.ListByEpisode(ctx, timelineName, arcName, episodeNumber)
}

func (service *Service) GetPart(ctx context.Context, timelineName, arcName string, episodeNumber, number int) (*Part, error) {
	return service.repo.FindByNumber(ctx, timelineName, arcName, episodeNumber, number)
}

// CreatePart validates the payload, derives the slug from the title when
// absent, resolves the parent episode, and persists the new part.
func (service *Service) CreatePart(ctx context.Context, timelineName, arcName string, episodeNumber int, part *Part) error {
	if part.Slug == "" {
		part.Slug = slug.From(part.Title)
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, part.Title).MaxLen(FieldTitle, part.Title, 300)
	validator.NonNegative(FieldNumber, part.Number)
	validator.Slug(FieldSlug, part.Slug)
	validator.MaxLen(FieldDescription, part.Description, 5000)

	if err := validator.Err(); err != nil {
		return err
	}

	episodeID, err := service.repo.ResolveEpisode(ctx, timelineName, arcName, episodeNumber)
	if err != nil {
		return err
	}
	part.EpisodeID = episodeID

	if err := service.repo.Create(ctx, part); err != nil {
		return err
	}

	service.logger.Info("part_created",
		slog.String("timeline", timelineName),
		slog.String("arc", arcName),
		slog.Int("episode", episodeNumber),
		slog.Int("number", part.Number),
	)
	return nil
}

// UpdatePart applies a partial update to the part at the given path.
func (service *Service) UpdatePart(ctx context.Context, timelineName, arcName string, episodeNumber, number int, patch *Update) (*Part, error) {
	existing, err := service.repo.FindByNumber(ctx, timelineName, arcName, episodeNumber, number)
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

	service.logger.Info("part_updated",
		slog.String("timeline", timelineName),
		slog.String("arc", arcName),
		slog.Int("episode", episodeNumber),
		slog.Int("number", existing.Number),
	)
	return existing, nil
}

func (service *Service) DeletePart(ctx context.Context, timelineName, arcName string, episodeNumber, number int) error {
	if err := service.repo.Delete(ctx, timelineName, arcName, episodeNumber, number); err != nil {
		return err
	}

	service.logger.Warn("part_deleted",
		slog.String("timeline", timelineName),
		slog.String("arc", arcName),
		slog.Int("episode", episodeNumber),
		slog.Int("number", number),
	)
	return nil
}
