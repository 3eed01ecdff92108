// Copyright (c) 2026 Taleweave. All rights reserved.
// Author: quyen.lam.dev@gmail.com

package chapter

import (
	"context"
	"log/slog"

	"github.com/taleweave/taleweave/internal/platform/constants"
	"github.com/taleweave/taleweave/internal/platform/validate"
)

// # Service Layer

// Service orchestrates the business logic for chapters.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service] with its required repository.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// # Chapter Operations

/*
ListChapters retrieves one page of an episode's chapters.

The parent episode is resolved first so an empty episode and a missing
episode produce different outcomes (empty page versus NOT_FOUND).

Parameters:
  - ctx: context.Context
  - timelineName, arcName: human-path parent identifiers
  - episodeNumber: episode position within the arc
  - limit, offset: page window (already clamped by the caller)

Returns:
  - []*Chapter: the page, ordered ascending by chapter number
  - int: total chapters in the episode across all pages
  - error: NOT_FOUND for a missing episode, or storage errors
*/
func (service *Service) ListChapters(ctx context.Context, timelineName, arcName string, episodeNumber, limit, offset int) ([]*Chapter, int, error) {
	if _, err := service.repo.ResolveEpisode(ctx, timelineName, arcName, episodeNumber); err != nil {
		return nil, 0, err
	}
	return service.repo.ListByEpisode(ctx, timelineName, arcName, episodeNumber, limit, offset)
}

// GetChapter retrieves the chapter at (timeline, arc, episode, number).
func (service *Service) GetChapter(ctx context.Context, timelineName, arcName string, episodeNumber, number int) (*Chapter, error) {
	return service.repo.FindByNumber(ctx, timelineName, arcName, episodeNumber, number)
}

/*
CreateChapter validates and persists a new chapter.

Description: resolves the parent episode (and the target part when
PartNumber is set), fills the reading-time estimate from the word count
when the caller did not supply one, and persists the record. A missing
parent surfaces as NOT_FOUND before any write happens.

Parameters:
  - ctx: context.Context
  - timelineName, arcName: human-path parent identifiers
  - episodeNumber: episode position within the arc
  - chapter: the payload; ID and timestamps are filled on success

Returns:
  - error: validation, NOT_FOUND, constraint, or storage errors
*/
func (service *Service) CreateChapter(ctx context.Context, timelineName, arcName string, episodeNumber int, chapter *Chapter) error {
	if err := validateChapter(chapter); err != nil {
		return err
	}

	if chapter.ReadingMinutes == 0 {
		chapter.ReadingMinutes = estimateReadingMinutes(chapter.WordCount)
	}

	episodeID, err := service.repo.ResolveEpisode(ctx, timelineName, arcName, episodeNumber)
	if err != nil {
		return err
	}
	chapter.EpisodeID = episodeID

	if chapter.PartNumber != nil {
		partID, err := service.repo.ResolvePart(ctx, episodeID, *chapter.PartNumber)
		if err != nil {
			return err
		}
		chapter.PartID = &partID
	}

	if err := service.repo.Create(ctx, chapter); err != nil {
		return err
	}

	service.logger.Info("chapter_created",
		slog.String("timeline", timelineName),
		slog.String("arc", arcName),
		slog.Int("episode", episodeNumber),
		slog.Int("number", chapter.Number),
	)
	return nil
}

/*
UpdateChapter applies a partial update to the chapter at the given path.

Only non-nil patch fields are overlaid onto the stored record; everything
else keeps its current value. Setting PartNumber re-attaches the chapter to
another part of the same episode. When the patch changes the word count
without also setting reading_minutes, the estimate is recomputed.

Returns the refreshed record.
*/
func (service *Service) UpdateChapter(ctx context.Context, timelineName, arcName string, episodeNumber, number int, patch *Update) (*Chapter, error) {
	existing, err := service.repo.FindByNumber(ctx, timelineName, arcName, episodeNumber, number)
	if err != nil {
		return nil, err
	}

	applyPatch(existing, patch)

	if patch.WordCount != nil && patch.ReadingMinutes == nil {
		existing.ReadingMinutes = estimateReadingMinutes(existing.WordCount)
	}

	if err := validateChapter(existing); err != nil {
		return nil, err
	}

	if patch.PartNumber != nil {
		partID, err := service.repo.ResolvePart(ctx, existing.EpisodeID, *patch.PartNumber)
		if err != nil {
			return nil, err
		}
		existing.PartID = &partID
		existing.PartNumber = patch.PartNumber
	}

	if err := service.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	service.logger.Info("chapter_updated",
		slog.String("timeline", timelineName),
		slog.String("arc", arcName),
		slog.Int("episode", episodeNumber),
		slog.Int("number", existing.Number),
	)
	return existing, nil
}

// DeleteChapter removes the chapter at (timeline, arc, episode, number).
func (service *Service) DeleteChapter(ctx context.Context, timelineName, arcName string, episodeNumber, number int) error {
	if err := service.repo.Delete(ctx, timelineName, arcName, episodeNumber, number); err != nil {
		return err
	}

	service.logger.Warn("chapter_deleted",
		slog.String("timeline", timelineName),
		slog.String("arc", arcName),
		slog.Int("episode", episodeNumber),
		slog.Int("number", number),
	)
	return nil
}

// # Helpers

func validateChapter(chapter *Chapter) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, chapter.Title).MaxLen(FieldTitle, chapter.Title, 300)
	validator.NonNegative(FieldNumber, chapter.Number)
	validator.MaxLen(FieldPov, chapter.Pov, 100)
	validator.MaxLen(FieldLocation, chapter.Location, 300)
	validator.MaxLen(FieldSummary, chapter.Summary, 10000)
	if chapter.Date != "" {
		validator.Date(FieldDate, chapter.Date)
	}
	validator.NonNegative(FieldWordCount, chapter.WordCount)
	validator.NonNegative(FieldCharacterCount, chapter.CharacterCount)
	validator.NonNegative(FieldParagraphCount, chapter.ParagraphCount)
	validator.NonNegative(FieldSentenceCount, chapter.SentenceCount)
	validator.NonNegative(FieldReadingMinutes, chapter.ReadingMinutes)
	return validator.Err()
}

func applyPatch(chapter *Chapter, patch *Update) {
	if patch.Number != nil {
		chapter.Number = *patch.Number
	}
	if patch.Pov != nil {
		chapter.Pov = *patch.Pov
	}
	if patch.Title != nil {
		chapter.Title = *patch.Title
	}
	if patch.Date != nil {
		chapter.Date = *patch.Date
	}
	if patch.Summary != nil {
		chapter.Summary = *patch.Summary
	}
	if patch.Location != nil {
		chapter.Location = *patch.Location
	}
	if patch.Outfit != nil {
		chapter.Outfit = patch.Outfit
	}
	if patch.Kink != nil {
		chapter.Kink = patch.Kink
	}
	if patch.WordCount != nil {
		chapter.WordCount = *patch.WordCount
	}
	if patch.CharacterCount != nil {
		chapter.CharacterCount = *patch.CharacterCount
	}
	if patch.ParagraphCount != nil {
		chapter.ParagraphCount = *patch.ParagraphCount
	}
	if patch.SentenceCount != nil {
		chapter.SentenceCount = *patch.SentenceCount
	}
	if patch.ReadingMinutes != nil {
		chapter.ReadingMinutes = *patch.ReadingMinutes
	}
}

// estimateReadingMinutes rounds the word count up to whole minutes at the
// platform reading speed. Zero words estimate to zero minutes.
func estimateReadingMinutes(words int) int {
	if words <= 0 {
		return 0
	}
	return (words + constants.ReadingWordsPerMinute - 1) / constants.ReadingWordsPerMinute
}
