// Copyright (c) 2026 Taleweave. All rights reserved.
// Author: quyen.lam.dev@gmail.com

/*
Package chapter is the leaf level of the story hierarchy.

A chapter always belongs to an episode and may optionally be grouped under
one of that episode's parts. It is addressed by (timeline, arc, episode
number, chapter number); the part is descriptive, not part of the address.

# Optional Wardrobe Fields

Outfit and Kink are nullable. A NULL marks the field as not applicable to
the chapter, which is distinct from an empty string.
*/
package chapter

import "time"

// # Domain Entity

// Chapter represents one scene of the story with its derived text metrics.
type Chapter struct {
	ID        int64  `json:"-"`
	EpisodeID int64  `json:"-"`
	PartID    *int64 `json:"-"`

	// PartNumber mirrors the parent part's number for reads. On create it
	// selects the part to attach to; nil leaves the chapter directly under
	// the episode.
	PartNumber *int `json:"part_number"`

	Number   int    `json:"number"`
	Pov      string `json:"pov"`
	Title    string `json:"title"`
	Date     string `json:"date"`
	Summary  string `json:"summary"`
	Location string `json:"location"`

	Outfit *string `json:"outfit"`
	Kink   *string `json:"kink"`

	WordCount      int `json:"word_count"`
	CharacterCount int `json:"character_count"`
	ParagraphCount int `json:"paragraph_count"`
	SentenceCount  int `json:"sentence_count"`
	ReadingMinutes int `json:"reading_minutes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Update is a partial-update payload. Nil fields are left unchanged; a
// non-nil PartNumber re-attaches the chapter to another part of the same
// episode.
type Update struct {
	PartNumber *int    `json:"part_number"`
	Number     *int    `json:"number"`
	Pov        *string `json:"pov"`
	Title      *string `json:"title"`
	Date       *string `json:"date"`
	Summary    *string `json:"summary"`
	Location   *string `json:"location"`
	Outfit     *string `json:"outfit"`
	Kink       *string `json:"kink"`

	WordCount      *int `json:"word_count"`
	CharacterCount *int `json:"character_count"`
	ParagraphCount *int `json:"paragraph_count"`
	SentenceCount  *int `json:"sentence_count"`
	ReadingMinutes *int `json:"reading_minutes"`
}

// Global field names for validation
const (
	FieldNumber         = "number"
	FieldPov            = "pov"
	FieldTitle          = "title"
	FieldDate           = "date"
	FieldSummary        = "summary"
	FieldLocation       = "location"
	FieldWordCount      = "word_count"
	FieldCharacterCount = "character_count"
	FieldParagraphCount = "paragraph_count"
	FieldSentenceCount  = "sentence_count"
	FieldReadingMinutes = "reading_minutes"
)
