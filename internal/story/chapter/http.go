// Copyright (c) 2026 Taleweave. All rights reserved.
// Author: quyen.lam.dev@gmail.com

package chapter

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taleweave/taleweave/internal/platform/request"
	"github.com/taleweave/taleweave/internal/platform/respond"
	"github.com/taleweave/taleweave/internal/platform/validate"
	"github.com/taleweave/taleweave/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for chapter management.
type Handler struct {
	service *Service
}

// NewHandler constructs a new chapter [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts chapter routes relative to
// /timelines/{timeline}/arcs/{arc}/episodes/{episode}/chapters.
//
// The chapter list is the only paginated listing in the API; episodes can
// accumulate far more chapters than any other level holds children.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listChapters)
	router.Post("/", handler.createChapter)
	router.Get("/{chapter}", handler.getChapter)
	router.Patch("/{chapter}", handler.updateChapter)
	router.Delete("/{chapter}", handler.deleteChapter)
}

// pathNumbers parses the numeric URL segments shared by every route.
func pathNumbers(request *http.Request, withChapter bool) (episodeNumber, chapterNumber int, err error) {
	episodeNumber, err = strconv.Atoi(requestutil.Param(request, "episode"))
	if err != nil {
		return 0, 0, validate.RequiredError("episode", "Episode number must be an integer")
	}
	if !withChapter {
		return episodeNumber, 0, nil
	}
	chapterNumber, err = strconv.Atoi(requestutil.Param(request, "chapter"))
	if err != nil {
		return 0, 0, validate.RequiredError("chapter", "Chapter number must be an integer")
	}
	return episodeNumber, chapterNumber, nil
}

func (handler *Handler) listChapters(writer http.ResponseWriter, request *http.Request) {
	timelineName := requestutil.Param(request, "timeline")
	arcName := requestutil.Param(request, "arc")

	episodeNumber, _, err := pathNumbers(request, false)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)

	chapters, total, err := handler.service.ListChapters(
		request.Context(), timelineName, arcName, episodeNumber, params.Limit, params.Offset(),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, chapters, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getChapter(writer http.ResponseWriter, request *http.Request) {
	timelineName := requestutil.Param(request, "timeline")
	arcName := requestutil.Param(request, "arc")

	episodeNumber, chapterNumber, err := pathNumbers(request, true)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	found, err := handler.service.GetChapter(request.Context(), timelineName, arcName, episodeNumber, chapterNumber)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, found)
}

func (handler *Handler) createChapter(writer http.ResponseWriter, request *http.Request) {
	timelineName := requestutil.Param(request, "timeline")
	arcName := requestutil.Param(request, "arc")

	episodeNumber, _, err := pathNumbers(request, false)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Chapter
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateChapter(request.Context(), timelineName, arcName, episodeNumber, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateChapter(writer http.ResponseWriter, request *http.Request) {
	timelineName := requestutil.Param(request, "timeline")
	arcName := requestutil.Param(request, "arc")

	episodeNumber, chapterNumber, err := pathNumbers(request, true)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var patch Update
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.UpdateChapter(
		request.Context(), timelineName, arcName, episodeNumber, chapterNumber, &patch,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) deleteChapter(writer http.ResponseWriter, request *http.Request) {
	timelineName := requestutil.Param(request, "timeline")
	arcName := requestutil.Param(request, "arc")

	episodeNumber, chapterNumber, err := pathNumbers(request, true)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteChapter(request.Context(), timelineName, arcName, episodeNumber, chapterNumber); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
