package part

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taleweave/taleweave/internal/platform/request"
	"github.com/taleweave/taleweave/internal/platform/respond"
	"github.com/taleweave/taleweave/internal/platform/validate"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts part routes relative to
// /timelines/{timeline}/arcs/{arc}/episodes/{episode}/parts.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listParts)
	router.Post("/", handler.createPart)
	router.Get("/{part}", handler.getPart)
	router.Patch("/{part}", handler.updatePart)
	router.Delete("/{part}", handler.deletePart)
}

// pathNumbers parses the numeric URL segments shared by every route.
func pathNumbers(request *http.Request, withPart bool) (episodeNumber, partNumber int, err error) {
	episodeNumber, err = strconv.Atoi(requestutil.Param(request, "episode"))
	if err != nil {
		return 0, 0, validate.RequiredError("episode", "Episode number must be an integer")
	}
	if !withPart {
		return episodeNumber, 0, nil
	}
	partNumber, err = strconv.Atoi(requestutil.Param(request, "part"))
	if err != nil {
		return 0, 0, validate.RequiredError("part", "Part number must be an integer")
	}
	return episodeNumber, partNumber, nil
}

func (handler *Handler) listParts(writer http.ResponseWriter, request *http.Request) {
	timelineName := requestutil.Param(request, "timeline")
	arcName := requestutil.Param(request, "arc")

	episodeNumber, _, err := pathNumbers(request, false)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	parts, err := handler.service.ListParts(request.Context(), timelineName, arcName, episodeNumber)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, parts)
}

func (handler *Handler) getPart(writer http.ResponseWriter, request *http.Request) {
	timelineName := requestutil.Param(request, "timeline")
	arcName := requestutil.Param(request, "arc")

	episodeNumber, partNumber, err := pathNumbers(request, true)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	found, err := handler.service.GetPart(request.Context(), timelineName, arcName, episodeNumber, partNumber)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, found)
}

func (handler *Handler) createPart(writer http.ResponseWriter, request *http.Request) {
	timelineName := requestutil.Param(request, "timeline")
	arcName := requestutil.Param(request, "arc")

	episodeNumber, _, err := pathNumbers(request, false)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Part
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreatePart(request.Context(), timelineName, arcName, episodeNumber, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updatePart(writer http.ResponseWriter, request *http.Request) {
	timelineName := requestutil.Param(request, "timeline")
	arcName := requestutil.Param(request, "arc")

	episodeNumber, partNumber, err := pathNumbers(request, true)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var patch Update
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.UpdatePart(request.Context(), timelineName, arcName, episodeNumber, partNumber, &patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) deletePart(writer http.ResponseWriter, request *http.Request) {
	timelineName := requestutil.Param(request, "timeline")
	arcName := requestutil.Param(request, "arc")

	episodeNumber, partNumber, err := pathNumbers(request, true)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeletePart(request.Context(), timelineName, arcName, episodeNumber, partNumber); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
