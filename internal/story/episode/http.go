package episode

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

// RegisterRoutes mounts episode routes relative to
// /timelines/{timeline}/arcs/{arc}/episodes.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listEpisodes)
	router.Post("/", handler.createEpisode)
	router.Get("/{episode}", handler.getEpisode)
	router.Patch("/{episode}", handler.updateEpisode)
	router.Delete("/{episode}", handler.deleteEpisode)
}

// episodeNumber parses the {episode} URL segment.
func episodeNumber(request *http.Request) (int, error) {
	raw := requestutil.Param(request, "episode")
	number, err := strconv.Atoi(raw)
	if err != nil {
		return 0, validate.RequiredError("episode", "Episode number must be an integer")
	}
	return number, nil
}

func (handler *Handler) listEpisodes(writer http.ResponseWriter, request *http.Request) {
	timelineName := requestutil.Param(request, "timeline")
	arcName := requestutil.Param(request, "arc")

	episodes, err := handler.service.ListEpisodes(request.Context(), timelineName, arcName)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, episodes)
}

func (handler *Handler) getEpisode(writer http.ResponseWriter, request *http.Request) {
	timelineName := requestutil.Param(request, "timeline")
	arcName := requestutil.Param(request, "arc")

	number, err := episodeNumber(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	episode, err := handler.service.GetEpisode(request.Context(), timelineName, arcName, number)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, episode)
}

func (handler *Handler) createEpisode(writer http.ResponseWriter, request *http.Request) {
	timelineName := requestutil.Param(request, "timeline")
	arcName := requestutil.Param(request, "arc")

	var input Episode
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateEpisode(request.Context(), timelineName, arcName, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateEpisode(writer http.ResponseWriter, request *http.Request) {
	timelineName := requestutil.Param(request, "timeline")
	arcName := requestutil.Param(request, "arc")

	number, err := episodeNumber(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var patch Update
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.UpdateEpisode(request.Context(), timelineName, arcName, number, &patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) deleteEpisode(writer http.ResponseWriter, request *http.Request) {
	timelineName := requestutil.Param(request, "timeline")
	arcName := requestutil.Param(request, "arc")

	number, err := episodeNumber(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteEpisode(request.Context(), timelineName, arcName, number); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
