package timeline

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taleweave/taleweave/internal/platform/request"
	"github.com/taleweave/taleweave/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listTimelines)
	router.Post("/", handler.createTimeline)
	router.Get("/{timeline}", handler.getTimeline)
	router.Patch("/{timeline}", handler.updateTimeline)
	router.Delete("/{timeline}", handler.deleteTimeline)
}

func (handler *Handler) listTimelines(writer http.ResponseWriter, request *http.Request) {
	timelines, err := handler.service.ListTimelines(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, timelines)
}

func (handler *Handler) getTimeline(writer http.ResponseWriter, request *http.Request) {
	name := requestutil.Param(request, "timeline")

	timeline, err := handler.service.GetTimeline(request.Context(), name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, timeline)
}

func (handler *Handler) createTimeline(writer http.ResponseWriter, request *http.Request) {
	var input Timeline
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateTimeline(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateTimeline(writer http.ResponseWriter, request *http.Request) {
	name := requestutil.Param(request, "timeline")

	var patch Update
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.UpdateTimeline(request.Context(), name, &patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) deleteTimeline(writer http.ResponseWriter, request *http.Request) {
	name := requestutil.Param(request, "timeline")

	if err := handler.service.DeleteTimeline(request.Context(), name); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
