package arc

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

// RegisterRoutes mounts arc routes relative to /timelines/{timeline}/arcs.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listArcs)
	router.Post("/", handler.createArc)
	router.Get("/{arc}", handler.getArc)
	router.Patch("/{arc}", handler.updateArc)
	router.Delete("/{arc}", handler.deleteArc)
}

func (handler *Handler) listArcs(writer http.ResponseWriter, request *http.Request) {
	timelineName := requestutil.Param(request, "timeline")

	arcs, err := handler.service.ListArcs(request.Context(), timelineName)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, arcs)
}

func (handler *Handler) getArc(writer http.ResponseWriter, request *http.Request) {
	timelineName := requestutil.Param(request, "timeline")
	arcName := requestutil.Param(request, "arc")

	arc, err := handler.service.GetArc(request.Context(), timelineName, arcName)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, arc)
}

func (handler *Handler) createArc(writer http.ResponseWriter, request *http.Request) {
	timelineName := requestutil.Param(request, "timeline")

	var input Arc
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateArc(request.Context(), timelineName, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateArc(writer http.ResponseWriter, request *http.Request) {
	timelineName := requestutil.Param(request, "timeline")
	arcName := requestutil.Param(request, "arc")

	var patch Update
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.UpdateArc(request.Context(), timelineName, arcName, &patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) deleteArc(writer http.ResponseWriter, request *http.Request) {
	timelineName := requestutil.Param(request, "timeline")
	arcName := requestutil.Param(request, "arc")

	if err := handler.service.DeleteArc(request.Context(), timelineName, arcName); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
