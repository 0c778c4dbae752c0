package trailer

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/HerbHall/stinger/internal/server"
	pkgcatalog "github.com/HerbHall/stinger/pkg/catalog"
)

// Handler serves trailer lookups.
type Handler struct {
	svc    *Service
	logger *zap.Logger
}

// NewHandler creates a new trailer API handler.
func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// RegisterRoutes implements server.RouteRegistrar.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/api/movies/{id}/trailer", h.handleTrailer)
}

// handleTrailer returns the first trailer video id found for a movie.
//
//	@Summary		Find movie trailer
//	@Description	Searches for "<title> <year> trailer" and returns the first video id, or an empty id when none is found.
//	@Tags			movies
//	@Produce		json
//	@Param			id path int true "Movie ID"
//	@Success		200 {object} Trailer
//	@Failure		400 {object} server.Problem
//	@Failure		404 {object} server.Problem
//	@Failure		502 {object} server.Problem
//	@Failure		503 {object} server.Problem
//	@Router			/movies/{id}/trailer [get]
func (h *Handler) handleTrailer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		server.BadRequest(w, "id must be an integer", r.URL.Path)
		return
	}

	t, err := h.svc.Lookup(r.Context(), id)
	switch {
	case err == nil:
		server.WriteJSON(w, http.StatusOK, t)
	case errors.Is(err, pkgcatalog.ErrItemNotFound):
		server.NotFound(w, fmt.Sprintf("movie %d not found", id), r.URL.Path)
	case errors.Is(err, ErrUnavailable):
		server.Unavailable(w, "trailer search is temporarily unavailable", r.URL.Path)
	case errors.Is(err, ErrUpstream):
		server.BadGateway(w, "trailer search failed", r.URL.Path)
	default:
		h.logger.Error("trailer lookup failed", zap.Int("id", id), zap.Error(err))
		server.InternalError(w, "trailer lookup failed", r.URL.Path)
	}
}
