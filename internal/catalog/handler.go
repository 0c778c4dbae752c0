package catalog

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/HerbHall/stinger/internal/metrics"
	"github.com/HerbHall/stinger/internal/server"
	pkgcatalog "github.com/HerbHall/stinger/pkg/catalog"
)

// Result sizes for the fixed-size listings.
const (
	popularLimit = 10
	genreLimit   = 25
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// listParams holds the decoded rating bounds of a filtered listing.
type listParams struct {
	MinRating float64 `validate:"gte=0,lte=10"`
	MaxRating float64 `validate:"gte=0,lte=10,gtefield=MinRating"`
}

// Handler serves the catalog query API.
type Handler struct {
	engine *Engine
	logger *zap.Logger
}

// NewHandler creates a new catalog API handler.
func NewHandler(engine *Engine, logger *zap.Logger) *Handler {
	return &Handler{engine: engine, logger: logger}
}

// RegisterRoutes implements server.RouteRegistrar.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/api/home", h.handleHome)
	r.Get("/api/streaming-services", h.handleStreamingServices)
	r.Route("/api/movies", func(r chi.Router) {
		r.Get("/", h.handleListFiltered)
		r.Get("/all", h.handleListAll)
		r.Get("/search", h.handleSearch)
		r.Get("/popular", h.handlePopular)
		r.Get("/genre/{genre}", h.handleTopByGenre)
		r.Get("/genre/{genre}/all", h.handleAllByGenre)
		r.Get("/{id}", h.handleGet)
	})
}

func (h *Handler) handleHome(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Stinger"))
}

// handleStreamingServices returns the distinct streaming services.
//
//	@Summary		List streaming services
//	@Description	Returns every streaming service offered by any movie, sorted ignoring case.
//	@Tags			movies
//	@Produce		json
//	@Success		200 {array} string
//	@Router			/streaming-services [get]
func (h *Handler) handleStreamingServices(w http.ResponseWriter, _ *http.Request) {
	services := h.engine.StreamingServices()
	observe("streaming_services", len(services))
	server.WriteJSON(w, http.StatusOK, services)
}

// handleListFiltered returns movies matching facet and rating filters.
//
//	@Summary		Filter movies
//	@Description	Filters by streaming services and genres (comma separated, any match) and an inclusive rating range.
//	@Tags			movies
//	@Produce		json
//	@Param			services query string false "Comma-separated streaming services"
//	@Param			genres query string false "Comma-separated genres"
//	@Param			minRating query number false "Minimum vote average" default(0)
//	@Param			maxRating query number false "Maximum vote average" default(10)
//	@Param			sort query string false "alphabetical, rating or popularity" default(alphabetical)
//	@Success		200 {array} pkgcatalog.Item
//	@Failure		400 {object} server.Problem
//	@Router			/movies [get]
func (h *Handler) handleListFiltered(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := listParams{MinRating: MinRating, MaxRating: MaxRating}
	var err error
	if params.MinRating, err = parseFloatParam(q.Get("minRating"), MinRating); err != nil {
		server.BadRequest(w, "minRating must be a number", r.URL.Path)
		return
	}
	if params.MaxRating, err = parseFloatParam(q.Get("maxRating"), MaxRating); err != nil {
		server.BadRequest(w, "maxRating must be a number", r.URL.Path)
		return
	}
	if err := validate.Struct(params); err != nil {
		server.BadRequest(w, "rating range must satisfy 0 <= minRating <= maxRating <= 10", r.URL.Path)
		return
	}

	criteria := Criteria{
		Services: NewSet(splitParam(q["services"])...),
		Genres:   NewSet(splitParam(q["genres"])...),
		Rating:   &RatingRange{Min: params.MinRating, Max: params.MaxRating},
	}
	items := h.engine.ListFiltered(criteria, ParseSortOption(q.Get("sort")))
	observe("list_filtered", len(items))
	server.WriteJSON(w, http.StatusOK, items)
}

// handleListAll returns every movie.
//
//	@Summary		List all movies
//	@Tags			movies
//	@Produce		json
//	@Param			sort query string false "alphabetical, rating or popularity" default(alphabetical)
//	@Success		200 {array} pkgcatalog.Item
//	@Router			/movies/all [get]
func (h *Handler) handleListAll(w http.ResponseWriter, r *http.Request) {
	items := h.engine.List(ParseSortOption(r.URL.Query().Get("sort")))
	observe("list_all", len(items))
	server.WriteJSON(w, http.StatusOK, items)
}

// handleSearch ranks movies against a free-text query.
//
//	@Summary		Search movies
//	@Description	Returns at most 25 movies ranked by relevance across title, keywords, director, cast, studio and overview.
//	@Tags			movies
//	@Produce		json
//	@Param			q query string true "Search text"
//	@Success		200 {array} pkgcatalog.Item
//	@Router			/movies/search [get]
func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	results := h.engine.Search(r.URL.Query().Get("q"))
	observe("search", len(results))

	items := make([]*pkgcatalog.Item, len(results))
	for i := range results {
		items[i] = results[i].Item
	}
	w.Header().Set("X-Result-Count", strconv.Itoa(len(items)))
	server.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) handlePopular(w http.ResponseWriter, _ *http.Request) {
	items := h.engine.Popular(popularLimit)
	observe("popular", len(items))
	server.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) handleTopByGenre(w http.ResponseWriter, r *http.Request) {
	items := h.engine.TopByGenre(chi.URLParam(r, "genre"), genreLimit)
	observe("top_by_genre", len(items))
	server.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) handleAllByGenre(w http.ResponseWriter, r *http.Request) {
	items := h.engine.AllByGenre(chi.URLParam(r, "genre"))
	observe("all_by_genre", len(items))
	server.WriteJSON(w, http.StatusOK, items)
}

// handleGet returns a single movie.
//
//	@Summary		Get movie
//	@Tags			movies
//	@Produce		json
//	@Param			id path int true "Movie ID"
//	@Success		200 {object} pkgcatalog.Item
//	@Failure		400 {object} server.Problem
//	@Failure		404 {object} server.Problem
//	@Router			/movies/{id} [get]
func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		server.BadRequest(w, "id must be an integer", r.URL.Path)
		return
	}

	item, err := h.engine.Get(id)
	if err != nil {
		if errors.Is(err, pkgcatalog.ErrItemNotFound) {
			server.NotFound(w, fmt.Sprintf("movie %d not found", id), r.URL.Path)
			return
		}
		h.logger.Error("failed to get movie", zap.Int("id", id), zap.Error(err))
		server.InternalError(w, "failed to get movie", r.URL.Path)
		return
	}
	server.WriteJSON(w, http.StatusOK, item)
}

// -- helpers --

func observe(op string, n int) {
	metrics.QueryResults.WithLabelValues(op).Observe(float64(n))
}

// splitParam flattens repeated and comma-separated values, dropping blanks.
func splitParam(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func parseFloatParam(s string, def float64) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	return strconv.ParseFloat(s, 64)
}
