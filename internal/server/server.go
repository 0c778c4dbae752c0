package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/HerbHall/stinger/internal/version"
)

// RouteRegistrar is implemented by API handlers that mount their routes on
// the shared router.
type RouteRegistrar interface {
	RegisterRoutes(r chi.Router)
}

// Options configures the HTTP server.
type Options struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	CORSAllowedOrigins []string
	CORSAllowedMethods []string

	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Addr:               "0.0.0.0:8080",
		ReadTimeout:        15 * time.Second,
		WriteTimeout:       30 * time.Second,
		IdleTimeout:        60 * time.Second,
		CORSAllowedOrigins: []string{"*"},
		CORSAllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		RateLimitEnabled:   true,
		RateLimitRequests:  300,
		RateLimitWindow:    time.Minute,
	}
}

// Server is the Stinger HTTP server.
type Server struct {
	httpServer *http.Server
	router     chi.Router
	logger     *zap.Logger
}

// New creates a Server and mounts the routes of every registrar.
func New(opts Options, logger *zap.Logger, registrars ...RouteRegistrar) *Server {
	r := chi.NewRouter()

	s := &Server{
		httpServer: &http.Server{
			Addr:         opts.Addr,
			Handler:      r,
			ReadTimeout:  opts.ReadTimeout,
			WriteTimeout: opts.WriteTimeout,
			IdleTimeout:  opts.IdleTimeout,
		},
		router: r,
		logger: logger,
	}

	r.Use(chimiddleware.Recoverer)
	r.Use(requestID)
	r.Use(s.instrument)
	r.Use(corsMiddleware(opts))
	if opts.RateLimitEnabled {
		r.Use(rateLimit(opts))
	}

	s.registerCoreRoutes()
	for _, reg := range registrars {
		reg.RegisterRoutes(r)
	}

	return s
}

// registerCoreRoutes sets up routes that are always available.
func (s *Server) registerCoreRoutes() {
	s.router.Get("/api/health", s.handleHealth)
	s.router.Method(http.MethodGet, "/metrics", promhttp.Handler())
	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		NotFound(w, "no route for "+r.URL.Path, r.URL.Path)
	})
}

// Handler returns the root handler, including all middleware.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start begins serving HTTP requests. It blocks until the server stops.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("X-Stinger-Version", version.Short())
	WriteJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "stinger",
		"version": version.Map(),
	})
}
