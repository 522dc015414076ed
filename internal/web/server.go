// Package web provides the HTTP API for the workout music explorer.
package web

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/justestif/go-workout-music-explorer/internal/explorer"
	"github.com/justestif/go-workout-music-explorer/internal/metrics"
)

const (
	// DefaultAddr is the default server address.
	DefaultAddr = "127.0.0.1:8080"

	// DefaultResultLimit caps filter results when the request sets no limit.
	DefaultResultLimit = 20
)

// ServerConfig holds server configuration.
type ServerConfig struct {
	Addr           string
	Explorer       *explorer.Service
	Metrics        *metrics.Registry
	DefaultDataset string
	ResultLimit    int
}

// Server is the HTTP server for the explorer API.
type Server struct {
	router   chi.Router
	server   *http.Server
	sessions *SessionStore
	handlers *Handlers
	metrics  *metrics.Registry
}

// NewServer creates a new web server.
func NewServer(cfg ServerConfig) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.ResultLimit <= 0 {
		cfg.ResultLimit = DefaultResultLimit
	}

	sessions := NewSessionStore()
	router := chi.NewRouter()

	s := &Server{
		router:   router,
		sessions: sessions,
		handlers: NewHandlers(cfg.Explorer, sessions, cfg.DefaultDataset, cfg.ResultLimit),
		metrics:  cfg.Metrics,
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // dataset loads may call out to Spotify and Last.fm
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware for the router.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
}

// setupRoutes configures routes for the application.
func (s *Server) setupRoutes() {
	h := s.handlers

	s.router.Get("/healthz", h.Health)
	if s.metrics != nil {
		s.router.Handle("/metrics", s.metrics.Handler())
	}

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/datasets", h.ListDatasets)
		r.Post("/datasets/{id}/select", h.SelectDataset)
		r.Post("/datasets/{id}/reload", h.ReloadDataset)

		r.Get("/songs", h.Songs)
		r.Get("/graph", h.Graph)
		r.Get("/timeline", h.Timeline)
		r.Get("/workouts", h.Workouts)
		r.Get("/clusters", h.Clusters)

		r.Get("/zones", h.Zones)
		r.Post("/zones/zoom", h.ZoomIn)
		r.Post("/zones/out", h.ZoomOut)

		r.Get("/selection", h.Selection)
		r.Post("/selection/click", h.Click)
		r.Post("/selection/choose", h.Choose)
		r.Delete("/selection", h.ResetSelection)

		r.Post("/filter", h.Filter)
	})
}

// Handler returns the configured router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	log.Printf("Starting server at http://%s", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Run starts the server and handles graceful shutdown on interrupt signals.
func (s *Server) Run() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-stop:
		log.Println("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	log.Println("Server stopped")
	return nil
}
