// Package server provides the HTTP API for Omoide.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hyperjump/omoide/internal/config"
	"github.com/hyperjump/omoide/internal/search"
	"github.com/hyperjump/omoide/internal/store"
	"github.com/hyperjump/omoide/internal/watcher"
)

// Server is the HTTP server for the Omoide API.
type Server struct {
	engine  *search.Engine
	store   store.Store
	config  *config.Config
	logger  *zap.Logger
	watcher *watcher.Watcher
	server  *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(
	engine *search.Engine,
	st store.Store,
	cfg *config.Config,
	logger *zap.Logger,
) *Server {
	return &Server{
		engine: engine,
		store:  st,
		config: cfg,
		logger: logger,
	}
}

// Router builds the chi router with all API routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/search", s.handleSearch)
	r.Post("/api/v1/memories", s.handleCreateMemory)
	r.Get("/api/v1/memories/{id}", s.handleGetMemory)
	r.Put("/api/v1/memories/{id}", s.handleUpdateMemory)
	r.Delete("/api/v1/memories/{id}", s.handleDeleteMemory)
	r.Get("/api/v1/memories/{id}/related", s.handleRelated)
	r.Get("/api/v1/tags", s.handleTags)
	r.Get("/api/v1/types", s.handleTypes)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/health", s.handleHealth)

	return r
}

// Start starts the HTTP server and blocks until it stops. When an import
// directory is configured, a watcher ingests export files dropped there.
func (s *Server) Start(ctx context.Context) error {
	if dir := s.config.Storage.ImportDir; dir != "" {
		s.watcher = watcher.New(dir, func(path string) {
			n, err := store.ImportFile(context.Background(), s.store, path)
			if err != nil {
				s.logger.Warn("import failed", zap.String("path", path), zap.Error(err))
				return
			}
			s.logger.Info("imported memories", zap.String("path", path), zap.Int("count", n))
		}, watcher.WithLogger(s.logger))
		if err := s.watcher.Start(ctx); err != nil {
			s.logger.Warn("import watcher failed to start",
				zap.String("dir", dir), zap.Error(err))
			s.watcher = nil
		}
	}

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.watcher != nil {
		s.watcher.Stop()
	}
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
