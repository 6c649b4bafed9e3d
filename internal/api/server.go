// Package api exposes the search pipeline over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"company-search/internal/common/logger"
	"company-search/internal/search"
	"company-search/internal/tags"
)

// Searcher runs one search request end to end.
type Searcher interface {
	Search(ctx context.Context, req search.Request) (*search.Response, error)
}

// TagStore persists per-user saved filter snapshots.
type TagStore interface {
	List(ctx context.Context, userID string) ([]tags.Tag, error)
	Create(ctx context.Context, userID, name string, snapshot map[string]interface{}) (tags.Tag, error)
	Delete(ctx context.Context, userID, tagID string) (bool, error)
}

// Server is the HTTP surface of the service.
type Server struct {
	router   chi.Router
	searcher Searcher
	tagStore TagStore
	logger   logger.Logger
}

func NewServer(searcher Searcher, tagStore TagStore, log logger.Logger) *Server {
	s := &Server{
		searcher: searcher,
		tagStore: tagStore,
		logger:   log.With(map[string]interface{}{"component": "api"}),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", s.handleHealth)
	r.Get("/regions", s.handleRegions)
	r.Post("/search", s.handleSearch)

	r.Route("/tags/{userID}", func(r chi.Router) {
		r.Get("/", s.handleListTags)
		r.Post("/", s.handleCreateTag)
		r.Delete("/{tagID}", s.handleDeleteTag)
	})

	r.Handle("/metrics", promhttp.Handler())

	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
