// Package server exposes the analyzer over HTTP.
package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"trustscope/internal/config"
	"trustscope/internal/jobs"
	"trustscope/internal/logging"
	"trustscope/internal/metrics"
	"trustscope/internal/pipeline"
	"trustscope/internal/server/handlers"
)

// Server represents the HTTP server
type Server struct {
	server *http.Server
	router *chi.Mux
}

// NewServer builds the router. followings may be nil, in which case audits
// must name the handles to check.
func NewServer(cfg config.Config, analyzer *pipeline.Analyzer, followings jobs.FollowingsLister) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLog)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.CorsOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	})
	router.Handle("/metrics", metrics.Handler())

	h := handlers.NewAnalysisHandler(analyzer, followings, cfg.Platform, cfg.Batch.Workers)
	router.Route("/v1", func(r chi.Router) {
		r.Use(rateLimit(newLimiter(cfg.Server.RPS, cfg.Server.Burst)))
		r.Get("/analyze/{handle}", h.GetAnalysis)
		r.Post("/analyze", h.PostAnalysis)
		r.Post("/batch", h.PostBatch)
		r.Post("/audit", h.PostAudit)
	})

	return &Server{
		server: &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
			ErrorLog:          log.New(logging.Logger().WriterLevel(logrus.WarnLevel), "", 0),
		},
		router: router,
	}
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
