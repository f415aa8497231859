package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/tracemesh/internal/config"
	"github.com/dgallion1/tracemesh/internal/pipeline"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the HTTP API server for tracemesh.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.TracemeshAPIKey))

		r.Post("/api/resolve", s.handleResolve)
		r.Post("/api/resolve/batch", s.handleBatchResolve)
		r.Get("/api/resolve/{jobID}/status", s.handleResolveStatus)
		r.Get("/api/resolve/{jobID}/result", s.handleResolveResult)

		r.Get("/api/meshes", s.handleListMeshes)
		r.Get("/api/meshes/{meshID}", s.handleGetMesh)
		r.Delete("/api/meshes/{meshID}", s.handleDeleteMesh)

		r.Get("/api/stats/resolve", s.handleResolveStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"queue_depth": s.orchestrator.QueueDepth(),
	})
}
