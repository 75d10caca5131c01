package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/merybenavente/ragsearch-engine/config"
	"github.com/merybenavente/ragsearch-engine/docproc"
	"github.com/merybenavente/ragsearch-engine/embedding"
	"github.com/merybenavente/ragsearch-engine/registry"
)

// Server wires the registry, document processor, and embedding provider
// into a chi-based HTTP surface.
type Server struct {
	registry  *registry.Registry
	processor *docproc.Processor
	provider  embedding.Provider
	cors      config.CorsConfig
	logger    *zap.Logger
	server    *http.Server
}

// NewServer constructs a Server. addr is the listen address ("host:port").
func NewServer(reg *registry.Registry, proc *docproc.Processor, provider embedding.Provider, cors config.CorsConfig, logger *zap.Logger, addr string) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		registry:  reg,
		processor: proc,
		provider:  provider,
		cors:      cors,
		logger:    logger,
	}
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.router(),
	}
	return s
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.zapRequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))
	r.Use(s.corsMiddleware)

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)

	r.Route("/api/v1/libraries", func(r chi.Router) {
		r.Post("/", s.handleCreateLibrary)
		r.Get("/", s.handleListLibraries)
		r.Route("/{libraryID}", func(r chi.Router) {
			r.Get("/", s.handleGetLibrary)
			r.Patch("/", s.handleUpdateLibraryMetadata)
			r.Delete("/", s.handleDeleteLibrary)
			r.Post("/documents", s.handleIngestDocument)
			r.Delete("/documents/{documentID}", s.handleDeleteDocument)
			r.Post("/search", s.handleSearch)
		})
	})
	return r
}

// Start begins serving and blocks until the server stops or fails.
func (s *Server) Start() error {
	s.logger.Info("starting server", zap.String("addr", s.server.Addr))
	err := s.server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
