package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/markdave123-py/speechkit/internal/api/handlers"
	appMiddleware "github.com/markdave123-py/speechkit/internal/api/middlewares"
	"github.com/markdave123-py/speechkit/internal/config"
	"github.com/markdave123-py/speechkit/internal/infra/metrics"
	"github.com/markdave123-py/speechkit/internal/services"
)

// Server wraps the HTTP server instance and its handlers.
type Server struct {
	httpServer *http.Server
	log        zerolog.Logger
}

// NewServer builds and wires all routes.
func NewServer(cfg *config.Config, log zerolog.Logger, reg *prometheus.Registry, speech *services.SpeechService, images *services.ImageService, docs *services.DocumentService) *Server {
	speechHandler := handlers.NewSpeechHandler(speech, log)
	imageHandler := handlers.NewImageHandler(images, log)
	docHandler := handlers.NewDocumentHandler(docs, log)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(appMiddleware.RequestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout(cfg)))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler(reg))

	r.Route("/api", func(api chi.Router) {
		api.Post("/speech", speechHandler.Speak)
		api.Post("/images", imageHandler.Store)
		api.Put("/documents/*", docHandler.PutDocument)
		api.Get("/documents/*", docHandler.GetDocument)
		api.Get("/presign/*", docHandler.Presign)
	})

	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &Server{httpServer: httpSrv, log: log}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start runs the HTTP server until Shutdown is called.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.httpServer.Addr).Msg("HTTP server listening")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// A speech request makes a synthesis and an upload call, each with its own
// timeout and retries.
func requestTimeout(cfg *config.Config) time.Duration {
	if cfg.CallTimeout <= 0 {
		return 60 * time.Second
	}
	return 2*cfg.CallTimeout + 10*time.Second
}
