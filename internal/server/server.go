// Package server provides the HTTP server and routing for the indicator service.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/aristath/indicator-service/internal/config"
	"github.com/aristath/indicator-service/internal/metrics"
	"github.com/aristath/indicator-service/internal/modules/indicators"
	indicatorhandlers "github.com/aristath/indicator-service/internal/modules/indicators/handlers"
	"github.com/aristath/indicator-service/internal/modules/quantstats"
	quantstatshandlers "github.com/aristath/indicator-service/internal/modules/quantstats/handlers"
)

// Config holds server dependencies
type Config struct {
	Log        zerolog.Logger
	Config     *config.Config
	Metrics    *metrics.Metrics
	Sampler    HostSampler
	Indicators *indicators.Service
	QuantStats *quantstats.Service
}

// Server represents the HTTP server
type Server struct {
	router         *chi.Mux
	server         *http.Server
	log            zerolog.Logger
	cfg            *config.Config
	metrics        *metrics.Metrics
	systemHandlers *SystemHandlers

	indicatorHandlers  *indicatorhandlers.Handler
	quantstatsHandlers *quantstatshandlers.Handler
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:         chi.NewRouter(),
		log:            cfg.Log.With().Str("component", "server").Logger(),
		cfg:            cfg.Config,
		metrics:        cfg.Metrics,
		systemHandlers: NewSystemHandlers(cfg.Sampler, cfg.Log),

		indicatorHandlers:  indicatorhandlers.NewHandler(cfg.Indicators, cfg.Metrics, cfg.Config.MaxBodyBytes, cfg.Log),
		quantstatsHandlers: quantstatshandlers.NewHandler(cfg.QuantStats, cfg.Metrics, cfg.Config.MaxBodyBytes, cfg.Log),
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Config.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	// Recovery from panics
	s.router.Use(middleware.Recoverer)

	// Request ID
	s.router.Use(middleware.RequestID)

	// Real IP
	s.router.Use(middleware.RealIP)

	// Logging
	s.router.Use(s.loggingMiddleware)

	// Timeout
	s.router.Use(middleware.Timeout(s.cfg.RequestTimeout))

	// CORS
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Compress responses
	if !s.cfg.DevMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)
	s.router.Get("/system/status", s.systemHandlers.HandleSystemStatus)
	if s.metrics != nil {
		s.router.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	s.indicatorHandlers.RegisterRoutes(s.router)
	s.quantstatsHandlers.RegisterRoutes(s.router)
}

// Handler returns the root handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Int("port", s.cfg.Port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
