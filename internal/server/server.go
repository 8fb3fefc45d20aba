package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vitaliisemenov/unimatch/pkg/unimatch/contexts/mapctx"
	"github.com/vitaliisemenov/unimatch/pkg/unimatch/registry"
)

// Server is the playground HTTP server. It owns the frozen registry, the
// compiled-matcher cache, and the middleware chain; request handling is
// stateless beyond those.
type Server struct {
	cfg      *Config
	logger   *slog.Logger
	registry *registry.Registry[mapctx.Context]
	cache    *matcherCache
	router   *mux.Router
	http     *http.Server
	limiter  *RateLimiter
	stopCh   chan struct{}
}

// New assembles a Server from configuration. The registry is built once
// here and shared read-only by every request.
func New(cfg *Config, logger *slog.Logger) (*Server, error) {
	reg, err := BuildRegistry()
	if err != nil {
		return nil, fmt.Errorf("build registry: %w", err)
	}
	cache, err := newMatcherCache(cfg.Cache.Size)
	if err != nil {
		return nil, fmt.Errorf("create matcher cache: %w", err)
	}

	s := &Server{
		cfg:      cfg,
		logger:   logger,
		registry: reg,
		cache:    cache,
		stopCh:   make(chan struct{}),
	}
	s.router = s.buildRouter()
	s.http = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return s, nil
}

func (s *Server) buildRouter() *mux.Router {
	r := mux.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(s.logger))
	r.Use(MetricsMiddleware)
	if s.cfg.RateLimit.Enabled {
		s.limiter = NewRateLimiter(s.cfg.RateLimit.RequestsPerMinute, s.cfg.RateLimit.Burst)
		r.Use(s.limiter.Middleware)
	}

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/validate", s.handleValidate).Methods(http.MethodPost)
	api.HandleFunc("/evaluate", s.handleEvaluate).Methods(http.MethodPost)
	api.HandleFunc("/registry", s.handleRegistry).Methods(http.MethodGet)

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	return r
}

// Handler exposes the assembled router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	if s.limiter != nil {
		go s.cleanupLoop()
	}
	s.logger.Info("playground server listening", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests within the configured grace period.
func (s *Server) Shutdown(ctx context.Context) error {
	close(s.stopCh)
	shutdownCtx, cancel := context.WithTimeout(ctx, s.cfg.Server.GracefulShutdownTimeout)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}

func (s *Server) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.limiter.Cleanup()
		case <-s.stopCh:
			return
		}
	}
}
