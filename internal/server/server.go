// Package server exposes the cleaning engine over HTTP: a single
// synchronous clean endpoint plus health, version, and Prometheus
// metrics surfaces.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/inferloop/tabclean/internal/cleaner"
	"github.com/inferloop/tabclean/pkg/constants"
	"github.com/inferloop/tabclean/pkg/interfaces"
)

// Server represents the HTTP server
type Server struct {
	httpServer    *http.Server
	metricsServer *http.Server
	router        *mux.Router
	logger        *logrus.Logger
	config        *Config
	engine        *cleaner.Engine
	cache         interfaces.ResultCache
}

// NewServer creates a new HTTP server instance. The cache is optional;
// pass nil to clean every request from scratch.
func NewServer(config *Config, engine *cleaner.Engine, cache interfaces.ResultCache, logger *logrus.Logger) (*Server, error) {
	if config == nil {
		config = getDefaultConfig()
	}
	if engine == nil {
		return nil, fmt.Errorf("cleaning engine is required")
	}
	if logger == nil {
		logger = logrus.New()
	}

	server := &Server{
		router: mux.NewRouter(),
		logger: logger,
		config: config,
		engine: engine,
		cache:  cache,
	}

	server.setupRoutes()
	server.setupMiddleware()

	server.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Host, config.Port),
		Handler:      server.router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	if config.EnableMetrics {
		server.setupMetricsServer()
	}

	return server, nil
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	s.logger.Infof("Starting HTTP server on %s:%d", s.config.Host, s.config.Port)

	if s.config.EnableMetrics && s.metricsServer != nil {
		go func() {
			s.logger.Infof("Starting metrics server on port %d", s.config.MetricsPort)
			if err := s.metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				s.logger.Errorf("Metrics server error: %v", err)
			}
		}()
	}

	if s.config.TLSCertFile != "" && s.config.TLSKeyFile != "" {
		s.logger.Info("Starting HTTPS server")
		return s.httpServer.ListenAndServeTLS(s.config.TLSCertFile, s.config.TLSKeyFile)
	}

	return s.httpServer.ListenAndServe()
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Errorf("Error shutting down metrics server: %v", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Errorf("Error shutting down HTTP server: %v", err)
		return err
	}

	s.logger.Info("HTTP server stopped")
	return nil
}

// setupRoutes sets up the HTTP routes
func (s *Server) setupRoutes() {
	apiRouter := s.router.PathPrefix(constants.APIPrefix).Subrouter()

	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
	s.router.HandleFunc("/version", s.handleVersion).Methods("GET")

	apiRouter.HandleFunc("/clean", s.handleClean).Methods("POST")

	s.router.NotFoundHandler = http.HandlerFunc(s.handleNotFound)
}

// setupMiddleware sets up HTTP middleware
func (s *Server) setupMiddleware() {
	s.router.Use(s.loggingMiddleware)
	s.router.Use(s.recoveryMiddleware)
	s.router.Use(s.requestIDMiddleware)

	if s.config.EnableCORS {
		s.router.Use(s.corsMiddleware)
	}

	s.router.Use(s.requestSizeLimitMiddleware)
}

// setupMetricsServer sets up the metrics server
func (s *Server) setupMetricsServer() {
	metricsRouter := mux.NewRouter()

	metricsRouter.Handle("/metrics", promhttp.Handler()).Methods("GET")
	metricsRouter.HandleFunc("/health", s.handleHealth).Methods("GET")

	s.metricsServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.config.Host, s.config.MetricsPort),
		Handler:      metricsRouter,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}
}

// GetRouter returns the HTTP router
func (s *Server) GetRouter() *mux.Router {
	return s.router
}

// GetConfig returns the server configuration
func (s *Server) GetConfig() *Config {
	return s.config
}
