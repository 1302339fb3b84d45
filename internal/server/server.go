// Package server defines the application container composing the main
// dependencies, and owns the HTTP server lifecycle: construction,
// startup, and graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/userhubapp/userhub/internal/config"
	"github.com/userhubapp/userhub/internal/database"
	loggerPkg "github.com/userhubapp/userhub/internal/logger"
	"github.com/userhubapp/userhub/internal/storage"
)

// Server is the application container that holds shared resources. It
// is not the HTTP server itself; it owns the config, the loggers, the
// database pool, the storage disk, and an internal *http.Server used
// to listen and serve.
//
// The container and everything it holds is constructed once at process
// start and shared by all concurrent requests; every member is either
// immutable or concurrency-safe on its own.
type Server struct {
	Config *config.Config

	// Logger is the application's main structured logger.
	Logger *zerolog.Logger

	// LoggerService optionally holds the New Relic application. When
	// telemetry is disabled it exists but carries a nil application.
	LoggerService *loggerPkg.LoggerService

	// DB holds the PostgreSQL pool wrapper.
	DB *database.Database

	// Disk is the file-storage backend for uploaded content.
	Disk *storage.Disk

	httpServer *http.Server
}

// New constructs a Server and initializes core dependencies: the
// database pool and the storage disk. The HTTP server itself is
// configured later via SetupHTTPServer.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	disk, err := storage.NewDisk(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage disk: %w", err)
	}

	return &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
		Disk:          disk,
	}, nil
}

// SetupHTTPServer configures the internal net/http server with the
// given handler (the router with its middleware stack).
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:    ":" + s.Config.Server.Port,
		Handler: handler,

		// Timeouts protect against slow clients. Config stores
		// seconds.
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start runs the HTTP server. It blocks until the server stops or
// errors; graceful shutdown is triggered by calling Shutdown from a
// signal handler.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server (finishing inflight
// requests until the context deadline) and closes the database pool.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	if err := s.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	return nil
}
