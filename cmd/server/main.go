package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/userhubapp/userhub/internal/config"
	"github.com/userhubapp/userhub/internal/database"
	"github.com/userhubapp/userhub/internal/handler"
	"github.com/userhubapp/userhub/internal/logger"
	"github.com/userhubapp/userhub/internal/middleware"
	"github.com/userhubapp/userhub/internal/repository"
	"github.com/userhubapp/userhub/internal/router"
	"github.com/userhubapp/userhub/internal/server"
	"github.com/userhubapp/userhub/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	loggerService, err := logger.NewLoggerService(cfg.Observability)
	if err != nil {
		os.Stderr.WriteString("telemetry: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(cfg.Observability, loggerService)

	ctx := context.Background()
	if err := database.Migrate(ctx, log, cfg); err != nil {
		log.Fatal().Err(err).Msg("database migration failed")
	}

	s, err := server.New(cfg, log, loggerService)
	if err != nil {
		log.Fatal().Err(err).Msg("server initialization failed")
	}

	repos := repository.NewRepositories(s)

	services, err := service.NewServices(s, repos)
	if err != nil {
		log.Fatal().Err(err).Msg("service initialization failed")
	}

	handlers, err := handler.NewHandlers(s, services)
	if err != nil {
		log.Fatal().Err(err).Msg("handler initialization failed")
	}

	middlewares := middleware.NewMiddlewares(s)

	r := router.New(middlewares, handlers)
	s.SetupHTTPServer(r)

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("starting http server")
		if err := s.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}

	loggerService.Shutdown(5 * time.Second)

	log.Info().Msg("stopped")
}
