package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/userhubapp/userhub/internal/middleware"
	"github.com/userhubapp/userhub/internal/server"
)

// HealthHandler exposes a system endpoint that load balancers and
// uptime monitors can use to verify the service and its dependencies
// are reachable.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckHealth reports overall status plus per-dependency checks for
// the database pool and the storage disk. It returns 200 when every
// check passes and 503 otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      make(map[string]interface{}),
	}

	checks := response["checks"].(map[string]interface{})
	isHealthy := true

	checkTimeout := 5 * time.Second
	if obs := h.server.Config.Observability; obs != nil && obs.HealthChecks.Timeout > 0 {
		checkTimeout = obs.HealthChecks.Timeout
	}

	// ---------------- Database connectivity check ----------------------------
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	dbStart := time.Now()

	if err := h.server.DB.Pool.Ping(ctx); err != nil {
		checks["database"] = map[string]interface{}{
			"status":        "unhealthy",
			"response_time": time.Since(dbStart).String(),
			"error":         err.Error(),
		}

		isHealthy = false

		logger.Error().
			Err(err).
			Dur("response_time", time.Since(dbStart)).
			Msg("database health check failed")

		h.recordCheckFailure("database", dbStart, err)
	} else {
		checks["database"] = map[string]interface{}{
			"status":        "healthy",
			"response_time": time.Since(dbStart).String(),
		}
	}

	// ---------------- Storage check ------------------------------------------
	storageStart := time.Now()

	if err := h.server.Disk.Ping(); err != nil {
		checks["storage"] = map[string]interface{}{
			"status":        "unhealthy",
			"response_time": time.Since(storageStart).String(),
			"error":         err.Error(),
		}

		isHealthy = false

		logger.Error().
			Err(err).
			Dur("response_time", time.Since(storageStart)).
			Msg("storage health check failed")

		h.recordCheckFailure("storage", storageStart, err)
	} else {
		checks["storage"] = map[string]interface{}{
			"status":        "healthy",
			"response_time": time.Since(storageStart).String(),
		}
	}

	// ---------------- Overall status + response ------------------------------
	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Info().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	return c.JSON(http.StatusOK, response)
}

// recordCheckFailure emits a custom telemetry event when an agent is
// configured.
func (h *HealthHandler) recordCheckFailure(checkType string, checkStart time.Time, err error) {
	if h.server.LoggerService == nil || h.server.LoggerService.GetApplication() == nil {
		return
	}

	h.server.LoggerService.GetApplication().RecordCustomEvent(
		"HealthCheckError",
		map[string]interface{}{
			"check_type":       checkType,
			"operation":        "health_check",
			"response_time_ms": time.Since(checkStart).Milliseconds(),
			"error_message":    err.Error(),
		},
	)
}
