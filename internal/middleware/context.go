package middleware

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/userhubapp/userhub/internal/logger"
	"github.com/userhubapp/userhub/internal/server"
)

// LoggerKey is the key under which the request-scoped logger is stored
// in both the Echo context and the Go request context.
const LoggerKey = "logger"

// ContextEnhancer enriches each request with a request-scoped logger
// carrying correlation fields: request_id, method, path, ip, and trace
// ids when a New Relic transaction exists.
type ContextEnhancer struct {
	server *server.Server
}

// NewContextEnhancer creates a ContextEnhancer using the app container.
func NewContextEnhancer(s *server.Server) *ContextEnhancer {
	return &ContextEnhancer{server: s}
}

// EnhanceContext returns the middleware. The enriched logger is stored
// in the Echo context and in the Go request context, so code that only
// sees a context.Context (repositories, services) can retrieve it too.
func (ce *ContextEnhancer) EnhanceContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			contextLogger := ce.server.Logger.With().
				Str("request_id", GetRequestID(c)).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("ip", c.RealIP()).
				Logger()

			if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
				contextLogger = logger.WithTraceContext(contextLogger, txn)
			}

			c.Set(LoggerKey, &contextLogger)

			ctx := context.WithValue(c.Request().Context(), loggerCtxKey{}, &contextLogger)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

type loggerCtxKey struct{}

// GetLogger retrieves the request-scoped logger from the Echo context.
// If the enhancer has not run, it returns a no-op logger so callers
// never need a nil check.
func GetLogger(c echo.Context) *zerolog.Logger {
	if l, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return l
	}

	nop := zerolog.Nop()
	return &nop
}

// LoggerFromContext retrieves the request-scoped logger from a Go
// context, for code below the HTTP layer.
func LoggerFromContext(ctx context.Context) *zerolog.Logger {
	if l, ok := ctx.Value(loggerCtxKey{}).(*zerolog.Logger); ok {
		return l
	}

	nop := zerolog.Nop()
	return &nop
}
