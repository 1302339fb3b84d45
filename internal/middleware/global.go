package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/userhubapp/userhub/internal/errs"
	"github.com/userhubapp/userhub/internal/server"
	"github.com/userhubapp/userhub/internal/sqlerr"
)

// GlobalMiddlewares groups the middleware applied to every route and
// the global error handler.
type GlobalMiddlewares struct {
	server *server.Server
}

// NewGlobalMiddlewares constructs the middleware bundle with access to
// shared config (CORS origins, env).
func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

// CORS returns Echo's CORS middleware configured from server config.
func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
	})
}

// RequestLogger emits one structured log line per request, with the
// level derived from the response status.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			statusCode := v.Status

			// When a handler returns an error, the final status is
			// decided by the global error handler after this hook
			// runs; derive it from the error type so error requests
			// do not log as 200.
			if v.Error != nil {
				statusCode = statusForError(v.Error)
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			if requestID := GetRequestID(c); requestID != "" {
				e = e.Str("request_id", requestID)
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

// Recover turns handler panics into 500 responses instead of crashing
// the process.
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.Recover()
}

// Secure adds standard security-related response headers.
func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// statusForError maps a failure to the status the global error handler
// will serve it with.
func statusForError(err error) int {
	var validationErr *errs.ValidationError
	var httpErr *errs.HTTPError
	var echoErr *echo.HTTPError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &httpErr):
		return httpErr.Status
	case errors.As(err, &echoErr):
		return echoErr.Code
	default:
		return http.StatusInternalServerError
	}
}

// GlobalErrorHandler is the single error funnel for the HTTP server.
// Every failure raised during payload merging, validation, handler
// execution, or routing ends up here, and this is the only place a
// status code is derived from a failure.
//
// Mapping:
//   - *errs.ValidationError  -> 422 { success, message, errors }
//   - *errs.HTTPError        -> its status, { success, message }
//   - *echo.HTTPError        -> its status (route 404 and friends)
//   - anything else          -> 500 { success, message }, with
//     database errors sanitized and an empty message replaced by
//     "Internal server error"
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	// Keep the original error for logging; the response may carry a
	// sanitized variant.
	originalErr := err

	var status int
	var message string
	var fieldErrors []errs.FieldError

	var validationErr *errs.ValidationError
	var httpErr *errs.HTTPError
	var echoErr *echo.HTTPError

	switch {
	case errors.As(err, &validationErr):
		status = http.StatusUnprocessableEntity
		message = validationErr.Message
		fieldErrors = validationErr.Errors

	case errors.As(err, &httpErr):
		status = httpErr.Status
		message = httpErr.Message

	case errors.As(err, &echoErr):
		status = echoErr.Code
		if status == http.StatusNotFound {
			message = "Route not found"
		} else if msg, ok := echoErr.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(echoErr.Code)
		}

	default:
		status = http.StatusInternalServerError
		if message = sqlerr.Sanitize(err); message == "" {
			message = err.Error()
		}
		if message == "" {
			message = "Internal server error"
		}
	}

	logger := GetLogger(c)
	logger.Error().Stack().
		Err(originalErr).
		Int("status", status).
		Msg(message)

	if !c.Response().Committed {
		_ = c.JSON(status, errs.Envelope{
			Success: false,
			Message: message,
			Errors:  fieldErrors,
		})
	}
}
