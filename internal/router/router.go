// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/userhubapp/userhub/internal/handler"
	"github.com/userhubapp/userhub/internal/middleware"
)

// New builds the Echo instance: error funnel, middleware chain, and
// route registration. The New Relic and context middlewares run first
// so every later stage sees correlation data.
func New(middlewares *middleware.Middlewares, handlers *handler.Handlers) *echo.Echo {
	r := echo.New()
	r.HideBanner = true
	r.HidePort = true

	r.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	r.Use(middlewares.Tracing.NewRelicMiddleware())
	r.Use(middleware.RequestID())
	r.Use(middlewares.ContextEnhancer.EnhanceContext())
	r.Use(middlewares.Tracing.EnhanceTracing())
	r.Use(middlewares.Global.CORS())
	r.Use(middlewares.Global.Secure())
	r.Use(middlewares.Global.Recover())
	r.Use(middlewares.Global.RequestLogger())

	registerAPIRoutes(r, handlers)
	registerWebRoutes(r, handlers)
	registerSystemRoutes(r, handlers)

	return r
}
