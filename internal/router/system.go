package router

import (
	"github.com/labstack/echo/v4"

	"github.com/userhubapp/userhub/internal/handler"
)

// registerSystemRoutes registers endpoints that are not part of
// business logic: health, the generated API document, the docs UI,
// and static assets.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	// Health status endpoint (used by Kubernetes/monitors).
	r.GET("/status", h.Health.CheckHealth)

	// The generated OpenAPI document, consumed by the docs UI.
	r.GET("/openapi.json", h.OpenAPI.ServeDocument)

	// Docs UI endpoint (serves openapi.html).
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)

	// Serve docs assets from ./static at /static/*.
	r.Static("/static", "static")
}
