package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/userhubapp/userhub/internal/handler"
)

// registerWebRoutes wires the HTML pages.
func registerWebRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/", handler.HandleHTML(
		h.Web.Handler,
		h.Web.Home,
		http.StatusOK,
		handler.HomeSchema,
	))
}
