package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/userhubapp/userhub/internal/handler"
)

// registerAPIRoutes wires the JSON API under /api.
func registerAPIRoutes(r *echo.Echo, h *handler.Handlers) {
	api := r.Group("/api")

	api.GET("/users", handler.Handle(
		h.Users.Handler,
		h.Users.ListUsers,
		http.StatusOK,
		handler.ListUsersSchema,
	))

	api.POST("/users", handler.Handle(
		h.Users.Handler,
		h.Users.CreateUser,
		http.StatusOK,
		handler.CreateUserSchema,
	))
}
