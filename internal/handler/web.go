package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/userhubapp/userhub/internal/server"
	"github.com/userhubapp/userhub/internal/validation"
	"github.com/userhubapp/userhub/internal/view"
)

// WebHandler renders the HTML pages served next to the JSON API.
type WebHandler struct {
	Handler
	renderer *view.Renderer
}

func NewWebHandler(s *server.Server, renderer *view.Renderer) *WebHandler {
	return &WebHandler{
		Handler:  NewHandler(s),
		renderer: renderer,
	}
}

// HomeRequest is empty; the landing page takes no payload.
type HomeRequest struct{}

// HomeSchema declares the (empty) payload of GET /.
var HomeSchema = validation.Schema{}

// Home renders the landing page.
func (h *WebHandler) Home(c echo.Context, req *HomeRequest) (string, error) {
	return h.renderer.Home(map[string]any{
		"title":       "UserHub",
		"tagline":     "A small user and post API with avatar uploads.",
		"environment": h.server.Config.Primary.Env,
		"version":     "1.0.0",
	})
}
