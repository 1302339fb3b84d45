package handler

import (
	"github.com/userhubapp/userhub/internal/server"
	"github.com/userhubapp/userhub/internal/service"
	"github.com/userhubapp/userhub/internal/view"
)

// Handlers is a container that groups all HTTP handlers so the router
// receives one object instead of many.
type Handlers struct {
	Users   *UserHandler
	Web     *WebHandler
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
}

func NewHandlers(s *server.Server, services *service.Services) (*Handlers, error) {
	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, err
	}

	return &Handlers{
		Users:   NewUserHandler(s, services.Users),
		Web:     NewWebHandler(s, renderer),
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
	}, nil
}
