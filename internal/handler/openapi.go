package handler

import (
	"fmt"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/userhubapp/userhub/internal/model"
	"github.com/userhubapp/userhub/internal/openapi"
	"github.com/userhubapp/userhub/internal/server"
)

// OpenAPIHandler serves the generated API document and the docs UI.
//
// The document is assembled once at construction from the model
// property tables and the operation payload schemas, so it can never
// drift from what validation actually enforces.
type OpenAPIHandler struct {
	Handler
	document map[string]any
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler:  NewHandler(s),
		document: buildDocument(),
	}
}

func buildDocument() map[string]any {
	return openapi.Generate(
		openapi.Info{
			Title:       "UserHub API",
			Description: "User and post management with avatar uploads.",
			Version:     "1.0.0",
		},
		[]openapi.SchemaDef{
			{
				Name:       "User",
				Properties: model.UserProperties,
				Relations:  map[string]string{"posts": "Post"},
			},
			{
				Name:       "Post",
				Properties: model.PostProperties,
			},
		},
		[]openapi.Route{
			{
				Method:  http.MethodGet,
				Path:    "/api/users",
				Summary: "List users with their posts",
				Tag:     "users",
				Responses: []openapi.Response{
					{Status: http.StatusOK, Description: "All users, posts eagerly loaded", Ref: "User", Array: true},
				},
			},
			{
				Method:         http.MethodPost,
				Path:           "/api/users",
				Summary:        "Register a user with an avatar upload",
				Tag:            "users",
				Payload:        &CreateUserSchema,
				PayloadContent: "multipart/form-data",
				Responses: []openapi.Response{
					{Status: http.StatusOK, Description: "The created user", Ref: "User"},
					{Status: http.StatusUnprocessableEntity, Description: "Payload failed validation", Ref: "ValidationError"},
				},
			},
		},
	)
}

// ServeDocument returns the generated OpenAPI document.
func (h *OpenAPIHandler) ServeDocument(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.JSON(http.StatusOK, h.document)
}

// ServeOpenAPIUI reads static/openapi.html and serves it as HTML.
// Caching is disabled so doc updates appear immediately.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	templateBytes, err := os.ReadFile("static/openapi.html")

	c.Response().Header().Set("Cache-Control", "no-cache")

	if err != nil {
		return fmt.Errorf("failed to read OpenAPI UI template: %w", err)
	}

	return c.HTML(http.StatusOK, string(templateBytes))
}
