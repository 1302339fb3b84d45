package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/userhubapp/userhub/internal/model"
	"github.com/userhubapp/userhub/internal/server"
	"github.com/userhubapp/userhub/internal/service"
	"github.com/userhubapp/userhub/internal/validation"
)

// UserHandler serves the user listing and registration endpoints.
type UserHandler struct {
	Handler
	users *service.UserService
}

func NewUserHandler(s *server.Server, users *service.UserService) *UserHandler {
	return &UserHandler{
		Handler: NewHandler(s),
		users:   users,
	}
}

// ListUsersRequest is empty; the listing takes no payload.
type ListUsersRequest struct{}

// ListUsersSchema declares the (empty) payload of GET /api/users.
var ListUsersSchema = validation.Schema{}

// CreateUserRequest is the registration payload. Field names follow
// what clients submit; the avatar arrives as a multipart file and is
// checked by the schema's file rules rather than by struct tags.
type CreateUserRequest struct {
	Name                 string           `mapstructure:"name" validate:"required"`
	Email                string           `mapstructure:"email" validate:"required,email"`
	Password             string           `mapstructure:"password" validate:"required,min=8,max=32"`
	PasswordConfirmation string           `mapstructure:"password_confirmation" validate:"required,eqfield=Password"`
	Avatar               *validation.File `mapstructure:"avatar"`
}

// CreateUserSchema declares the payload of POST /api/users. The field
// table feeds the generated API document; the typed constraints live
// as validator tags on CreateUserRequest.
var CreateUserSchema = validation.Schema{
	Fields: []validation.Field{
		{Name: "name", Kind: "string", Required: true},
		{Name: "email", Kind: "string", Required: true, Format: "email"},
		{Name: "password", Kind: "string", Required: true, Format: "password"},
		{Name: "password_confirmation", Kind: "string", Required: true, Format: "password"},
	},
	Files: []validation.FileRule{
		{Field: "avatar", MIMETypes: []string{"image/jpeg", "image/png"}},
	},
}

// ListUsers returns every user with posts eagerly loaded.
func (h *UserHandler) ListUsers(c echo.Context, req *ListUsersRequest) ([]model.User, error) {
	return h.users.List(c.Request().Context())
}

// CreateUser registers a user from the validated payload.
func (h *UserHandler) CreateUser(c echo.Context, req *CreateUserRequest) (model.User, error) {
	return h.users.Create(c.Request().Context(), service.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Avatar:   req.Avatar,
	})
}
