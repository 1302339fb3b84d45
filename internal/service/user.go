package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/userhubapp/userhub/internal/middleware"
	"github.com/userhubapp/userhub/internal/model"
	"github.com/userhubapp/userhub/internal/repository"
	"github.com/userhubapp/userhub/internal/validation"
)

// userStore is the slice of the repository the service needs.
type userStore interface {
	Create(ctx context.Context, params repository.CreateUserParams) (model.User, error)
	ListWithPosts(ctx context.Context) ([]model.User, error)
}

// fileStore is the slice of the storage disk the service needs.
type fileStore interface {
	Put(key string, data []byte) error
}

// UserService owns user registration and listing.
type UserService struct {
	users userStore
	disk  fileStore
}

func NewUserService(users userStore, disk fileStore) *UserService {
	return &UserService{
		users: users,
		disk:  disk,
	}
}

// CreateUserInput is the validated registration payload.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Avatar   *validation.File
}

// avatarExtension maps the accepted upload types to a file extension.
// Uploads are restricted to these types before the service runs, so
// the fallback only triggers if that restriction changes.
func avatarExtension(mimeType string) string {
	switch mimeType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	default:
		return ".bin"
	}
}

// Create stores the avatar (when one was uploaded) and inserts the
// user. The file is written first so a stored user never references a
// missing avatar; if the insert then fails, the orphaned key is logged
// and the error propagates.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (model.User, error) {
	var avatarKey string

	if input.Avatar != nil {
		data, err := input.Avatar.Bytes()
		if err != nil {
			return model.User{}, errors.Wrap(err, "reading avatar upload")
		}

		avatarKey = fmt.Sprintf("avatars/%s%s", uuid.New().String(), avatarExtension(input.Avatar.MIMEType))
		if err := s.disk.Put(avatarKey, data); err != nil {
			return model.User{}, errors.Wrap(err, "storing avatar")
		}
	}

	user, err := s.users.Create(ctx, repository.CreateUserParams{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Avatar:   avatarKey,
	})
	if err != nil {
		if avatarKey != "" {
			middleware.LoggerFromContext(ctx).Warn().
				Str("avatar_key", avatarKey).
				Msg("user insert failed after avatar upload, key orphaned")
		}
		return model.User{}, err
	}

	return user, nil
}

// List returns every user with posts eagerly loaded.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.users.ListWithPosts(ctx)
}
