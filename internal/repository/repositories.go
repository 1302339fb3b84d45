package repository

import (
	"github.com/userhubapp/userhub/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Users *UserRepository
}

// NewRepositories constructs the repository container from the shared
// database pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Users: NewUserRepository(s.DB.Pool),
	}
}
