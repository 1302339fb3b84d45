package service

import (
	"github.com/userhubapp/userhub/internal/repository"
	"github.com/userhubapp/userhub/internal/server"
)

type Services struct {
	Users *UserService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Users: NewUserService(repos.Users, s.Disk),
	}, nil
}
