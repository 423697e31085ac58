package service

import (
	"github.com/dom/kpitter/internal/repository"
)

type Services struct {
	Auth *AuthService
	Post *PostService
}

func NewServices(repos *repository.Repositories) *Services {
	return &Services{
		Auth: NewAuthService(repos.User),
		Post: NewPostService(repos.Post),
	}
}
