package user

import "gorm.io/gorm"

type UserContainer struct {
	Repo    UserRepository
	Service UserService
	Handler *Handler
}

func NewUserContainer(db *gorm.DB, google IdentityProvider) *UserContainer {
	repo := NewRepository(db)
	service := NewService(db, repo, google)
	handler := NewHandler(service)

	return &UserContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
