package answer

import "gorm.io/gorm"

type AnswerContainer struct {
	Repo    AnswerRepository
	Service AnswerService
	Handler *Handler
}

func NewAnswerContainer(db *gorm.DB) *AnswerContainer {
	repo := NewRepository(db)
	service := NewService(db, repo)
	handler := NewHandler(service)

	return &AnswerContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
