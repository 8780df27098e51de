package quiz

import "gorm.io/gorm"

type QuizContainer struct {
	Service QuizService
	Handler *Handler
}

func NewQuizContainer(db *gorm.DB, cascades Cascades) *QuizContainer {
	repo := NewRepository(db)
	service := NewService(db, repo, cascades)
	handler := NewHandler(service)

	return &QuizContainer{
		Service: service,
		Handler: handler,
	}
}
