package attempt

import "gorm.io/gorm"

type AttemptContainer struct {
	Service AttemptService
	Handler *Handler
}

func NewAttemptContainer(db *gorm.DB) *AttemptContainer {
	repo := NewRepository(db)
	service := NewService(db, repo)
	handler := NewHandler(service)

	return &AttemptContainer{
		Service: service,
		Handler: handler,
	}
}
