package attempt

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/saulo-duarte/quizard-lambda/internal/auth"
	"github.com/saulo-duarte/quizard-lambda/internal/validation"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.With(validation.Args("quiz_attempt_read")).Get("/", h.Retrieve)
	r.With(validation.Args("quiz_attempt_read")).Get("/{id}", h.Retrieve)
	r.With(auth.AuthMiddleware, validation.Body("quiz_attempt_write")).Post("/", h.StartAttempt)
	return r
}
