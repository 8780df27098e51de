package aiquiz

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/saulo-duarte/quizard-lambda/internal/auth"
	"github.com/saulo-duarte/quizard-lambda/internal/validation"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.With(auth.AuthMiddleware, validation.Body("quiz_generate")).Post("/", h.GenerateQuestions)
	return r
}
