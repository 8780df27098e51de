package answer

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/saulo-duarte/quizard-lambda/internal/auth"
	"github.com/saulo-duarte/quizard-lambda/internal/validation"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.With(validation.Args("quiz_answer_read")).Get("/", h.Retrieve)
	r.With(validation.Args("quiz_answer_read")).Get("/stats", h.Stats)
	r.With(validation.Args("quiz_answer_read")).Get("/{id}", h.Retrieve)

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)
		r.With(validation.Body("quiz_answer_write")).Post("/", h.SubmitAnswer)

		r.Group(func(r chi.Router) {
			r.Use(validation.Args("quiz_answer_read"))
			r.Use(validation.Permission(h.service.OwnerOf, auth.RoleAdmin))
			r.Use(validation.Body("quiz_answer_write"))

			r.Put("/", h.UpdateAnswer)
			r.Patch("/", h.UpdateAnswer)
			r.Put("/{id}", h.UpdateAnswer)
			r.Patch("/{id}", h.UpdateAnswer)
		})
	})
	return r
}
