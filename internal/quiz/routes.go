package quiz

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/saulo-duarte/quizard-lambda/internal/auth"
	"github.com/saulo-duarte/quizard-lambda/internal/validation"
)

var editors = []auth.Role{auth.RoleModerator, auth.RoleAdmin}

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.With(validation.Args("quiz_read")).Get("/", h.Retrieve)

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)
		r.With(validation.Body("quiz_write")).Post("/", h.CreateQuiz)

		r.Group(func(r chi.Router) {
			r.Use(validation.Args("quiz_read"))
			r.Use(validation.Permission(h.service.OwnerOf, editors...))

			r.With(validation.Body("quiz_write")).Put("/", h.UpdateQuiz)
			r.With(validation.Body("quiz_write")).Patch("/", h.UpdateQuiz)
			r.Delete("/", h.DeleteQuiz)
		})
	})

	r.Route("/{quiz_id}", func(r chi.Router) {
		byID := validation.Args("quiz_read", validation.RenameParam("quiz_id", "id"))

		r.With(byID).Get("/", h.Retrieve)

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware, byID)
			r.Use(validation.Permission(h.service.OwnerOf, editors...))

			r.With(validation.Body("quiz_write")).Put("/", h.UpdateQuiz)
			r.With(validation.Body("quiz_write")).Patch("/", h.UpdateQuiz)
			r.Delete("/", h.DeleteQuiz)
		})

		r.Route("/questions", func(r chi.Router) {
			r.With(validation.Args("quiz_question_read", validation.DefaultMany())).Get("/", h.RetrieveQuestions)
			r.With(validation.Args("quiz_question_read")).Get("/{id}", h.RetrieveQuestions)

			r.With(
				auth.AuthMiddleware,
				validation.Args("quiz_read", validation.PathOnly(), validation.RenameParam("quiz_id", "id")),
				validation.Permission(h.service.OwnerOf),
				validation.Body("quiz_question_write"),
			).Post("/", h.AddQuestion)

			r.Group(func(r chi.Router) {
				r.Use(auth.AuthMiddleware, validation.Args("quiz_question_read"))
				r.Use(validation.Permission(h.service.QuestionOwnerOf, editors...))

				r.With(validation.Body("quiz_question_write")).Put("/{id}", h.UpdateQuestion)
				r.With(validation.Body("quiz_question_write")).Patch("/{id}", h.UpdateQuestion)
				r.Delete("/{id}", h.RemoveQuestion)
			})
		})
	})
	return r
}
