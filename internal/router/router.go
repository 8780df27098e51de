package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/saulo-duarte/quizard-lambda/docs"

	"github.com/saulo-duarte/quizard-lambda/internal/aiquiz"
	"github.com/saulo-duarte/quizard-lambda/internal/answer"
	"github.com/saulo-duarte/quizard-lambda/internal/attempt"
	"github.com/saulo-duarte/quizard-lambda/internal/middlewares"
	"github.com/saulo-duarte/quizard-lambda/internal/quiz"
	"github.com/saulo-duarte/quizard-lambda/internal/user"
	"github.com/saulo-duarte/quizard-lambda/internal/validation"
)

type RouterConfig struct {
	UserHandler    *user.Handler
	QuizHandler    *quiz.Handler
	AttemptHandler *attempt.Handler
	AnswerHandler  *answer.Handler
	AIQuizHandler  *aiquiz.Handler
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware)

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Mount("/auth", user.AuthRoutes(cfg.UserHandler))
	r.Mount("/users", user.Routes(cfg.UserHandler))
	r.Mount("/quizzes/generate", aiquiz.Routes(cfg.AIQuizHandler))
	r.Mount("/quizzes", quiz.Routes(cfg.QuizHandler))
	r.Mount("/attempts", attempt.Routes(cfg.AttemptHandler))
	r.Mount("/answers", answer.Routes(cfg.AnswerHandler))

	r.With(validation.Args("quiz_read", validation.DefaultMany(), validation.RenameParam("id", "creator_id"))).
		Get("/users/{id}/quizzes/created", cfg.QuizHandler.ListCreated)
	r.With(validation.Args("quiz_attempt_read", validation.DefaultMany(), validation.RenameParam("id", "user_id"))).
		Get("/users/{id}/quizzes/attempted", cfg.AttemptHandler.ListAttempted)

	return r
}
