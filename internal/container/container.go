package container

import (
	"context"
	"log"
	"net/http"

	"gorm.io/gorm"

	"github.com/saulo-duarte/quizard-lambda/internal/aiquiz"
	"github.com/saulo-duarte/quizard-lambda/internal/answer"
	"github.com/saulo-duarte/quizard-lambda/internal/attempt"
	"github.com/saulo-duarte/quizard-lambda/internal/auth"
	"github.com/saulo-duarte/quizard-lambda/internal/config"
	"github.com/saulo-duarte/quizard-lambda/internal/quiz"
	"github.com/saulo-duarte/quizard-lambda/internal/router"
	"github.com/saulo-duarte/quizard-lambda/internal/user"
)

type Container struct {
	UserContainer    *user.UserContainer
	QuizContainer    *quiz.QuizContainer
	AttemptContainer *attempt.AttemptContainer
	AnswerContainer  *answer.AnswerContainer
	AIQuizContainer  *aiquiz.AIQuizContainer
}

// Models lists every table owned by the API, in migration order.
func Models() []interface{} {
	return []interface{}{
		&user.User{},
		&user.RefreshToken{},
		&quiz.Quiz{},
		&quiz.QuizQuestion{},
		&attempt.QuizAttempt{},
		&answer.QuizAnswer{},
	}
}

func New() *Container {
	config.Init()
	auth.Init()

	ctx := context.Background()
	if err := config.Connect(ctx, config.Getenv("DATABASE_DSN", "")); err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}

	if config.GetBool("DB_AUTO_MIGRATE", false) {
		if err := config.Migrate(config.DB, Models()...); err != nil {
			log.Fatalf("failed to migrate DB: %v", err)
		}
		config.WithContext(ctx).Info("Database migrated")
	}

	return NewWithDB(config.DB, user.NewGoogleProvider(), aiquiz.DefaultProvider(ctx))
}

// NewWithDB wires every resource against db. Deleting a quiz or question
// removes the attempts and answers that reference it, and editing a
// question's grading regrades its answers. Tokens of disabled users stop
// authenticating immediately.
func NewWithDB(db *gorm.DB, google user.IdentityProvider, generator aiquiz.Provider) *Container {
	userContainer := user.NewUserContainer(db, google)
	auth.SetActiveCheck(userContainer.Service.CheckActive)
	attemptContainer := attempt.NewAttemptContainer(db)
	answerContainer := answer.NewAnswerContainer(db)
	quizContainer := quiz.NewQuizContainer(db, quiz.Cascades{
		Quiz:            []quiz.CascadeFunc{answer.DeleteByQuiz, attempt.DeleteByQuiz},
		Question:        []quiz.CascadeFunc{answer.DeleteByQuestion},
		QuestionGrading: []quiz.CascadeFunc{answer.RegradeQuestion},
	})
	aiQuizContainer := aiquiz.NewAIQuizContainer(generator)

	return &Container{
		UserContainer:    userContainer,
		QuizContainer:    quizContainer,
		AttemptContainer: attemptContainer,
		AnswerContainer:  answerContainer,
		AIQuizContainer:  aiQuizContainer,
	}
}

func (c *Container) Router() http.Handler {
	return router.New(router.RouterConfig{
		UserHandler:    c.UserContainer.Handler,
		QuizHandler:    c.QuizContainer.Handler,
		AttemptHandler: c.AttemptContainer.Handler,
		AnswerHandler:  c.AnswerContainer.Handler,
		AIQuizHandler:  c.AIQuizContainer.Handler,
	})
}
