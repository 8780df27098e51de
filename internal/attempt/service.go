package attempt

import (
	"context"

	"gorm.io/gorm"

	"github.com/saulo-duarte/quizard-lambda/internal/config"
	"github.com/saulo-duarte/quizard-lambda/internal/query"
	"github.com/saulo-duarte/quizard-lambda/internal/quiz"
)

type AttemptService interface {
	StartAttempt(ctx context.Context, userID int64, dto CreateAttemptDTO) (*QuizAttempt, error)
	Get(ctx context.Context, filters query.Filters) (*QuizAttempt, error)
	List(ctx context.Context, opts query.Options) ([]QuizAttempt, error)
	ListAttemptedQuizzes(ctx context.Context, userID int64, lastQuizID *int64, limit int) ([]quiz.Quiz, error)
}

type attemptService struct {
	db   *gorm.DB
	repo AttemptRepository
}

func NewService(db *gorm.DB, repo AttemptRepository) AttemptService {
	return &attemptService{db: db, repo: repo}
}

// StartAttempt opens an attempt for the user and bumps the quiz counter in
// the same transaction.
func (s *attemptService) StartAttempt(ctx context.Context, userID int64, dto CreateAttemptDTO) (*QuizAttempt, error) {
	log := config.WithContext(ctx).WithField("quiz_id", dto.QuizID)

	a := &QuizAttempt{QuizID: dto.QuizID, UserID: userID}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		q, err := query.GetOne[quiz.Quiz](ctx, tx, query.Filters{"id": dto.QuizID})
		if err != nil {
			return err
		}
		if err := s.repo.WithTx(tx).Create(ctx, a); err != nil {
			return err
		}
		return query.UpdateOne(ctx, tx, q, map[string]interface{}{
			"num_attempts": gorm.Expr("num_attempts + ?", 1),
		})
	})
	if err != nil {
		log.WithError(err).Warn("Failed to start attempt")
		return nil, err
	}

	log.WithField("attempt_id", a.ID).Info("Attempt started")
	return a, nil
}

func (s *attemptService) Get(ctx context.Context, filters query.Filters) (*QuizAttempt, error) {
	return s.repo.GetOne(ctx, filters)
}

func (s *attemptService) List(ctx context.Context, opts query.Options) ([]QuizAttempt, error) {
	return s.repo.List(ctx, opts)
}

// ListAttemptedQuizzes pages through the distinct quizzes a user attempted,
// most recent first. The cursor is the id of the last quiz of the previous page.
func (s *attemptService) ListAttemptedQuizzes(ctx context.Context, userID int64, lastQuizID *int64, limit int) ([]quiz.Quiz, error) {
	var before *int64
	if lastQuizID != nil && *lastQuizID != 0 {
		latest, err := query.GetOneLatest[QuizAttempt](ctx, s.db, query.Filters{
			"user_id": userID,
			"quiz_id": *lastQuizID,
		})
		if err != nil {
			return nil, err
		}
		before = &latest.InternalID
	}

	ids, err := s.repo.LatestQuizIDs(ctx, userID, before, limit)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []quiz.Quiz{}, nil
	}

	found, err := query.GetMany[quiz.Quiz](ctx, s.db, query.Options{
		In:    &query.In{Column: "id", Values: ids},
		Limit: query.NoLimit,
	})
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]quiz.Quiz, len(found))
	for _, q := range found {
		byID[q.ID] = q
	}
	out := make([]quiz.Quiz, 0, len(ids))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			out = append(out, q)
		}
	}
	return out, nil
}

// DeleteByQuiz removes the attempts of a deleted quiz.
func DeleteByQuiz(ctx context.Context, tx *gorm.DB, quizID int64) error {
	_, err := query.DeleteMany[QuizAttempt](ctx, tx, query.Filters{"quiz_id": quizID})
	return err
}
