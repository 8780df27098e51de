package attempt

import (
	"context"

	"gorm.io/gorm"

	"github.com/saulo-duarte/quizard-lambda/internal/query"
)

type AttemptRepository interface {
	WithTx(tx *gorm.DB) AttemptRepository
	Create(ctx context.Context, a *QuizAttempt) error
	GetOne(ctx context.Context, filters query.Filters) (*QuizAttempt, error)
	List(ctx context.Context, opts query.Options) ([]QuizAttempt, error)
	LatestQuizIDs(ctx context.Context, userID int64, before *int64, limit int) ([]int64, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) WithTx(tx *gorm.DB) AttemptRepository {
	return &attemptRepository{db: tx}
}

func (r *attemptRepository) Create(ctx context.Context, a *QuizAttempt) error {
	return query.Create(ctx, r.db, a)
}

func (r *attemptRepository) GetOne(ctx context.Context, filters query.Filters) (*QuizAttempt, error) {
	return query.GetOne[QuizAttempt](ctx, r.db, filters)
}

func (r *attemptRepository) List(ctx context.Context, opts query.Options) ([]QuizAttempt, error) {
	return query.GetMany[QuizAttempt](ctx, r.db, opts)
}

// LatestQuizIDs returns the distinct quizzes a user attempted, most recently
// attempted first. before is the internal_id of an attempt; only quizzes whose
// latest attempt precedes it are returned.
func (r *attemptRepository) LatestQuizIDs(ctx context.Context, userID int64, before *int64, limit int) ([]int64, error) {
	if limit == 0 {
		return []int64{}, nil
	}

	tx := r.db.WithContext(ctx).
		Model(&QuizAttempt{}).
		Select("quiz_id, MAX(internal_id) AS latest").
		Where("user_id = ?", userID).
		Group("quiz_id")
	if before != nil {
		tx = tx.Having("MAX(internal_id) < ?", *before)
	}
	tx = tx.Order("latest DESC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}

	var rows []struct {
		QuizID int64
		Latest int64
	}
	if err := tx.Scan(&rows).Error; err != nil {
		return nil, err
	}

	ids := make([]int64, len(rows))
	for i, row := range rows {
		ids[i] = row.QuizID
	}
	return ids, nil
}
