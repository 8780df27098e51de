package answer

import (
	"context"

	"gorm.io/gorm"

	"github.com/saulo-duarte/quizard-lambda/internal/query"
)

type AnswerRepository interface {
	WithTx(tx *gorm.DB) AnswerRepository
	Create(ctx context.Context, a *QuizAnswer) error
	GetOne(ctx context.Context, filters query.Filters) (*QuizAnswer, error)
	List(ctx context.Context, opts query.Options) ([]QuizAnswer, error)
	Update(ctx context.Context, a *QuizAnswer, changes map[string]interface{}) error
	Count(ctx context.Context, filters query.Filters) (int64, error)
	CountByOption(ctx context.Context, filters query.Filters) (map[int64]int64, error)
	CountOptionsFrom(ctx context.Context, questionID int64, first int) (int64, error)
	AttemptIDs(ctx context.Context, filters query.Filters) ([]int64, error)
	Regrade(ctx context.Context, questionID int64, correct int) error
	Delete(ctx context.Context, filters query.Filters) error
}

type answerRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) WithTx(tx *gorm.DB) AnswerRepository {
	return &answerRepository{db: tx}
}

func (r *answerRepository) Create(ctx context.Context, a *QuizAnswer) error {
	return query.Create(ctx, r.db, a)
}

func (r *answerRepository) GetOne(ctx context.Context, filters query.Filters) (*QuizAnswer, error) {
	return query.GetOne[QuizAnswer](ctx, r.db, filters)
}

func (r *answerRepository) List(ctx context.Context, opts query.Options) ([]QuizAnswer, error) {
	return query.GetMany[QuizAnswer](ctx, r.db, opts)
}

func (r *answerRepository) Update(ctx context.Context, a *QuizAnswer, changes map[string]interface{}) error {
	return query.UpdateOne(ctx, r.db, a, changes)
}

func (r *answerRepository) Count(ctx context.Context, filters query.Filters) (int64, error) {
	return query.Count[QuizAnswer](ctx, r.db, "", filters)
}

func (r *answerRepository) CountByOption(ctx context.Context, filters query.Filters) (map[int64]int64, error) {
	return query.CountBy[QuizAnswer, int64](ctx, r.db, "selected_option", filters)
}

// CountOptionsFrom counts the answers to a question whose selected option is
// at index first or beyond.
func (r *answerRepository) CountOptionsFrom(ctx context.Context, questionID int64, first int) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&QuizAnswer{}).
		Where("question_id = ? AND selected_option >= ?", questionID, first).
		Count(&n).Error
	return n, err
}

func (r *answerRepository) AttemptIDs(ctx context.Context, filters query.Filters) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&QuizAnswer{}).
		Where(map[string]interface{}(filters)).
		Distinct().
		Pluck("attempt_id", &ids).Error
	return ids, err
}

// Regrade marks the answers to a question correct exactly when they selected
// the given option.
func (r *answerRepository) Regrade(ctx context.Context, questionID int64, correct int) error {
	if _, err := query.UpdateMany[QuizAnswer](ctx, r.db, query.Filters{"question_id": questionID}, map[string]interface{}{"is_correct": false}); err != nil {
		return err
	}
	_, err := query.UpdateMany[QuizAnswer](ctx, r.db,
		query.Filters{"question_id": questionID, "selected_option": correct},
		map[string]interface{}{"is_correct": true})
	return err
}

func (r *answerRepository) Delete(ctx context.Context, filters query.Filters) error {
	_, err := query.DeleteMany[QuizAnswer](ctx, r.db, filters)
	return err
}
