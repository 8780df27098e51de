package quiz

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/saulo-duarte/quizard-lambda/internal/query"
)

type QuizRepository interface {
	WithTx(tx *gorm.DB) QuizRepository

	Create(ctx context.Context, q *Quiz) error
	GetOne(ctx context.Context, filters query.Filters) (*Quiz, error)
	GetForUpdate(ctx context.Context, id int64) (*Quiz, error)
	GetWithQuestions(ctx context.Context, filters query.Filters) (*Quiz, error)
	List(ctx context.Context, opts query.Options) ([]Quiz, error)
	Update(ctx context.Context, q *Quiz, changes map[string]interface{}) error
	Delete(ctx context.Context, id int64) error

	AddQuestions(ctx context.Context, questions []QuizQuestion) error
	GetQuestion(ctx context.Context, filters query.Filters) (*QuizQuestion, error)
	ListQuestions(ctx context.Context, opts query.Options) ([]QuizQuestion, error)
	QuestionIDs(ctx context.Context, quizID int64) ([]int64, error)
	UpdateQuestion(ctx context.Context, q *QuizQuestion, changes map[string]interface{}) error
	DeleteQuestions(ctx context.Context, filters query.Filters) error
}

type quizRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) WithTx(tx *gorm.DB) QuizRepository {
	return &quizRepository{db: tx}
}

func (r *quizRepository) Create(ctx context.Context, q *Quiz) error {
	return query.Create(ctx, r.db, q)
}

func (r *quizRepository) GetOne(ctx context.Context, filters query.Filters) (*Quiz, error) {
	return query.GetOne[Quiz](ctx, r.db, filters)
}

// GetForUpdate loads a quiz and locks its row until the transaction ends, so
// questions_order edits do not overwrite each other. SQLite serializes
// writers and has no row locks.
func (r *quizRepository) GetForUpdate(ctx context.Context, id int64) (*Quiz, error) {
	db := r.db
	if db.Dialector.Name() != "sqlite" {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return query.GetOne[Quiz](ctx, db, query.Filters{"id": id})
}

func (r *quizRepository) GetWithQuestions(ctx context.Context, filters query.Filters) (*Quiz, error) {
	return query.GetOne[Quiz](ctx, r.db.Preload("Questions", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("internal_id")
	}), filters)
}

func (r *quizRepository) List(ctx context.Context, opts query.Options) ([]Quiz, error) {
	return query.GetMany[Quiz](ctx, r.db, opts)
}

func (r *quizRepository) Update(ctx context.Context, q *Quiz, changes map[string]interface{}) error {
	return query.UpdateOne(ctx, r.db, q, changes)
}

func (r *quizRepository) Delete(ctx context.Context, id int64) error {
	_, err := query.DeleteMany[Quiz](ctx, r.db, query.Filters{"id": id})
	return err
}

func (r *quizRepository) AddQuestions(ctx context.Context, questions []QuizQuestion) error {
	if len(questions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(&questions).Error
}

func (r *quizRepository) GetQuestion(ctx context.Context, filters query.Filters) (*QuizQuestion, error) {
	return query.GetOne[QuizQuestion](ctx, r.db, filters)
}

func (r *quizRepository) ListQuestions(ctx context.Context, opts query.Options) ([]QuizQuestion, error) {
	return query.GetMany[QuizQuestion](ctx, r.db, opts)
}

func (r *quizRepository) QuestionIDs(ctx context.Context, quizID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&QuizQuestion{}).
		Where("quiz_id = ?", quizID).
		Order("internal_id").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *quizRepository) UpdateQuestion(ctx context.Context, q *QuizQuestion, changes map[string]interface{}) error {
	return query.UpdateOne(ctx, r.db, q, changes)
}

func (r *quizRepository) DeleteQuestions(ctx context.Context, filters query.Filters) error {
	_, err := query.DeleteMany[QuizQuestion](ctx, r.db, filters)
	return err
}
