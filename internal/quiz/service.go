package quiz

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/saulo-duarte/quizard-lambda/internal/apperror"
	"github.com/saulo-duarte/quizard-lambda/internal/config"
	"github.com/saulo-duarte/quizard-lambda/internal/query"
)

// CascadeFunc keeps rows that reference a quiz or question consistent with a
// change to it. It runs inside the changing transaction.
type CascadeFunc func(ctx context.Context, tx *gorm.DB, id int64) error

type Cascades struct {
	// Quiz runs before a quiz row is deleted.
	Quiz []CascadeFunc
	// Question runs after a question row is deleted.
	Question []CascadeFunc
	// QuestionGrading runs after a question's options or correct option change.
	QuestionGrading []CascadeFunc
}

type QuizService interface {
	CreateQuizWithQuestions(ctx context.Context, creatorID int64, dto CreateQuizDTO) (*Quiz, error)
	GetQuizWithQuestions(ctx context.Context, filters query.Filters) (*Quiz, error)
	ListQuizzes(ctx context.Context, opts query.Options) ([]Quiz, error)
	UpdateQuiz(ctx context.Context, id int64, dto UpdateQuizDTO) (*Quiz, error)
	DeleteQuiz(ctx context.Context, id int64) (*Quiz, error)
	OwnerOf(ctx context.Context, id int64) (int64, error)

	AddQuestionToQuiz(ctx context.Context, quizID int64, in QuestionInput) (*QuizQuestion, error)
	GetQuestion(ctx context.Context, filters query.Filters) (*QuizQuestion, error)
	ListQuestions(ctx context.Context, opts query.Options) ([]QuizQuestion, error)
	UpdateQuestion(ctx context.Context, quizID, id int64, dto UpdateQuestionDTO) (*QuizQuestion, error)
	RemoveQuestion(ctx context.Context, quizID, id int64) (*QuizQuestion, error)
	QuestionOwnerOf(ctx context.Context, id int64) (int64, error)
}

type quizService struct {
	repo     QuizRepository
	db       *gorm.DB
	cascades Cascades
}

func NewService(db *gorm.DB, repo QuizRepository, cascades Cascades) QuizService {
	return &quizService{
		repo:     repo,
		db:       db,
		cascades: cascades,
	}
}

func checkCorrectOption(verr *apperror.ValidationError, prefix string, options []string, correct int) {
	if correct < 0 || correct >= len(options) {
		verr.Add(prefix+"correct_option", fmt.Sprintf("must be an index into options (0 to %d)", len(options)-1))
	}
}

func newQuestion(quizID int64, in QuestionInput) QuizQuestion {
	q := QuizQuestion{
		QuizID:        quizID,
		Text:          strings.TrimSpace(in.Text),
		AnimationID:   in.AnimationID,
		Options:       datatypes.JSONSlice[string](in.Options),
		CorrectOption: in.CorrectOption,
	}
	q.ID = query.NewID()
	return q
}

func (s *quizService) CreateQuizWithQuestions(ctx context.Context, creatorID int64, dto CreateQuizDTO) (*Quiz, error) {
	log := config.WithContext(ctx)

	verr := apperror.NewValidationError()
	for i, in := range dto.Questions {
		checkCorrectOption(verr, fmt.Sprintf("questions[%d].", i), in.Options, in.CorrectOption)
	}
	if verr.HasErrors() {
		log.WithError(verr).Warn("Quiz questions failed validation")
		return nil, verr
	}

	quiz := &Quiz{
		Title:       strings.TrimSpace(dto.Title),
		Description: dto.Description,
		CreatorID:   creatorID,
		CategoryID:  dto.CategoryID,
		TypeID:      dto.TypeID,
		AnimationID: dto.AnimationID,
	}
	quiz.ID = query.NewID()

	questions := make([]QuizQuestion, len(dto.Questions))
	order := make(datatypes.JSONSlice[int64], len(dto.Questions))
	for i, in := range dto.Questions {
		questions[i] = newQuestion(quiz.ID, in)
		order[i] = questions[i].ID
	}
	quiz.QuestionsOrder = order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.Create(ctx, quiz); err != nil {
			return err
		}
		return repo.AddQuestions(ctx, questions)
	})
	if err != nil {
		log.WithError(err).Error("Failed to create quiz with questions")
		return nil, err
	}

	quiz.Questions = questions
	log.WithField("quiz_id", quiz.ID).Info("Quiz created")
	return quiz, nil
}

func (s *quizService) GetQuizWithQuestions(ctx context.Context, filters query.Filters) (*Quiz, error) {
	quiz, err := s.repo.GetWithQuestions(ctx, filters)
	if err != nil {
		return nil, err
	}
	quiz.Questions = quiz.Ordered()
	return quiz, nil
}

func (s *quizService) ListQuizzes(ctx context.Context, opts query.Options) ([]Quiz, error) {
	return s.repo.List(ctx, opts)
}

func (s *quizService) UpdateQuiz(ctx context.Context, id int64, dto UpdateQuizDTO) (*Quiz, error) {
	log := config.WithContext(ctx).WithField("quiz_id", id)

	var quiz *Quiz
	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		var err error
		if quiz, err = repo.GetForUpdate(ctx, id); err != nil {
			return err
		}

		changes := map[string]interface{}{}
		if dto.Title != nil {
			changes["title"] = strings.TrimSpace(*dto.Title)
		}
		if dto.Description != nil {
			changes["description"] = *dto.Description
		}
		if dto.CategoryID != nil {
			changes["category_id"] = *dto.CategoryID
		}
		if dto.TypeID != nil {
			changes["type_id"] = *dto.TypeID
		}
		if dto.AnimationID != nil {
			changes["animation_id"] = *dto.AnimationID
		}
		if dto.QuestionsOrder != nil {
			ids, err := repo.QuestionIDs(ctx, id)
			if err != nil {
				return err
			}
			if !samePermutation(ids, *dto.QuestionsOrder) {
				return apperror.Invalid("questions_order", "must list every question of the quiz exactly once")
			}
			changes["questions_order"] = datatypes.JSONSlice[int64](*dto.QuestionsOrder)
		}

		return repo.Update(ctx, quiz, changes)
	})
	if err != nil {
		log.WithError(err).Warn("Failed to update quiz")
		return nil, err
	}

	log.Info("Quiz updated")
	return quiz, nil
}

func samePermutation(have, want []int64) bool {
	if len(have) != len(want) {
		return false
	}
	seen := make(map[int64]bool, len(have))
	for _, id := range have {
		seen[id] = true
	}
	for _, id := range want {
		if !seen[id] {
			return false
		}
		delete(seen, id)
	}
	return true
}

func (s *quizService) DeleteQuiz(ctx context.Context, id int64) (*Quiz, error) {
	log := config.WithContext(ctx).WithField("quiz_id", id)

	var quiz *Quiz
	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		var err error
		if quiz, err = repo.GetOne(ctx, query.Filters{"id": id}); err != nil {
			return err
		}
		for _, cascade := range s.cascades.Quiz {
			if err := cascade(ctx, tx, id); err != nil {
				return err
			}
		}
		if err := repo.DeleteQuestions(ctx, query.Filters{"quiz_id": id}); err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		log.WithError(err).Warn("Failed to delete quiz")
		return nil, err
	}

	log.Info("Quiz deleted")
	return quiz, nil
}

func (s *quizService) OwnerOf(ctx context.Context, id int64) (int64, error) {
	quiz, err := s.repo.GetOne(ctx, query.Filters{"id": id})
	if err != nil {
		return 0, err
	}
	return quiz.CreatorID, nil
}

func (s *quizService) AddQuestionToQuiz(ctx context.Context, quizID int64, in QuestionInput) (*QuizQuestion, error) {
	log := config.WithContext(ctx).WithField("quiz_id", quizID)

	verr := apperror.NewValidationError()
	checkCorrectOption(verr, "", in.Options, in.CorrectOption)
	if verr.HasErrors() {
		return nil, verr
	}

	question := newQuestion(quizID, in)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		quiz, err := repo.GetForUpdate(ctx, quizID)
		if err != nil {
			return err
		}
		if err := repo.AddQuestions(ctx, []QuizQuestion{question}); err != nil {
			return err
		}

		order := append(datatypes.JSONSlice[int64]{}, quiz.QuestionsOrder...)
		order = append(order, question.ID)
		return repo.Update(ctx, quiz, map[string]interface{}{"questions_order": order})
	})
	if err != nil {
		log.WithError(err).Warn("Failed to add question")
		return nil, err
	}

	log.WithField("question_id", question.ID).Info("Question added")
	return &question, nil
}

func (s *quizService) GetQuestion(ctx context.Context, filters query.Filters) (*QuizQuestion, error) {
	return s.repo.GetQuestion(ctx, filters)
}

func (s *quizService) ListQuestions(ctx context.Context, opts query.Options) ([]QuizQuestion, error) {
	return s.repo.ListQuestions(ctx, opts)
}

func (s *quizService) UpdateQuestion(ctx context.Context, quizID, id int64, dto UpdateQuestionDTO) (*QuizQuestion, error) {
	log := config.WithContext(ctx).WithField("question_id", id)

	var question *QuizQuestion
	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		var err error
		if question, err = repo.GetQuestion(ctx, query.Filters{"id": id, "quiz_id": quizID}); err != nil {
			return err
		}

		options := []string(question.Options)
		correct := question.CorrectOption
		changes := map[string]interface{}{}
		if dto.Text != nil {
			changes["text"] = strings.TrimSpace(*dto.Text)
		}
		if dto.AnimationID != nil {
			changes["animation_id"] = *dto.AnimationID
		}
		if dto.Options != nil {
			options = *dto.Options
			changes["options"] = datatypes.JSONSlice[string](options)
		}
		if dto.CorrectOption != nil {
			correct = *dto.CorrectOption
			changes["correct_option"] = correct
		}

		verr := apperror.NewValidationError()
		checkCorrectOption(verr, "", options, correct)
		if verr.HasErrors() {
			return verr
		}

		if err := repo.UpdateQuestion(ctx, question, changes); err != nil {
			return err
		}
		if dto.Options == nil && dto.CorrectOption == nil {
			return nil
		}
		for _, cascade := range s.cascades.QuestionGrading {
			if err := cascade(ctx, tx, id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.WithError(err).Warn("Failed to update question")
		return nil, err
	}

	log.Info("Question updated")
	return question, nil
}

func (s *quizService) RemoveQuestion(ctx context.Context, quizID, id int64) (*QuizQuestion, error) {
	log := config.WithContext(ctx).WithField("question_id", id)

	var question *QuizQuestion
	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		var err error
		if question, err = repo.GetQuestion(ctx, query.Filters{"id": id, "quiz_id": quizID}); err != nil {
			return err
		}
		quiz, err := repo.GetForUpdate(ctx, quizID)
		if err != nil {
			return err
		}

		if err := repo.DeleteQuestions(ctx, query.Filters{"id": id}); err != nil {
			return err
		}
		for _, cascade := range s.cascades.Question {
			if err := cascade(ctx, tx, id); err != nil {
				return err
			}
		}

		order := datatypes.JSONSlice[int64]{}
		for _, qid := range quiz.QuestionsOrder {
			if qid != id {
				order = append(order, qid)
			}
		}
		return repo.Update(ctx, quiz, map[string]interface{}{"questions_order": order})
	})
	if err != nil {
		log.WithError(err).Warn("Failed to remove question")
		return nil, err
	}

	log.Info("Question removed")
	return question, nil
}

func (s *quizService) QuestionOwnerOf(ctx context.Context, id int64) (int64, error) {
	question, err := s.repo.GetQuestion(ctx, query.Filters{"id": id})
	if err != nil {
		return 0, err
	}
	return s.OwnerOf(ctx, question.QuizID)
}
