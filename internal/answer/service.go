package answer

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/saulo-duarte/quizard-lambda/internal/apperror"
	"github.com/saulo-duarte/quizard-lambda/internal/attempt"
	"github.com/saulo-duarte/quizard-lambda/internal/config"
	"github.com/saulo-duarte/quizard-lambda/internal/query"
	"github.com/saulo-duarte/quizard-lambda/internal/quiz"
)

var ErrNotAttemptOwner = fmt.Errorf("attempt belongs to another user: %w", apperror.ErrUnauthorized)

type AnswerService interface {
	SubmitAnswer(ctx context.Context, userID int64, dto CreateAnswerDTO) (*QuizAnswer, error)
	Get(ctx context.Context, filters query.Filters) (*QuizAnswer, error)
	List(ctx context.Context, opts query.Options) ([]QuizAnswer, error)
	UpdateAnswer(ctx context.Context, id int64, dto UpdateAnswerDTO) (*QuizAnswer, error)
	Stats(ctx context.Context, filters query.Filters) (*StatsResponse, error)
	OwnerOf(ctx context.Context, id int64) (int64, error)
}

type answerService struct {
	repo AnswerRepository
	db   *gorm.DB
}

func NewService(db *gorm.DB, repo AnswerRepository) AnswerService {
	return &answerService{
		repo: repo,
		db:   db,
	}
}

func checkOption(question *quiz.QuizQuestion, selected int) error {
	if selected < 0 || selected >= len(question.Options) {
		return apperror.Invalid("selected_option", fmt.Sprintf("must be an index into the question options (0 to %d)", len(question.Options)-1))
	}
	return nil
}

func unfinished(a *attempt.QuizAttempt) error {
	if a.IsFinished {
		return apperror.Invalid("attempt_id", "attempt is already finished")
	}
	return nil
}

// SubmitAnswer records the user's answer to one question of their attempt
// and rescores the attempt.
func (s *answerService) SubmitAnswer(ctx context.Context, userID int64, dto CreateAnswerDTO) (*QuizAnswer, error) {
	log := config.WithContext(ctx).WithField("attempt_id", dto.AttemptID)

	var ans *QuizAnswer
	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		a, err := query.GetOne[attempt.QuizAttempt](ctx, tx, query.Filters{"id": dto.AttemptID})
		if err != nil {
			return err
		}
		if a.UserID != userID {
			return ErrNotAttemptOwner
		}
		if err := unfinished(a); err != nil {
			return err
		}

		question, err := query.GetOne[quiz.QuizQuestion](ctx, tx, query.Filters{"id": dto.QuestionID, "quiz_id": a.QuizID})
		if err != nil {
			if errors.Is(err, apperror.ErrNotFound) {
				return apperror.Invalid("question_id", "does not belong to the attempted quiz")
			}
			return err
		}
		if err := checkOption(question, dto.SelectedOption); err != nil {
			return err
		}

		answered, err := repo.Count(ctx, query.Filters{"attempt_id": a.ID, "question_id": question.ID})
		if err != nil {
			return err
		}
		if answered > 0 {
			return apperror.Invalid("question_id", "has already been answered in this attempt")
		}

		ans = &QuizAnswer{
			QuizID:         a.QuizID,
			AttemptID:      a.ID,
			QuestionID:     question.ID,
			UserID:         userID,
			SelectedOption: dto.SelectedOption,
			IsCorrect:      dto.SelectedOption == question.CorrectOption,
		}
		if err := repo.Create(ctx, ans); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperror.Invalid("question_id", "has already been answered in this attempt")
			}
			return err
		}
		return rescore(ctx, tx, repo, a)
	})
	if err != nil {
		log.WithError(err).Warn("Failed to submit answer")
		return nil, err
	}

	log.WithField("answer_id", ans.ID).Info("Answer submitted")
	return ans, nil
}

// rescore sets the attempt score to its number of correct answers and
// finishes it once every question of the quiz has an answer.
func rescore(ctx context.Context, tx *gorm.DB, repo AnswerRepository, a *attempt.QuizAttempt) error {
	correct, err := repo.Count(ctx, query.Filters{"attempt_id": a.ID, "is_correct": true})
	if err != nil {
		return err
	}
	answered, err := repo.Count(ctx, query.Filters{"attempt_id": a.ID})
	if err != nil {
		return err
	}
	total, err := query.Count[quiz.QuizQuestion](ctx, tx, "", query.Filters{"quiz_id": a.QuizID})
	if err != nil {
		return err
	}

	return query.UpdateOne(ctx, tx, a, map[string]interface{}{
		"score":       correct,
		"is_finished": total > 0 && answered >= total,
	})
}

func (s *answerService) Get(ctx context.Context, filters query.Filters) (*QuizAnswer, error) {
	return s.repo.GetOne(ctx, filters)
}

func (s *answerService) List(ctx context.Context, opts query.Options) ([]QuizAnswer, error) {
	return s.repo.List(ctx, opts)
}

func (s *answerService) UpdateAnswer(ctx context.Context, id int64, dto UpdateAnswerDTO) (*QuizAnswer, error) {
	log := config.WithContext(ctx).WithField("answer_id", id)

	var ans *QuizAnswer
	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		var err error
		if ans, err = repo.GetOne(ctx, query.Filters{"id": id}); err != nil {
			return err
		}
		a, err := query.GetOne[attempt.QuizAttempt](ctx, tx, query.Filters{"id": ans.AttemptID})
		if err != nil {
			return err
		}
		if err := unfinished(a); err != nil {
			return err
		}
		if dto.SelectedOption == nil {
			return nil
		}

		question, err := query.GetOne[quiz.QuizQuestion](ctx, tx, query.Filters{"id": ans.QuestionID})
		if err != nil {
			return err
		}
		if err := checkOption(question, *dto.SelectedOption); err != nil {
			return err
		}

		err = repo.Update(ctx, ans, map[string]interface{}{
			"selected_option": *dto.SelectedOption,
			"is_correct":      *dto.SelectedOption == question.CorrectOption,
		})
		if err != nil {
			return err
		}
		return rescore(ctx, tx, repo, a)
	})
	if err != nil {
		log.WithError(err).Warn("Failed to update answer")
		return nil, err
	}

	log.Info("Answer updated")
	return ans, nil
}

// Stats counts the answers given to a question, grouped by selected option.
func (s *answerService) Stats(ctx context.Context, filters query.Filters) (*StatsResponse, error) {
	questionID, ok := filters["question_id"].(int64)
	if !ok {
		return nil, apperror.Invalid("question_id", "is required")
	}

	question, err := query.GetOne[quiz.QuizQuestion](ctx, s.db, query.Filters{"id": questionID})
	if err != nil {
		return nil, err
	}

	counts, err := s.repo.CountByOption(ctx, filters)
	if err != nil {
		return nil, err
	}

	resp := &StatsResponse{
		QuestionID: questionID,
		Options:    make([]OptionCount, len(question.Options)),
	}
	for i, text := range question.Options {
		n := counts[int64(i)]
		resp.Options[i] = OptionCount{Option: i, Text: text, Count: n}
		resp.Total += n
	}
	resp.Correct = counts[int64(question.CorrectOption)]
	return resp, nil
}

func (s *answerService) OwnerOf(ctx context.Context, id int64) (int64, error) {
	ans, err := s.repo.GetOne(ctx, query.Filters{"id": id})
	if err != nil {
		return 0, err
	}
	return ans.UserID, nil
}

// DeleteByQuiz removes the answers of a deleted quiz.
func DeleteByQuiz(ctx context.Context, tx *gorm.DB, quizID int64) error {
	return NewRepository(tx).Delete(ctx, query.Filters{"quiz_id": quizID})
}

// DeleteByQuestion removes the answers of a deleted question and rescores the
// attempts they belonged to.
func DeleteByQuestion(ctx context.Context, tx *gorm.DB, questionID int64) error {
	repo := NewRepository(tx)
	filters := query.Filters{"question_id": questionID}

	attemptIDs, err := repo.AttemptIDs(ctx, filters)
	if err != nil {
		return err
	}
	if err := repo.Delete(ctx, filters); err != nil {
		return err
	}
	return rescoreAttempts(ctx, tx, repo, attemptIDs)
}

// RegradeQuestion brings the answers to an edited question in line with its
// current options and correct option, then rescores the affected attempts.
// Removing an option that was already chosen is rejected.
func RegradeQuestion(ctx context.Context, tx *gorm.DB, questionID int64) error {
	repo := NewRepository(tx)

	question, err := query.GetOne[quiz.QuizQuestion](ctx, tx, query.Filters{"id": questionID})
	if err != nil {
		return err
	}

	stale, err := repo.CountOptionsFrom(ctx, questionID, len(question.Options))
	if err != nil {
		return err
	}
	if stale > 0 {
		return apperror.Invalid("options", fmt.Sprintf("%d existing answers select a removed option", stale))
	}

	if err := repo.Regrade(ctx, questionID, question.CorrectOption); err != nil {
		return err
	}

	attemptIDs, err := repo.AttemptIDs(ctx, query.Filters{"question_id": questionID})
	if err != nil {
		return err
	}
	return rescoreAttempts(ctx, tx, repo, attemptIDs)
}

func rescoreAttempts(ctx context.Context, tx *gorm.DB, repo AnswerRepository, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	attempts, err := query.GetMany[attempt.QuizAttempt](ctx, tx, query.Options{
		In:    &query.In{Column: "id", Values: ids},
		Limit: query.NoLimit,
	})
	if err != nil {
		return err
	}
	for i := range attempts {
		if err := rescore(ctx, tx, repo, &attempts[i]); err != nil {
			return err
		}
	}
	return nil
}
