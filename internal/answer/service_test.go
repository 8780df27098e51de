package answer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/quizard-lambda/internal/answer"
	"github.com/saulo-duarte/quizard-lambda/internal/apperror"
	"github.com/saulo-duarte/quizard-lambda/internal/attempt"
	"github.com/saulo-duarte/quizard-lambda/internal/query"
	"github.com/saulo-duarte/quizard-lambda/internal/quiz"
	"github.com/saulo-duarte/quizard-lambda/internal/testutil"
)

const player int64 = 5

type fixture struct {
	answers  answer.AnswerService
	attempts attempt.AttemptService
	quizzes  quiz.QuizService
	quiz     *quiz.Quiz
}

func setup(t *testing.T) fixture {
	t.Helper()
	db := testutil.NewDB(t, &quiz.Quiz{}, &quiz.QuizQuestion{}, &attempt.QuizAttempt{}, &answer.QuizAnswer{})

	quizzes := quiz.NewService(db, quiz.NewRepository(db), quiz.Cascades{
		Quiz:            []quiz.CascadeFunc{answer.DeleteByQuiz, attempt.DeleteByQuiz},
		Question:        []quiz.CascadeFunc{answer.DeleteByQuestion},
		QuestionGrading: []quiz.CascadeFunc{answer.RegradeQuestion},
	})
	q, err := quizzes.CreateQuizWithQuestions(context.Background(), 1, quiz.CreateQuizDTO{
		Title: "Arithmetic",
		Questions: []quiz.QuestionInput{
			{Text: "1+1", Options: []string{"1", "2", "3"}, CorrectOption: 1},
			{Text: "2+2", Options: []string{"4", "5"}, CorrectOption: 0},
		},
	})
	require.NoError(t, err)

	return fixture{
		answers:  answer.NewAnswerContainer(db).Service,
		attempts: attempt.NewService(db, attempt.NewRepository(db)),
		quizzes:  quizzes,
		quiz:     q,
	}
}

func (f fixture) start(t *testing.T, userID int64) *attempt.QuizAttempt {
	t.Helper()
	a, err := f.attempts.StartAttempt(context.Background(), userID, attempt.CreateAttemptDTO{QuizID: f.quiz.ID})
	require.NoError(t, err)
	return a
}

func (f fixture) attempt(t *testing.T, id int64) *attempt.QuizAttempt {
	t.Helper()
	a, err := f.attempts.Get(context.Background(), query.Filters{"id": id})
	require.NoError(t, err)
	return a
}

func TestSubmitAnswerScoresAttempt(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	a := f.start(t, player)
	q1, q2 := f.quiz.Questions[0], f.quiz.Questions[1]

	first, err := f.answers.SubmitAnswer(ctx, player, answer.CreateAnswerDTO{AttemptID: a.ID, QuestionID: q1.ID, SelectedOption: 1})
	require.NoError(t, err)
	assert.True(t, first.IsCorrect)
	assert.Equal(t, f.quiz.ID, first.QuizID)

	got := f.attempt(t, a.ID)
	assert.Equal(t, int64(1), got.Score)
	assert.False(t, got.IsFinished)

	t.Run("SecondAnswerForSameQuestion", func(t *testing.T) {
		_, err := f.answers.SubmitAnswer(ctx, player, answer.CreateAnswerDTO{AttemptID: a.ID, QuestionID: q1.ID, SelectedOption: 0})
		var verr *apperror.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Contains(t, verr.Fields, "question_id")
	})

	t.Run("OptionOutOfRange", func(t *testing.T) {
		_, err := f.answers.SubmitAnswer(ctx, player, answer.CreateAnswerDTO{AttemptID: a.ID, QuestionID: q2.ID, SelectedOption: 2})
		assert.True(t, errors.Is(err, apperror.ErrInvalid))
	})

	t.Run("NotTheAttemptOwner", func(t *testing.T) {
		_, err := f.answers.SubmitAnswer(ctx, 99, answer.CreateAnswerDTO{AttemptID: a.ID, QuestionID: q2.ID, SelectedOption: 0})
		assert.True(t, errors.Is(err, answer.ErrNotAttemptOwner))
	})

	t.Run("UnknownAttempt", func(t *testing.T) {
		_, err := f.answers.SubmitAnswer(ctx, player, answer.CreateAnswerDTO{AttemptID: 42, QuestionID: q2.ID})
		assert.True(t, errors.Is(err, apperror.ErrNotFound))
	})

	second, err := f.answers.SubmitAnswer(ctx, player, answer.CreateAnswerDTO{AttemptID: a.ID, QuestionID: q2.ID, SelectedOption: 1})
	require.NoError(t, err)
	assert.False(t, second.IsCorrect)

	got = f.attempt(t, a.ID)
	assert.Equal(t, int64(1), got.Score)
	assert.True(t, got.IsFinished)

	t.Run("FinishedAttempt", func(t *testing.T) {
		option := 0
		_, err := f.answers.UpdateAnswer(ctx, second.ID, answer.UpdateAnswerDTO{SelectedOption: &option})
		assert.True(t, errors.Is(err, apperror.ErrInvalid))
	})
}

func TestQuestionFromAnotherQuiz(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	a := f.start(t, player)

	other, err := f.quizzes.CreateQuizWithQuestions(ctx, 1, quiz.CreateQuizDTO{
		Title:     "Other",
		Questions: []quiz.QuestionInput{{Text: "?", Options: []string{"a", "b"}}},
	})
	require.NoError(t, err)

	_, err = f.answers.SubmitAnswer(ctx, player, answer.CreateAnswerDTO{AttemptID: a.ID, QuestionID: other.Questions[0].ID})
	var verr *apperror.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "question_id")
}

func TestUpdateAnswerRescores(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	a := f.start(t, player)

	ans, err := f.answers.SubmitAnswer(ctx, player, answer.CreateAnswerDTO{AttemptID: a.ID, QuestionID: f.quiz.Questions[0].ID, SelectedOption: 0})
	require.NoError(t, err)
	assert.Zero(t, f.attempt(t, a.ID).Score)

	option := 1
	updated, err := f.answers.UpdateAnswer(ctx, ans.ID, answer.UpdateAnswerDTO{SelectedOption: &option})
	require.NoError(t, err)
	assert.True(t, updated.IsCorrect)
	assert.Equal(t, int64(1), f.attempt(t, a.ID).Score)

	owner, err := f.answers.OwnerOf(ctx, ans.ID)
	require.NoError(t, err)
	assert.Equal(t, player, owner)
}

func TestStats(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	q1 := f.quiz.Questions[0]

	for i, option := range []int{1, 1, 0} {
		a := f.start(t, int64(100+i))
		_, err := f.answers.SubmitAnswer(ctx, int64(100+i), answer.CreateAnswerDTO{AttemptID: a.ID, QuestionID: q1.ID, SelectedOption: option})
		require.NoError(t, err)
	}

	stats, err := f.answers.Stats(ctx, query.Filters{"question_id": q1.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(2), stats.Correct)
	require.Len(t, stats.Options, 3)
	assert.Equal(t, answer.OptionCount{Option: 0, Text: "1", Count: 1}, stats.Options[0])
	assert.Equal(t, answer.OptionCount{Option: 1, Text: "2", Count: 2}, stats.Options[1])
	assert.Equal(t, answer.OptionCount{Option: 2, Text: "3", Count: 0}, stats.Options[2])

	_, err = f.answers.Stats(ctx, query.Filters{})
	assert.True(t, errors.Is(err, apperror.ErrInvalid))

	_, err = f.answers.Stats(ctx, query.Filters{"question_id": int64(42)})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestRemovingQuestionRescores(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	a := f.start(t, player)
	q1, q2 := f.quiz.Questions[0], f.quiz.Questions[1]

	_, err := f.answers.SubmitAnswer(ctx, player, answer.CreateAnswerDTO{AttemptID: a.ID, QuestionID: q2.ID, SelectedOption: 0})
	require.NoError(t, err)
	assert.Equal(t, int64(1), f.attempt(t, a.ID).Score)

	_, err = f.quizzes.RemoveQuestion(ctx, f.quiz.ID, q2.ID)
	require.NoError(t, err)

	got := f.attempt(t, a.ID)
	assert.Zero(t, got.Score)
	assert.False(t, got.IsFinished)

	_, err = f.answers.SubmitAnswer(ctx, player, answer.CreateAnswerDTO{AttemptID: a.ID, QuestionID: q1.ID, SelectedOption: 1})
	require.NoError(t, err)
	assert.True(t, f.attempt(t, a.ID).IsFinished)

	_, err = f.quizzes.DeleteQuiz(ctx, f.quiz.ID)
	require.NoError(t, err)
	_, err = f.answers.Get(ctx, query.Filters{"quiz_id": f.quiz.ID})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestEditingQuestionRegradesAnswers(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	q1 := f.quiz.Questions[0]

	a := f.start(t, player)
	right, err := f.answers.SubmitAnswer(ctx, player, answer.CreateAnswerDTO{AttemptID: a.ID, QuestionID: q1.ID, SelectedOption: 1})
	require.NoError(t, err)
	b := f.start(t, 6)
	_, err = f.answers.SubmitAnswer(ctx, 6, answer.CreateAnswerDTO{AttemptID: b.ID, QuestionID: q1.ID, SelectedOption: 2})
	require.NoError(t, err)

	assert.Equal(t, int64(1), f.attempt(t, a.ID).Score)
	assert.Zero(t, f.attempt(t, b.ID).Score)

	correct := 2
	_, err = f.quizzes.UpdateQuestion(ctx, f.quiz.ID, q1.ID, quiz.UpdateQuestionDTO{CorrectOption: &correct})
	require.NoError(t, err)

	got, err := f.answers.Get(ctx, query.Filters{"id": right.ID})
	require.NoError(t, err)
	assert.False(t, got.IsCorrect)
	assert.Zero(t, f.attempt(t, a.ID).Score)
	assert.Equal(t, int64(1), f.attempt(t, b.ID).Score)

	t.Run("RemovingAnsweredOption", func(t *testing.T) {
		options := []string{"1", "2"}
		first := 0
		_, err := f.quizzes.UpdateQuestion(ctx, f.quiz.ID, q1.ID, quiz.UpdateQuestionDTO{Options: &options, CorrectOption: &first})
		var verr *apperror.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Contains(t, verr.Fields, "options")

		question, err := f.quizzes.GetQuestion(ctx, query.Filters{"id": q1.ID})
		require.NoError(t, err)
		assert.Len(t, question.Options, 3)
		assert.Equal(t, 2, question.CorrectOption)
	})

	t.Run("TextOnlyEditKeepsGrades", func(t *testing.T) {
		text := "1 + 1 = ?"
		_, err := f.quizzes.UpdateQuestion(ctx, f.quiz.ID, q1.ID, quiz.UpdateQuestionDTO{Text: &text})
		require.NoError(t, err)
		assert.Equal(t, int64(1), f.attempt(t, b.ID).Score)
	})
}
