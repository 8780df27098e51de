package attempt_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/saulo-duarte/quizard-lambda/internal/apperror"
	"github.com/saulo-duarte/quizard-lambda/internal/attempt"
	"github.com/saulo-duarte/quizard-lambda/internal/query"
	"github.com/saulo-duarte/quizard-lambda/internal/quiz"
	"github.com/saulo-duarte/quizard-lambda/internal/testutil"
)

func setup(t *testing.T) (attempt.AttemptService, quiz.QuizService, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t, &quiz.Quiz{}, &quiz.QuizQuestion{}, &attempt.QuizAttempt{})
	quizzes := quiz.NewService(db, quiz.NewRepository(db), quiz.Cascades{Quiz: []quiz.CascadeFunc{attempt.DeleteByQuiz}})
	return attempt.NewService(db, attempt.NewRepository(db)), quizzes, db
}

func newQuiz(t *testing.T, s quiz.QuizService, title string) *quiz.Quiz {
	t.Helper()
	q, err := s.CreateQuizWithQuestions(context.Background(), 1, quiz.CreateQuizDTO{
		Title:     title,
		Questions: []quiz.QuestionInput{{Text: "?", Options: []string{"a", "b"}, CorrectOption: 0}},
	})
	require.NoError(t, err)
	return q
}

func TestStartAttempt(t *testing.T) {
	s, quizzes, _ := setup(t)
	ctx := context.Background()
	q := newQuiz(t, quizzes, "A")

	a, err := s.StartAttempt(ctx, 5, attempt.CreateAttemptDTO{QuizID: q.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(5), a.UserID)
	assert.Zero(t, a.Score)
	assert.False(t, a.IsFinished)

	_, err = s.StartAttempt(ctx, 6, attempt.CreateAttemptDTO{QuizID: q.ID})
	require.NoError(t, err)

	got, err := quizzes.GetQuizWithQuestions(ctx, query.Filters{"id": q.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.NumAttempts)

	_, err = s.StartAttempt(ctx, 5, attempt.CreateAttemptDTO{QuizID: 42})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	mine, err := s.List(ctx, query.Options{Filters: query.Filters{"user_id": int64(5)}, Limit: 10})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, a.ID, mine[0].ID)
}

func TestListAttemptedQuizzes(t *testing.T) {
	s, quizzes, _ := setup(t)
	ctx := context.Background()
	const userID int64 = 5

	a := newQuiz(t, quizzes, "A")
	b := newQuiz(t, quizzes, "B")
	c := newQuiz(t, quizzes, "C")
	newQuiz(t, quizzes, "never attempted")

	for _, q := range []*quiz.Quiz{a, b, a, c} {
		_, err := s.StartAttempt(ctx, userID, attempt.CreateAttemptDTO{QuizID: q.ID})
		require.NoError(t, err)
	}
	_, err := s.StartAttempt(ctx, 99, attempt.CreateAttemptDTO{QuizID: b.ID})
	require.NoError(t, err)

	titles := func(qs []quiz.Quiz) []string {
		out := make([]string, len(qs))
		for i, q := range qs {
			out[i] = q.Title
		}
		return out
	}

	all, err := s.ListAttemptedQuizzes(ctx, userID, nil, query.DefaultLimit)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A", "B"}, titles(all))

	page, err := s.ListAttemptedQuizzes(ctx, userID, nil, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A"}, titles(page))

	next, err := s.ListAttemptedQuizzes(ctx, userID, &page[1].ID, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, titles(next))

	fromStart, err := s.ListAttemptedQuizzes(ctx, userID, &[]int64{0}[0], 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A"}, titles(fromStart))

	none, err := s.ListAttemptedQuizzes(ctx, userID, nil, 0)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = s.ListAttemptedQuizzes(ctx, userID, &[]int64{12345}[0], 2)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestDeleteByQuiz(t *testing.T) {
	s, quizzes, db := setup(t)
	ctx := context.Background()
	q := newQuiz(t, quizzes, "A")

	_, err := s.StartAttempt(ctx, 5, attempt.CreateAttemptDTO{QuizID: q.ID})
	require.NoError(t, err)

	_, err = quizzes.DeleteQuiz(ctx, q.ID)
	require.NoError(t, err)

	n, err := query.Count[attempt.QuizAttempt](ctx, db, "", query.Filters{"quiz_id": q.ID})
	require.NoError(t, err)
	assert.Zero(t, n)
}
