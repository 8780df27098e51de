package answer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/quizard-lambda/internal/answer"
	"github.com/saulo-duarte/quizard-lambda/internal/query"
	"github.com/saulo-duarte/quizard-lambda/internal/testutil"
)

func TestAnswerRepository(t *testing.T) {
	db := testutil.NewDB(t, &answer.QuizAnswer{})
	repo := answer.NewRepository(db)
	ctx := context.Background()

	const question int64 = 11
	for i, selected := range []int{0, 1, 2, 2} {
		require.NoError(t, repo.Create(ctx, &answer.QuizAnswer{
			QuizID:         1,
			AttemptID:      int64(100 + i%3),
			QuestionID:     question + int64(i/3),
			UserID:         player,
			SelectedOption: selected,
		}))
	}

	t.Run("CountOptionsFrom", func(t *testing.T) {
		n, err := repo.CountOptionsFrom(ctx, question, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})

	t.Run("AttemptIDs", func(t *testing.T) {
		ids, err := repo.AttemptIDs(ctx, query.Filters{"question_id": question})
		require.NoError(t, err)
		assert.ElementsMatch(t, []int64{100, 101, 102}, ids)
	})

	t.Run("Regrade", func(t *testing.T) {
		require.NoError(t, repo.Regrade(ctx, question, 2))

		correct, err := repo.Count(ctx, query.Filters{"question_id": question, "is_correct": true})
		require.NoError(t, err)
		assert.Equal(t, int64(1), correct)

		other, err := repo.GetOne(ctx, query.Filters{"question_id": question + 1})
		require.NoError(t, err)
		assert.False(t, other.IsCorrect)
	})

	t.Run("CountByOption", func(t *testing.T) {
		counts, err := repo.CountByOption(ctx, query.Filters{"question_id": question})
		require.NoError(t, err)
		assert.Equal(t, map[int64]int64{0: 1, 1: 1, 2: 1}, counts)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, query.Filters{"question_id": question}))
		n, err := repo.Count(ctx, query.Filters{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})
}
