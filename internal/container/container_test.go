package container_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/quizard-lambda/internal/answer"
	"github.com/saulo-duarte/quizard-lambda/internal/attempt"
	"github.com/saulo-duarte/quizard-lambda/internal/container"
	"github.com/saulo-duarte/quizard-lambda/internal/quiz"
	"github.com/saulo-duarte/quizard-lambda/internal/testutil"
	"github.com/saulo-duarte/quizard-lambda/internal/user"
)

type client struct {
	t       *testing.T
	handler http.Handler
	token   string
	id      int64
}

func (c *client) do(method, path, body string) *httptest.ResponseRecorder {
	c.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var env struct{ Data T }
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env.Data
}

func signUp(t *testing.T, handler http.Handler, name string) *client {
	t.Helper()
	c := &client{t: t, handler: handler}

	email := strings.ToLower(name) + "@example.com"
	u := decode[user.User](t, c.do(http.MethodPost, "/users", fmt.Sprintf(`{"full_name":%q,"email":%q,"password":"strong_password"}`, name, email)))
	tokens := decode[user.TokenResponse](t, c.do(http.MethodPost, "/auth/login", fmt.Sprintf(`{"email":%q,"password":"strong_password"}`, email)))
	require.NotEmpty(t, tokens.AccessToken)

	c.token = tokens.AccessToken
	c.id = u.ID
	return c
}

func TestQuizLifecycle(t *testing.T) {
	testutil.InitAuth(t)
	db := testutil.NewDB(t, container.Models()...)
	handler := container.NewWithDB(db, nil, nil).Router()

	author := signUp(t, handler, "Author")
	player := signUp(t, handler, "Player")

	created := decode[quiz.Quiz](t, author.do(http.MethodPost, "/quizzes", `{
		"title": "Capitals",
		"questions": [
			{"text": "France?", "options": ["Paris", "Lyon"], "correct_option": 0},
			{"text": "Spain?", "options": ["Seville", "Madrid"], "correct_option": 1}
		]
	}`))
	require.Len(t, created.Questions, 2)

	a := decode[attempt.QuizAttempt](t, player.do(http.MethodPost, "/attempts", fmt.Sprintf(`{"quiz_id":%d}`, created.ID)))

	for _, q := range created.Questions {
		player.do(http.MethodPost, "/answers", fmt.Sprintf(`{"attempt_id":%d,"question_id":%d,"selected_option":%d}`, a.ID, q.ID, q.CorrectOption))
	}

	finished := decode[attempt.QuizAttempt](t, player.do(http.MethodGet, fmt.Sprintf("/attempts/%d", a.ID), ""))
	assert.Equal(t, int64(2), finished.Score)
	assert.True(t, finished.IsFinished)

	got := decode[quiz.Quiz](t, player.do(http.MethodGet, fmt.Sprintf("/quizzes/%d", created.ID), ""))
	assert.Equal(t, int64(1), got.NumAttempts)

	createdBy := decode[[]quiz.Quiz](t, player.do(http.MethodGet, fmt.Sprintf("/users/%d/quizzes/created", created.CreatorID), ""))
	require.Len(t, createdBy, 1)
	assert.Equal(t, created.ID, createdBy[0].ID)

	attempted := decode[[]quiz.Quiz](t, player.do(http.MethodGet, fmt.Sprintf("/users/%d/quizzes/attempted", a.UserID), ""))
	require.Len(t, attempted, 1)
	assert.Equal(t, created.ID, attempted[0].ID)

	profile := decode[user.User](t, player.do(http.MethodGet, fmt.Sprintf("/users/%d", a.UserID), ""))
	assert.Equal(t, "Player", profile.FullName)

	stats := decode[answer.StatsResponse](t, player.do(http.MethodGet, fmt.Sprintf("/answers/stats?question_id=%d", created.Questions[0].ID), ""))
	assert.Equal(t, int64(1), stats.Correct)

	first := created.Questions[0]
	decode[quiz.QuizQuestion](t, author.do(http.MethodPatch, fmt.Sprintf("/quizzes/%d/questions/%d", created.ID, first.ID), `{"correct_option":1}`))
	regraded := decode[attempt.QuizAttempt](t, player.do(http.MethodGet, fmt.Sprintf("/attempts/%d", a.ID), ""))
	assert.Equal(t, int64(1), regraded.Score)
	assert.True(t, regraded.IsFinished)
	firstAnswer := decode[answer.QuizAnswer](t, player.do(http.MethodGet, fmt.Sprintf("/answers?attempt_id=%d&question_id=%d", a.ID, first.ID), ""))
	assert.False(t, firstAnswer.IsCorrect)

	assert.Equal(t, http.StatusUnauthorized, player.do(http.MethodDelete, fmt.Sprintf("/quizzes/%d", created.ID), "").Code)
	decode[quiz.Quiz](t, author.do(http.MethodDelete, fmt.Sprintf("/quizzes/%d", created.ID), ""))

	assert.Equal(t, http.StatusNotFound, player.do(http.MethodGet, fmt.Sprintf("/attempts/%d", a.ID), "").Code)
	assert.Equal(t, http.StatusNotFound, player.do(http.MethodGet, fmt.Sprintf("/answers?attempt_id=%d", a.ID), "").Code)
}

func TestRouterExtras(t *testing.T) {
	testutil.InitAuth(t)
	db := testutil.NewDB(t, container.Models()...)
	handler := container.NewWithDB(db, nil, nil).Router()
	c := signUp(t, handler, "Someone")

	t.Run("GenerateWithoutProvider", func(t *testing.T) {
		w := c.do(http.MethodPost, "/quizzes/generate", `{"topic":"history"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "not configured")
	})

	t.Run("GoogleWithoutProvider", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, c.do(http.MethodPost, "/auth/google", `{"code":"abc"}`).Code)
	})

	t.Run("UnknownQuiz", func(t *testing.T) {
		w := c.do(http.MethodGet, "/quizzes/42", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("SwaggerDocument", func(t *testing.T) {
		w := c.do(http.MethodGet, "/swagger/doc.json", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Quizard API")
	})

	t.Run("UnknownRoute", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/nowhere", "").Code)
	})

	t.Run("DisabledUserToken", func(t *testing.T) {
		leaving := signUp(t, handler, "Leaving")
		body := `{"title":"Late","questions":[{"text":"?","options":["a","b"],"correct_option":0}]}`
		require.Equal(t, http.StatusOK, leaving.do(http.MethodPost, "/quizzes", body).Code)

		decode[user.User](t, leaving.do(http.MethodDelete, fmt.Sprintf("/users/%d", leaving.id), ""))

		assert.Equal(t, http.StatusUnauthorized, leaving.do(http.MethodPatch, fmt.Sprintf("/users/%d", leaving.id), `{"display_name":"x"}`).Code)
		assert.Equal(t, http.StatusUnauthorized, leaving.do(http.MethodPost, "/quizzes", body).Code)
		assert.Equal(t, http.StatusOK, c.do(http.MethodPost, "/quizzes", body).Code)
	})
}
