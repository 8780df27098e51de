package config_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/quizard-lambda/internal/apperror"
	"github.com/saulo-duarte/quizard-lambda/internal/config"
)

type item struct {
	ID int64 `json:"id"`
}

func (i item) GetID() int64 { return i.ID }

type pageBody struct {
	Data  []item       `json:"data"`
	Links config.Links `json:"links"`
}

func TestPage(t *testing.T) {
	t.Run("FullPageHasNextLink", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/quizzes?many=true&limit=2", nil)
		w := httptest.NewRecorder()

		config.Page(w, r, []item{{ID: 10}, {ID: 42}}, 2)

		var body pageBody
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, body.Data, 2)
		assert.Equal(t, "/quizzes?many=true&limit=2", body.Links.Self)
		assert.Equal(t, "/quizzes?last_id=42&limit=2&many=true", body.Links.Next)
	})

	t.Run("PartialPageHasNoNextLink", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/quizzes?many=true", nil)
		w := httptest.NewRecorder()

		config.Page(w, r, []item{{ID: 1}}, 15)

		var body pageBody
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Empty(t, body.Links.Next)
	})

	t.Run("NilItemsEncodeAsEmptyList", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/quizzes?many=true&limit=0", nil)
		w := httptest.NewRecorder()

		config.Page[item](w, r, nil, 0)

		assert.JSONEq(t, `{"data":[],"links":{"self":"/quizzes?many=true&limit=0"}}`, w.Body.String())
	})
}

func TestWriteError(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"Validation", apperror.Invalid("id", "must be an integer"), http.StatusBadRequest, "invalid request"},
		{"NotFound", fmt.Errorf("user: %w", apperror.ErrNotFound), http.StatusNotFound, "user: not found"},
		{"Internal", errors.New("connection reset"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			w := httptest.NewRecorder()

			config.WriteError(w, r, tc.err)

			var body map[string]config.ErrorBody
			require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.status, body["error"].Status)
			assert.Equal(t, tc.message, body["error"].Message)
		})
	}
}
