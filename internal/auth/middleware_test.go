package auth_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/quizard-lambda/internal/apperror"
	"github.com/saulo-duarte/quizard-lambda/internal/auth"
)

func protected(t *testing.T) http.Handler {
	t.Helper()
	return auth.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := auth.GetUserClaimsFromContext(r.Context())
		require.NoError(t, err)
		w.Header().Set("X-User", claims.Subject)
		w.WriteHeader(http.StatusNoContent)
	}))
}

func TestAuthMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	auth.Init()

	token, err := auth.GenerateJWT(7, auth.RoleUser, time.Minute)
	require.NoError(t, err)

	cases := []struct {
		name   string
		setup  func(r *http.Request)
		status int
	}{
		{"Bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }, http.StatusNoContent},
		{"LowercaseScheme", func(r *http.Request) { r.Header.Set("Authorization", "bearer "+token) }, http.StatusNoContent},
		{"RawToken", func(r *http.Request) { r.Header.Set("Authorization", token) }, http.StatusNoContent},
		{"Cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token}) }, http.StatusNoContent},
		{"Missing", func(r *http.Request) {}, http.StatusUnauthorized},
		{"Invalid", func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/quizzes", nil)
			tc.setup(r)
			w := httptest.NewRecorder()

			protected(t).ServeHTTP(w, r)

			assert.Equal(t, tc.status, w.Code)
			if tc.status == http.StatusNoContent {
				assert.Equal(t, "7", w.Header().Get("X-User"))
			} else {
				assert.True(t, strings.Contains(w.Body.String(), `"status":401`))
			}
		})
	}
}

func TestAuthMiddlewareActiveCheck(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	auth.Init()

	disabled := fmt.Errorf("user is disabled: %w", apperror.ErrUnauthorized)
	auth.SetActiveCheck(func(ctx context.Context, userID int64) error {
		if userID == 8 {
			return disabled
		}
		return nil
	})
	t.Cleanup(func() { auth.SetActiveCheck(nil) })

	serve := func(userID int64) *httptest.ResponseRecorder {
		token, err := auth.GenerateJWT(userID, auth.RoleUser, time.Minute)
		require.NoError(t, err)
		r := httptest.NewRequest(http.MethodPatch, "/users/1", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		protected(t).ServeHTTP(w, r)
		return w
	}

	assert.Equal(t, http.StatusNoContent, serve(7).Code)

	w := serve(8)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "user is disabled")
}

func TestGetUserClaimsFromContext(t *testing.T) {
	_, err := auth.GetUserClaimsFromContext(context.Background())
	assert.True(t, errors.Is(err, apperror.ErrUnauthorized))

	ctx := auth.WithClaims(context.Background(), &auth.Claims{UserID: 9, Role: auth.RoleModerator})
	claims, err := auth.GetUserClaimsFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(9), claims.UserID)
}

func TestRole(t *testing.T) {
	assert.True(t, auth.RoleAdmin.IsValid())
	assert.False(t, auth.Role("root").IsValid())
	assert.True(t, auth.RoleModerator.In(auth.RoleAdmin, auth.RoleModerator))
	assert.False(t, auth.RoleUser.In(auth.RoleAdmin))
}

func TestPassword(t *testing.T) {
	hash, err := auth.HashPassword("strong_password")
	require.NoError(t, err)
	assert.NotEqual(t, "strong_password", hash)
	assert.True(t, auth.CheckPassword(hash, "strong_password"))
	assert.False(t, auth.CheckPassword(hash, "wrong_password"))
	assert.False(t, auth.CheckPassword("", "strong_password"))
}
