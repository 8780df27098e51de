package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/quizard-lambda/internal/auth"
)

const JWTSecret = "test-secret-that-is-long-enough"

func InitAuth(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", JWTSecret)
	auth.Init()
}

// Authorize signs an access token for the user and sets it on the request.
func Authorize(t *testing.T, r *http.Request, userID int64, role auth.Role) {
	t.Helper()
	token, err := auth.GenerateJWT(userID, role, time.Minute)
	require.NoError(t, err)
	r.Header.Set("Authorization", "Bearer "+token)
}

// AsUser returns a context carrying claims for the user, bypassing the
// token middleware.
func AsUser(ctx context.Context, userID int64, role auth.Role) context.Context {
	return auth.WithClaims(ctx, &auth.Claims{UserID: userID, Role: role})
}
