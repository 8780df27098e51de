package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/saulo-duarte/quizard-lambda/internal/apperror"
	"github.com/saulo-duarte/quizard-lambda/internal/config"
)

type contextKey string

const userClaimsKey contextKey = "userClaims"

const CookieName = "jwt"

var ErrNoClaims = fmt.Errorf("missing authentication: %w", apperror.ErrUnauthorized)

// ActiveCheck reports whether the identity behind a valid token may still act.
type ActiveCheck func(ctx context.Context, userID int64) error

var activeCheck ActiveCheck

// SetActiveCheck installs the check AuthMiddleware runs once a token
// validates. Install it before serving; nil disables the check.
func SetActiveCheck(check ActiveCheck) {
	activeCheck = check
}

// TokenFromRequest reads the Authorization header, with or without the Bearer
// scheme, falling back to the jwt cookie.
func TokenFromRequest(r *http.Request) string {
	if h := strings.TrimSpace(r.Header.Get("Authorization")); h != "" {
		if scheme, token, ok := strings.Cut(h, " "); ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return h
	}
	if c, err := r.Cookie(CookieName); err == nil {
		return c.Value
	}
	return ""
}

func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := config.WithContext(r.Context())

		token := TokenFromRequest(r)
		if token == "" {
			config.Error(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		claims, err := ValidateJWT(token)
		if err != nil {
			log.WithError(err).Warn("Rejected token")
			config.Error(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := WithClaims(r.Context(), claims)
		if activeCheck != nil {
			if err := activeCheck(ctx, claims.UserID); err != nil {
				log.WithError(err).Warn("Rejected inactive identity")
				config.WriteError(w, r, err)
				return
			}
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func WithClaims(ctx context.Context, claims *Claims) context.Context {
	ctx = context.WithValue(ctx, userClaimsKey, claims)
	return config.WithLogField(ctx, "user_id", claims.UserID)
}

func GetUserClaimsFromContext(ctx context.Context) (*Claims, error) {
	claims, ok := ctx.Value(userClaimsKey).(*Claims)
	if !ok || claims == nil {
		return nil, ErrNoClaims
	}
	return claims, nil
}
