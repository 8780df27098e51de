package validation

import (
	"context"
	"fmt"
	"net/http"

	"github.com/saulo-duarte/quizard-lambda/internal/apperror"
	"github.com/saulo-duarte/quizard-lambda/internal/auth"
	"github.com/saulo-duarte/quizard-lambda/internal/config"
)

// OwnerFunc returns the user id owning the record with the given public id.
type OwnerFunc func(ctx context.Context, id int64) (int64, error)

var ErrNotOwner = fmt.Errorf("not allowed to modify this record: %w", apperror.ErrUnauthorized)

// Permission lets the request through only for the record owner or for a
// caller holding one of the elevated roles. It must run after Args.
func Permission(owner OwnerFunc, elevated ...auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := config.WithContext(r.Context())

			claims, err := auth.GetUserClaimsFromContext(r.Context())
			if err != nil {
				config.WriteError(w, r, err)
				return
			}

			id, ok := QueryFromContext(r.Context()).ID()
			if !ok {
				config.WriteError(w, r, apperror.Invalid("id", "is required"))
				return
			}

			ownerID, err := owner(r.Context(), id)
			if err != nil {
				config.WriteError(w, r, err)
				return
			}

			if ownerID != claims.UserID && !claims.Role.In(elevated...) {
				log.WithField("record_id", id).Warn("Permission denied")
				config.WriteError(w, r, ErrNotOwner)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
