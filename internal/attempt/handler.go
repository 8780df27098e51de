package attempt

import (
	"net/http"

	"github.com/saulo-duarte/quizard-lambda/internal/auth"
	"github.com/saulo-duarte/quizard-lambda/internal/config"
	"github.com/saulo-duarte/quizard-lambda/internal/validation"
)

type Handler struct {
	service AttemptService
}

func NewHandler(s AttemptService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) Retrieve(w http.ResponseWriter, r *http.Request) {
	q := validation.QueryFromContext(r.Context())

	if q.Many {
		attempts, err := h.service.List(r.Context(), q.Options())
		if err != nil {
			config.WriteError(w, r, err)
			return
		}
		config.Page(w, r, attempts, q.Limit)
		return
	}

	a, err := h.service.Get(r.Context(), q.Filters)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.Data(w, a)
}

// StartAttempt godoc
// @Summary  Start an attempt at a quiz for the authenticated user
// @Tags     attempts
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body CreateAttemptDTO true "Quiz to attempt"
// @Success  200 {object} map[string]interface{}
// @Failure  400,401,404 {object} map[string]config.ErrorBody
// @Router   /attempts [post]
func (h *Handler) StartAttempt(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	var dto CreateAttemptDTO
	if err := validation.DecodeBody(r, &dto); err != nil {
		config.WriteError(w, r, err)
		return
	}

	a, err := h.service.StartAttempt(r.Context(), claims.UserID, dto)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.Data(w, a)
}

// ListAttempted serves /users/{id}/quizzes/attempted.
func (h *Handler) ListAttempted(w http.ResponseWriter, r *http.Request) {
	q := validation.QueryFromContext(r.Context())
	userID, _ := q.Filters["user_id"].(int64)

	quizzes, err := h.service.ListAttemptedQuizzes(r.Context(), userID, q.LastID, q.Limit)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.Page(w, r, quizzes, q.Limit)
}
