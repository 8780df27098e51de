package answer

import (
	"net/http"

	"github.com/saulo-duarte/quizard-lambda/internal/auth"
	"github.com/saulo-duarte/quizard-lambda/internal/config"
	"github.com/saulo-duarte/quizard-lambda/internal/validation"
)

type Handler struct {
	service AnswerService
}

func NewHandler(s AnswerService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) Retrieve(w http.ResponseWriter, r *http.Request) {
	q := validation.QueryFromContext(r.Context())

	if q.Many {
		answers, err := h.service.List(r.Context(), q.Options())
		if err != nil {
			config.WriteError(w, r, err)
			return
		}
		config.Page(w, r, answers, q.Limit)
		return
	}

	ans, err := h.service.Get(r.Context(), q.Filters)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.Data(w, ans)
}

// SubmitAnswer godoc
// @Summary  Answer a question of one of your attempts
// @Tags     answers
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body CreateAnswerDTO true "Answer"
// @Success  200 {object} map[string]interface{}
// @Failure  400,401,404 {object} map[string]config.ErrorBody
// @Router   /answers [post]
func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	var dto CreateAnswerDTO
	if err := validation.DecodeBody(r, &dto); err != nil {
		config.WriteError(w, r, err)
		return
	}

	ans, err := h.service.SubmitAnswer(r.Context(), claims.UserID, dto)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.Data(w, ans)
}

func (h *Handler) UpdateAnswer(w http.ResponseWriter, r *http.Request) {
	id, _ := validation.QueryFromContext(r.Context()).ID()

	var dto UpdateAnswerDTO
	if err := validation.DecodeBody(r, &dto); err != nil {
		config.WriteError(w, r, err)
		return
	}

	ans, err := h.service.UpdateAnswer(r.Context(), id, dto)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.Data(w, ans)
}

// Stats godoc
// @Summary  Answer distribution for a question
// @Tags     answers
// @Produce  json
// @Param    question_id query int true "Question ID"
// @Success  200 {object} StatsResponse
// @Failure  400,404 {object} map[string]config.ErrorBody
// @Router   /answers/stats [get]
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	q := validation.QueryFromContext(r.Context())

	stats, err := h.service.Stats(r.Context(), q.Filters)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.Data(w, stats)
}
