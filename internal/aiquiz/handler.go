package aiquiz

import (
	"net/http"

	"github.com/saulo-duarte/quizard-lambda/internal/config"
	"github.com/saulo-duarte/quizard-lambda/internal/validation"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

// GenerateQuestions godoc
// @Summary  Draft quiz questions with Gemini
// @Tags     quizzes
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body GenerateRequest true "Topic and difficulty"
// @Success  200 {object} GenerateResponse
// @Failure  400,401 {object} map[string]config.ErrorBody
// @Router   /quizzes/generate [post]
func (h *Handler) GenerateQuestions(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := validation.DecodeBody(r, &req); err != nil {
		config.WriteError(w, r, err)
		return
	}

	resp, err := h.service.GenerateQuestions(r.Context(), req)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.Data(w, resp)
}
