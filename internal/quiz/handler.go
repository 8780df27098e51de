package quiz

import (
	"net/http"

	"github.com/saulo-duarte/quizard-lambda/internal/auth"
	"github.com/saulo-duarte/quizard-lambda/internal/config"
	"github.com/saulo-duarte/quizard-lambda/internal/validation"
)

type Handler struct {
	service QuizService
}

func NewHandler(s QuizService) *Handler {
	return &Handler{service: s}
}

// Retrieve godoc
// @Summary  Get one quiz with its ordered questions, or a page of quizzes
// @Tags     quizzes
// @Produce  json
// @Param    id          path   int   false "Quiz ID"
// @Param    many        query  bool  false "Return a page instead of the first match"
// @Param    creator_id  query  int   false "Filter by creator"
// @Param    last_id     query  int   false "Cursor"
// @Param    limit       query  int   false "Page size (max 100)"
// @Success  200 {object} map[string]interface{}
// @Failure  400,404 {object} map[string]config.ErrorBody
// @Router   /quizzes [get]
// @Router   /quizzes/{id} [get]
func (h *Handler) Retrieve(w http.ResponseWriter, r *http.Request) {
	q := validation.QueryFromContext(r.Context())

	if q.Many {
		h.list(w, r, q)
		return
	}

	quiz, err := h.service.GetQuizWithQuestions(r.Context(), q.Filters)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.Data(w, quiz)
}

// ListCreated pages through the quizzes a user created.
func (h *Handler) ListCreated(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, validation.QueryFromContext(r.Context()))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, q validation.Query) {
	quizzes, err := h.service.ListQuizzes(r.Context(), q.Options())
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.Page(w, r, quizzes, q.Limit)
}

// CreateQuiz godoc
// @Summary  Create a quiz together with its questions
// @Tags     quizzes
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body CreateQuizDTO true "Quiz"
// @Success  200 {object} map[string]interface{}
// @Failure  400,401 {object} map[string]config.ErrorBody
// @Router   /quizzes [post]
func (h *Handler) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		log.Warn("Unauthenticated quiz creation")
		config.WriteError(w, r, err)
		return
	}

	var dto CreateQuizDTO
	if err := validation.DecodeBody(r, &dto); err != nil {
		config.WriteError(w, r, err)
		return
	}

	quiz, err := h.service.CreateQuizWithQuestions(r.Context(), claims.UserID, dto)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.Data(w, quiz)
}

func (h *Handler) UpdateQuiz(w http.ResponseWriter, r *http.Request) {
	id, _ := validation.QueryFromContext(r.Context()).ID()

	var dto UpdateQuizDTO
	if err := validation.DecodeBody(r, &dto); err != nil {
		config.WriteError(w, r, err)
		return
	}

	quiz, err := h.service.UpdateQuiz(r.Context(), id, dto)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.Data(w, quiz)
}

func (h *Handler) DeleteQuiz(w http.ResponseWriter, r *http.Request) {
	id, _ := validation.QueryFromContext(r.Context()).ID()

	quiz, err := h.service.DeleteQuiz(r.Context(), id)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.Data(w, quiz)
}

func (h *Handler) RetrieveQuestions(w http.ResponseWriter, r *http.Request) {
	q := validation.QueryFromContext(r.Context())

	if q.Many {
		questions, err := h.service.ListQuestions(r.Context(), q.Options())
		if err != nil {
			config.WriteError(w, r, err)
			return
		}
		config.Page(w, r, questions, q.Limit)
		return
	}

	question, err := h.service.GetQuestion(r.Context(), q.Filters)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.Data(w, question)
}

func (h *Handler) AddQuestion(w http.ResponseWriter, r *http.Request) {
	quizID, _ := validation.QueryFromContext(r.Context()).ID()

	var in QuestionInput
	if err := validation.DecodeBody(r, &in); err != nil {
		config.WriteError(w, r, err)
		return
	}

	question, err := h.service.AddQuestionToQuiz(r.Context(), quizID, in)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.Data(w, question)
}

func (h *Handler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	q := validation.QueryFromContext(r.Context())
	id, _ := q.ID()
	quizID, _ := q.Filters["quiz_id"].(int64)

	var dto UpdateQuestionDTO
	if err := validation.DecodeBody(r, &dto); err != nil {
		config.WriteError(w, r, err)
		return
	}

	question, err := h.service.UpdateQuestion(r.Context(), quizID, id, dto)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.Data(w, question)
}

func (h *Handler) RemoveQuestion(w http.ResponseWriter, r *http.Request) {
	q := validation.QueryFromContext(r.Context())
	id, _ := q.ID()
	quizID, _ := q.Filters["quiz_id"].(int64)

	question, err := h.service.RemoveQuestion(r.Context(), quizID, id)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.Data(w, question)
}
