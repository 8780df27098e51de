package user

import (
	"net/http"

	"github.com/saulo-duarte/quizard-lambda/internal/auth"
	"github.com/saulo-duarte/quizard-lambda/internal/config"
	"github.com/saulo-duarte/quizard-lambda/internal/validation"
)

type Handler struct {
	service      UserService
	cookieDomain string
}

func NewHandler(s UserService) *Handler {
	return &Handler{
		service:      s,
		cookieDomain: config.Getenv("COOKIE_DOMAIN", ""),
	}
}

// Retrieve godoc
// @Summary  Get one user or a page of users
// @Tags     users
// @Produce  json
// @Param    id       path   int   false "User ID"
// @Param    many     query  bool  false "Return a page instead of the first match"
// @Param    last_id  query  int   false "Cursor: id of the last user of the previous page"
// @Param    limit    query  int   false "Page size (max 100)"
// @Success  200 {object} map[string]interface{}
// @Failure  400,404 {object} map[string]config.ErrorBody
// @Router   /users [get]
// @Router   /users/{id} [get]
func (h *Handler) Retrieve(w http.ResponseWriter, r *http.Request) {
	q := validation.QueryFromContext(r.Context())

	if q.Many {
		users, err := h.service.List(r.Context(), q.Options())
		if err != nil {
			config.WriteError(w, r, err)
			return
		}
		config.Page(w, r, users, q.Limit)
		return
	}

	u, err := h.service.Get(r.Context(), q.Filters)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.Data(w, u)
}

// Create godoc
// @Summary  Register a user
// @Tags     users
// @Accept   json
// @Produce  json
// @Param    body body CreateUserDTO true "New user"
// @Success  200 {object} map[string]interface{}
// @Failure  400 {object} map[string]config.ErrorBody
// @Router   /users [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateUserDTO
	if err := validation.DecodeBody(r, &dto); err != nil {
		config.WriteError(w, r, err)
		return
	}

	u, err := h.service.Register(r.Context(), dto)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.Data(w, u)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, _ := validation.QueryFromContext(r.Context()).ID()

	var dto UpdateUserDTO
	if err := validation.DecodeBody(r, &dto); err != nil {
		config.WriteError(w, r, err)
		return
	}

	u, err := h.service.Update(r.Context(), id, dto)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.Data(w, u)
}

func (h *Handler) Disable(w http.ResponseWriter, r *http.Request) {
	id, _ := validation.QueryFromContext(r.Context()).ID()

	u, err := h.service.Disable(r.Context(), id)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.Data(w, u)
}

// Login godoc
// @Summary  Sign in with email and password
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body LoginDTO true "Credentials"
// @Success  200 {object} map[string]interface{}
// @Failure  400,401 {object} map[string]config.ErrorBody
// @Router   /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := validation.DecodeBody(r, &dto); err != nil {
		config.WriteError(w, r, err)
		return
	}

	tokens, err := h.service.Login(r.Context(), dto)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	h.writeTokens(w, tokens)
}

func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var dto RefreshDTO
	if err := validation.DecodeBody(r, &dto); err != nil {
		config.WriteError(w, r, err)
		return
	}

	tokens, err := h.service.Refresh(r.Context(), dto.RefreshToken)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	h.writeTokens(w, tokens)
}

func (h *Handler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var dto GoogleLoginDTO
	if err := validation.DecodeBody(r, &dto); err != nil {
		config.WriteError(w, r, err)
		return
	}

	tokens, err := h.service.GoogleLogin(r.Context(), dto.Code)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	h.writeTokens(w, tokens)
}

func (h *Handler) writeTokens(w http.ResponseWriter, tokens *TokenResponse) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    tokens.AccessToken,
		Path:     "/",
		Domain:   h.cookieDomain,
		MaxAge:   int(tokens.ExpiresIn),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
	config.Data(w, tokens)
}
