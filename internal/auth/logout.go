package auth

import (
	"context"
	"net/http"

	"github.com/saulo-duarte/quizard-lambda/internal/config"
)

// Revoker invalidates a refresh token. Unknown tokens are not an error.
type Revoker interface {
	Revoke(ctx context.Context, refreshToken string) error
}

// BodyDecoder reads a request body that an earlier middleware validated.
type BodyDecoder func(r *http.Request, dst interface{}) error

type Handler struct {
	revoker      Revoker
	decode       BodyDecoder
	cookieDomain string
}

func NewHandler(revoker Revoker, decode BodyDecoder) *Handler {
	return &Handler{
		revoker:      revoker,
		decode:       decode,
		cookieDomain: config.Getenv("COOKIE_DOMAIN", ""),
	}
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var payload struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := h.decode(r, &payload); err != nil {
		log.WithError(err).Warn("Invalid logout body")
		config.WriteError(w, r, err)
		return
	}

	if payload.RefreshToken != "" && h.revoker != nil {
		if err := h.revoker.Revoke(r.Context(), payload.RefreshToken); err != nil {
			config.WriteError(w, r, err)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.cookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})

	config.Data(w, map[string]string{
		"message": "logout successful",
	})
}
