package user

import (
	"github.com/go-chi/chi/v5"

	"github.com/saulo-duarte/quizard-lambda/internal/auth"
	"github.com/saulo-duarte/quizard-lambda/internal/validation"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.With(validation.Args("user_read")).Get("/", h.Retrieve)
	r.With(validation.Args("user_read")).Get("/{id}", h.Retrieve)
	r.With(validation.Body("user_write")).Post("/", h.Create)

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)
		r.Use(validation.Args("user_read"))
		r.Use(validation.Permission(h.service.OwnerOf, auth.RoleAdmin))

		r.With(validation.Body("user_write")).Put("/", h.Update)
		r.With(validation.Body("user_write")).Patch("/", h.Update)
		r.With(validation.Body("user_write")).Put("/{id}", h.Update)
		r.With(validation.Body("user_write")).Patch("/{id}", h.Update)
		r.Delete("/{id}", h.Disable)
	})
	return r
}

// AuthRoutes serves the token endpoints. Logout lives in the auth package and
// uses the service as its refresh token revoker.
func AuthRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.With(validation.Body("user_login")).Post("/login", h.Login)
	r.With(validation.Body("token_refresh")).Post("/refresh", h.RefreshToken)
	r.With(validation.Body("google_login")).Post("/google", h.GoogleLogin)
	r.With(validation.Body("token_logout")).Post("/logout", auth.NewHandler(h.service, validation.DecodeBody).Logout)
	return r
}
