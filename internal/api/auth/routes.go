package auth

import (
	"github.com/go-chi/chi/v5"
	"github.com/nilecare/advisory-backend/internal/api/middleware"
)

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/token", h.Token)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticated(h.usecase))

		r.Get("/users/me", h.Me)
		r.Get("/users/me/", h.Me)
		r.Get("/users/me/items", h.MyItems)
		r.Get("/users/me/items/", h.MyItems)
		r.Get("/auth/verify", h.Verify)
	})
}
