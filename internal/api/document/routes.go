package document

import (
	"github.com/go-chi/chi/v5"
	"github.com/nilecare/advisory-backend/internal/api/middleware"
)

func RegisterRoutes(r chi.Router, h *Handler, auth middleware.TokenParser) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticated(auth))
		r.Use(middleware.AdminOnly)

		r.Get("/admin/documents", h.List)
		r.Post("/upload", h.Upload)
	})
}
