package advisory

import "github.com/go-chi/chi/v5"

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/ask", func(r chi.Router) {
		r.Post("/", h.Ask)
		r.Post("/export", h.Export)
	})
}
