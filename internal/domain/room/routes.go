package room

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns the catalog router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/types", h.Types)
	r.Get("/available", h.Available)
	r.Get("/{id}", h.Get)
	r.Get("/{id}/quote", h.Quote)

	return r
}
