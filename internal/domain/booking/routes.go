package booking

import (
	"github.com/go-chi/chi/v5"

	"github.com/hotelbook/booking-api/internal/middleware"
)

// Routes returns the booking flow router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/sessions", h.StartSession)

	r.Route("/session", func(r chi.Router) {
		r.Use(middleware.RequireSession(h.sessions))

		r.Get("/", h.GetSession)
		r.Post("/room", h.SelectRoom)
		r.Post("/details", h.SubmitDetails)
		r.Post("/proceed", h.Proceed)
		r.Post("/back", h.ReturnToDraft)
		r.Post("/payment", h.SubmitPayment)
		r.Post("/cancel", h.Cancel)
		r.Get("/events", h.Events)
	})

	return r
}
