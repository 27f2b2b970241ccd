package payment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hotelbook/booking-api/internal/pkg/response"
)

// Handler exposes payment step metadata.
type Handler struct {
	currency string
}

// NewHandler creates payment handler
func NewHandler(currency string) *Handler {
	return &Handler{currency: currency}
}

// ListMethods handles GET /payment/methods
func (h *Handler) ListMethods(w http.ResponseWriter, r *http.Request) {
	methods := Methods()
	response.WithMeta(w, methods, response.Meta{Total: len(methods), Currency: h.currency})
}

// Routes returns the payment router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/methods", h.ListMethods)
	return r
}
