package room

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hotelbook/booking-api/internal/pkg/errorhandler"
	"github.com/hotelbook/booking-api/internal/pkg/response"
	"github.com/hotelbook/booking-api/internal/pkg/validator"
)

// Handler serves the read-only catalog API.
type Handler struct {
	catalog  *Catalog
	currency string
}

// NewHandler creates room handler
func NewHandler(catalog *Catalog, currency string) *Handler {
	return &Handler{catalog: catalog, currency: currency}
}

// List handles GET /rooms
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := BrowseQuery{
		Type:   q.Get("type"),
		Search: q.Get("q"),
	}
	details := map[string]string{}
	query.MaxPrice = int64(parseIntParam(q.Get("max_price"), "max_price", details))
	query.MinCapacity = parseIntParam(q.Get("min_capacity"), "min_capacity", details)
	if query.Type == "all" {
		query.Type = ""
	}

	for field, msg := range validator.Validate(query) {
		details[field] = msg
	}
	if len(details) > 0 {
		errorhandler.LogValidationError(r.Context(), details)
		response.ValidationError(w, details)
		return
	}

	rooms := Browse(h.catalog.Rooms(), BrowseFilter{
		Type:        Type(query.Type),
		MaxPrice:    query.MaxPrice,
		MinCapacity: query.MinCapacity,
		Search:      query.Search,
	})

	response.WithMeta(w, rooms, response.Meta{Total: len(rooms), Currency: h.currency})
}

// Types handles GET /rooms/types
func (h *Handler) Types(w http.ResponseWriter, r *http.Request) {
	response.OK(w, Types(h.catalog.Rooms()))
}

// Get handles GET /rooms/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	rm, err := h.catalog.Get(chi.URLParam(r, "id"))
	if err != nil {
		response.NotFound(w, "Room not found")
		return
	}
	response.OK(w, rm)
}

// Available handles GET /rooms/available
func (h *Handler) Available(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	details := map[string]string{}
	query := StayQuery{
		PartySize: parseIntParam(q.Get("party_size"), "party_size", details),
		Arrival:   q.Get("arrival"),
		Departure: q.Get("departure"),
	}
	if _, bad := details["party_size"]; !bad && q.Get("party_size") == "" {
		query.PartySize = 1
	}

	arrival, departure, ok := h.parseStay(w, r, query, details)
	if !ok {
		return
	}

	rooms, err := FilterAvailable(h.catalog.Rooms(), Criteria{
		PartySize: query.PartySize,
		Arrival:   arrival,
		Departure: departure,
	})
	if err != nil {
		response.ValidationError(w, map[string]string{"party_size": err.Error()})
		return
	}

	out := make([]AvailableRoom, 0, len(rooms))
	for _, rm := range rooms {
		quote, err := QuoteStay(rm, arrival, departure)
		if err != nil {
			errorhandler.HandleInternal(r.Context(), w, err)
			return
		}
		out = append(out, AvailableRoom{Room: rm, Quote: quote})
	}

	response.WithMeta(w, out, response.Meta{Total: len(out), Currency: h.currency})
}

// Quote handles GET /rooms/{id}/quote
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	rm, err := h.catalog.Get(chi.URLParam(r, "id"))
	if err != nil {
		response.NotFound(w, "Room not found")
		return
	}

	q := r.URL.Query()
	query := StayQuery{PartySize: 1, Arrival: q.Get("arrival"), Departure: q.Get("departure")}
	arrival, departure, ok := h.parseStay(w, r, query, map[string]string{})
	if !ok {
		return
	}

	quote, err := QuoteStay(rm, arrival, departure)
	if err != nil {
		response.ValidationError(w, map[string]string{"departure": "Departure must be after arrival"})
		return
	}
	response.OK(w, quote)
}

// parseStay validates a StayQuery and parses its dates, writing a 422 on failure.
func (h *Handler) parseStay(w http.ResponseWriter, r *http.Request, query StayQuery, details map[string]string) (time.Time, time.Time, bool) {
	for field, msg := range validator.Validate(query) {
		if _, exists := details[field]; !exists {
			details[field] = msg
		}
	}

	var arrival, departure time.Time
	var err error
	if query.Arrival != "" {
		if arrival, err = ParseDate(query.Arrival); err != nil {
			details["arrival"] = "Invalid date, expected YYYY-MM-DD"
		}
	}
	if query.Departure != "" {
		if departure, err = ParseDate(query.Departure); err != nil {
			details["departure"] = "Invalid date, expected YYYY-MM-DD"
		}
	}
	if len(details) == 0 {
		if _, err := Nights(arrival, departure); errors.Is(err, ErrInvalidRange) {
			details["departure"] = "Departure must be after arrival"
		}
	}

	if len(details) > 0 {
		errorhandler.LogValidationError(r.Context(), details)
		response.ValidationError(w, details)
		return time.Time{}, time.Time{}, false
	}
	return arrival, departure, true
}

func parseIntParam(raw, field string, details map[string]string) int {
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		details[field] = "Must be a whole number"
		return 0
	}
	return v
}
