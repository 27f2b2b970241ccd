package booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/hotelbook/booking-api/internal/domain/payment"
	"github.com/hotelbook/booking-api/internal/domain/room"
	"github.com/hotelbook/booking-api/internal/middleware"
	"github.com/hotelbook/booking-api/internal/pkg/errorhandler"
	"github.com/hotelbook/booking-api/internal/pkg/logger"
	"github.com/hotelbook/booking-api/internal/pkg/response"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Handler serves the booking flow over HTTP.
type Handler struct {
	service  *Service
	hub      *Hub
	sessions *middleware.SessionCodec
	upgrader websocket.Upgrader
}

// NewHandler creates booking handler
func NewHandler(service *Service, hub *Hub, sessions *middleware.SessionCodec, allowedOrigins []string) *Handler {
	return &Handler{
		service:  service,
		hub:      hub,
		sessions: sessions,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if len(allowedOrigins) == 0 || origin == "" {
					return true
				}
				for _, allowed := range allowedOrigins {
					if origin == allowed {
						return true
					}
				}
				log.Warn().Str("origin", origin).Msg("WebSocket origin rejected")
				return false
			},
		},
	}
}

// StartSession handles POST /booking/sessions
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	id, ctrl := h.service.Start()
	if err := h.sessions.Write(w, id); err != nil {
		h.service.Remove(id)
		errorhandler.HandleInternal(r.Context(), w, err)
		return
	}
	logger.FromContext(logger.WithSession(r.Context(), id)).Info().Msg("Booking session opened")
	response.Created(w, ctrl.Snapshot())
}

// GetSession handles GET /booking/session
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	response.OK(w, ctrl.Snapshot())
}

// SelectRoom handles POST /booking/session/room
func (h *Handler) SelectRoom(w http.ResponseWriter, r *http.Request) {
	var req SelectRoomRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if req.RoomID == "" {
		response.ValidationError(w, map[string]string{"room_id": "This field is required"})
		return
	}

	id := middleware.GetSessionID(r.Context())
	if err := h.service.SelectRoom(id, req.RoomID); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respondSnapshot(w, r)
}

// SubmitDetails handles POST /booking/session/details
func (h *Handler) SubmitDetails(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}

	var req DetailsRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	in, dateErrs := req.ToInput()
	if dateErrs != nil {
		h.rejectDetails(w, r, ctrl, in, dateErrs)
		return
	}

	if _, err := ctrl.SubmitDetails(in); err != nil {
		h.writeError(w, r, err)
		return
	}
	response.OK(w, ctrl.Snapshot())
}

// rejectDetails reports unparseable dates together with every other field error,
// without touching the flow.
func (h *Handler) rejectDetails(w http.ResponseWriter, r *http.Request, ctrl *Controller, in DetailsInput, dateErrs map[string]string) {
	snap := ctrl.Snapshot()
	if snap.Processing {
		h.writeError(w, r, ErrPaymentInProgress)
		return
	}
	if !allowed(snap.State, EventSubmitDetails) {
		h.writeError(w, r, &TransitionError{From: snap.State, Event: EventSubmitDetails})
		return
	}

	fields := ValidateDetails(*snap.Room, in)
	if fields == nil {
		fields = map[string]string{}
	}
	delete(fields, "departure_date")
	for k, v := range dateErrs {
		fields[k] = v
	}
	h.writeError(w, r, &ValidationError{Fields: fields})
}

// Proceed handles POST /booking/session/proceed
func (h *Handler) Proceed(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	if _, err := ctrl.Proceed(); err != nil {
		h.writeError(w, r, err)
		return
	}
	response.OK(w, ctrl.Snapshot())
}

// ReturnToDraft handles POST /booking/session/back
func (h *Handler) ReturnToDraft(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	if err := ctrl.ReturnToDraft(); err != nil {
		h.writeError(w, r, err)
		return
	}
	response.OK(w, ctrl.Snapshot())
}

// SubmitPayment handles POST /booking/session/payment
func (h *Handler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}

	var req PaymentRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	ctx := logger.WithSession(r.Context(), middleware.GetSessionID(r.Context()))
	if _, err := ctrl.SubmitPayment(ctx, payment.Method(req.Method), req.Form); err != nil {
		h.writeError(w, r, err)
		return
	}
	response.OK(w, ctrl.Snapshot())
}

// Cancel handles POST /booking/session/cancel
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	if err := ctrl.Cancel(); err != nil {
		h.writeError(w, r, err)
		return
	}
	response.OK(w, ctrl.Snapshot())
}

// Events handles GET /booking/session/events (websocket)
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := &Client{
		SessionID: middleware.GetSessionID(r.Context()),
		Conn:      conn,
		Send:      make(chan []byte, 16),
	}
	if data, err := json.Marshal(ctrl.Snapshot()); err == nil {
		client.Send <- data
	}
	h.hub.Register(client)

	go h.wsWriter(client)
	go h.wsReader(client)
}

// wsReader only drains control frames; the flow is driven over HTTP.
func (h *Handler) wsReader(client *Client) {
	defer func() {
		h.hub.Unregister(client)
		client.Conn.Close()
	}()

	client.Conn.SetReadLimit(maxMessageSize)
	client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().Err(err).Str("session_id", client.SessionID).Msg("WebSocket read error")
			}
			return
		}
	}
}

func (h *Handler) wsWriter(client *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.Send:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Handler) controller(w http.ResponseWriter, r *http.Request) (*Controller, bool) {
	ctrl, err := h.service.Get(middleware.GetSessionID(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return nil, false
	}
	return ctrl, true
}

func (h *Handler) respondSnapshot(w http.ResponseWriter, r *http.Request) {
	if ctrl, ok := h.controller(w, r); ok {
		response.OK(w, ctrl.Snapshot())
	}
}

// writeError maps flow, payment and catalog errors to HTTP responses.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()

	var detailsErr *ValidationError
	var paymentErr *payment.ValidationError
	var declined *payment.DeclinedError

	switch {
	case errors.As(err, &detailsErr):
		errorhandler.LogValidationError(ctx, detailsErr.Fields)
		response.ValidationError(w, detailsErr.Fields)
	case errors.As(err, &paymentErr):
		errorhandler.LogValidationError(ctx, paymentErr.Fields)
		response.ValidationError(w, paymentErr.Fields)
	case errors.As(err, &declined):
		response.PaymentDeclined(w, declined.Record.Message, map[string]string{
			"reservation_id": declined.Record.ReservationID,
			"status":         string(declined.Record.Status),
		})
	case errors.Is(err, ErrSessionNotFound):
		h.sessions.Clear(w)
		response.NotFound(w, "Booking session not found or expired")
	case errors.Is(err, room.ErrRoomNotFound):
		response.NotFound(w, "Room not found")
	case errors.Is(err, ErrRoomUnavailable):
		response.Conflict(w, "ROOM_UNAVAILABLE", err.Error())
	case errors.Is(err, ErrPaymentInProgress):
		response.Conflict(w, "PAYMENT_IN_PROGRESS", err.Error())
	case errors.Is(err, ErrInvalidTransition):
		response.Conflict(w, "INVALID_TRANSITION", err.Error())
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		errorhandler.HandleError(ctx, w, http.StatusGatewayTimeout, "PAYMENT_TIMEOUT", "Payment processing was interrupted", err)
	default:
		errorhandler.HandleInternal(ctx, w, err)
	}
}
