package booking

import (
	"context"
	"encoding/json"
	"expvar"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var (
	wsConnectionsGauge   = expvar.NewInt("booking_ws_connections")
	wsEventsDroppedTotal = expvar.NewInt("booking_ws_events_dropped_total")
)

// Client is one websocket subscriber of a booking session.
type Client struct {
	SessionID string
	Conn      *websocket.Conn
	Send      chan []byte
}

// Hub fans controller snapshots out to the websocket clients of each session.
type Hub struct {
	clients map[string]map[*Client]bool
	mu      sync.RWMutex

	register   chan *Client
	unregister chan *Client

	ctx    context.Context
	cancel context.CancelFunc
}

// NewHub creates a hub; call Run in a goroutine.
func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Run processes registrations until Shutdown.
func (h *Hub) Run() {
	for {
		select {
		case <-h.ctx.Done():
			h.mu.Lock()
			for id, set := range h.clients {
				for c := range set {
					close(c.Send)
				}
				delete(h.clients, id)
			}
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			if h.clients[c.SessionID] == nil {
				h.clients[c.SessionID] = make(map[*Client]bool)
			}
			h.clients[c.SessionID][c] = true
			h.mu.Unlock()
			wsConnectionsGauge.Add(1)
			log.Debug().Str("session_id", c.SessionID).Msg("Booking events subscriber connected")

		case c := <-h.unregister:
			h.mu.Lock()
			if set, ok := h.clients[c.SessionID]; ok {
				if _, exists := set[c]; exists {
					delete(set, c)
					close(c.Send)
					wsConnectionsGauge.Add(-1)
				}
				if len(set) == 0 {
					delete(h.clients, c.SessionID)
				}
			}
			h.mu.Unlock()
			log.Debug().Str("session_id", c.SessionID).Msg("Booking events subscriber disconnected")
		}
	}
}

// Register adds a client.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.ctx.Done():
	}
}

// Unregister removes a client.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.ctx.Done():
	}
}

// Broadcast sends snap to every client of sessionID. Slow clients drop events.
func (h *Hub) Broadcast(sessionID string, snap Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal booking snapshot")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients[sessionID] {
		select {
		case c.Send <- data:
		default:
			wsEventsDroppedTotal.Add(1)
			log.Warn().Str("session_id", sessionID).Msg("WebSocket send buffer full")
		}
	}
}

// CloseSession disconnects every client of sessionID.
func (h *Hub) CloseSession(sessionID string) {
	h.mu.Lock()
	set := h.clients[sessionID]
	delete(h.clients, sessionID)
	for c := range set {
		close(c.Send)
		wsConnectionsGauge.Add(-1)
	}
	h.mu.Unlock()

	if len(set) > 0 {
		log.Debug().Str("session_id", sessionID).Int("clients", len(set)).Msg("Booking events subscribers closed")
	}
}

// ClientCount returns the number of subscribers of a session.
func (h *Hub) ClientCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sessionID])
}

// Shutdown stops the hub and closes every client channel.
func (h *Hub) Shutdown() {
	h.cancel()
}
