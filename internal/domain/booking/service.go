package booking

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/hotelbook/booking-api/internal/domain/room"
)

// DefaultSessionTTL is how long an idle booking session is kept.
const DefaultSessionTTL = 30 * time.Minute

// Service keeps one Controller per booking session, in memory.
type Service struct {
	mu       sync.RWMutex
	sessions map[string]*Controller

	catalog  *room.Catalog
	payments PaymentProcessor
	sink     Sink
	hub      *Hub
	ttl      time.Duration
	now      func() time.Time
}

// NewService creates the session registry. hub may be nil.
func NewService(catalog *room.Catalog, payments PaymentProcessor, sink Sink, hub *Hub, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Service{
		sessions: make(map[string]*Controller),
		catalog:  catalog,
		payments: payments,
		sink:     sink,
		hub:      hub,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Start opens a new booking session.
func (s *Service) Start() (string, *Controller) {
	id := uuid.NewString()
	ctrl := NewController(s.payments, s.sink, WithSessionID(id), WithClock(s.now))
	if s.hub != nil {
		ctrl.OnChange(func(snap Snapshot) {
			s.hub.Broadcast(id, snap)
		})
	}

	s.mu.Lock()
	s.sessions[id] = ctrl
	s.mu.Unlock()

	log.Debug().Str("session_id", id).Msg("Booking session started")
	return id, ctrl
}

// Get returns the controller of a session.
func (s *Service) Get(id string) (*Controller, error) {
	s.mu.RLock()
	ctrl, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return ctrl, nil
}

// SelectRoom resolves roomID in the catalog and selects it for the session.
func (s *Service) SelectRoom(id, roomID string) error {
	ctrl, err := s.Get(id)
	if err != nil {
		return err
	}
	r, err := s.catalog.Get(roomID)
	if err != nil {
		return err
	}
	return ctrl.SelectRoom(r)
}

// Remove forgets a session and disconnects its subscribers.
func (s *Service) Remove(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()

	s.closeSubscribers(id)
}

func (s *Service) closeSubscribers(ids ...string) {
	if s.hub == nil {
		return
	}
	for _, id := range ids {
		s.hub.CloseSession(id)
	}
}

// Count returns the number of live sessions.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep drops sessions idle for longer than the TTL and disconnects their
// subscribers. Sessions with a payment in flight are kept.
func (s *Service) Sweep() int {
	cutoff := s.now().Add(-s.ttl)

	var expired []string
	s.mu.Lock()
	for id, ctrl := range s.sessions {
		snap := ctrl.Snapshot()
		if snap.Processing || !snap.UpdatedAt.Before(cutoff) {
			continue
		}
		delete(s.sessions, id)
		expired = append(expired, id)
	}
	s.mu.Unlock()

	s.closeSubscribers(expired...)
	return len(expired)
}

// StartSweeper runs Sweep on every tick until ctx is done.
func (s *Service) StartSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Booking session sweeper stopped")
			return
		case <-ticker.C:
			if removed := s.Sweep(); removed > 0 {
				log.Info().
					Int("removed", removed).
					Dur("ttl", s.ttl).
					Msg("Expired idle booking sessions")
			}
		}
	}
}
