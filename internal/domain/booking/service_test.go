package booking

import (
	"errors"
	"testing"
	"time"

	"github.com/hotelbook/booking-api/internal/domain/room"
)

func newTestService(t *testing.T, ttl time.Duration) *Service {
	t.Helper()
	catalog, err := room.NewCatalog(room.DefaultRooms())
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return NewService(catalog, &fakeProcessor{record: completed()}, &fakeSink{}, nil, ttl)
}

func TestService_StartAndGet(t *testing.T) {
	s := newTestService(t, time.Minute)

	id, ctrl := s.Start()
	got, err := s.Get(id)
	requireNoError(t, err)
	if got != ctrl {
		t.Fatal("expected the same controller back")
	}
	if ctrl.Snapshot().SessionID != id {
		t.Fatal("snapshot should carry the session id")
	}

	if _, err := s.Get("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestService_SelectRoom(t *testing.T) {
	s := newTestService(t, time.Minute)
	id, ctrl := s.Start()

	if err := s.SelectRoom(id, "404"); !errors.Is(err, room.ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
	requireNoError(t, s.SelectRoom(id, "3"))
	if snap := ctrl.Snapshot(); snap.State != StateSelecting || snap.Room.Number != "201" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestService_SweepDropsIdleSessions(t *testing.T) {
	s := newTestService(t, 10*time.Minute)
	clock := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	idle, _ := s.Start()
	clock = clock.Add(8 * time.Minute)
	active, ctrl := s.Start()

	clock = clock.Add(5 * time.Minute)
	requireNoError(t, ctrl.SelectRoom(doubleRoom()))

	if removed := s.Sweep(); removed != 1 {
		t.Fatalf("expected 1 session removed, got %d", removed)
	}
	if _, err := s.Get(idle); !errors.Is(err, ErrSessionNotFound) {
		t.Fatal("idle session should be gone")
	}
	if _, err := s.Get(active); err != nil {
		t.Fatalf("active session should survive: %v", err)
	}
	if s.Count() != 1 {
		t.Fatalf("expected 1 live session, got %d", s.Count())
	}
}

func TestService_SweepDisconnectsSubscribers(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Shutdown()

	catalog, err := room.NewCatalog(room.DefaultRooms())
	requireNoError(t, err)
	s := NewService(catalog, &fakeProcessor{record: completed()}, &fakeSink{}, hub, time.Minute)
	clock := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	id, _ := s.Start()
	c := &Client{SessionID: id, Send: make(chan []byte, 1)}
	hub.Register(c)
	waitFor(t, func() bool { return hub.ClientCount(id) == 1 })

	clock = clock.Add(2 * time.Minute)
	if removed := s.Sweep(); removed != 1 {
		t.Fatalf("expected 1 session removed, got %d", removed)
	}

	select {
	case _, ok := <-c.Send:
		if ok {
			t.Fatal("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatal("subscriber of a swept session was not disconnected")
	}
	if hub.ClientCount(id) != 0 {
		t.Fatal("expected no clients for the swept session")
	}

	// a late unregister from the reader goroutine must be harmless
	hub.Unregister(c)
}

func TestService_Remove(t *testing.T) {
	s := newTestService(t, time.Minute)
	id, _ := s.Start()
	s.Remove(id)
	if s.Count() != 0 {
		t.Fatal("expected no sessions")
	}
}
