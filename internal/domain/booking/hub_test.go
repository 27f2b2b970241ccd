package booking

import (
	"encoding/json"
	"testing"
	"time"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHub_BroadcastsPerSession(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Shutdown()

	mine := &Client{SessionID: "a", Send: make(chan []byte, 1)}
	other := &Client{SessionID: "b", Send: make(chan []byte, 1)}
	hub.Register(mine)
	hub.Register(other)
	waitFor(t, func() bool { return hub.ClientCount("a") == 1 && hub.ClientCount("b") == 1 })

	hub.Broadcast("a", Snapshot{SessionID: "a", State: StateSelecting})

	select {
	case data := <-mine.Send:
		var snap Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if snap.State != StateSelecting {
			t.Fatalf("unexpected state %s", snap.State)
		}
	case <-time.After(time.Second):
		t.Fatal("expected a snapshot")
	}

	select {
	case <-other.Send:
		t.Fatal("other session must not receive the snapshot")
	default:
	}
}

func TestHub_SlowClientDropsEvents(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Shutdown()

	c := &Client{SessionID: "a", Send: make(chan []byte, 1)}
	hub.Register(c)
	waitFor(t, func() bool { return hub.ClientCount("a") == 1 })

	hub.Broadcast("a", Snapshot{State: StateSelecting})
	hub.Broadcast("a", Snapshot{State: StateDraftPending})

	if len(c.Send) != 1 {
		t.Fatalf("expected one buffered event, got %d", len(c.Send))
	}
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Shutdown()

	c := &Client{SessionID: "a", Send: make(chan []byte, 1)}
	hub.Register(c)
	waitFor(t, func() bool { return hub.ClientCount("a") == 1 })
	hub.Unregister(c)

	select {
	case _, ok := <-c.Send:
		if ok {
			t.Fatal("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatal("send channel was not closed")
	}
	if hub.ClientCount("a") != 0 {
		t.Fatal("expected no clients")
	}
}
