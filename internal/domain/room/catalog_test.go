package room

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hotelbook/booking-api/internal/pkg/storage"
)

func TestNewCatalog_RejectsBadSeed(t *testing.T) {
	cases := map[string][]Room{
		"empty id":      {{Type: TypeSimple, NightlyPrice: 1, Capacity: 1}},
		"duplicate id":  {{ID: "1", Type: TypeSimple, NightlyPrice: 1, Capacity: 1}, {ID: "1", Type: TypeDouble, NightlyPrice: 1, Capacity: 2}},
		"unknown type":  {{ID: "1", Type: "penthouse", NightlyPrice: 1, Capacity: 1}},
		"zero price":    {{ID: "1", Type: TypeSimple, Capacity: 1}},
		"zero capacity": {{ID: "1", Type: TypeSimple, NightlyPrice: 1}},
	}
	for name, rooms := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := NewCatalog(rooms); !errors.Is(err, ErrInvalidCatalog) {
				t.Fatalf("expected ErrInvalidCatalog, got %v", err)
			}
		})
	}
}

func TestCatalog_IsImmutable(t *testing.T) {
	c, err := NewCatalog(DefaultRooms())
	if err != nil {
		t.Fatalf("seed catalog: %v", err)
	}

	rooms := c.Rooms()
	rooms[0].NightlyPrice = 1
	rooms[0].Amenities[0] = "changed"

	got, err := c.Get(rooms[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.NightlyPrice != 25000 || got.Amenities[0] != "Climatisation" {
		t.Fatalf("catalog was mutated through a returned copy: %+v", got)
	}
}

func TestCatalog_GetMissing(t *testing.T) {
	c, _ := NewCatalog(DefaultRooms())
	if _, err := c.Get("99"); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
}

func TestDefaultRooms(t *testing.T) {
	c, err := NewCatalog(DefaultRooms())
	if err != nil {
		t.Fatalf("seed catalog: %v", err)
	}
	if c.Len() != 6 {
		t.Fatalf("expected 6 rooms, got %d", c.Len())
	}
	deluxe, _ := c.Get("4")
	if deluxe.Number != "301" || deluxe.Type != TypeDeluxe || deluxe.Capacity != 4 || deluxe.NightlyPrice != 75000 {
		t.Fatalf("unexpected deluxe room %+v", deluxe)
	}
	for _, r := range c.Rooms() {
		if !strings.HasPrefix(r.Image, "https://images.unsplash.com/photo-") {
			t.Errorf("room %s: unexpected image %q", r.ID, r.Image)
		}
	}
}

func TestLoadCatalog_FromFile(t *testing.T) {
	dir := t.TempDir()
	body := `[{"id":"a","number":"11","type":"double","nightly_price":35000,"capacity":2,"amenities":["Wi-Fi"],"available":true}]`
	if err := os.WriteFile(filepath.Join(dir, "rooms.json"), []byte(body), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	c, err := LoadCatalog(context.Background(), storage.NewLocalSource(dir), "rooms.json")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	r, err := c.Get("a")
	if err != nil || r.NightlyPrice != 35000 {
		t.Fatalf("unexpected room %+v %v", r, err)
	}
}

func TestLoadCatalog_Errors(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "bad.json"), []byte(`{`), 0o644)
	os.WriteFile(filepath.Join(dir, "empty.json"), []byte(`[]`), 0o644)
	src := storage.NewLocalSource(dir)

	if _, err := LoadCatalog(context.Background(), src, "missing.json"); !errors.Is(err, storage.ErrObjectNotFound) {
		t.Fatalf("expected ErrObjectNotFound, got %v", err)
	}
	if _, err := LoadCatalog(context.Background(), src, "bad.json"); !errors.Is(err, ErrInvalidCatalog) {
		t.Fatalf("expected ErrInvalidCatalog for bad json, got %v", err)
	}
	if _, err := LoadCatalog(context.Background(), src, "empty.json"); !errors.Is(err, ErrInvalidCatalog) {
		t.Fatalf("expected ErrInvalidCatalog for empty list, got %v", err)
	}
}

func TestOpenCatalog_DefaultsWhenEmpty(t *testing.T) {
	c, err := OpenCatalog(context.Background(), "", storage.Config{})
	if err != nil || c.Len() != len(DefaultRooms()) {
		t.Fatalf("expected default catalog, got %v", err)
	}
}
