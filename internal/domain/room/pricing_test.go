package room

import (
	"errors"
	"testing"
	"time"
)

func TestNights_Scenario(t *testing.T) {
	r := Room{ID: "2", NightlyPrice: 35000, Capacity: 2}
	arrival, _ := ParseDate("2024-01-10")
	departure, _ := ParseDate("2024-01-12")

	q, err := QuoteStay(r, arrival, departure)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if q.Nights != 2 || q.Total != 70000 {
		t.Fatalf("expected 2 nights / 70000, got %d / %d", q.Nights, q.Total)
	}
}

func TestNights_EqualDatesFail(t *testing.T) {
	d, _ := ParseDate("2024-01-10")
	n, err := Nights(d, d)
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %d %v", n, err)
	}
	var rangeErr *InvalidRangeError
	if !errors.As(err, &rangeErr) || !rangeErr.Arrival.Equal(d) {
		t.Fatalf("expected InvalidRangeError carrying the dates, got %v", err)
	}
}

func TestNights_ReversedFails(t *testing.T) {
	a, _ := ParseDate("2024-01-12")
	d, _ := ParseDate("2024-01-10")
	if _, err := Nights(a, d); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestNights_IgnoresTimeOfDay(t *testing.T) {
	arrival := time.Date(2024, 3, 30, 23, 0, 0, 0, time.UTC)
	departure := time.Date(2024, 3, 31, 1, 0, 0, 0, time.UTC)
	n, err := Nights(arrival, departure)
	if err != nil || n != 1 {
		t.Fatalf("expected 1 night, got %d %v", n, err)
	}
}

func TestNights_LongRanges(t *testing.T) {
	departure, _ := ParseDate("2024-01-12")

	cases := []struct {
		name    string
		arrival time.Time
		want    int
	}{
		{"before 1970", time.Date(1700, 1, 1, 0, 0, 0, 0, time.UTC), 118349},
		{"zero time", time.Time{}, 738896},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n, err := Nights(tc.arrival, departure)
			if err != nil || n != tc.want {
				t.Fatalf("expected %d nights, got %d %v", tc.want, n, err)
			}
		})
	}
}

func TestTotalPrice_Identity(t *testing.T) {
	base, _ := ParseDate("2024-02-25")
	for _, r := range DefaultRooms() {
		for nights := 1; nights <= 10; nights++ {
			n, err := Nights(base, base.AddDate(0, 0, nights))
			if err != nil {
				t.Fatalf("nights: %v", err)
			}
			total := TotalPrice(r, n)
			if total != int64(nights)*r.NightlyPrice || total <= 0 {
				t.Fatalf("room %s, %d nights: got %d", r.ID, nights, total)
			}
		}
	}
}
