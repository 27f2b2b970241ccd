package confirmation

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/hotelbook/booking-api/internal/domain/booking"
	"github.com/hotelbook/booking-api/internal/domain/payment"
	"github.com/hotelbook/booking-api/internal/domain/room"
	"github.com/hotelbook/booking-api/internal/pkg/email"
	"github.com/hotelbook/booking-api/internal/pkg/logger"
)

func sample() booking.Confirmation {
	arrival, _ := room.ParseDate("2024-01-10")
	departure, _ := room.ParseDate("2024-01-12")
	return booking.Confirmation{
		Reservation: booking.Draft{
			ReservationID: "RES-1",
			RoomID:        "2",
			CustomerName:  "Awa Dossou",
			Email:         "awa@example.com",
			Phone:         "+229 97 00 00 00",
			ArrivalDate:   arrival,
			DepartureDate: departure,
			PartySize:     2,
			Nights:        2,
			TotalAmount:   70000,
		},
		Payment: payment.Record{
			ReservationID: "RES-1",
			Amount:        70000,
			Method:        payment.MethodCard,
			Status:        payment.StatusCompleted,
			TransactionID: "TXN1700000000000ABCDEF123",
		},
		ConfirmedAt: time.Date(2024, 1, 5, 9, 30, 0, 0, time.UTC),
	}
}

/* ===== fakes ===== */

type stubSink struct {
	name  string
	err   error
	calls int
}

func (s *stubSink) Name() string { return s.name }

func (s *stubSink) Confirm(context.Context, booking.Confirmation) error {
	s.calls++
	return s.err
}

type fakeRedis struct {
	channel string
	payload []byte
	err     error
}

func (f *fakeRedis) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	f.channel = channel
	f.payload, _ = message.([]byte)
	cmd := redis.NewIntCmd(ctx)
	if f.err != nil {
		cmd.SetErr(f.err)
	} else {
		cmd.SetVal(1)
	}
	return cmd
}

type fakeExchange struct {
	declared []string
	exchange string
	body     []byte
	err      error
}

func (f *fakeExchange) DeclareFanout(exchange string) error {
	f.declared = append(f.declared, exchange)
	return f.err
}

func (f *fakeExchange) Publish(_ context.Context, exchange string, body []byte) error {
	f.exchange = exchange
	f.body = body
	return nil
}

type fakeMailer struct {
	to   string
	name string
	data email.ReservationEmail
}

func (f *fakeMailer) QueueReservationConfirmed(to, toName string, data email.ReservationEmail) error {
	f.to, f.name, f.data = to, toName, data
	return nil
}

type fakeExecer struct {
	queries []string
	args    [][]interface{}
	err     error
}

func (f *fakeExecer) ExecContext(_ context.Context, query string, args ...interface{}) (sql.Result, error) {
	f.queries = append(f.queries, query)
	f.args = append(f.args, args)
	if f.err != nil {
		return nil, f.err
	}
	return driverResult(1), nil
}

type driverResult int64

func (r driverResult) LastInsertId() (int64, error) { return 0, nil }
func (r driverResult) RowsAffected() (int64, error) { return int64(r), nil }

/* ===== tests ===== */

func TestNewMessage(t *testing.T) {
	m := NewMessage(sample(), "FCFA")
	if m.Event != EventReservationConfirmed || m.ArrivalDate != "2024-01-10" || m.DepartureDate != "2024-01-12" {
		t.Fatalf("unexpected message %+v", m)
	}
	if m.TotalAmount != 70000 || m.Currency != "FCFA" || m.PaymentMethod != "card" {
		t.Fatalf("unexpected amounts %+v", m)
	}
}

func TestFanout_TriesEverySinkAndJoinsErrors(t *testing.T) {
	boom := errors.New("boom")
	first := &stubSink{name: "first", err: boom}
	second := &stubSink{name: "second"}
	f := NewFanout(first, nil, second)

	if f.Len() != 2 {
		t.Fatalf("nil sinks should be skipped, got %d", f.Len())
	}

	err := f.Confirm(context.Background(), sample())
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined error to wrap boom, got %v", err)
	}
	if !strings.Contains(err.Error(), "first") {
		t.Fatalf("error should name the sink: %v", err)
	}
	if first.calls != 1 || second.calls != 1 {
		t.Fatal("every sink must be called")
	}
}

func TestFanout_NoErrors(t *testing.T) {
	if err := NewFanout(&stubSink{}).Confirm(context.Background(), sample()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf)
	ctx := logger.WithContext(context.Background(), &l)

	if err := NewLogSink("FCFA").Confirm(ctx, sample()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if line["reservation_id"] != "RES-1" || line["transaction_id"] != "TXN1700000000000ABCDEF123" {
		t.Fatalf("unexpected log line %v", line)
	}
}

func TestRedisSink(t *testing.T) {
	client := &fakeRedis{}
	sink := NewRedisSink(client, "", "FCFA")

	if err := sink.Confirm(context.Background(), sample()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.channel != DefaultChannel {
		t.Fatalf("expected default channel, got %s", client.channel)
	}
	var m Message
	if err := json.Unmarshal(client.payload, &m); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if m.ReservationID != "RES-1" {
		t.Fatalf("unexpected payload %+v", m)
	}

	client.err = errors.New("connection refused")
	if err := sink.Confirm(context.Background(), sample()); err == nil {
		t.Fatal("expected publish error")
	}
}

func TestAMQPSink(t *testing.T) {
	pub := &fakeExchange{}
	sink, err := NewAMQPSink(pub, "", "FCFA")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pub.declared) != 1 || pub.declared[0] != DefaultExchange {
		t.Fatalf("expected exchange declared, got %v", pub.declared)
	}

	if err := sink.Confirm(context.Background(), sample()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pub.exchange != DefaultExchange || !bytes.Contains(pub.body, []byte(`"reservation_id":"RES-1"`)) {
		t.Fatalf("unexpected publish %s %s", pub.exchange, pub.body)
	}
}

func TestAMQPSink_DeclareFailure(t *testing.T) {
	if _, err := NewAMQPSink(&fakeExchange{err: errors.New("channel closed")}, "x", "FCFA"); err == nil {
		t.Fatal("expected declare error")
	}
}

func TestEmailSink(t *testing.T) {
	catalog, err := room.NewCatalog(room.DefaultRooms())
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	mailer := &fakeMailer{}

	if err := NewEmailSink(mailer, catalog, "FCFA").Confirm(context.Background(), sample()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mailer.to != "awa@example.com" || mailer.name != "Awa Dossou" {
		t.Fatalf("unexpected recipient %s <%s>", mailer.name, mailer.to)
	}
	d := mailer.data
	if d.RoomNumber != "102" || d.RoomType != "double" || d.TotalAmount != "70 000 FCFA" {
		t.Fatalf("unexpected email data %+v", d)
	}
	if d.ArrivalDate != "10/01/2024" || d.PaymentMethod != "Carte bancaire" {
		t.Fatalf("unexpected email data %+v", d)
	}
}

func TestFormatAmount(t *testing.T) {
	cases := map[int64]string{
		0:       "0 FCFA",
		950:     "950 FCFA",
		25000:   "25 000 FCFA",
		1250000: "1 250 000 FCFA",
		-35000:  "-35 000 FCFA",
	}
	for in, want := range cases {
		if got := FormatAmount(in, "FCFA"); got != want {
			t.Errorf("FormatAmount(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestBackendSink(t *testing.T) {
	db := &fakeExecer{}
	sink := NewBackendSink(db, "FCFA")

	if err := sink.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	if err := sink.Confirm(context.Background(), sample()); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	if len(db.queries) != 2 || !strings.Contains(db.queries[1], "ON CONFLICT (reservation_id) DO NOTHING") {
		t.Fatalf("unexpected queries %v", db.queries)
	}
	args := db.args[1]
	if args[0] != "RES-1" || args[9] != int64(70000) {
		t.Fatalf("unexpected insert args %v", args)
	}

	db.err = errors.New("relation does not exist")
	if err := sink.Confirm(context.Background(), sample()); err == nil {
		t.Fatal("expected insert error")
	}
}
