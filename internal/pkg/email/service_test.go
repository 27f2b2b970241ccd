package email

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSendSync_RendersConfirmation(t *testing.T) {
	var got SendGridRequest
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	svc := NewService(SendGridConfig{APIKey: "key", FromEmail: "hotel@test.local", Endpoint: srv.URL})
	defer svc.Close()

	err := svc.SendSync(context.Background(), &QueuedEmail{
		To:           "awa@example.com",
		ToName:       "Awa",
		Subject:      "Confirmation",
		TemplateName: templateReservationConfirmed,
		Data:         ReservationEmail{CustomerName: "Awa", ReservationID: "RES1", TotalAmount: "70000 FCFA"},
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	if auth != "Bearer key" {
		t.Fatalf("unexpected auth header %q", auth)
	}
	if len(got.Personalizations) != 1 || got.Personalizations[0].To[0].Email != "awa@example.com" {
		t.Fatalf("unexpected recipients %+v", got.Personalizations)
	}
	if len(got.Content) == 0 || !strings.Contains(got.Content[0].Value, "70000 FCFA") {
		t.Fatal("expected rendered total in html content")
	}
}

func TestSendSync_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	svc := NewService(SendGridConfig{Endpoint: srv.URL})
	defer svc.Close()

	err := svc.SendSync(context.Background(), &QueuedEmail{TemplateName: templateReservationConfirmed, Data: ReservationEmail{}})
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected StatusError 401, got %v", err)
	}
}

func TestSendSync_UnknownTemplate(t *testing.T) {
	svc := NewService(SendGridConfig{})
	defer svc.Close()

	if err := svc.SendSync(context.Background(), &QueuedEmail{TemplateName: "missing"}); err == nil {
		t.Fatal("expected unknown template error")
	}
}
