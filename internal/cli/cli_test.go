package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hotelbook/booking-api/internal/domain/booking"
	"github.com/hotelbook/booking-api/internal/domain/payment"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRoot()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRooms_FiltersByType(t *testing.T) {
	out, err := run(t, "rooms", "--type", "double")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "102") || !strings.Contains(out, "202") {
		t.Fatalf("expected both double rooms:\n%s", out)
	}
	if strings.Contains(out, "101") {
		t.Fatalf("simple room should be filtered out:\n%s", out)
	}
	if !strings.Contains(out, "35 000 FCFA") {
		t.Fatalf("expected formatted price:\n%s", out)
	}
}

func TestRooms_RejectsUnknownType(t *testing.T) {
	if _, err := run(t, "rooms", "--type", "penthouse"); err == nil {
		t.Fatal("expected error")
	}
}

func TestSearch_ByPartySize(t *testing.T) {
	out, err := run(t, "search", "--arrival", "2024-01-10", "--departure", "2024-01-12", "--party-size", "3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "201") || !strings.Contains(out, "301") || strings.Contains(out, "102") {
		t.Fatalf("unexpected rooms:\n%s", out)
	}
	if !strings.Contains(out, "110 000 FCFA") {
		t.Fatalf("expected suite total for two nights:\n%s", out)
	}
}

func TestQuote(t *testing.T) {
	out, err := run(t, "quote", "2", "--arrival", "2024-01-10", "--departure", "2024-01-12")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "total:   70 000 FCFA") {
		t.Fatalf("unexpected quote:\n%s", out)
	}
}

func TestQuote_InvalidRange(t *testing.T) {
	if _, err := run(t, "quote", "2", "--arrival", "2024-01-12", "--departure", "2024-01-12"); err == nil {
		t.Fatal("expected range error")
	}
}

func bookArgs(extra ...string) []string {
	args := []string{
		"book", "2",
		"--name", "Awa Dossou",
		"--email", "awa@example.com",
		"--phone", "+229 97 00 00 00",
		"--arrival", "2024-01-10",
		"--departure", "2024-01-12",
		"--party-size", "2",
		"--card-number", "4111 1111 1111 1111",
		"--holder", "AWA DOSSOU",
		"--expiration", "12/27",
		"--cvv", "123",
	}
	return append(args, extra...)
}

func TestBook_Completes(t *testing.T) {
	out, err := run(t, bookArgs("--success-rate", "1")...)
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, out)
	}
	if !strings.Contains(out, "total 70 000 FCFA") {
		t.Fatalf("expected frozen total:\n%s", out)
	}
	if !strings.Contains(out, booking.ConfirmedMessage) || !strings.Contains(out, "transaction TXN") {
		t.Fatalf("expected confirmation:\n%s", out)
	}
}

func TestBook_Declined(t *testing.T) {
	out, err := run(t, bookArgs("--success-rate", "0")...)
	if err == nil {
		t.Fatal("expected decline error")
	}
	if !strings.Contains(out, payment.DeclinedMessage) {
		t.Fatalf("expected decline message:\n%s", out)
	}
}

func TestBook_InvalidDetails(t *testing.T) {
	out, err := run(t, bookArgs("--email", "", "--party-size", "4")...)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(out, "email:") || !strings.Contains(out, booking.CapacityMessage(2)) {
		t.Fatalf("expected email and capacity errors:\n%s", out)
	}
}

func TestBook_InvalidCard(t *testing.T) {
	out, err := run(t, bookArgs("--card-number", "1234", "--success-rate", "1")...)
	if err == nil {
		t.Fatal("expected payment validation error")
	}
	if !strings.Contains(out, "card_number:") {
		t.Fatalf("expected card_number error:\n%s", out)
	}
}

func TestBook_BankTransferShowsAccount(t *testing.T) {
	out, err := run(t, bookArgs("--method", "bank_transfer", "--reference", "VIR-2024-001", "--success-rate", "1")...)
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, out)
	}
	if !strings.Contains(out, payment.HotelBankDetails.IBAN) {
		t.Fatalf("expected bank details:\n%s", out)
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "bookctl dev") {
		t.Fatalf("unexpected version output %q", out)
	}
}
