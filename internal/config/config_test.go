package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "PAYMENT_DELAY", "PAYMENT_SUCCESS_RATE", "SESSION_TTL", "CATALOG_SOURCE", "SESSION_HASH_KEY"} {
		t.Setenv(key, "")
	}
	t.Setenv("PORT", "9090")
	t.Setenv("PAYMENT_DELAY", "not-a-duration")
	t.Setenv("PAYMENT_SUCCESS_RATE", "1.5")
	t.Setenv("SESSION_TTL", "10m")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Fatalf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.PaymentDelay != 2*time.Second {
		t.Fatalf("expected fallback delay 2s, got %s", cfg.PaymentDelay)
	}
	if cfg.PaymentSuccessRate != 0.9 {
		t.Fatalf("expected fallback success rate 0.9, got %v", cfg.PaymentSuccessRate)
	}
	if cfg.SessionTTL != 10*time.Minute {
		t.Fatalf("expected session ttl 10m, got %s", cfg.SessionTTL)
	}
	if cfg.SessionHashKey != nil {
		t.Fatal("expected empty session hash key")
	}
}

func TestParseStringSlice(t *testing.T) {
	got := parseStringSlice("http://a.test, http://b.test,,")
	if len(got) != 2 || got[0] != "http://a.test" || got[1] != "http://b.test" {
		t.Fatalf("unexpected origins: %v", got)
	}
}

func TestParseBase64(t *testing.T) {
	if b := parseBase64("aGVsbG8="); string(b) != "hello" {
		t.Fatalf("expected padded decode, got %q", b)
	}
	if b := parseBase64("aGVsbG8"); string(b) != "hello" {
		t.Fatalf("expected raw decode, got %q", b)
	}
	if b := parseBase64("%%%"); b != nil {
		t.Fatalf("expected nil for invalid input, got %q", b)
	}
}
