package database

import (
	"context"
	"testing"
)

func TestNewRedis_EmptyURLIsOptional(t *testing.T) {
	client, err := NewRedis(context.Background(), "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if client != nil {
		t.Fatal("expected nil client when redis is not configured")
	}
}

func TestNewRedis_InvalidURL(t *testing.T) {
	if _, err := NewRedis(context.Background(), "://nope"); err == nil {
		t.Fatal("expected parse error")
	}
}
