package response

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestValidationError(t *testing.T) {
	rec := httptest.NewRecorder()
	ValidationError(rec, map[string]string{"email": "Invalid email format"})

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	resp := decode(t, rec)
	if resp.Success || resp.Error == nil || resp.Error.Code != "VALIDATION_ERROR" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	if resp.Error.Details["email"] == "" {
		t.Fatal("expected email detail")
	}
}

func TestPaymentDeclined(t *testing.T) {
	rec := httptest.NewRecorder()
	PaymentDeclined(rec, "payment failed, please retry", nil)

	if rec.Code != http.StatusPaymentRequired {
		t.Fatalf("expected 402, got %d", rec.Code)
	}
	if resp := decode(t, rec); resp.Error.Code != "PAYMENT_DECLINED" {
		t.Fatalf("unexpected code %s", resp.Error.Code)
	}
}

func TestOK(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, map[string]int{"nights": 2})

	if rec.Header().Get("Content-Type") != "application/json" {
		t.Fatal("expected json content type")
	}
	if resp := decode(t, rec); !resp.Success {
		t.Fatal("expected success")
	}
}

func TestDecodeJSON_RejectsUnknownFields(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}
	err := DecodeJSON(io.NopCloser(strings.NewReader(`{"name":"a","extra":1}`)), &v)
	if err == nil {
		t.Fatal("expected unknown field error")
	}
}
