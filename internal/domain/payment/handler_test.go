package payment

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandler_ListMethods(t *testing.T) {
	w := httptest.NewRecorder()
	NewHandler("FCFA").Routes().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/methods", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{`"mobile_money"`, `"ECOBJBJA"`, `"currency":"FCFA"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %s in %s", want, body)
		}
	}
}
