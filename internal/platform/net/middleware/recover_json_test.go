package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "producescan/internal/platform/errors"
	pnet "producescan/internal/platform/net"
	"producescan/internal/platform/net/middleware"
)

func TestRecoverJSON(t *testing.T) {
	t.Parallel()

	h := middleware.RequestID()(middleware.RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("classifier tensor shape mismatch")
	})))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/scan/capture", nil)
	req.Header.Set("X-Request-Id", "rid-panic")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") != "rid-panic" {
		t.Fatalf("request id header = %q", rec.Header().Get("X-Request-ID"))
	}
	var w pnet.Wire
	if err := json.Unmarshal(rec.Body.Bytes(), &w); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if w.Code != perr.ErrorCodePanic || w.Error != "panic recovered" || w.RequestID != "rid-panic" {
		t.Fatalf("wire = %+v", w)
	}
}
