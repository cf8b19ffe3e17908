package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "producescan/internal/platform/errors"
	pnet "producescan/internal/platform/net"
	phttp "producescan/internal/platform/net/http"
)

func serve(t *testing.T, h http.Handler, rid string) (*httptest.ResponseRecorder, phttp.Envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/scan/capture", nil)
	req = req.WithContext(pnet.WithRequestID(req.Context(), rid))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return rec, env
}

func TestJSON(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	phttp.JSON(rec, http.StatusTeapot, map[string]any{"label": "kiwi"})
	if rec.Code != http.StatusTeapot {
		t.Fatalf("status %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("content type %q", ct)
	}
}

func TestHandle(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		resp     phttp.Response
		want     int
		wantCode perr.ErrorCode
		wantData bool
	}{
		{name: "ok", resp: phttp.OK(map[string]string{"label": "apple"}), want: http.StatusOK, wantData: true},
		{name: "zero status defaults to 200", resp: phttp.Response{Body: "x"}, want: http.StatusOK, wantData: true},
		{name: "explicit status", resp: phttp.Response{Status: http.StatusAccepted, Body: "queued"}, want: http.StatusAccepted, wantData: true},
		{name: "validation", resp: phttp.Error(perr.New(perr.ErrorCodeValidation, "image is required")), want: http.StatusBadRequest, wantCode: perr.ErrorCodeValidation},
		{name: "too large", resp: phttp.Error(perr.TooLargef("image exceeds %d bytes", 10)), want: http.StatusRequestEntityTooLarge, wantCode: perr.ErrorCodePayloadTooLarge},
		{name: "plain error is 500", resp: phttp.Error(errors.New("boom")), want: http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rec, env := serve(t, phttp.Handle(func(*http.Request) phttp.Response { return tc.resp }), "rid-"+tc.name)
			if rec.Code != tc.want || env.StatusCode != tc.want {
				t.Fatalf("status = %d/%d want %d", rec.Code, env.StatusCode, tc.want)
			}
			if env.RequestID != "rid-"+tc.name {
				t.Fatalf("request id = %q", env.RequestID)
			}
			if env.Code != tc.wantCode {
				t.Fatalf("code = %v want %v", env.Code, tc.wantCode)
			}
			if (env.Data != nil) != tc.wantData {
				t.Fatalf("data = %v", env.Data)
			}
		})
	}
}

func TestHandle_CopiesHeaders(t *testing.T) {
	t.Parallel()

	h := phttp.Handle(func(*http.Request) phttp.Response {
		return phttp.Response{Body: "ok", Header: http.Header{"X-Label-Set": {"produce-v1"}}}
	})
	rec, _ := serve(t, h, "")
	if got := rec.Header().Get("X-Label-Set"); got != "produce-v1" {
		t.Fatalf("header = %q", got)
	}
}
