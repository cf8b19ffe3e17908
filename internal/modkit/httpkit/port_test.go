package httpkit

import (
	"errors"
	"net/http/httptest"
	"testing"

	perrs "producescan/internal/platform/errors"
)

func TestPort_Parse(t *testing.T) {
	t.Parallel()

	tokens := map[string]string{"tok-alice": "alice"}
	parse := func(tok string) (string, error) {
		if uid, ok := tokens[tok]; ok {
			return uid, nil
		}
		if tok == "tok-nobody" {
			return "", nil
		}
		return "", errors.New("signature mismatch")
	}

	cases := []struct {
		name    string
		header  string
		wantUID string
	}{
		{name: "missing header"},
		{name: "basic scheme", header: "Basic YWxpY2U6cHc="},
		{name: "bearer without token", header: "Bearer   \t "},
		{name: "scheme only, too short", header: "Bear"},
		{name: "unknown token", header: "Bearer forged"},
		{name: "token without subject", header: "Bearer tok-nobody"},
		{name: "valid", header: "Bearer tok-alice", wantUID: "alice"},
		{name: "scheme is case insensitive and trimmed", header: "   BEARER   tok-alice  ", wantUID: "alice"},
	}

	p := NewPortFunc(parse)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest("POST", "/api/v1/scan/upload", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}
			uid, err := p.Parse(r)
			if uid != tc.wantUID {
				t.Fatalf("uid = %q want %q", uid, tc.wantUID)
			}
			if tc.wantUID == "" && !perrs.IsCode(err, perrs.ErrorCodeUnauthorized) {
				t.Fatalf("want unauthorized, got %v", err)
			}
			if tc.wantUID != "" && err != nil {
				t.Fatalf("unexpected error %v", err)
			}
		})
	}
}

func TestPort_Parse_NilParser(t *testing.T) {
	t.Parallel()

	var p Port
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer tok")
	if _, err := p.Parse(r); !perrs.IsCode(err, perrs.ErrorCodeUnauthorized) {
		t.Fatalf("want unauthorized, got %v", err)
	}
}
