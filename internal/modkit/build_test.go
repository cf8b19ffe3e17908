package modkit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"producescan/internal/modkit/httpkit"
	phttp "producescan/internal/platform/net/http"
)

type scanRequires struct{ Camera string }

func TestBuild(t *testing.T) {
	t.Parallel()

	if b := Build(); b.Name != "" || b.Prefix != "" || b.Ports != nil || len(b.Mw) != 0 {
		t.Fatalf("zero build not empty: %+v", b)
	}

	mw := func(next http.Handler) http.Handler { return next }
	opts := []Option{
		WithName("scan"),
		WithPrefix("/scan"),
		WithMiddlewares(mw),
		WithMiddlewares(mw),
		WithPorts(scanRequires{Camera: "usb0"}),
		WithName("scanner"),
	}
	b := Build(opts...)
	if b.Name != "scanner" || b.Prefix != "/scan" {
		t.Fatalf("last option wins: %+v", b)
	}
	if len(b.Mw) != 2 {
		t.Fatalf("middlewares append, got %d", len(b.Mw))
	}
	if req, ok := b.Ports.(scanRequires); !ok || req.Camera != "usb0" {
		t.Fatalf("ports = %#v", b.Ports)
	}

	b.Mw[0] = nil
	if again := Build(opts...); again.Mw[0] == nil {
		t.Fatalf("Built.Mw aliases option state")
	}
}

func TestBuilt_Mount(t *testing.T) {
	t.Parallel()

	stamp := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Module", "nutrition")
			next.ServeHTTP(w, r)
		})
	}
	ok := func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

	mux := chi.NewRouter()
	r := phttp.AdaptChi(mux)
	Build(WithPrefix("/nutrition"), WithMiddlewares(stamp)).Mount(r, func(rr httpkit.Router) {
		rr.Get("/{name}", ok)
	})
	Build().Mount(r, func(rr httpkit.Router) { rr.Get("/ping", ok) })
	Build(WithPrefix("/empty")).Mount(r, nil)

	cases := []struct {
		path      string
		want      int
		wantStamp string
	}{
		{"/nutrition/apple", http.StatusOK, "nutrition"},
		{"/ping", http.StatusOK, ""},
		{"/apple", http.StatusNotFound, ""},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))
		if rec.Code != tc.want || rec.Header().Get("X-Module") != tc.wantStamp {
			t.Fatalf("%s: code=%d stamp=%q", tc.path, rec.Code, rec.Header().Get("X-Module"))
		}
	}
}
