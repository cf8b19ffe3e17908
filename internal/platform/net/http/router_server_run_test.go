package http_test

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"producescan/internal/platform/config"
	phttp "producescan/internal/platform/net/http"
)

func TestServer_ServesUntilCanceled(t *testing.T) {
	t.Setenv("CORE_API_PORT", "127.0.0.1:18517")

	hooked := false
	srv := phttp.NewServer(config.New().Prefix("CORE_"), func(*chi.Mux) { hooked = true })
	if !hooked {
		t.Fatalf("option hook not called")
	}
	if srv.Addr() != "127.0.0.1:18517" {
		t.Fatalf("addr = %q", srv.Addr())
	}
	srv.Router().Get("/meta/health", func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, "ok") })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	var body string
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		res, err := http.Get("http://127.0.0.1:18517/meta/health")
		if err == nil {
			b, _ := io.ReadAll(res.Body)
			_ = res.Body.Close()
			body = string(b)
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if body != "ok" {
		t.Fatalf("server never answered, body %q", body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}

func TestServer_Run_ReturnsListenError(t *testing.T) {
	t.Setenv("API_PORT", "127.0.0.1:abc")
	if err := phttp.NewServer(config.New()).Run(context.Background()); err == nil {
		t.Fatalf("expected listen error")
	}
}

func TestServer_StopsOnCancelBeforeTraffic(t *testing.T) {
	t.Setenv("CORE_API_SHUTDOWN_GRACE", "250ms")
	t.Setenv("CORE_API_PORT", "127.0.0.1:0")

	srv := phttp.NewServer(config.New().Prefix("CORE_"))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("Run did not honour the shutdown grace")
	}
}

func TestServer_ShutdownBeforeRun(t *testing.T) {
	t.Setenv("API_PORT", "127.0.0.1:0")
	srv := phttp.NewServer(config.New())
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
}
