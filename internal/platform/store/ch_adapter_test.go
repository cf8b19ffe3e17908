package store

import (
	"context"
	"testing"

	"producescan/internal/platform/store/ch"
)

func TestCHAdapter_InsertRejectsWrongShape(t *testing.T) {
	t.Parallel()

	a := newCHAdapter(&ch.CH{})
	if err := a.Insert(context.Background(), "scan_events", map[string]any{"label": "kiwi"}); err == nil {
		t.Fatalf("expected shape error")
	}
	// a single row reaches the client, which has no connection
	if err := a.Insert(context.Background(), "scan_events", []any{"id", "scan.capture", "ada"}); err == nil {
		t.Fatalf("expected not connected error")
	}
	// right shape, nothing to send
	if err := a.Insert(context.Background(), "scan_events", [][]any{}); err != nil {
		t.Fatalf("empty insert: %v", err)
	}
}

func TestCHAdapter_QueryAndPingWithoutConn(t *testing.T) {
	t.Parallel()

	a := newCHAdapter(&ch.CH{})
	if _, err := a.Query(context.Background(), "SELECT 1"); err == nil {
		t.Fatalf("expected error from unconnected client")
	}
	p, ok := a.(Pinger)
	if !ok {
		t.Fatalf("adapter should implement Pinger")
	}
	if err := p.Ping(context.Background()); err == nil {
		t.Fatalf("expected ping error")
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if err := newCHAdapter(nil).(Pinger).Ping(context.Background()); err == nil {
		t.Fatalf("nil client ping should fail")
	}
}
