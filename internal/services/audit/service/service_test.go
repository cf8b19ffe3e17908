package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"producescan/internal/services/audit/domain"
	"producescan/internal/services/audit/repo"
)

type recRepo struct {
	mu   sync.Mutex
	rows []repo.RowEvent
	err  error
	boom bool
}

func (r *recRepo) Insert(_ context.Context, ev repo.RowEvent) error {
	if r.boom {
		panic("disk on fire")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, ev)
	return r.err
}

func fixed(s *Svc) {
	s.now = func() time.Time { return time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC) }
	s.newID = func() uuid.UUID { return uuid.MustParse("6f1c2a3e-8d4b-4f1a-9b2c-1d2e3f405060") }
}

func TestRecord_WritesOneRow(t *testing.T) {
	t.Parallel()

	r := &recRepo{}
	s := New(r)
	fixed(s)

	s.Record(context.Background(), "Scanned banana -> Ripe", "alice")

	if len(r.rows) != 1 {
		t.Fatalf("rows = %d", len(r.rows))
	}
	got := r.rows[0]
	if got.Action != "Scanned banana -> Ripe" || got.Actor != "alice" || got.ID.String() != "6f1c2a3e-8d4b-4f1a-9b2c-1d2e3f405060" {
		t.Fatalf("row = %+v", got)
	}
	if !got.At.Equal(time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("at = %v", got.At)
	}
}

func TestRecord_DefaultsActor(t *testing.T) {
	t.Parallel()

	r := &recRepo{}
	New(r).Record(context.Background(), "x", "")
	if r.rows[0].Actor != domain.AnonymousActor {
		t.Fatalf("actor = %q", r.rows[0].Actor)
	}
}

func TestRecord_SwallowsFailures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		repo *recRepo
	}{
		{"error", &recRepo{err: errors.New("conn refused")}},
		{"panic", &recRepo{boom: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			// must return normally
			New(tc.repo).Record(context.Background(), "Scanned apple -> Unripe", "bob")
		})
	}
}

func TestRecord_NilRepoLogsOnly(t *testing.T) {
	t.Parallel()

	New(nil).Record(context.Background(), "Attempted scan but models missing: 1_a.jpg", "carol")
}

func TestSinkFunc(t *testing.T) {
	t.Parallel()

	var got string
	var sink domain.Sink = domain.SinkFunc(func(_ context.Context, action, actor string) { got = actor + ":" + action })
	sink.Record(context.Background(), "a", "b")
	if got != "b:a" {
		t.Fatalf("got %q", got)
	}
}
