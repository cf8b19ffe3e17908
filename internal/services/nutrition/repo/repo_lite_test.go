package repo

import (
	"context"
	"errors"
	"testing"

	perr "producescan/internal/platform/errors"
	"producescan/internal/platform/store"
)

func openLite(t *testing.T) store.TxRunner {
	t.Helper()

	ctx := context.Background()
	s, err := store.Open(ctx, store.Config{Lite: store.LiteConfig{Enabled: true, Path: ":memory:"}})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(ctx) })

	if err := EnsureSchema(ctx, s.Lite, SQLite); err != nil {
		t.Fatalf("schema: %v", err)
	}
	// idempotent
	if err := EnsureSchema(ctx, s.Lite, SQLite); err != nil {
		t.Fatalf("schema again: %v", err)
	}
	return s.Lite
}

func f64(v float64) *float64 { return &v }

func TestSQL_FindActiveByName_SQLite(t *testing.T) {
	t.Parallel()

	db := openLite(t)
	ctx := context.Background()
	r := NewSQL().Bind(db)

	first, err := r.Insert(ctx, RowRecord{Name: "tomato", Calories: f64(18), ShelfLife: "1 week"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := r.Insert(ctx, RowRecord{Name: "tomato", Calories: f64(99)}); err != nil {
		t.Fatalf("insert dup: %v", err)
	}
	gone, err := r.Insert(ctx, RowRecord{Name: "apple", Calories: f64(52)})
	if err != nil {
		t.Fatalf("insert apple: %v", err)
	}
	if _, err := db.Exec(ctx, `update nutrition set deleted = true where id = $1`, gone); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	got, err := r.FindActiveByName(ctx, "tomato")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.ID != first || got.Calories == nil || *got.Calories != 18 || got.ShelfLife != "1 week" {
		t.Fatalf("first match = %+v", got)
	}
	if got.Protein != nil || got.Category != "" {
		t.Fatalf("nulls should stay empty: %+v", got)
	}

	if _, err := r.FindActiveByName(ctx, "apple"); !errors.Is(err, perr.ErrNotFound) {
		t.Fatalf("deleted row should miss, got %v", err)
	}
	if _, err := r.FindActiveByName(ctx, "Tomato"); !errors.Is(err, perr.ErrNotFound) {
		t.Fatalf("match must be case sensitive, got %v", err)
	}

	id, err := r.FirstActiveID(ctx, "tomato")
	if err != nil || id != first {
		t.Fatalf("FirstActiveID = %d %v", id, err)
	}
	if id, err := r.FirstActiveID(ctx, "apple"); err != nil || id != 0 {
		t.Fatalf("FirstActiveID(apple) = %d %v", id, err)
	}

	list, err := r.ListActive(ctx, 0, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != first {
		t.Fatalf("list = %+v", list)
	}
}

func TestSQL_Update_SQLite(t *testing.T) {
	t.Parallel()

	db := openLite(t)
	ctx := context.Background()
	r := NewSQL().Bind(db)

	id, err := r.Insert(ctx, RowRecord{Name: "banana", Calories: f64(80)})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := r.Update(ctx, RowRecord{ID: id, Name: "banana", Calories: f64(89), Fiber: f64(2.6), Category: "fruit"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := r.FindActiveByName(ctx, "banana")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if *got.Calories != 89 || *got.Fiber != 2.6 || got.Category != "fruit" {
		t.Fatalf("after update = %+v", got)
	}

	if err := r.Update(ctx, RowRecord{ID: id + 100}); err == nil {
		t.Fatalf("update of a missing id should fail")
	}
}
