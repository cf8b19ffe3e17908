package repokit

import (
	"context"
	"testing"

	"producescan/internal/platform/store"
	"producescan/internal/platform/testkit"
)

type nopQ struct{}

func (nopQ) Exec(context.Context, string, ...any) (store.CommandTag, error) { return nil, nil }
func (nopQ) Query(context.Context, string, ...any) (store.Rows, error)      { return nil, nil }
func (nopQ) QueryRow(context.Context, string, ...any) store.Row             { return nil }

type boundRepo struct{ q Queryer }

func TestBindFunc_PassesQueryer(t *testing.T) {
	t.Parallel()

	q := nopQ{}
	b := BindFunc[boundRepo](func(q Queryer) boundRepo { return boundRepo{q: q} })
	if got := b.Bind(q); got.q != q {
		t.Fatalf("bound to %v want %v", got.q, q)
	}
	if got := MustBind[boundRepo](b, q); got.q != q {
		t.Fatalf("MustBind bound to %v", got.q)
	}
}

func TestRequireQueryer(t *testing.T) {
	t.Parallel()

	if got := RequireQueryer(nopQ{}); got != (nopQ{}) {
		t.Fatalf("RequireQueryer returned %v", got)
	}
	testkit.MustPanic(t, func() { _ = RequireQueryer(nil) })

	b := BindFunc[boundRepo](func(q Queryer) boundRepo { return boundRepo{q: q} })
	testkit.MustPanic(t, func() { _ = MustBind[boundRepo](b, nil) })
}
