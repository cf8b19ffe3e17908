package store

import (
	"context"
	"fmt"

	"producescan/internal/platform/store/ch"
)

// chSeam exposes *ch.CH as the Clickhouse seam
type chSeam struct{ c *ch.CH }

var (
	_ Clickhouse = chSeam{}
	_ Pinger     = chSeam{}
)

func newCHAdapter(c *ch.CH) Clickhouse { return chSeam{c: c} }

// Insert takes one row as []any or a batch as [][]any, values in column order
func (s chSeam) Insert(ctx context.Context, table string, data any) error {
	switch v := data.(type) {
	case [][]any:
		return s.c.Insert(ctx, table, v)
	case []any:
		return s.c.Insert(ctx, table, [][]any{v})
	default:
		return fmt.Errorf("store: clickhouse insert into %s: want []any or [][]any, got %T", table, data)
	}
}

func (s chSeam) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	r, err := s.c.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return chRows{r}, nil
}

func (s chSeam) Exec(ctx context.Context, sql string, args ...any) error {
	return s.c.Exec(ctx, sql, args...)
}

func (s chSeam) Ping(ctx context.Context) error { return s.c.Ping(ctx) }

func (s chSeam) Close() error { return s.c.Close() }

// chRows drops the Close error the driver returns, Rows.Close has none
type chRows struct{ ch.Rows }

func (r chRows) Close() { _ = r.Rows.Close() }
