package store

import (
	"context"
	"time"

	"producescan/internal/platform/store/pg"
)

// traceFunc reports one finished statement
type traceFunc func(ctx context.Context, q string, args []any, start time.Time, err error)

// newTrace builds the reporter both sql adapters share, a nil tracer gives a no op
// slowMs below zero never flags a statement as slow
func newTrace(tracer pg.QueryTracer, slowMs int) traceFunc {
	if tracer == nil {
		return func(context.Context, string, []any, time.Time, error) {}
	}
	slowUS := int64(slowMs) * 1000
	return func(ctx context.Context, q string, args []any, start time.Time, err error) {
		elapsed := time.Since(start).Microseconds()
		tracer.OnQuery(ctx, pg.QueryEvent{
			SQL:       q,
			Args:      args,
			ElapsedUS: elapsed,
			Err:       err,
			Slow:      slowMs >= 0 && elapsed >= slowUS,
		})
	}
}

// tracedRow reports the statement once Scan has run, QueryRow errors surface there
type tracedRow struct {
	r     interface{ Scan(dest ...any) error }
	after func(error)
}

func (x tracedRow) Scan(dst ...any) error {
	err := x.r.Scan(dst...)
	if x.after != nil {
		x.after(err)
	}
	return err
}
