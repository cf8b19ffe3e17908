package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"producescan/internal/platform/store/lite"
	"producescan/internal/platform/store/pg"
)

// liteAdapter wraps lite.Lite and implements RowQuerier + TxRunner
// repos write $n placeholders; they are rewritten to sqlite ?n before execution
type liteAdapter struct {
	l     *lite.Lite
	trace traceFunc
}

func newLiteAdapter(l *lite.Lite, tracer pg.QueryTracer) *liteAdapter {
	return &liteAdapter{l: l, trace: newTrace(tracer, l.SlowMs)}
}

func (a *liteAdapter) Ping(ctx context.Context) error {
	if a == nil || a.l == nil {
		return errors.New("sqlite: nil adapter")
	}
	return a.l.DB.PingContext(ctx)
}

func (a *liteAdapter) Close() error { return a.l.Close() }

func (a *liteAdapter) Exec(ctx context.Context, q string, args ...any) (CommandTag, error) {
	return liteExec(ctx, a.l.DB, a.trace, q, args)
}

func (a *liteAdapter) Query(ctx context.Context, q string, args ...any) (Rows, error) {
	return liteQuery(ctx, a.l.DB, a.trace, q, args)
}

func (a *liteAdapter) QueryRow(ctx context.Context, q string, args ...any) Row {
	return liteQueryRow(ctx, a.l.DB, a.trace, q, args)
}

func (a *liteAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.l.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(liteTx{tx: tx, trace: a.trace}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// sqlRunner is the surface shared by *sql.DB and *sql.Tx
type sqlRunner interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func liteExec(ctx context.Context, db sqlRunner, trace traceFunc, q string, args []any) (CommandTag, error) {
	start := time.Now()
	res, err := db.ExecContext(ctx, rebind(q), args...)
	trace(ctx, q, args, start, err)
	if err != nil {
		return liteTag{verb: verb(q)}, err
	}
	n, _ := res.RowsAffected()
	return liteTag{verb: verb(q), n: n}, nil
}

func liteQuery(ctx context.Context, db sqlRunner, trace traceFunc, q string, args []any) (Rows, error) {
	start := time.Now()
	rs, err := db.QueryContext(ctx, rebind(q), args...)
	trace(ctx, q, args, start, err)
	if err != nil {
		return nil, err
	}
	return liteRows{r: rs}, nil
}

func liteQueryRow(ctx context.Context, db sqlRunner, trace traceFunc, q string, args []any) Row {
	start := time.Now()
	r := db.QueryRowContext(ctx, rebind(q), args...)
	return tracedRow{r: r, after: func(err error) { trace(ctx, q, args, start, err) }}
}

// liteTx satisfies RowQuerier inside a sqlite transaction
type liteTx struct {
	tx    *sql.Tx
	trace traceFunc
}

func (t liteTx) Exec(ctx context.Context, q string, args ...any) (CommandTag, error) {
	return liteExec(ctx, t.tx, t.trace, q, args)
}

func (t liteTx) Query(ctx context.Context, q string, args ...any) (Rows, error) {
	return liteQuery(ctx, t.tx, t.trace, q, args)
}

func (t liteTx) QueryRow(ctx context.Context, q string, args ...any) Row {
	return liteQueryRow(ctx, t.tx, t.trace, q, args)
}

type liteRows struct{ r *sql.Rows }

func (x liteRows) Next() bool            { return x.r.Next() }
func (x liteRows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x liteRows) Err() error            { return x.r.Err() }
func (x liteRows) Close()                { _ = x.r.Close() }
func (x liteRows) Columns() []string {
	cols, err := x.r.Columns()
	if err != nil {
		return nil
	}
	return cols
}

// liteTag mimics the pg command tag text, e.g. "UPDATE 1"
type liteTag struct {
	verb string
	n    int64
}

func (t liteTag) String() string      { return fmt.Sprintf("%s %d", t.verb, t.n) }
func (t liteTag) RowsAffected() int64 { return t.n }

func verb(q string) string {
	f := strings.Fields(q)
	if len(f) == 0 {
		return "EXEC"
	}
	return strings.ToUpper(f[0])
}

// rebind rewrites $n placeholders to ?n, leaving quoted text and identifiers alone
func rebind(q string) string {
	if !strings.Contains(q, "$") {
		return q
	}
	var b strings.Builder
	b.Grow(len(q))
	var quote byte
	for i := 0; i < len(q); i++ {
		c := q[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '$' && i+1 < len(q) && q[i+1] >= '0' && q[i+1] <= '9':
			c = '?'
		}
		b.WriteByte(c)
	}
	return b.String()
}
