package store

import (
	"context"
	"errors"
	"strings"
	"testing"

	perr "producescan/internal/platform/errors"
)

type fakeTag struct {
	verb string
	n    int64
}

func (t fakeTag) String() string      { return t.verb }
func (t fakeTag) RowsAffected() int64 { return t.n }

// fakeRows serves rows of pre-typed values, scanning position by position
type fakeRows struct {
	data   [][]any
	idx    int
	err    error
	scanEr error
	closed bool
}

func rowsOf(data ...[]any) *fakeRows { return &fakeRows{data: data, idx: -1} }

func (r *fakeRows) Columns() []string { return nil }
func (r *fakeRows) Err() error        { return r.err }
func (r *fakeRows) Close()            { r.closed = true }
func (r *fakeRows) Next() bool {
	r.idx++
	return r.idx < len(r.data)
}
func (r *fakeRows) Scan(dest ...any) error {
	if r.scanEr != nil {
		return r.scanEr
	}
	row := r.data[r.idx]
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = row[i].(int64)
		case *string:
			*p = row[i].(string)
		default:
			return errors.New("unsupported dest")
		}
	}
	return nil
}

type scalarRow struct {
	v   int64
	err error
}

func (r scalarRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*int64)) = r.v
	return nil
}

type fakeQ struct {
	sql  string
	args []any

	tag     CommandTag
	execErr error

	rows     *fakeRows
	queryErr error

	row Row
}

func (f *fakeQ) Exec(_ context.Context, sql string, args ...any) (CommandTag, error) {
	f.sql, f.args = sql, args
	return f.tag, f.execErr
}
func (f *fakeQ) Query(_ context.Context, sql string, args ...any) (Rows, error) {
	f.sql, f.args = sql, args
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.rows, nil
}
func (f *fakeQ) QueryRow(_ context.Context, sql string, args ...any) Row {
	f.sql, f.args = sql, args
	return f.row
}

type named struct {
	id   int64
	name string
}

func scanNamed(r Row) (named, error) {
	var n named
	err := r.Scan(&n.id, &n.name)
	return n, err
}

func TestExecOne(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	cases := []struct {
		name    string
		q       *fakeQ
		wantErr string
	}{
		{"one", &fakeQ{tag: fakeTag{"INSERT 0 1", 1}}, ""},
		{"none", &fakeQ{tag: fakeTag{"UPDATE 0", 0}}, "got 0"},
		{"ten is not one", &fakeQ{tag: fakeTag{"UPDATE 10", 10}}, "got 10"},
		{"exec error", &fakeQ{execErr: boom}, "boom"},
	}
	for _, tc := range cases {
		err := ExecOne(context.Background(), tc.q, "update nutrition set deleted = true")
		switch {
		case tc.wantErr == "" && err != nil:
			t.Fatalf("%s: unexpected %v", tc.name, err)
		case tc.wantErr != "" && (err == nil || !strings.Contains(err.Error(), tc.wantErr)):
			t.Fatalf("%s: err = %v want %q", tc.name, err, tc.wantErr)
		}
	}
}

func TestScalar(t *testing.T) {
	t.Parallel()

	n, err := Scalar[int64](context.Background(), &fakeQ{row: scalarRow{v: 12}}, "select count(*) from logs")
	if err != nil || n != 12 {
		t.Fatalf("n=%d err=%v", n, err)
	}
	boom := errors.New("no rows")
	if _, err := Scalar[int64](context.Background(), &fakeQ{row: scalarRow{err: boom}}, "select 1"); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}

func TestOne(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	rows := rowsOf([]any{int64(7), "banana"})
	got, err := One(ctx, &fakeQ{rows: rows}, scanNamed, "select id, name from nutrition where name = $1", "banana")
	if err != nil || got != (named{7, "banana"}) || !rows.closed {
		t.Fatalf("got=%+v err=%v closed=%v", got, err, rows.closed)
	}

	if _, err := One(ctx, &fakeQ{rows: rowsOf()}, scanNamed, "q"); !errors.Is(err, perr.ErrNotFound) {
		t.Fatalf("empty: err = %v", err)
	}

	iterErr := errors.New("iter")
	if _, err := One(ctx, &fakeQ{rows: &fakeRows{idx: -1, err: iterErr}}, scanNamed, "q"); !errors.Is(err, iterErr) {
		t.Fatalf("iterator error: err = %v", err)
	}

	two := rowsOf([]any{int64(1), "a"}, []any{int64(2), "b"})
	if _, err := One(ctx, &fakeQ{rows: two}, scanNamed, "q"); err == nil || !strings.Contains(err.Error(), "more") {
		t.Fatalf("two rows: err = %v", err)
	}

	qErr := errors.New("query")
	if _, err := One(ctx, &fakeQ{queryErr: qErr}, scanNamed, "q"); !errors.Is(err, qErr) {
		t.Fatalf("query error: err = %v", err)
	}
}

func TestMany(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	rows := rowsOf([]any{int64(1), "apple"}, []any{int64(2), "kiwi"})
	got, err := Many(ctx, &fakeQ{rows: rows}, scanNamed, "select id, name from nutrition")
	if err != nil || len(got) != 2 || got[1].name != "kiwi" || !rows.closed {
		t.Fatalf("got=%+v err=%v", got, err)
	}

	empty, err := Many(ctx, &fakeQ{rows: rowsOf()}, scanNamed, "q")
	if err != nil || len(empty) != 0 {
		t.Fatalf("empty: %v %v", empty, err)
	}

	scanErr := errors.New("scan")
	bad := rowsOf([]any{int64(1), "x"})
	bad.scanEr = scanErr
	if _, err := Many(ctx, &fakeQ{rows: bad}, scanNamed, "q"); !errors.Is(err, scanErr) {
		t.Fatalf("scan error: %v", err)
	}

	iterErr := errors.New("iter")
	if _, err := Many(ctx, &fakeQ{rows: &fakeRows{idx: -1, err: iterErr}}, scanNamed, "q"); !errors.Is(err, iterErr) {
		t.Fatalf("iterator error: %v", err)
	}
}
