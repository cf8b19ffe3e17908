// Package store opens the sql and columnar backends and exposes them as small seams
package store

import (
	"context"
	"errors"
	"fmt"

	"producescan/internal/platform/logger"
)

// Store holds the backends a binary enabled, each seam is nil when its backend is off
// the zero value is usable and has no backends
type Store struct {
	Log logger.Logger // parent of the per backend sql tracers

	PG   TxRunner   // postgres
	Lite TxRunner   // embedded sqlite, the default
	CH   Clickhouse // scan event sink
}

// Row is a single result row
type Row interface{ Scan(dest ...any) error }

// Rows is a result set, Close is idempotent
type Rows interface {
	Row
	Next() bool
	Err() error
	Close()
	Columns() []string
}

// CommandTag reports what a write statement did
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is the sql surface the repos are written against
// placeholders are $n on both postgres and sqlite
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner is a RowQuerier that can also run fn inside a transaction
// fn returning an error rolls back
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Clickhouse is the columnar seam, Insert takes rows in table column order
type Clickhouse interface {
	Insert(ctx context.Context, table string, data any) error
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	Exec(ctx context.Context, sql string, args ...any) error
	Close() error
}

// Pinger is implemented by seams that can answer a readiness probe
type Pinger interface{ Ping(context.Context) error }

// Open connects every backend cfg enables
// on failure the backends opened so far are closed again
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}
	// a zero Logger would panic on With, this turns it into a usable no op logger
	s.Log = s.Log.With().Logger()

	if err := s.open(ctx, cfg); err != nil {
		_ = s.Close(ctx)
		return nil, err
	}
	return s, nil
}

func (s *Store) open(ctx context.Context, cfg Config) (err error) {
	if cfg.PG.Enabled {
		if s.PG, err = openPG(ctx, cfg, s); err != nil {
			s.PG = nil
			return err
		}
	}
	if cfg.Lite.Enabled {
		if s.Lite, err = openLite(ctx, cfg, s); err != nil {
			s.Lite = nil
			return err
		}
	}
	if cfg.CH.Enabled {
		if s.CH, err = openCH(ctx, cfg, s); err != nil {
			s.CH = nil
			return err
		}
	}
	return nil
}

// Primary is the relational seam the repos use, postgres over sqlite, nil with neither
func (s *Store) Primary() TxRunner {
	if s == nil {
		return nil
	}
	if s.PG != nil {
		return s.PG
	}
	return s.Lite
}

// seams lists the backends that are open, in open order
func (s *Store) seams() []namedSeam {
	var out []namedSeam
	if s.PG != nil {
		out = append(out, namedSeam{"pg", s.PG})
	}
	if s.Lite != nil {
		out = append(out, namedSeam{"sqlite", s.Lite})
	}
	if s.CH != nil {
		out = append(out, namedSeam{"ch", s.CH})
	}
	return out
}

type namedSeam struct {
	name string
	v    any
}

// Guard pings each open backend and joins the failures, prefixed by backend name
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("store: nil")
	}
	var errs []error
	for _, seam := range s.seams() {
		if p, ok := seam.v.(Pinger); ok {
			if err := p.Ping(ctx); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", seam.name, err))
			}
		}
	}
	return errors.Join(errs...)
}

// Close closes each open backend, a nil Store is fine
func (s *Store) Close(context.Context) error {
	if s == nil {
		return nil
	}
	var errs []error
	for _, seam := range s.seams() {
		if c, ok := seam.v.(interface{ Close() error }); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", seam.name, err))
			}
		}
	}
	return errors.Join(errs...)
}
