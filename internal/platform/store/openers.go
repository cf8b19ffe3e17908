package store

import (
	"context"
	"fmt"
	"time"

	chx "producescan/internal/platform/store/ch"
	"producescan/internal/platform/store/lite"
	"producescan/internal/platform/store/pg"

	"github.com/cenkalti/backoff/v4"
)

// openPG opens pg and wraps it with our sql adapter
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	var tracer pg.QueryTracer
	if cfg.PG.LogSQL {
		tracer = pg.Tracer(s.Log, "pg")
	}

	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		MaxConns: cfg.PG.MaxConns,
		SlowMs:   cfg.PG.SlowQueryMs,
	}, tracer)
	if err != nil {
		return nil, err
	}

	// the pool dials lazily, so wait for the server here rather than on the first request
	if err := backoff.Retry(func() error {
		pctx, cancel := context.WithTimeout(ctx, pgPingTimeout)
		defer cancel()
		return p.Pool.Ping(pctx)
	}, pgPingBackoff(ctx)); err != nil {
		p.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return newPGAdapter(p), nil
}

const (
	pgPingTimeout  = 3 * time.Second
	pgPingAttempts = 20
)

func pgPingBackoff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 150 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, pgPingAttempts-1), ctx)
}

// openLite opens the embedded sqlite file and wraps it with the lite adapter
func openLite(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	var tracer pg.QueryTracer
	if cfg.Lite.LogSQL {
		tracer = pg.Tracer(s.Log, "sqlite")
	}
	l, err := lite.Open(ctx, lite.Config{
		Path:        cfg.Lite.Path,
		BusyTimeout: cfg.Lite.BusyTimeout,
		SlowMs:      cfg.Lite.SlowQueryMs,
	})
	if err != nil {
		return nil, err
	}
	return newLiteAdapter(l, tracer), nil
}

func openCH(ctx context.Context, cfg Config, _ *Store) (Clickhouse, error) {
	c, err := chx.Open(ctx, chx.Config{
		URL:        cfg.CH.URL,
		ClientName: cfg.CH.ClientName,
		ClientTag:  cfg.CH.ClientTag,
	})
	if err != nil {
		return nil, err
	}
	return newCHAdapter(c), nil
}
