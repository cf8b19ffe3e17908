// Package repo persists audit events to the relational log table or to clickhouse
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"producescan/internal/modkit/repokit"
	"producescan/internal/platform/store"
)

// Repo defines the repository contract for audit events
type Repo interface {
	Insert(ctx context.Context, ev RowEvent) error
}

// RowEvent is one log row
type RowEvent struct {
	ID     uuid.UUID
	Action string
	Actor  string
	At     time.Time
}

type (
	// SQL implements Repo over any store.RowQuerier
	SQL struct{}

	queries struct{ q repokit.Queryer }
)

// NewSQL creates a repository binder
func NewSQL() repokit.Binder[Repo] { return SQL{} }

// Bind binds a queryer to the Repo implementation
func (SQL) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) Insert(ctx context.Context, ev RowEvent) error {
	const sql = `insert into logs (id, action, actor, created_at) values ($1, $2, $3, $4)`
	return store.ExecOne(ctx, r.q, sql, ev.ID.String(), ev.Action, ev.Actor, ev.At.UTC())
}

// CHTable is the clickhouse table scan events land in
const CHTable = "scan_events"

type chRepo struct{ ch store.Clickhouse }

// NewCH returns a Repo writing to clickhouse
func NewCH(ch store.Clickhouse) Repo {
	if ch == nil {
		panic("audit: clickhouse repo requires a non nil client")
	}
	return &chRepo{ch: ch}
}

func (r *chRepo) Insert(ctx context.Context, ev RowEvent) error {
	if ev.ID == uuid.Nil {
		return errors.New("audit: event id is required")
	}
	return r.ch.Insert(ctx, CHTable, [][]any{{ev.ID, ev.Action, ev.Actor, ev.At.UTC()}})
}
