package repo

import (
	"context"

	"producescan/internal/modkit/repokit"
	"producescan/internal/platform/store"
)

// Dialect selects the DDL flavour for EnsureSchema
type Dialect string

const (
	// Postgres DDL
	Postgres Dialect = "postgres"
	// SQLite DDL
	SQLite Dialect = "sqlite"
)

const schemaPG = `
create table if not exists logs (
	id          uuid primary key,
	action      text not null,
	actor       text not null,
	created_at  timestamptz not null default now()
);
create index if not exists logs_created_at_idx on logs (created_at desc);
`

const schemaSQLite = `
create table if not exists logs (
	id          text primary key,
	action      text not null,
	actor       text not null,
	created_at  timestamp not null default current_timestamp
);
create index if not exists logs_created_at_idx on logs (created_at desc);
`

// SchemaCH is the clickhouse DDL for scan events
const SchemaCH = `
CREATE TABLE IF NOT EXISTS scan_events (
	id     UUID,
	action String,
	actor  LowCardinality(String),
	at     DateTime64(3, 'UTC')
) ENGINE = MergeTree
ORDER BY (at, id)
`

// EnsureSchema creates the log table when it does not exist yet
func EnsureSchema(ctx context.Context, q repokit.Queryer, d Dialect) error {
	ddl := schemaPG
	if d == SQLite {
		ddl = schemaSQLite
	}
	_, err := q.Exec(ctx, ddl)
	return err
}

// EnsureSchemaCH creates the scan_events table on clickhouse
func EnsureSchemaCH(ctx context.Context, c store.Clickhouse) error {
	return c.Exec(ctx, SchemaCH)
}
