package repo

import (
	"context"

	"producescan/internal/modkit/repokit"
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
create table if not exists nutrition (
	id          bigserial primary key,
	name        text not null,
	category    text,
	calories    double precision,
	protein     double precision,
	fat         double precision,
	carbs       double precision,
	fiber       double precision,
	shelf_life  text,
	condition   text,
	deleted     boolean not null default false
);
create index if not exists nutrition_active_name_idx on nutrition (name) where deleted = false;
`

const schemaSQLite = `
create table if not exists nutrition (
	id          integer primary key autoincrement,
	name        text not null,
	category    text,
	calories    real,
	protein     real,
	fat         real,
	carbs       real,
	fiber       real,
	shelf_life  text,
	condition   text,
	deleted     integer not null default 0
);
create index if not exists nutrition_active_name_idx on nutrition (name) where deleted = 0;
`

// EnsureSchema creates the nutrition table when it does not exist yet
func EnsureSchema(ctx context.Context, q repokit.Queryer, d Dialect) error {
	ddl := schemaPG
	if d == SQLite {
		ddl = schemaSQLite
	}
	_, err := q.Exec(ctx, ddl)
	return err
}
