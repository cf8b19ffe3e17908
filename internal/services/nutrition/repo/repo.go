// Package repo provides sql access for nutrition records
// queries are written with $n placeholders and run on postgres or the sqlite adapter
package repo

import (
	"context"
	"errors"

	"producescan/internal/modkit/repokit"
	perr "producescan/internal/platform/errors"
	"producescan/internal/platform/store"
)

// Repo defines the repository contract for nutrition
type Repo interface {
	FindActiveByName(ctx context.Context, name string) (RowRecord, error)
	ListActive(ctx context.Context, limit, offset int) ([]RowSummary, error)
	FirstActiveID(ctx context.Context, name string) (int64, error)
	Insert(ctx context.Context, r RowRecord) (int64, error)
	Update(ctx context.Context, r RowRecord) error
}

// RowRecord is a nutrition row
type RowRecord struct {
	ID        int64
	Name      string
	Category  string
	Calories  *float64
	Protein   *float64
	Fat       *float64
	Carbs     *float64
	Fiber     *float64
	ShelfLife string
	Condition string
	Deleted   bool
}

// RowSummary is the listing projection
type RowSummary struct {
	ID       int64
	Name     string
	Calories *float64
	Protein  *float64
	Fat      *float64
	Carbs    *float64
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

const selectRecord = `
select id, name, coalesce(category, ''), calories, protein, fat, carbs, fiber,
coalesce(shelf_life, ''), coalesce(condition, ''), deleted
from nutrition
`

func scanRecord(r store.Row) (RowRecord, error) {
	var rr RowRecord
	err := r.Scan(
		&rr.ID,
		&rr.Name,
		&rr.Category,
		&rr.Calories,
		&rr.Protein,
		&rr.Fat,
		&rr.Carbs,
		&rr.Fiber,
		&rr.ShelfLife,
		&rr.Condition,
		&rr.Deleted,
	)
	return rr, err
}

// FindActiveByName returns perr.ErrNotFound on a miss
func (r *queries) FindActiveByName(ctx context.Context, name string) (RowRecord, error) {
	const sql = selectRecord + `
where name = $1 and deleted = false
order by id
limit 1
`
	return store.One(ctx, r.q, scanRecord, sql, name)
}

func (r *queries) ListActive(ctx context.Context, limit, offset int) ([]RowSummary, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const sql = `
select id, name, calories, protein, fat, carbs
from nutrition
where deleted = false
order by name, id
limit $1 offset $2
`
	return store.Many(ctx, r.q, func(row store.Row) (RowSummary, error) {
		var s RowSummary
		err := row.Scan(&s.ID, &s.Name, &s.Calories, &s.Protein, &s.Fat, &s.Carbs)
		return s, err
	}, sql, limit, offset)
}

// FirstActiveID returns 0 when no active row carries name
func (r *queries) FirstActiveID(ctx context.Context, name string) (int64, error) {
	const sql = `select id from nutrition where name = $1 and deleted = false order by id limit 1`
	id, err := store.One(ctx, r.q, func(row store.Row) (int64, error) {
		var id int64
		return id, row.Scan(&id)
	}, sql, name)
	if errors.Is(err, perr.ErrNotFound) {
		return 0, nil
	}
	return id, err
}

func (r *queries) Insert(ctx context.Context, rr RowRecord) (int64, error) {
	const sql = `
insert into nutrition (name, category, calories, protein, fat, carbs, fiber, shelf_life, condition, deleted)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9, false)
returning id
`
	var id int64
	err := r.q.QueryRow(ctx, sql,
		rr.Name, rr.Category, rr.Calories, rr.Protein, rr.Fat, rr.Carbs, rr.Fiber, rr.ShelfLife, rr.Condition,
	).Scan(&id)
	return id, err
}

func (r *queries) Update(ctx context.Context, rr RowRecord) error {
	const sql = `
update nutrition
set category = $2, calories = $3, protein = $4, fat = $5, carbs = $6, fiber = $7, shelf_life = $8, condition = $9
where id = $1
`
	return store.ExecOne(ctx, r.q, sql,
		rr.ID, rr.Category, rr.Calories, rr.Protein, rr.Fat, rr.Carbs, rr.Fiber, rr.ShelfLife, rr.Condition,
	)
}
