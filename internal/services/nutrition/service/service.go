// Package service contains nutrition lookups and seeding
package service

import (
	"context"
	"errors"
	"strings"

	"producescan/internal/modkit/repokit"
	perr "producescan/internal/platform/errors"
	"producescan/internal/services/nutrition/domain"
	"producescan/internal/services/nutrition/repo"
)

// Service defines the service contract for nutrition
type Service interface {
	domain.ReaderPort
	domain.WriterPort
}

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

var _ Service = (*Svc)(nil)

// New creates a new nutrition service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("nutrition.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("nutrition.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db}
}

// FindActiveByName resolves the first active record named exactly name
func (s *Svc) FindActiveByName(ctx context.Context, name string) (domain.Record, bool, error) {
	if name == "" {
		return domain.Record{}, false, nil
	}
	row, err := s.Repo.FindActiveByName(ctx, name)
	if errors.Is(err, perr.ErrNotFound) {
		return domain.Record{}, false, nil
	}
	if err != nil {
		return domain.Record{}, false, perr.FromDBf(err, "find nutrition %q", name)
	}
	return toRecord(row), true, nil
}

// ListActive lists active records ordered by name
func (s *Svc) ListActive(ctx context.Context, in domain.ListInput) ([]domain.Summary, error) {
	rows, err := s.Repo.ListActive(ctx, in.Limit, in.Offset)
	if err != nil {
		return nil, perr.FromDB(err, "list nutrition")
	}
	out := make([]domain.Summary, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Summary{
			ID:       r.ID,
			Name:     r.Name,
			Calories: r.Calories,
			Protein:  r.Protein,
			Fat:      r.Fat,
			Carbs:    r.Carbs,
		})
	}
	return out, nil
}

// Upsert refreshes the first active record named in.Name or inserts a new one
func (s *Svc) Upsert(ctx context.Context, in domain.UpsertInput) (int64, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return 0, perr.WithField(perr.InvalidArgf("name is required"), "name")
	}
	row := repo.RowRecord{
		Name:      name,
		Category:  in.Category,
		Calories:  in.Calories,
		Protein:   in.Protein,
		Fat:       in.Fat,
		Carbs:     in.Carbs,
		Fiber:     in.Fiber,
		ShelfLife: in.ShelfLife,
		Condition: in.Condition,
	}

	var id int64
	err := repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		r := repokit.MustBind(s.binder, q)
		existing, err := r.FirstActiveID(ctx, name)
		if err != nil {
			return err
		}
		if existing == 0 {
			id, err = r.Insert(ctx, row)
			return err
		}
		row.ID, id = existing, existing
		return r.Update(ctx, row)
	})
	if err != nil {
		return 0, perr.FromDBf(err, "upsert nutrition %q", name)
	}
	return id, nil
}

func toRecord(r repo.RowRecord) domain.Record {
	return domain.Record{
		ID:        r.ID,
		Name:      r.Name,
		Category:  r.Category,
		Calories:  r.Calories,
		Protein:   r.Protein,
		Fat:       r.Fat,
		Carbs:     r.Carbs,
		Fiber:     r.Fiber,
		ShelfLife: r.ShelfLife,
		Condition: r.Condition,
		Deleted:   r.Deleted,
	}
}
