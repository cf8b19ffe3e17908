package domain

import "context"

// ReaderPort is the read side other modules depend on
type ReaderPort interface {
	// FindActiveByName is an exact, case sensitive match on active rows
	// the first match by id wins; found is false on a miss
	FindActiveByName(ctx context.Context, name string) (rec Record, found bool, err error)
	ListActive(ctx context.Context, in ListInput) ([]Summary, error)
}

// WriterPort is used by seeding
type WriterPort interface {
	Upsert(ctx context.Context, in UpsertInput) (id int64, err error)
}
