// Package service records activity events without ever failing the caller
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"producescan/internal/platform/logger"
	"producescan/internal/services/audit/domain"
	"producescan/internal/services/audit/repo"
)

// Svc implements domain.Sink
// a nil repo logs events only
type Svc struct {
	repo  repo.Repo
	log   logger.Logger
	now   func() time.Time
	newID func() uuid.UUID
}

var _ domain.Sink = (*Svc)(nil)

// New creates the audit sink over r
func New(r repo.Repo) *Svc {
	return &Svc{
		repo:  r,
		log:   *logger.Named("audit"),
		now:   time.Now,
		newID: uuid.New,
	}
}

// Record writes one event, storage errors are logged and swallowed
func (s *Svc) Record(ctx context.Context, action, actor string) {
	if actor == "" {
		actor = domain.AnonymousActor
	}
	ev := repo.RowEvent{ID: s.newID(), Action: action, Actor: actor, At: s.now()}

	logger.C(ctx).Info().
		Str("component", "audit").
		Str("event_id", ev.ID.String()).
		Str("by", actor).
		Str("action", action).
		Msg("audit")

	if s.repo == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Str("action", action).Msg("audit sink panicked")
		}
	}()
	if err := s.repo.Insert(ctx, ev); err != nil {
		s.log.Warn().Err(err).Str("event_id", ev.ID.String()).Str("action", action).Msg("audit write failed, event dropped")
	}
}
