// Package domain holds audit event types and the sink other modules write to
package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event is one line of the activity log
type Event struct {
	ID     uuid.UUID `json:"id"`
	Action string    `json:"action"`
	Actor  string    `json:"actor"`
	At     time.Time `json:"at"`
}

// Sink records activity
// Record never fails the caller, storage problems are logged and dropped
type Sink interface {
	Record(ctx context.Context, action, actor string)
}

// SinkFunc adapts a function to Sink
type SinkFunc func(ctx context.Context, action, actor string)

// Record calls f
func (f SinkFunc) Record(ctx context.Context, action, actor string) { f(ctx, action, actor) }

// AnonymousActor is recorded when a request carries no identity
const AnonymousActor = "anonymous"
