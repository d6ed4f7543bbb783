package outbox

import (
	"context"

	"github.com/lyvest/lyvest-backend/pkg/logger"
)

// Handler processes one queued event. A returned error means the event was
// abandoned; the queue itself never retries.
type Handler func(ctx context.Context, event Event) error

// Queue is an in-process, bounded, fire-and-forget event queue. Publish never
// blocks the caller's state transition: when the buffer is full the event is
// dropped and logged, preserving at-most-once semantics.
type Queue struct {
	events chan Event
	logg   *logger.Logger
}

func NewQueue(buffer int, logg *logger.Logger) *Queue {
	if buffer <= 0 {
		buffer = 64
	}
	return &Queue{
		events: make(chan Event, buffer),
		logg:   logg,
	}
}

// Publish enqueues the event without blocking. Returns false when the event
// was dropped.
func (q *Queue) Publish(ctx context.Context, event Event) bool {
	if q == nil {
		return false
	}
	select {
	case q.events <- event:
		return true
	default:
		if q.logg != nil {
			fields := map[string]any{"event_id": event.EventID, "kind": string(event.Kind)}
			q.logg.Warn(q.logg.WithFields(ctx, fields), "outbox queue full, event dropped")
		}
		return false
	}
}

// Run drains the queue until the context is cancelled. Handler errors are
// logged and the event dropped.
func (q *Queue) Run(ctx context.Context, handler Handler) {
	if q == nil || handler == nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-q.events:
			if err := handler(ctx, event); err != nil && q.logg != nil {
				fields := map[string]any{"event_id": event.EventID, "kind": string(event.Kind)}
				q.logg.Error(q.logg.WithFields(ctx, fields), "outbox event abandoned", err)
			}
		}
	}
}

// Len reports how many events are waiting. Used by tests and readiness checks.
func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.events)
}
