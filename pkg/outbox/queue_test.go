package outbox

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestQueuePublishAndDrain(t *testing.T) {
	t.Parallel()

	q := NewQueue(8, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var seen []Event
	done := make(chan struct{})

	go func() {
		q.Run(ctx, func(_ context.Context, event Event) error {
			mu.Lock()
			seen = append(seen, event)
			if len(seen) == 2 {
				close(done)
			}
			mu.Unlock()
			return nil
		})
	}()

	if !q.Publish(ctx, NewEvent(KindFavoriteAdded, "user-1", "prod-1")) {
		t.Fatalf("publish should succeed with free buffer")
	}
	if !q.Publish(ctx, NewEvent(KindFavoriteRemoved, "user-1", "prod-2")) {
		t.Fatalf("publish should succeed with free buffer")
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("consumer did not drain events")
	}

	mu.Lock()
	defer mu.Unlock()
	if seen[0].Kind != KindFavoriteAdded || seen[1].Kind != KindFavoriteRemoved {
		t.Fatalf("events out of order: %+v", seen)
	}
	if seen[0].EventID == "" || seen[0].OccurredAt.IsZero() {
		t.Fatalf("envelope not stamped: %+v", seen[0])
	}
}

func TestQueuePublishDropsWhenFull(t *testing.T) {
	t.Parallel()

	q := NewQueue(1, nil)
	ctx := context.Background()

	if !q.Publish(ctx, NewEvent(KindFavoriteAdded, "u", "p1")) {
		t.Fatalf("first publish should fit")
	}
	if q.Publish(ctx, NewEvent(KindFavoriteAdded, "u", "p2")) {
		t.Fatalf("second publish should be dropped, not block")
	}
	if q.Len() != 1 {
		t.Fatalf("expected one buffered event, got %d", q.Len())
	}
}

func TestQueueRunSurvivesHandlerErrors(t *testing.T) {
	t.Parallel()

	q := NewQueue(4, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := make(chan struct{}, 4)
	go func() {
		q.Run(ctx, func(context.Context, Event) error {
			calls <- struct{}{}
			return errors.New("push failed")
		})
	}()

	q.Publish(ctx, NewEvent(KindFavoriteAdded, "u", "p1"))
	q.Publish(ctx, NewEvent(KindFavoriteAdded, "u", "p2"))

	for i := 0; i < 2; i++ {
		select {
		case <-calls:
		case <-time.After(2 * time.Second):
			t.Fatalf("handler not invoked for event %d", i+1)
		}
	}
}

func TestNilQueueIsInert(t *testing.T) {
	t.Parallel()

	var q *Queue
	if q.Publish(context.Background(), Event{}) {
		t.Fatalf("nil queue should refuse publish")
	}
	if q.Len() != 0 {
		t.Fatalf("nil queue should report empty")
	}
	q.Run(context.Background(), nil)
}
