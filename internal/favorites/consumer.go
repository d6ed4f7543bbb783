package favorites

import (
	"context"
	"fmt"
	"time"

	"github.com/lyvest/lyvest-backend/pkg/logger"
	"github.com/lyvest/lyvest-backend/pkg/metrics"
	"github.com/lyvest/lyvest-backend/pkg/outbox"
	"github.com/lyvest/lyvest-backend/pkg/types"
	"github.com/sethvargo/go-retry"
)

// Consumer drains favorite events from the outbox queue and applies them to
// the remote store. It owns the retry policy; the engine stays fire-and-
// forget. An event that exhausts its attempts is logged and dropped.
type Consumer struct {
	remote      RemoteStore
	logg        *logger.Logger
	metrics     *metrics.EngineMetrics
	maxAttempts int
	baseDelay   time.Duration
}

// ConsumerParams groups dependencies for the push consumer.
type ConsumerParams struct {
	Remote      RemoteStore
	Logger      *logger.Logger
	Metrics     *metrics.EngineMetrics
	MaxAttempts int
	BaseDelay   time.Duration
}

func NewConsumer(params ConsumerParams) (*Consumer, error) {
	if params.Remote == nil {
		return nil, fmt.Errorf("remote store is required")
	}
	if params.MaxAttempts <= 0 {
		params.MaxAttempts = 3
	}
	if params.BaseDelay <= 0 {
		params.BaseDelay = 100 * time.Millisecond
	}
	return &Consumer{
		remote:      params.Remote,
		logg:        params.Logger,
		metrics:     params.Metrics,
		maxAttempts: params.MaxAttempts,
		baseDelay:   params.BaseDelay,
	}, nil
}

// Handle applies one event with bounded backoff.
func (c *Consumer) Handle(ctx context.Context, event outbox.Event) error {
	start := time.Now()
	backoff := retry.WithMaxRetries(uint64(c.maxAttempts-1), retry.NewExponential(c.baseDelay))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if pushErr := c.push(ctx, event); pushErr != nil {
			return retry.RetryableError(pushErr)
		}
		return nil
	})

	c.metrics.ObservePushDuration(string(event.Kind), time.Since(start))

	if err != nil {
		c.metrics.IncPushFailure(string(event.Kind))
		if c.logg != nil {
			fields := map[string]any{
				"event_id":   event.EventID,
				"kind":       string(event.Kind),
				"product_id": event.ProductID,
			}
			c.logg.Error(c.logg.WithFields(ctx, fields), "remote favorite push abandoned", err)
		}
		return err
	}

	c.metrics.IncPushSuccess(string(event.Kind))
	return nil
}

func (c *Consumer) push(ctx context.Context, event outbox.Event) error {
	id := types.ProductID(event.ProductID)
	switch event.Kind {
	case outbox.KindFavoriteAdded:
		return c.remote.Insert(ctx, event.UserID, id)
	case outbox.KindFavoriteRemoved:
		return c.remote.Delete(ctx, event.UserID, id)
	default:
		return fmt.Errorf("unknown event kind %q", event.Kind)
	}
}
