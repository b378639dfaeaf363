package service

import (
	"context"

	"go.uber.org/zap"

	"rideshare/internal/events"
	"rideshare/internal/observability"
)

// observer records the outcome of store operations for one store: a metric
// per call, a log line per failure, and a change event per successful mutation.
type observer struct {
	store     string
	publisher events.Publisher
	logger    *zap.Logger
}

func newObserver(store string, publisher events.Publisher, logger *zap.Logger) observer {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return observer{store: store, publisher: publisher, logger: logger.With(zap.String("store", store))}
}

func (o observer) observe(operation string, err error) {
	observability.ObserveStoreOp(o.store, operation, err)
	if err != nil {
		o.logger.Warn("store operation failed", zap.String("operation", operation), zap.Error(err))
	}
}

// emit publishes a change event. Delivery failures are logged and counted but
// never fail the operation that produced them.
func (o observer) emit(ctx context.Context, typ events.Type, key string, payload any) {
	if err := o.publisher.Publish(ctx, events.New(typ, key, payload)); err != nil {
		observability.EventPublishFailures.Inc()
		o.logger.Error("failed to publish event", zap.String("type", string(typ)), zap.String("key", key), zap.Error(err))
	}
}
