// internal/service/notify.go
package service

import (
	"context"
	"log/slog"

	"splitledger/internal/events"
	"splitledger/internal/metrics"
)

// notifier announces committed changes. Delivery is best effort: a broker
// failure never undoes or fails the write that produced the event.
type notifier struct {
	publisher events.Publisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

func newNotifier(publisher events.Publisher, m *metrics.Metrics, logger *slog.Logger) notifier {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return notifier{publisher: publisher, metrics: m, logger: logger}
}

func (n notifier) publish(ctx context.Context, eventType string, actorID int64, payload interface{}) {
	event, err := events.NewEvent(eventType, actorID, payload)
	if err == nil {
		err = n.publisher.Publish(ctx, event)
	}
	if err != nil {
		n.logger.WarnContext(ctx, "Failed to publish event", "type", eventType, "actor_id", actorID, "error", err)
		if n.metrics != nil {
			n.metrics.EventPublishErrors.WithLabelValues(eventType).Inc()
		}
	}
}
