package events

import (
	"context"
	"time"

	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/Skotchmaster/storefront/pkg/metrics"
)

// Emitter publishes domain events on behalf of services. A failed publish is logged and counted
// but never returned: the operation that produced the event has already been committed.
type Emitter struct {
	Pub     Publisher
	Metrics *metrics.Metrics
	Now     func() time.Time
}

func NewEmitter(pub Publisher, m *metrics.Metrics) *Emitter {
	return &Emitter{Pub: pub, Metrics: m, Now: time.Now}
}

func (e *Emitter) Emit(ctx context.Context, topic, key, typ string, payload any) {
	if e == nil || e.Pub == nil {
		return
	}
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	ev := Event{Type: typ, OccurredAt: now().UTC(), Payload: payload}
	if err := e.Pub.PublishEvent(ctx, topic, key, ev); err != nil {
		logging.FromContext(ctx).Warn("publish_event_error", "topic", topic, "event", typ, "key", key, "error", err)
		e.Metrics.ObservePublishFailure(topic)
	}
}
