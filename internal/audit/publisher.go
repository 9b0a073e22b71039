package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Publisher stamps events and hands them to a sink synchronously. Tests use
// it directly with an in-memory sink.
type Publisher struct {
	sink Sink
}

func NewPublisher(sink Sink) *Publisher {
	return &Publisher{sink: sink}
}

func (p *Publisher) Emit(ctx context.Context, event Event) error {
	stamp(&event)
	return p.sink.Append(ctx, event)
}

// AsyncPublisher buffers events on a channel drained by a Worker, keeping
// publishing off the request path. Emit never blocks: when the buffer is
// full the event is dropped and logged, which is acceptable for
// fire-and-forget bot notifications.
type AsyncPublisher struct {
	inbox  chan Event
	logger *slog.Logger
}

func NewAsyncPublisher(buffer int, logger *slog.Logger) *AsyncPublisher {
	return &AsyncPublisher{
		inbox:  make(chan Event, buffer),
		logger: logger,
	}
}

// Inbox exposes the channel for the draining Worker.
func (p *AsyncPublisher) Inbox() <-chan Event {
	return p.inbox
}

func (p *AsyncPublisher) Emit(_ context.Context, event Event) error {
	stamp(&event)
	select {
	case p.inbox <- event:
	default:
		p.logger.Warn("audit inbox full, dropping event",
			"event_type", string(event.Type),
			"title", event.Title,
		)
	}
	return nil
}

func stamp(event *Event) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
}
