package audit

import (
	"context"
	"log/slog"
)

// Worker consumes events from a channel and appends them to a sink. Sink
// failures are logged and skipped so one bad event cannot stall the stream.
type Worker struct {
	sink   Sink
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(sink Sink, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{sink: sink, inbox: inbox, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.sink.Append(ctx, event); err != nil {
				w.logger.Error("failed to append audit event",
					"event_id", event.ID,
					"event_type", string(event.Type),
					"error", err.Error(),
				)
			}
		}
	}
}
