package events

import (
	"context"
	"log/slog"
)

// LogSink writes every event to the logger at debug level.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a LogSink.
func NewLogSink(log *slog.Logger) *LogSink {
	if log == nil {
		log = slog.Default()
	}
	return &LogSink{logger: log.With(slog.String("component", "event_log_sink"))}
}

// Name implements NamedHandler.
func (s *LogSink) Name() string { return "log" }

// HandleEvent implements EventHandler.
func (s *LogSink) HandleEvent(ctx context.Context, event *TaskEvent) error {
	s.logger.DebugContext(ctx, "task event",
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", string(event.Type)),
		slog.String("data", string(event.Data)))
	return nil
}
