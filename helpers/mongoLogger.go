package helpers

import (
	"context"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/event"
)

// NewCommandMonitor logs every command sent to MongoDB at debug level and
// failed commands at warn level, with their latency.
func NewCommandMonitor(logger zerolog.Logger) *event.CommandMonitor {
	return &event.CommandMonitor{
		Started: func(_ context.Context, e *event.CommandStartedEvent) {
			logger.Debug().
				Str("command", e.CommandName).
				Str("db", e.DatabaseName).
				Int64("request_id", e.RequestID).
				Msg("Mongo request:")
		},
		Succeeded: func(_ context.Context, e *event.CommandSucceededEvent) {
			logger.Debug().
				Str("command", e.CommandName).
				Int64("request_id", e.RequestID).
				Dur("latency", e.Duration).
				Msg("Mongo response:")
		},
		Failed: func(_ context.Context, e *event.CommandFailedEvent) {
			logger.Warn().
				Str("command", e.CommandName).
				Int64("request_id", e.RequestID).
				Dur("latency", e.Duration).
				Err(e.Failure).
				Msg("Mongo command failed:")
		},
	}
}
