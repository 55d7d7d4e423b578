package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/event"

	"github.com/oksasatya/go-videotube/internal/metrics"
)

// newCommandMonitor records latency and failures of every driver command.
func newCommandMonitor() *event.CommandMonitor {
	return &event.CommandMonitor{
		Succeeded: func(_ context.Context, e *event.CommandSucceededEvent) {
			metrics.DBCommandDuration.WithLabelValues(e.CommandName).Observe(e.Duration.Seconds())
		},
		Failed: func(_ context.Context, e *event.CommandFailedEvent) {
			metrics.DBCommandDuration.WithLabelValues(e.CommandName).Observe(e.Duration.Seconds())
			metrics.DBErrorsTotal.WithLabelValues(e.CommandName).Inc()
		},
	}
}
