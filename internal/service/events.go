package service

import (
	"context"
	"log/slog"

	"medconnect/internal/events"
	"medconnect/internal/middleware"
	"medconnect/internal/observability"
)

// notify hands e to the publisher after a committed mutation. Delivery is best
// effort: a failing sink is logged and counted, and the caller's write stands.
func notify(ctx context.Context, p events.Publisher, e events.Event) {
	observability.FeedMutations.WithLabelValues(e.Type).Inc()
	if err := p.Publish(ctx, e); err != nil {
		observability.EventPublishFailures.WithLabelValues(e.Type).Inc()
		middleware.Logger.WarnContext(ctx, "feed event not published",
			slog.String("event", e.Type),
			slog.Uint64("post_id", uint64(e.Payload.PostID)),
			slog.String("error", err.Error()),
		)
	}
}
