package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes dispatcher events to an slog.Logger.
// Useful for development when you want to see events in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("category", event.Category.String()),
	}

	if event.InstanceID != "" {
		attrs = append(attrs, slog.String("instance_id", event.InstanceID))
	}

	// Add type-specific attributes
	switch {
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("name", event.StateChange.Name),
			slog.Any("value", event.StateChange.Value),
		)
	case event.Delivery != nil:
		attrs = append(attrs,
			slog.Any("names", event.Delivery.Names),
			slog.Int("queue_len", event.Delivery.QueueLen),
		)
		if event.Delivery.Dropped {
			attrs = append(attrs, slog.Bool("dropped", true))
		}
	case event.Subscription != nil:
		attrs = append(attrs,
			slog.Bool("added", event.Subscription.Added),
			slog.Any("names", event.Subscription.Names),
		)
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_msg", event.Error.Message),
			slog.String("error_context", event.Error.Context),
		)
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "state", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
