package log

import (
	"context"
	"fmt"
	"log/slog"
)

// SlogAdapter writes protocol events to an slog.Logger.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger. Header events are logged at
// Debug level, errors at Warn.
func (a *SlogAdapter) Log(event Event) {
	level := slog.LevelDebug
	attrs := []slog.Attr{
		slog.String("session_id", event.SessionID),
		slog.String("direction", event.Direction.String()),
		slog.String("category", event.Category.String()),
	}
	if event.Source != "" {
		attrs = append(attrs, slog.String("source", event.Source))
	}

	switch {
	case event.Header != nil:
		attrs = append(attrs,
			slog.String("shape", event.Header.Shape.String()),
			slog.String("word", fmt.Sprintf("0x%08X", event.Header.Word)),
		)
		if event.Header.Summary != "" {
			attrs = append(attrs, slog.String("header", event.Header.Summary))
		}
	case event.Error != nil:
		level = slog.LevelWarn
		attrs = append(attrs,
			slog.String("shape", event.Error.Shape.String()),
			slog.String("error_msg", event.Error.Message),
		)
		if event.Error.Field != "" {
			attrs = append(attrs, slog.String("field", event.Error.Field))
		}
		if event.Error.Raw != nil {
			attrs = append(attrs, slog.Uint64("raw", uint64(*event.Error.Raw)))
		}
		if event.Error.Word != nil {
			attrs = append(attrs, slog.String("word", fmt.Sprintf("0x%08X", *event.Error.Word)))
		}
	}

	a.logger.LogAttrs(context.Background(), level, "mctp header", attrs...)
}

var _ Logger = (*SlogAdapter)(nil)
