package log

import (
	"log/slog"
	"strings"
	"time"
)

// handler builds the slog.Handler described by c.
func (c config) handler() slog.Handler {
	opts := &slog.HandlerOptions{
		AddSource:   c.caller,
		Level:       slog.Level(c.level),
		ReplaceAttr: c.replaceAttr,
	}

	switch {
	case c.format == FormatJSON && c.pretty:
		return newPrettyJSONHandler(c.output, opts)
	case c.format == FormatText && c.pretty:
		return newPrettyTextHandler(c.output, opts)
	case c.format == FormatJSON:
		return slog.NewJSONHandler(c.output, opts)
	case c.format == FormatText:
		return slog.NewTextHandler(c.output, opts)
	default:
		return slog.DiscardHandler
	}
}

// replaceAttr applies the configured time layout, names the trace level,
// and shortens template excerpts.
func (c config) replaceAttr(groups []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case slog.TimeKey:
		if len(groups) > 0 {
			return a
		}

		t, ok := a.Value.Any().(time.Time)
		if !ok {
			return a
		}

		if c.layout == "" {
			return slog.Attr{}
		}

		a.Value = slog.StringValue(t.Format(c.layout))

	case slog.LevelKey:
		if level, ok := a.Value.Any().(slog.Level); ok && len(groups) == 0 {
			a.Value = slog.StringValue(strings.ToUpper(Level(level).String()))
		}

	case TextKey:
		if a.Value.Kind() == slog.KindString {
			a.Value = slog.StringValue(excerpt(a.Value.String()))
		}
	}

	return a
}
