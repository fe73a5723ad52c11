package log

import (
	"log/slog"
	"strconv"
	"unicode/utf8"
)

// Keys of the attributes tmplgen attaches to its records.
const (
	ComponentKey = "component"
	PosKey       = "pos"
	TextKey      = "text"
	ErrorKey     = "error"
)

// maxText is the longest template excerpt, in runes, that a handler writes
// for a [TextKey] attribute.
const maxText = 48

// Component names the package that emitted a record. Text handlers move it
// ahead of the message.
func Component(name string) slog.Attr {
	return slog.String(ComponentKey, name)
}

// Pos formats a 1-based template position as "line:column".
func Pos(line, column int) slog.Attr {
	return slog.String(PosKey, strconv.Itoa(line)+":"+strconv.Itoa(column))
}

// Text carries a fragment of template source. Handlers shorten it to
// maxText runes.
func Text(s string) slog.Attr {
	return slog.String(TextKey, s)
}

// Err carries err under [ErrorKey].
func Err(err error) slog.Attr {
	return slog.Any(ErrorKey, err)
}

func excerpt(s string) string {
	if utf8.RuneCountInString(s) <= maxText {
		return s
	}

	n := 0

	for i := range s {
		if n == maxText-1 {
			return s[:i] + "…"
		}

		n++
	}

	return s
}
