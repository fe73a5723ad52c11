package log

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

type valuer struct{}

func (valuer) LogValue() slog.Value {
	return slog.GroupValue(slog.String("code", "args"), slog.Int("line", 3))
}

func TestPretty_Text_RenderRecord(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf,
		WithFormat(FormatText),
		WithPretty(true),
		WithTimeLayout("none"),
	).For("render")

	logger.Info("rendered",
		slog.Int("documents", 2),
		slog.Any("diag", valuer{}),
		slog.Group("cache", slog.Bool("hit", true)),
		Err(errors.New("boom")),
	)

	output := buf.String()

	if !strings.HasPrefix(output, "level=INFO component=render msg=rendered ") {
		t.Errorf("expected component ahead of the message, got: %s", output)
	}

	for _, want := range []string{
		"documents=2",
		"diag.code=args",
		"diag.line=3",
		"cache.hit=true",
		"error=boom",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got: %s", want, output)
		}
	}

	if strings.Contains(output, "time=") {
		t.Errorf("expected no time field, got: %s", output)
	}

	if strings.Count(output, "\n") != 1 {
		t.Errorf("expected a single line, got: %q", output)
	}
}

func TestPretty_Text_ShortensExcerpt(t *testing.T) {
	var buf bytes.Buffer

	long := strings.Repeat("${int:0,10}", 10)

	Make(&buf, WithFormat(FormatText), WithTimeLayout("none"), WithLevel(LevelTrace)).
		With(Text(long)).
		Trace("placeholder rejected", Pos(1, 1))

	want := "level=TRACE msg=placeholder rejected text=" + excerpt(long) + " pos=1:1\n"
	if got := buf.String(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestPretty_JSON_Block(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatJSON), WithPretty(true))
	logger.Warn("inverted range", slog.String("type", "int"))

	output := buf.String()

	if !strings.HasPrefix(output, "{\n") || !strings.HasSuffix(output, "}\n") {
		t.Errorf("expected block layout, got: %q", output)
	}

	for _, want := range []string{"level: WARN", "msg: inverted range", "type: int"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got: %s", want, output)
		}
	}
}

func TestPretty_WithGroup(t *testing.T) {
	var buf bytes.Buffer

	base := Make(&buf, WithFormat(FormatText), WithPretty(true))
	grouped := slog.New(base.Handler().WithGroup("req"))

	grouped.Info("x", slog.String("id", "7"))

	if !strings.Contains(buf.String(), "req.id=7") {
		t.Errorf("expected grouped key, got: %s", buf.String())
	}
}

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelTrace, "trace"},
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
		{LevelInfo + 2, "info+2"},
		{LevelTrace - 1, "trace-1"},
		{LevelTrace + 2, "trace+2"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}

		if got := ParseLevel(tt.want); got != tt.level {
			t.Errorf("ParseLevel(%q): expected %v, got %v", tt.want, tt.level, got)
		}
	}
}

func TestFormat_String(t *testing.T) {
	for f := range Formats() {
		if got := ParseFormat(f).String(); got != f {
			t.Errorf("expected %q to round-trip, got %q", f, got)
		}
	}
}
