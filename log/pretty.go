package log

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles used by the pretty handler. Colors are
// downgraded or dropped according to the capabilities of the output.
type palette struct {
	key, str, num, time, dur, null lipgloss.Style
	yes, no                        lipgloss.Style
	trace, debug, info, warn, fail lipgloss.Style
	component                      lipgloss.Style
}

func newPalette(w io.Writer) *palette {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return &palette{
		key:   fg("8"),
		str:   fg("6"),
		num:   fg("3"),
		time:  fg("4"),
		dur:   fg("5"),
		null:  fg("8"),
		yes:   fg("2"),
		no:    fg("1"),
		trace: fg("8"),
		debug: fg("4"),
		info:  fg("2"),
		warn:  fg("3").Bold(true),
		fail:  fg("1").Bold(true),

		component: fg("5").Bold(true),
	}
}

func (p *palette) level(l slog.Level) lipgloss.Style {
	switch {
	case l >= slog.LevelError:
		return p.fail
	case l >= slog.LevelWarn:
		return p.warn
	case l >= slog.LevelInfo:
		return p.info
	case l >= slog.LevelDebug:
		return p.debug
	default:
		return p.trace
	}
}

// prettyHandler writes colorized records either as a single key=value line
// or as an indented JSON-like block. A [ComponentKey] attribute is written
// right after the level.
type prettyHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	pal    *palette
	block  bool     // JSON-like block layout
	pre    []field  // attributes added with WithAttrs, already rendered
	groups []string // open groups, outermost first
}

func newPrettyTextHandler(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
	return newPrettyHandler(w, opts, false)
}

func newPrettyJSONHandler(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
	return newPrettyHandler(w, opts, true)
}

func newPrettyHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	block bool,
) *prettyHandler {
	return &prettyHandler{
		opts:  *opts,
		mu:    &sync.Mutex{},
		w:     w,
		pal:   newPalette(w),
		block: block,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}

	return level >= minLevel
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.pre = slices.Clip(h.pre)

	for _, a := range attrs {
		c.pre = h.appendAttr(c.pre, h.groups, a)
	}

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.groups = append(slices.Clip(h.groups), name)

	return &c
}

// field is one rendered key and its styled value.
type field struct {
	key, value string
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	var head, tail []field

	builtin := func(dst []field, a slog.Attr, style func(slog.Value) string) []field {
		if h.opts.ReplaceAttr != nil {
			a = h.opts.ReplaceAttr(nil, a)
		}

		if a.Key == "" {
			return dst
		}

		return append(dst, field{a.Key, style(a.Value.Resolve())})
	}

	if !r.Time.IsZero() {
		head = builtin(head, slog.Time(slog.TimeKey, r.Time), h.styleValue)
	}

	head = builtin(head, slog.Any(slog.LevelKey, r.Level), func(v slog.Value) string {
		return h.pal.level(r.Level).Render(v.String())
	})

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			tail = builtin(tail,
				slog.String(slog.SourceKey, src.File+":"+strconv.Itoa(src.Line)),
				h.styleValue,
			)
		}
	}

	tail = builtin(tail, slog.String(slog.MessageKey, r.Message), h.styleValue)

	attrs := slices.Clip(h.pre)

	r.Attrs(func(a slog.Attr) bool {
		attrs = h.appendAttr(attrs, h.groups, a)

		return true
	})

	fields := make([]field, 0, len(head)+len(tail)+len(attrs))
	fields = append(fields, head...)

	for _, f := range attrs {
		if f.key == ComponentKey {
			fields = append(fields, f)
		}
	}

	fields = append(fields, tail...)

	for _, f := range attrs {
		if f.key != ComponentKey {
			fields = append(fields, f)
		}
	}

	buf := new(bytes.Buffer)
	h.write(buf, fields)

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

// appendAttr flattens a into fields, qualifying group members with dots.
func (h *prettyHandler) appendAttr(
	fields []field,
	groups []string,
	a slog.Attr,
) []field {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() != slog.KindGroup && h.opts.ReplaceAttr != nil {
		a = h.opts.ReplaceAttr(groups, a)
		a.Value = a.Value.Resolve()
	}

	v := a.Value

	if v.Kind() == slog.KindGroup {
		members := v.Group()
		if len(members) == 0 {
			return fields
		}

		if a.Key != "" {
			groups = append(slices.Clip(groups), a.Key)
		}

		for _, m := range members {
			fields = h.appendAttr(fields, groups, m)
		}

		return fields
	}

	if a.Key == "" {
		return fields
	}

	key := a.Key
	if len(groups) > 0 {
		key = strings.Join(groups, ".") + "." + key
	}

	style := h.styleValue
	if key == ComponentKey {
		style = func(v slog.Value) string { return h.pal.component.Render(v.String()) }
	}

	return append(fields, field{key, style(v)})
}

func (h *prettyHandler) write(buf *bytes.Buffer, fields []field) {
	if !h.block {
		for i, f := range fields {
			if i > 0 {
				buf.WriteByte(' ')
			}

			buf.WriteString(h.pal.key.Render(f.key))
			buf.WriteByte('=')
			buf.WriteString(f.value)
		}

		buf.WriteByte('\n')

		return
	}

	buf.WriteString("{\n")

	for i, f := range fields {
		buf.WriteString("  ")
		buf.WriteString(h.pal.key.Render(f.key))
		buf.WriteString(": ")
		buf.WriteString(f.value)

		if i < len(fields)-1 {
			buf.WriteByte(',')
		}

		buf.WriteByte('\n')
	}

	buf.WriteString("}\n")
}

func (h *prettyHandler) styleValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return h.pal.str.Render(v.String())

	case slog.KindInt64:
		return h.pal.num.Render(strconv.FormatInt(v.Int64(), 10))

	case slog.KindUint64:
		return h.pal.num.Render(strconv.FormatUint(v.Uint64(), 10))

	case slog.KindFloat64:
		return h.pal.num.Render(strconv.FormatFloat(v.Float64(), 'g', -1, 64))

	case slog.KindBool:
		if v.Bool() {
			return h.pal.yes.Render("true")
		}

		return h.pal.no.Render("false")

	case slog.KindDuration:
		return h.pal.dur.Render(v.Duration().String())

	case slog.KindTime:
		return h.pal.time.Render(v.Time().Format(time.RFC3339))

	case slog.KindAny:
		switch a := v.Any().(type) {
		case nil:
			return h.pal.null.Render("null")
		case error:
			return h.pal.no.Render(a.Error())
		case []string:
			return h.pal.str.Render("[" + strings.Join(a, " ") + "]")
		}

		return h.pal.str.Render(v.String())

	default:
		return h.pal.str.Render(v.String())
	}
}
