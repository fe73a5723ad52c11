package render

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ardnew/tmplgen/lang"
	"github.com/ardnew/tmplgen/log"
)

// Severity classifies a diagnostic.
type Severity uint8

const (
	SeverityError   Severity = iota // error
	SeverityWarning                 // warning
)

// String implements fmt.Stringer.
func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}

	return "error"
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Diagnostic reports a problem with one placeholder occurrence.
// Error diagnostics mean the placeholder text was left in the output
// verbatim; warnings accompany a substituted value.
type Diagnostic struct {
	Span     lang.Span `json:"span"              yaml:"span"`
	Severity Severity  `json:"severity"          yaml:"severity"`
	Code     string    `json:"code"              yaml:"code"`
	Message  string    `json:"message"           yaml:"message"`
	Suggest  []string  `json:"suggest,omitempty" yaml:"suggest,omitempty"`
	Err      error     `json:"-"                 yaml:"-"`
}

func newDiagnostic(span lang.Span, sev Severity, err error) Diagnostic {
	d := Diagnostic{
		Span:     span,
		Severity: sev,
		Code:     code(err),
		Message:  describe(err),
		Err:      err,
	}

	var le *lang.Error
	if errors.As(err, &le) {
		if v, ok := le.Attr("suggest"); ok {
			if s, ok := v.Any().([]string); ok {
				d.Suggest = s
			}
		}
	}

	return d
}

// Error formats the diagnostic as "line:column: severity: message: text".
func (d Diagnostic) Error() string {
	var sb strings.Builder

	sb.WriteString(strconv.Itoa(d.Span.Pos.Line))
	sb.WriteByte(':')
	sb.WriteString(strconv.Itoa(d.Span.Pos.Column))
	sb.WriteString(": ")
	sb.WriteString(d.Severity.String())
	sb.WriteString(": ")
	sb.WriteString(d.Message)
	sb.WriteString(": ")
	sb.WriteString(strconv.Quote(d.Span.Text))

	if len(d.Suggest) > 0 {
		sb.WriteString(" (did you mean ")
		sb.WriteString(strings.Join(d.Suggest, ", "))
		sb.WriteString("?)")
	}

	return sb.String()
}

// Unwrap returns the underlying placeholder error.
func (d Diagnostic) Unwrap() error { return d.Err }

// LogValue implements slog.LogValuer.
func (d Diagnostic) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("severity", d.Severity.String()),
		slog.String("code", d.Code),
		log.Text(d.Span.Text),
		log.Pos(d.Span.Pos.Line, d.Span.Pos.Column),
	}

	if d.Err != nil {
		attrs = append(attrs, log.Err(d.Err))
	}

	return slog.GroupValue(attrs...)
}

func code(err error) string {
	switch {
	case errors.Is(err, lang.ErrSyntax):
		return "syntax"
	case errors.Is(err, lang.ErrUnknownType):
		return "unknown_type"
	case errors.Is(err, lang.ErrArgs):
		return "args"
	case errors.Is(err, lang.ErrBounds):
		return "bounds"
	default:
		return "internal"
	}
}

// describe renders err with the details attached to it.
func describe(err error) string {
	var le *lang.Error
	if !errors.As(err, &le) {
		return err.Error()
	}

	attr := func(key string) string {
		if v, ok := le.Attr(key); ok {
			return v.String()
		}

		return ""
	}

	msg := le.Error()

	switch {
	case errors.Is(err, lang.ErrSyntax):
		if exp := attr("expected"); exp != "" {
			msg += ": expected " + exp + " at offset " + attr("offset")
		}
	case errors.Is(err, lang.ErrUnknownType):
		msg += " " + strconv.Quote(attr("type"))
	default:
		if typ := attr("type"); typ != "" {
			msg += " for " + typ
		}

		if reason := attr("reason"); reason != "" {
			msg += ": " + reason
		}
	}

	return msg
}
