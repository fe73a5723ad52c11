package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/tmplgen/render"
)

// Format selects how command output is written.
type Format string

// Output formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

const formatIndent = 2

// structured reports whether f is a machine-readable format.
func (f Format) structured() bool { return f == FormatJSON || f == FormatYAML }

// encode writes v to w in format f.
func (f Format) encode(ctx context.Context, w io.Writer, v any) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", strings.Repeat(" ", formatIndent))

		if err := enc.Encode(v); err != nil {
			return ErrJSONMarshal.Wrap(err)
		}

		return nil

	case FormatYAML:
		data, err := yaml.MarshalContext(ctx, v, yaml.Indent(formatIndent))
		if err != nil {
			return ErrYAMLMarshal.Wrap(err)
		}

		_, err = w.Write(data)

		return err

	default:
		_, err := fmt.Fprintln(w, v)

		return err
	}
}

// diagnosticPrinter writes one styled line per diagnostic. Colors are
// dropped when w is not a terminal.
type diagnosticPrinter struct {
	w                    io.Writer
	name                 string
	loc, fail, warn, alt lipgloss.Style
}

func newDiagnosticPrinter(w io.Writer, name string) *diagnosticPrinter {
	r := lipgloss.NewRenderer(w)

	return &diagnosticPrinter{
		w:    w,
		name: name,
		loc:  r.NewStyle().Bold(true),
		fail: r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		warn: r.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		alt:  r.NewStyle().Foreground(lipgloss.Color("6")),
	}
}

func (p *diagnosticPrinter) print(d render.Diagnostic) error {
	sev := p.fail
	if d.Severity == render.SeverityWarning {
		sev = p.warn
	}

	var sb strings.Builder

	sb.WriteString(p.loc.Render(
		fmt.Sprintf("%s:%d:%d:", p.name, d.Span.Pos.Line, d.Span.Pos.Column)))
	sb.WriteByte(' ')
	sb.WriteString(sev.Render(d.Severity.String() + ":"))
	sb.WriteByte(' ')
	sb.WriteString(d.Message)
	sb.WriteString(": ")
	sb.WriteString(strconv.Quote(d.Span.Text))

	if len(d.Suggest) > 0 {
		sb.WriteString(" (did you mean ")
		sb.WriteString(p.alt.Render(strings.Join(d.Suggest, ", ")))
		sb.WriteString("?)")
	}

	sb.WriteByte('\n')

	_, err := io.WriteString(p.w, sb.String())

	return err
}

func (p *diagnosticPrinter) printAll(diags []render.Diagnostic) error {
	for _, d := range diags {
		if err := p.print(d); err != nil {
			return err
		}
	}

	return nil
}

// countErrors returns the number of error-severity diagnostics.
func countErrors(diags []render.Diagnostic) int {
	n := 0

	for _, d := range diags {
		if d.Severity == render.SeverityError {
			n++
		}
	}

	return n
}
