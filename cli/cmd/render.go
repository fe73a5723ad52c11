package cmd

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ardnew/tmplgen/log"
	"github.com/ardnew/tmplgen/render"
)

// Seed is an optional base seed. The zero value selects a random seed.
type Seed struct {
	value uint64
	set   bool
}

// UnmarshalText implements encoding.TextUnmarshaler. Decimal, hexadecimal
// (0x), octal (0o), and binary (0b) forms are accepted.
func (s *Seed) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*s = Seed{}

		return nil
	}

	v, err := strconv.ParseUint(string(text), 0, 64)
	if err != nil {
		return err
	}

	*s = Seed{value: v, set: true}

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (s Seed) MarshalText() ([]byte, error) {
	if !s.set {
		return nil, nil
	}

	return strconv.AppendUint(nil, s.value, 10), nil
}

func (s Seed) option() render.Option {
	if !s.set {
		return nil
	}

	return render.WithSeed(s.value)
}

// Render populates a template with generated data.
type Render struct {
	Input `embed:""`

	Count            int    `default:"1"    help:"Number of documents to generate."                          short:"n"`
	Seed             Seed   `               help:"Base seed for reproducible output (random if unset)."                placeholder:"N"`
	Parallel         int    `default:"0"    help:"Documents rendered concurrently (0 selects GOMAXPROCS)."`
	Separator        string `default:""     help:"Text written between documents; Go escapes such as \\n are interpreted."`
	Format           Format `default:"text" help:"Output format."                                           enum:"text,json,yaml"`
	FailOnDiagnostic bool   `               help:"Exit with an error when any placeholder is reported."`
}

// renderOutput is the structured form of a render run.
type renderOutput struct {
	Seed      uint64          `json:"seed"      yaml:"seed"`
	Documents []render.Result `json:"documents" yaml:"documents"`
}

// Validate implements kong's validation hook.
func (c *Render) Validate() error {
	if c.Count < 1 {
		return ErrCount.With(slog.Int("count", c.Count))
	}

	_, err := c.separator()

	return err
}

// separator returns the document separator with escapes interpreted.
func (c *Render) separator() (string, error) {
	if c.Separator == "" {
		return "", nil
	}

	quoted := `"` + strings.ReplaceAll(c.Separator, `"`, `\"`) + `"`

	sep, err := strconv.Unquote(quoted)
	if err != nil {
		return "", ErrSeparator.
			With(slog.String("separator", c.Separator)).
			Wrap(err)
	}

	return sep, nil
}

// Run executes the render command.
func (c *Render) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	sep, err := c.separator()
	if err != nil {
		return err
	}

	r := c.renderer(ctx, c.Seed.option(), render.WithParallel(c.Parallel))

	tmpl, err := c.compile(ctx, r)
	if err != nil {
		return err
	}

	diags := r.Check(ctx, tmpl)

	results, err := r.ExecuteN(ctx, tmpl, c.Count)
	if err != nil {
		return err
	}

	stdout, stderr := streams(ctx)

	if c.Format.structured() {
		err = c.Format.encode(ctx, stdout, renderOutput{
			Seed:      r.Seed(),
			Documents: results,
		})
	} else {
		err = newDiagnosticPrinter(stderr, c.name()).printAll(diags)
		if err == nil {
			err = writeDocuments(stdout, results, sep)
		}
	}

	if err != nil {
		return err
	}

	log.DebugContext(ctx, "render complete",
		slog.Uint64("seed", r.Seed()),
		slog.Int("documents", len(results)),
		slog.Int("placeholders", len(tmpl.Nodes)),
		slog.Int("diagnostics", len(diags)),
	)

	if c.FailOnDiagnostic && len(diags) > 0 {
		return ErrDiagnostics.With(
			slog.Int("errors", countErrors(diags)),
			slog.Int("warnings", len(diags)-countErrors(diags)),
		)
	}

	return nil
}

// writeDocuments writes each document followed by a newline if it lacks
// one, with sep between consecutive documents.
func writeDocuments(w io.Writer, results []render.Result, sep string) error {
	for i, res := range results {
		if i > 0 && sep != "" {
			if _, err := io.WriteString(w, sep); err != nil {
				return err
			}
		}

		out := res.Output
		if !strings.HasSuffix(out, "\n") {
			out += "\n"
		}

		if _, err := io.WriteString(w, out); err != nil {
			return err
		}
	}

	return nil
}
