package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/tmplgen/log"
	"github.com/ardnew/tmplgen/render"
)

// Check reports every placeholder problem in a template without generating
// any data.
type Check struct {
	Input `embed:""`

	Format Format `default:"text" enum:"text,json,yaml" help:"Output format."`
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	r := c.renderer(ctx)

	tmpl, err := c.compile(ctx, r)
	if err != nil {
		return err
	}

	diags := r.Check(ctx, tmpl)
	stdout, _ := streams(ctx)

	if c.Format.structured() {
		if diags == nil {
			diags = []render.Diagnostic{}
		}

		err = c.Format.encode(ctx, stdout, diags)
	} else {
		err = newDiagnosticPrinter(stdout, c.name()).printAll(diags)
	}

	if err != nil {
		return err
	}

	errs := countErrors(diags)

	log.DebugContext(ctx, "check complete",
		slog.Int("placeholders", len(tmpl.Nodes)),
		slog.Int("errors", errs),
		slog.Int("warnings", len(diags)-errs),
	)

	if errs > 0 {
		return ErrDiagnostics.With(slog.Int("errors", errs))
	}

	return nil
}
