package cmd

import (
	"context"

	"github.com/ardnew/tmplgen/cli/cmd/repl"
	"github.com/ardnew/tmplgen/lang"
	"github.com/ardnew/tmplgen/log"
	"github.com/ardnew/tmplgen/render"
)

// Repl starts an interactive template preview.
type Repl struct {
	Seed   Seed `help:"Base seed for reproducible output (random if unset)." placeholder:"N"`
	Strict bool `help:"Reject inverted numeric ranges instead of warning."`
}

// Run executes the repl command.
func (c *Repl) Run(ctx context.Context) error {
	bounds := lang.BoundsLenient
	if c.Strict {
		bounds = lang.BoundsStrict
	}

	opts := []render.Option{
		render.WithBounds(bounds),
		render.WithDataset(datasetFrom(ctx)),
		render.WithLogger(log.Default()),
		c.Seed.option(),
	}

	return repl.Run(ctx, vars(ctx)[CacheIdentifier], log.Default(), opts...)
}
