package cmd

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/tmplgen/gen"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type datasetKey struct{}

// WithDataset returns a new context.Context carrying reference tables that
// replace the built-in ones.
func WithDataset(ctx context.Context, data *gen.Dataset) context.Context {
	return context.WithValue(ctx, datasetKey{}, data)
}

// datasetFrom returns the dataset stored by WithDataset, or nil to select
// the built-in tables.
func datasetFrom(ctx context.Context) *gen.Dataset {
	data, _ := ctx.Value(datasetKey{}).(*gen.Dataset)

	return data
}

// streams returns the output writers of the kong application stored in
// ctx, falling back to the process streams.
func streams(ctx context.Context) (stdout, stderr io.Writer) {
	stdout, stderr = os.Stdout, os.Stderr

	if ktx := kongContextFrom(ctx); ktx != nil {
		if ktx.Stdout != nil {
			stdout = ktx.Stdout
		}

		if ktx.Stderr != nil {
			stderr = ktx.Stderr
		}
	}

	return stdout, stderr
}

// vars returns the kong variables of the application stored in ctx.
func vars(ctx context.Context) kong.Vars {
	if ktx := kongContextFrom(ctx); ktx != nil {
		return ktx.Model.Vars()
	}

	return kong.Vars{}
}
