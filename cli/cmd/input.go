package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/ardnew/tmplgen/lang"
	"github.com/ardnew/tmplgen/log"
	"github.com/ardnew/tmplgen/render"
)

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// Input selects the template source shared by the render and check
// commands. With neither flag set, the template is read from stdin.
type Input struct {
	Template string `help:"Template text."                                      short:"t" xor:"input"`
	File     string `help:"Template file or '-' for stdin."                     short:"f" xor:"input" placeholder:"FILE"`
	Strict   bool   `help:"Reject inverted numeric ranges instead of warning."`
}

// name returns the label prefixed to diagnostics.
func (in *Input) name() string {
	switch {
	case in.Template != "":
		return "<template>"
	case in.File == "" || in.File == stdinSource:
		return "<stdin>"
	default:
		return in.File
	}
}

func (in *Input) bounds() lang.Bounds {
	if in.Strict {
		return lang.BoundsStrict
	}

	return lang.BoundsLenient
}

// renderer returns a Renderer configured from the input flags, the dataset
// stored in ctx, and opts.
func (in *Input) renderer(
	ctx context.Context,
	opts ...render.Option,
) *render.Renderer {
	base := []render.Option{
		render.WithBounds(in.bounds()),
		render.WithDataset(datasetFrom(ctx)),
		render.WithLogger(log.Default()),
	}

	return render.New(append(base, opts...)...)
}

// compile reads and compiles the selected template.
func (in *Input) compile(
	ctx context.Context,
	r *render.Renderer,
) (*lang.Template, error) {
	if in.Template != "" {
		return r.Compile(ctx, in.Template), nil
	}

	var rd io.Reader = os.Stdin

	if in.File != "" && in.File != stdinSource {
		f, err := os.Open(in.File)
		if err != nil {
			return nil, ErrReadTemplate.
				With(slog.String("file", in.File)).
				Wrap(err)
		}
		defer f.Close()

		rd = f
	}

	tmpl, err := r.CompileReader(ctx, rd)
	if err != nil {
		return nil, ErrReadTemplate.
			With(slog.String("file", in.name())).
			Wrap(err)
	}

	return tmpl, nil
}
