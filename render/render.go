package render

import (
	"context"
	"encoding/binary"
	"io"
	"log/slog"
	"runtime"
	"strings"

	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"

	"github.com/ardnew/tmplgen/entity"
	"github.com/ardnew/tmplgen/gen"
	"github.com/ardnew/tmplgen/lang"
	"github.com/ardnew/tmplgen/log"
)

// Result is one populated document.
type Result struct {
	Index       int          `json:"index"                 yaml:"index"`
	Seed        uint64       `json:"seed"                  yaml:"seed"`
	Output      string       `json:"output"                yaml:"output"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// Failed reports whether any placeholder was left unsubstituted.
func (r Result) Failed() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}

	return false
}

// Renderer populates templates with generated values.
// A Renderer is safe for concurrent use; every call owns its entity cache
// and random stream.
type Renderer struct {
	seed     uint64
	seeded   bool
	bounds   lang.Bounds
	parallel int
	cache    bool
	data     *gen.Dataset
	base     log.Logger // handed to lang
	logger   log.Logger
}

// Option configures a [Renderer].
type Option func(*Renderer)

// WithSeed fixes the base seed so output is reproducible.
func WithSeed(seed uint64) Option {
	return func(r *Renderer) {
		r.seed = seed
		r.seeded = true
	}
}

// WithBounds sets the policy for inverted numeric ranges.
func WithBounds(b lang.Bounds) Option {
	return func(r *Renderer) {
		r.bounds = b
	}
}

// WithParallel limits the number of documents [Renderer.RenderN] renders
// concurrently. Values below one select GOMAXPROCS.
func WithParallel(n int) Option {
	return func(r *Renderer) {
		r.parallel = n
	}
}

// WithCache enables or disables the compiled template cache.
func WithCache(enable bool) Option {
	return func(r *Renderer) {
		r.cache = enable
	}
}

// WithDataset replaces the embedded reference tables.
func WithDataset(d *gen.Dataset) Option {
	return func(r *Renderer) {
		r.data = d
	}
}

// WithLogger sets the logger used for debug and trace output. Records
// carry the component name "render", or "lang" for compilation.
func WithLogger(logger log.Logger) Option {
	return func(r *Renderer) {
		r.base = logger
		r.logger = logger.For("render")
	}
}

// New returns a Renderer configured by opts.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		bounds: lang.BoundsLenient,
		cache:  true,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}

	if !r.seeded {
		r.seed = gen.RandomSeed()
	}

	if r.parallel < 1 {
		r.parallel = runtime.GOMAXPROCS(0)
	}

	return r
}

// Seed returns the base seed of r.
func (r *Renderer) Seed() uint64 { return r.seed }

// Bounds returns the inverted range policy of r.
func (r *Renderer) Bounds() lang.Bounds { return r.bounds }

func (r *Renderer) compileOptions() []lang.Option {
	return []lang.Option{
		lang.WithBounds(r.bounds),
		lang.WithCache(r.cache),
		lang.WithLogger(r.base),
	}
}

// Compile compiles src with the renderer's options.
func (r *Renderer) Compile(ctx context.Context, src string) *lang.Template {
	return lang.Compile(ctx, src, r.compileOptions()...)
}

// CompileReader reads template source from rd and compiles it with the
// renderer's options.
func (r *Renderer) CompileReader(
	ctx context.Context,
	rd io.Reader,
) (*lang.Template, error) {
	return lang.CompileReader(ctx, rd, r.compileOptions()...)
}

// Render populates src once.
//
// Placeholders that fail to parse or resolve are copied to the output
// verbatim and reported with one diagnostic each; rendering never stops
// early because of them.
func (r *Renderer) Render(ctx context.Context, src string) Result {
	return r.Execute(ctx, r.Compile(ctx, src), 0)
}

// Validate reports every placeholder problem in src without generating
// any values. Inverted ranges are included as warnings under
// [lang.BoundsLenient].
func (r *Renderer) Validate(ctx context.Context, src string) []Diagnostic {
	return r.Check(ctx, r.Compile(ctx, src))
}

// Check reports the diagnostics of an already compiled template.
func (r *Renderer) Check(ctx context.Context, tmpl *lang.Template) []Diagnostic {
	var diags []Diagnostic

	for n := range tmpl.All() {
		switch {
		case n.Failed():
			diags = append(diags, newDiagnostic(n.Span, SeverityError, n.Err))
		case n.Descriptor.Warn != nil:
			diags = append(diags, newDiagnostic(n.Span, SeverityWarning, n.Descriptor.Warn))
		default:
			continue
		}

		r.logger.DebugContext(ctx, "placeholder diagnostic",
			slog.Any("diagnostic", diags[len(diags)-1]))
	}

	r.logger.DebugContext(ctx, "validate complete",
		slog.Int("placeholders", len(tmpl.Nodes)),
		slog.Int("diagnostics", len(diags)),
	)

	return diags
}

// RenderN populates src n times. Each document gets its own entity cache,
// so entity ids are consistent within a document but not across documents.
//
// Documents are rendered concurrently; document i always uses the random
// stream derived from the base seed and i, so the results do not depend on
// scheduling. The only error returned is the context's, if it is canceled
// before every document is rendered.
func (r *Renderer) RenderN(
	ctx context.Context,
	src string,
	n int,
) ([]Result, error) {
	return r.ExecuteN(ctx, r.Compile(ctx, src), n)
}

// ExecuteN renders the compiled template as documents 0 through n-1.
// See [Renderer.RenderN].
func (r *Renderer) ExecuteN(
	ctx context.Context,
	tmpl *lang.Template,
	n int,
) ([]Result, error) {
	if n <= 0 {
		return nil, nil
	}

	results := make([]Result, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.parallel)

	for i := range n {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return context.Cause(gctx)
			}

			results[i] = r.Execute(gctx, tmpl, i)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// Execute renders the compiled template as document index.
func (r *Renderer) Execute(
	ctx context.Context,
	tmpl *lang.Template,
	index int,
) Result {
	seed := DeriveSeed(r.seed, index)
	src := gen.NewSource(gen.NewRand(seed), r.data)
	cache := entity.NewCollection(src)

	res := Result{Index: index, Seed: seed}

	var sb strings.Builder

	sb.Grow(len(tmpl.Source))

	prev := 0

	for n := range tmpl.All() {
		sb.WriteString(tmpl.Source[prev:n.Span.Start])
		prev = n.Span.End

		if n.Failed() {
			sb.WriteString(n.Span.Text)

			res.Diagnostics = append(res.Diagnostics,
				newDiagnostic(n.Span, SeverityError, n.Err))

			continue
		}

		if n.Descriptor.Warn != nil {
			res.Diagnostics = append(res.Diagnostics,
				newDiagnostic(n.Span, SeverityWarning, n.Descriptor.Warn))
		}

		sb.WriteString(cache.Get(n.Descriptor))
	}

	sb.WriteString(tmpl.Source[prev:])

	res.Output = sb.String()

	r.logger.TraceContext(ctx, "render complete",
		slog.Int("index", index),
		slog.Uint64("seed", seed),
		slog.Int("placeholders", len(tmpl.Nodes)),
		slog.Int("entities", cache.Len()),
		slog.Int("diagnostics", len(res.Diagnostics)),
	)

	return res
}

// DeriveSeed returns the seed of document index under the base seed.
func DeriveSeed(base uint64, index int) uint64 {
	var buf [16]byte

	binary.LittleEndian.PutUint64(buf[:8], base)
	binary.LittleEndian.PutUint64(buf[8:], uint64(index))

	return xxh3.Hash(buf[:])
}
