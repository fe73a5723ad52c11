package lang

import (
	"context"
	"iter"
	"log/slog"

	"github.com/ardnew/tmplgen/log"
)

// Node is one compiled placeholder occurrence of a [Template].
// Exactly one of Err and a valid Descriptor.Kind is set.
type Node struct {
	Span       Span
	Descriptor Descriptor
	Err        error
}

// Failed reports whether the placeholder could not be resolved.
func (n Node) Failed() bool { return n.Err != nil }

// Template is the compiled form of template source: every placeholder
// occurrence, lexed, parsed, and resolved once.
//
// A Template is immutable after compilation and safe for concurrent use.
type Template struct {
	Source string
	Nodes  []Node
	Bounds Bounds
}

// All returns an iterator over the compiled placeholders in source order.
func (t *Template) All() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for _, n := range t.Nodes {
			if !yield(n) {
				return
			}
		}
	}
}

// Errors returns the placeholders that failed to resolve.
func (t *Template) Errors() []Node {
	var failed []Node

	for n := range t.All() {
		if n.Failed() {
			failed = append(failed, n)
		}
	}

	return failed
}

// Option configures compilation.
type Option func(*config)

// config holds compile options.
type config struct {
	bounds Bounds
	cache  bool
	logger log.Logger // structured logger (doesn't affect cache)
}

// WithBounds sets the policy for inverted numeric ranges.
func WithBounds(b Bounds) Option {
	return func(c *config) {
		c.bounds = b
	}
}

// WithCache enables or disables the process-wide compiled template cache.
func WithCache(enable bool) Option {
	return func(c *config) {
		c.cache = enable
	}
}

// WithLogger sets the logger used for trace output. Records carry the
// component name "lang".
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger.For("lang")
	}
}

func applyDefaults(c *config) {
	c.bounds = BoundsLenient
	c.cache = true
}

func applyOptions(c *config, opts ...Option) {
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
}

// Compile lexes, parses, and resolves every placeholder in src.
// Placeholders that fail are kept in the result with their error; Compile
// itself never fails.
func Compile(ctx context.Context, src string, opts ...Option) *Template {
	var cfg config

	applyDefaults(&cfg)
	applyOptions(&cfg, opts...)

	if cfg.cache {
		return compileCached(ctx, src, cfg)
	}

	return compile(ctx, src, cfg)
}

// compile builds a template without consulting the cache.
func compile(ctx context.Context, src string, cfg config) *Template {
	t := &Template{Source: src, Bounds: cfg.bounds}

	for span := range Scan(src) {
		d, err := ResolveSpan(span, cfg.bounds)
		t.Nodes = append(t.Nodes, Node{Span: span, Descriptor: d, Err: err})

		if err != nil {
			cfg.logger.TraceContext(ctx, "placeholder rejected",
				log.Text(span.Text),
				log.Pos(span.Pos.Line, span.Pos.Column),
				log.Err(err),
			)
		}
	}

	cfg.logger.TraceContext(ctx, "compile complete",
		slog.Int("source_bytes", len(src)),
		slog.Int("placeholders", len(t.Nodes)),
		slog.String("bounds", cfg.bounds.String()),
	)

	return t
}
