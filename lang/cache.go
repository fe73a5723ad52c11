package lang

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
)

// globalCache stores compiled templates keyed by source and option hash.
var globalCache sync.Map

// state tracks compilation of one cached source.
type state struct {
	once     sync.Once
	template *Template
}

// cacheKey combines the source hash with the options that affect
// compilation.
func cacheKey(src string, cfg config) string {
	h := xxh3.HashStringSeed(src, uint64(cfg.bounds))

	return strconv.FormatUint(h, 36)
}

// CompileReader reads template source from r and compiles it.
func CompileReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (*Template, error) {
	// Wrap reader with async read-ahead so large templates are fetched
	// while earlier chunks are being copied.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	var cfg config

	applyDefaults(&cfg)
	applyOptions(&cfg, opts...)

	cfg.logger.TraceContext(
		ctx,
		"read input",
		slog.Int("source_bytes", len(data)),
		slog.Bool("read_ahead", true),
	)

	return Compile(ctx, string(data), opts...), nil
}

// compileCached compiles src at most once per process for each distinct
// option set.
func compileCached(ctx context.Context, src string, cfg config) *Template {
	key := cacheKey(src, cfg)

	value, cacheHit := globalCache.LoadOrStore(key, new(state))

	entry, ok := value.(*state)
	if !ok {
		return compile(ctx, src, cfg)
	}

	cfg.logger.TraceContext(
		ctx,
		"cache lookup",
		slog.String("key", key),
		slog.Bool("cache_hit", cacheHit),
	)

	entry.once.Do(func() {
		entry.template = compile(ctx, src, cfg)
	})

	// Guard against hash collisions between different sources.
	if entry.template.Source != src {
		return compile(ctx, src, cfg)
	}

	return entry.template
}

// ClearCache removes all cached templates.
// This is primarily useful for testing or when memory needs to be reclaimed.
func ClearCache() {
	globalCache.Clear()
}
