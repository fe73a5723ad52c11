package lang

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/tmplgen/log"
)

func TestCompile(t *testing.T) {
	src := "Hi ${<a>name::first} ${bogus} ${int:9,1} ${int:1} ${guid"

	tmpl := Compile(context.Background(), src, WithCache(false))

	if len(tmpl.Nodes) != 4 {
		t.Fatalf("expected 4 nodes, got %d", len(tmpl.Nodes))
	}

	checks := []struct {
		kind Kind
		err  error
		warn error
	}{
		{kind: KindNameFirst},
		{err: ErrUnknownType},
		{kind: KindInt, warn: ErrBounds},
		{err: ErrArgs},
	}

	for i, c := range checks {
		n := tmpl.Nodes[i]

		switch {
		case c.err != nil:
			if !errors.Is(n.Err, c.err) {
				t.Errorf("node %d: expected %v, got %v", i, c.err, n.Err)
			}
		case n.Err != nil:
			t.Errorf("node %d: unexpected error %v", i, n.Err)
		case n.Descriptor.Kind != c.kind:
			t.Errorf("node %d: expected kind %v, got %v", i, c.kind, n.Descriptor.Kind)
		}

		if c.warn != nil && !errors.Is(n.Descriptor.Warn, c.warn) {
			t.Errorf("node %d: expected warning %v, got %v", i, c.warn, n.Descriptor.Warn)
		}
	}

	if got := len(tmpl.Errors()); got != 2 {
		t.Errorf("expected 2 failed nodes, got %d", got)
	}
}

func TestCompile_Strict(t *testing.T) {
	tmpl := Compile(context.Background(), "${int:9,1}",
		WithBounds(BoundsStrict), WithCache(false))

	if len(tmpl.Nodes) != 1 || !errors.Is(tmpl.Nodes[0].Err, ErrArgs) {
		t.Errorf("expected a single ErrArgs node, got %+v", tmpl.Nodes)
	}
}

func TestCompile_Cache(t *testing.T) {
	ClearCache()
	defer ClearCache()

	ctx := context.Background()
	src := "${<x>name::full} lives at ${<x>location::address}"

	first := Compile(ctx, src)
	second := Compile(ctx, src)

	if first != second {
		t.Errorf("expected cached template to be reused")
	}

	strict := Compile(ctx, src, WithBounds(BoundsStrict))
	if strict == first {
		t.Errorf("expected different bounds policy to bypass cached entry")
	}

	uncached := Compile(ctx, src, WithCache(false))
	if uncached == first {
		t.Errorf("expected uncached compile to build a new template")
	}

	ClearCache()

	if third := Compile(ctx, src); third == first {
		t.Errorf("expected cleared cache to build a new template")
	}
}

func TestCompileReader(t *testing.T) {
	src := strings.Repeat("${int:0,10} ", 1000)

	tmpl, err := CompileReader(context.Background(), strings.NewReader(src))
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}

	if tmpl.Source != src {
		t.Errorf("expected source to round-trip through reader")
	}

	if len(tmpl.Nodes) != 1000 {
		t.Errorf("expected 1000 nodes, got %d", len(tmpl.Nodes))
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("boom")
}

func TestCompileReader_Error(t *testing.T) {
	_, err := CompileReader(context.Background(), failingReader{})
	if !errors.Is(err, ErrReadInput) {
		t.Errorf("expected ErrReadInput, got %v", err)
	}
}

func TestCompile_CacheLookupRecords(t *testing.T) {
	var buf bytes.Buffer

	logger := log.Make(&buf,
		log.WithFormat(log.FormatText),
		log.WithPretty(false),
		log.WithLevel(log.LevelTrace),
		log.WithTimeLayout("none"),
	)

	src := "cache lookup ${int:1,3} ${guid}"
	ctx := context.Background()

	first := Compile(ctx, src, WithLogger(logger))
	second := Compile(ctx, src, WithLogger(logger))

	if first != second {
		t.Error("expected the cached template to be reused")
	}

	var hits []string

	for line := range strings.Lines(buf.String()) {
		if !strings.Contains(line, `msg="cache lookup"`) {
			continue
		}

		if !strings.Contains(line, "component=lang") {
			t.Errorf("expected component=lang, got: %s", line)
		}

		_, hit, _ := strings.Cut(line, "cache_hit=")
		hits = append(hits, strings.TrimSpace(hit))
	}

	if diff := cmp.Diff([]string{"false", "true"}, hits); diff != "" {
		t.Errorf("cache hits mismatch (-want +got):\n%s", diff)
	}

	if n := strings.Count(buf.String(), `msg="compile complete"`); n != 1 {
		t.Errorf("expected a single compilation, got %d", n)
	}
}
