package render

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/tmplgen/lang"
)

func TestRender_SubstitutesEverything(t *testing.T) {
	src := `{"id": "${guid}", "name": "${<a>name::full}", "age": ${int:18,99},
"score": ${float:0,1}, "colour": "${set:red,green}", "z": ${dist::normal:0,1},
"addr": "${<a>location::address}", "phone": "${<a>phone}"}`

	r := New(WithSeed(1))

	for i := range 50 {
		res := r.Execute(context.Background(), r.Compile(context.Background(), src), i)

		if len(res.Diagnostics) != 0 {
			t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
		}

		if strings.Contains(res.Output, "${") {
			t.Fatalf("output still contains a placeholder: %s", res.Output)
		}
	}
}

func TestRender_MalformedPreserved(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code string
	}{
		{"syntax", "a ${int:1:2} b", "syntax"},
		{"whitespace", "a ${ guid} b", "syntax"},
		{"unknown type", "a ${unknown_type} b", "unknown_type"},
		{"missing args", "a ${int} b", "args"},
		{"negative stddev", "a ${dist::normal:5,-1} b", "args"},
		{"arg-less type with args", "a ${<x>guid:1} b", "args"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := New().Render(context.Background(), tt.src)

			if res.Output != tt.src {
				t.Errorf("expected output %q, got %q", tt.src, res.Output)
			}

			if len(res.Diagnostics) != 1 {
				t.Fatalf("expected 1 diagnostic, got %d", len(res.Diagnostics))
			}

			d := res.Diagnostics[0]
			if d.Code != tt.code || d.Severity != SeverityError {
				t.Errorf("expected %s error, got %s %s", tt.code, d.Code, d.Severity)
			}

			if !res.Failed() {
				t.Errorf("expected result to report failure")
			}
		})
	}
}

func TestRender_UnknownTypeError(t *testing.T) {
	res := New().Render(context.Background(), "${unknown_type}")

	if res.Output != "${unknown_type}" {
		t.Errorf("expected literal output, got %q", res.Output)
	}

	if len(res.Diagnostics) != 1 || !errors.Is(res.Diagnostics[0], lang.ErrUnknownType) {
		t.Errorf("expected one ErrUnknownType diagnostic, got %v", res.Diagnostics)
	}
}

func TestRender_NormalNegativeStdDev(t *testing.T) {
	diags := New().Validate(context.Background(), "${dist::normal:5,-1}")

	if len(diags) != 1 || !errors.Is(diags[0], lang.ErrArgs) {
		t.Errorf("expected one ErrArgs diagnostic, got %v", diags)
	}
}

func TestRender_SingleDigit(t *testing.T) {
	r := New()
	re := regexp.MustCompile(`^[0-9]$`)

	for range 200 {
		if got := r.Render(context.Background(), "${int:0,10}").Output; !re.MatchString(got) {
			t.Fatalf("expected a single digit, got %q", got)
		}
	}
}

func TestRender_EntityConsistency(t *testing.T) {
	r := New()

	for range 50 {
		got := r.Render(context.Background(), "${<a>name::first}-${<a>name::first}").Output

		first, second, ok := strings.Cut(got, "-")
		if !ok || first != second {
			t.Fatalf("expected matching names, got %q", got)
		}
	}
}

func TestRender_EntityIsolationAcrossDocuments(t *testing.T) {
	results, err := New(WithSeed(3)).RenderN(context.Background(), "${<a>guid}", 20)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}

	seen := map[string]bool{}
	for _, res := range results {
		seen[res.Output] = true
	}

	if len(seen) != len(results) {
		t.Errorf("expected fresh entity values per document, got %d distinct of %d",
			len(seen), len(results))
	}
}

func TestRender_UncachedIndependent(t *testing.T) {
	got := New().Render(context.Background(), "${guid} ${guid}").Output

	a, b, _ := strings.Cut(got, " ")
	if a == b {
		t.Errorf("expected independent values, got %q twice", a)
	}
}

func TestRender_Bounds(t *testing.T) {
	src := "${int:10,1}"

	lenient := New().Render(context.Background(), src)
	if len(lenient.Diagnostics) != 1 || lenient.Diagnostics[0].Severity != SeverityWarning {
		t.Fatalf("expected one warning, got %v", lenient.Diagnostics)
	}

	if lenient.Failed() {
		t.Errorf("expected warnings not to fail the result")
	}

	v, err := strconv.Atoi(lenient.Output)
	if err != nil || v < 1 || v > 10 {
		t.Errorf("expected value between 1 and 10, got %q", lenient.Output)
	}

	strict := New(WithBounds(lang.BoundsStrict)).Render(context.Background(), src)
	if strict.Output != src || !strict.Failed() {
		t.Errorf("expected strict mode to keep %q, got %q", src, strict.Output)
	}
}

func TestRender_Deterministic(t *testing.T) {
	src := "${<a>name::full} ${guid} ${float:0,100} ${phone}"

	a := New(WithSeed(99)).Render(context.Background(), src)
	b := New(WithSeed(99), WithCache(false)).Render(context.Background(), src)

	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("expected equal results for equal seeds (-a +b):\n%s", diff)
	}

	c := New(WithSeed(100)).Render(context.Background(), src)
	if c.Output == a.Output {
		t.Errorf("expected different seeds to produce different output")
	}
}

func TestRenderN_Reproducible(t *testing.T) {
	src := "${<p>name::full} <${<p>phone::mobile}> ${int:0,1000000}"
	ctx := context.Background()

	serial, err := New(WithSeed(7), WithParallel(1)).RenderN(ctx, src, 32)
	if err != nil {
		t.Fatalf("serial render error: %v", err)
	}

	parallel, err := New(WithSeed(7), WithParallel(8)).RenderN(ctx, src, 32)
	if err != nil {
		t.Fatalf("parallel render error: %v", err)
	}

	if diff := cmp.Diff(serial, parallel); diff != "" {
		t.Errorf("expected scheduling-independent output (-serial +parallel):\n%s", diff)
	}

	single := New(WithSeed(7)).Render(ctx, src)
	if single.Output != serial[0].Output {
		t.Errorf("expected Render to match the first RenderN document")
	}

	for i, res := range serial {
		if res.Index != i || res.Seed != DeriveSeed(7, i) {
			t.Errorf("document %d has index %d and seed %d", i, res.Index, res.Seed)
		}
	}
}

func TestRenderN_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().RenderN(ctx, "${guid}", 10)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRenderN_Empty(t *testing.T) {
	results, err := New().RenderN(context.Background(), "${guid}", 0)
	if err != nil || results != nil {
		t.Errorf("expected no results, got %v, %v", results, err)
	}
}

func TestValidate_AllErrors(t *testing.T) {
	src := "${a b}\n${nope}\n${int:x,1}\n${float:2,1}\n${guid}"

	diags := New().Validate(context.Background(), src)

	got := make([]string, 0, len(diags))
	for _, d := range diags {
		got = append(got, d.Code+"@"+strconv.Itoa(d.Span.Pos.Line))
	}

	want := []string{"syntax@1", "unknown_type@2", "args@3", "bounds@4"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
	}
}

func TestDiagnostic_Error(t *testing.T) {
	diags := New().Validate(context.Background(), "x\n  ${name::frst}")
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}

	got := diags[0].Error()
	want := `2:3: error: unknown placeholder type "name::frst": "${name::frst}" (did you mean name::first?)`

	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestCompileReader_MatchesRender(t *testing.T) {
	src := "${<a>name::first} ${<a>name::full} ${set:x,y}"
	ctx := context.Background()
	r := New(WithSeed(11))

	tmpl, err := r.CompileReader(ctx, strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if diags := r.Check(ctx, tmpl); len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}

	got, err := r.ExecuteN(ctx, tmpl, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want, err := r.RenderN(ctx, src, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("CompileReader output mismatch (-want +got):\n%s", diff)
	}
}
