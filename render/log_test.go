package render

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/tmplgen/log"
)

// records decodes the JSON records in buf, keeping only keys.
func records(t *testing.T, buf *bytes.Buffer, keys ...string) []map[string]any {
	t.Helper()

	var out []map[string]any

	for line := range strings.Lines(buf.String()) {
		var rec map[string]any
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Fatalf("invalid record %q: %v", line, err)
		}

		kept := map[string]any{}

		for _, k := range keys {
			if v, ok := rec[k]; ok {
				kept[k] = v
			}
		}

		out = append(out, kept)
	}

	return out
}

func jsonLogger(buf *bytes.Buffer, level log.Level) log.Logger {
	return log.Make(buf,
		log.WithPretty(false),
		log.WithLevel(level),
		log.WithTimeLayout("none"),
	)
}

func TestRender_TraceRecords(t *testing.T) {
	var buf bytes.Buffer

	r := New(WithSeed(3), WithCache(false), WithLogger(jsonLogger(&buf, log.LevelTrace)))
	r.Render(context.Background(), "x\n  ${name::frst} ${int:1,5}")

	got := records(t, &buf,
		"level", "component", "msg", "text", "pos",
		"placeholders", "bounds", "index", "diagnostics",
	)

	want := []map[string]any{
		{
			"level":     "TRACE",
			"component": "lang",
			"msg":       "placeholder rejected",
			"text":      "${name::frst}",
			"pos":       "2:3",
		},
		{
			"level":        "TRACE",
			"component":    "lang",
			"msg":          "compile complete",
			"placeholders": float64(2),
			"bounds":       "lenient",
		},
		{
			"level":        "TRACE",
			"component":    "render",
			"msg":          "render complete",
			"index":        float64(0),
			"placeholders": float64(2),
			"diagnostics":  float64(1),
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_QuietAboveTrace(t *testing.T) {
	var buf bytes.Buffer

	r := New(WithSeed(3), WithCache(false), WithLogger(jsonLogger(&buf, log.LevelInfo)))
	r.Render(context.Background(), "${bogus} ${int:1,5}")

	if buf.Len() != 0 {
		t.Errorf("expected no records at info level, got: %s", buf.String())
	}
}

func TestCheck_DiagnosticRecord(t *testing.T) {
	var buf bytes.Buffer

	r := New(WithCache(false), WithLogger(jsonLogger(&buf, log.LevelDebug)))
	diags := r.Validate(context.Background(), "x\n  ${name::frst}")

	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}

	got := records(t, &buf, "component", "msg", "diagnostic", "diagnostics")
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d: %s", len(got), buf.String())
	}

	// The placeholder error logs as its own group of attributes.
	if diag, ok := got[0]["diagnostic"].(map[string]any); ok {
		if _, ok := diag["error"].(map[string]any); !ok {
			t.Errorf("expected a structured error, got %v", diag["error"])
		}

		delete(diag, "error")
	}

	want := []map[string]any{
		{
			"component": "render",
			"msg":       "placeholder diagnostic",
			"diagnostic": map[string]any{
				"severity": "error",
				"code":     "unknown_type",
				"text":     "${name::frst}",
				"pos":      "2:3",
			},
		},
		{
			"component":   "render",
			"msg":         "validate complete",
			"diagnostics": float64(1),
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestDiagnostic_LogValue(t *testing.T) {
	d := New().Validate(context.Background(), "${int:9,1}")[0]

	attrs := d.LogValue().Group()

	got := map[string]string{}
	for _, a := range attrs {
		got[a.Key] = a.Value.String()
	}

	want := map[string]string{
		"severity": "warning",
		"code":     "bounds",
		"text":     "${int:9,1}",
		"pos":      "1:1",
		"error":    d.Err.Error(),
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LogValue mismatch (-want +got):\n%s", diff)
	}
}
