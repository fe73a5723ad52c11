package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/google/go-cmp/cmp"
)

func TestResolve_Flatten(t *testing.T) {
	src := `
log:
  level: debug
  time_layout: none
count: 5
ratio: 0.25
strict: true
tags: [a, 1]
`

	res, err := resolve(context.Background())(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}

	want := config{
		"log-level":       "debug",
		"log-time-layout": "none",
		"count":           "5",
		"ratio":           "0.25",
		"strict":          true,
		"tags":            []any{"a", "1"},
	}

	if diff := cmp.Diff(want, res); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_InvalidIgnored(t *testing.T) {
	res, err := resolve(context.Background())(strings.NewReader("a: [b"))
	if err != nil {
		t.Fatalf("expected invalid config to be ignored, got %v", err)
	}

	if diff := cmp.Diff(config{}, res); diff != "" {
		t.Errorf("expected empty config (-want +got):\n%s", diff)
	}
}

func TestResolve_Kong(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseConfig)

	err := os.WriteFile(path, []byte("log:\n  level: warn\ncount: 4\nname: file\n"), 0o600)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		args  []string
		level string
		count int
		label string
	}{
		{"from_file", nil, "warn", 4, "file"},
		{"flag_overrides", []string{"--count=9", "--log-level=error"}, "error", 9, "file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cli struct {
				Log struct {
					Level string `default:"info"`
				} `embed:"" prefix:"log-"`
				Count int    `default:"1"`
				Name  string `default:"none"`
			}

			parser, err := kong.New(&cli,
				kong.Configuration(resolve(context.Background()), path))
			if err != nil {
				t.Fatal(err)
			}

			if _, err := parser.Parse(tt.args); err != nil {
				t.Fatal(err)
			}

			if cli.Log.Level != tt.level || cli.Count != tt.count || cli.Name != tt.label {
				t.Errorf("expected %s/%d/%s, got %s/%d/%s",
					tt.level, tt.count, tt.label, cli.Log.Level, cli.Count, cli.Name)
			}
		})
	}
}
