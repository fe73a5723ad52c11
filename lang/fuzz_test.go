package lang

import (
	"errors"
	"strings"
	"testing"
)

// FuzzScan checks that scanning and resolving never panic and that every
// span reproduces its source text.
func FuzzScan(f *testing.F) {
	f.Add("plain")
	f.Add("${guid}")
	f.Add("${<a>name::first} ${<a>name::last}")
	f.Add("${int:1,2")
	f.Add("${a ${b}}")
	f.Add("${<>x}")
	f.Add("${dist::normal:5,-1}")
	f.Add("${set:,,}")
	f.Add("${float:1e309,0}")

	f.Fuzz(func(t *testing.T, input string) {
		prev := 0

		for s := range Scan(input) {
			if s.Start < prev || s.End <= s.Start || s.End > len(input) {
				t.Fatalf("span out of order: %+v (prev end %d)", s, prev)
			}

			if input[s.Start:s.End] != s.Text {
				t.Fatalf("span text %q does not match source", s.Text)
			}

			if !strings.HasPrefix(s.Text, "${") || !strings.HasSuffix(s.Text, "}") {
				t.Fatalf("span text %q is not delimited", s.Text)
			}

			prev = s.End

			d, err := ResolveSpan(s, BoundsStrict)
			if err != nil {
				if !errors.Is(err, ErrSyntax) &&
					!errors.Is(err, ErrUnknownType) &&
					!errors.Is(err, ErrArgs) {
					t.Fatalf("unexpected error class: %v", err)
				}

				continue
			}

			if !d.Kind.Valid() {
				t.Fatalf("resolved invalid kind for %q", s.Text)
			}
		}
	})
}
