package lang

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		id   string
		body string
		want Placeholder
	}{
		{
			name: "bare type",
			body: "guid",
			want: Placeholder{Path: "guid"},
		},
		{
			name: "nested path",
			body: "phone::mobile",
			want: Placeholder{Path: "phone::mobile"},
		},
		{
			name: "with args",
			body: "int:0,10",
			want: Placeholder{Path: "int", Args: "0,10", HasArgs: true},
		},
		{
			name: "nested path with args",
			body: "dist::normal:5,1",
			want: Placeholder{Path: "dist::normal", Args: "5,1", HasArgs: true},
		},
		{
			name: "empty args",
			body: "name::first:",
			want: Placeholder{Path: "name::first", HasArgs: true},
		},
		{
			name: "args may contain spaces and symbols",
			body: "set:a b,c-d,,e",
			want: Placeholder{Path: "set", Args: "a b,c-d,,e", HasArgs: true},
		},
		{
			name: "entity id carried through",
			id:   "x1",
			body: "name::full",
			want: Placeholder{ID: "x1", Path: "name::full"},
		},
		{
			name: "unknown but well-formed path",
			body: "foo_bar::baz9",
			want: Placeholder{Path: "foo_bar::baz9"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.id, tt.body)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestParse_SyntaxErrors(t *testing.T) {
	bodies := []string{
		"",
		" guid",
		"guid ",
		"::guid",
		"name::",
		"a:::b",
		"int:1:2",
		"a:b::c",
		"name-first",
		"<id>guid",
		"a ${int:1,2",
		":1,2",
		"x int:0,10",
	}

	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			_, err := Parse("", body)
			if err == nil {
				t.Fatalf("expected error for body %q", body)
			}

			if !errors.Is(err, ErrSyntax) {
				t.Errorf("expected ErrSyntax, got %v", err)
			}
		})
	}
}

func TestPlaceholder_Key(t *testing.T) {
	tests := []struct {
		p    Placeholder
		key  string
		text string
	}{
		{Placeholder{Path: "guid"}, "guid", "${guid}"},
		{Placeholder{ID: "a", Path: "int", Args: "1,2", HasArgs: true}, "int:1,2", "${<a>int:1,2}"},
		{Placeholder{Path: "set", HasArgs: true}, "set:", "${set:}"},
	}

	for _, tt := range tests {
		if got := tt.p.Key(); got != tt.key {
			t.Errorf("expected key %q, got %q", tt.key, got)
		}

		if got := tt.p.String(); got != tt.text {
			t.Errorf("expected text %q, got %q", tt.text, got)
		}
	}
}
