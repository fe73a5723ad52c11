package lang

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestScan(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Span
	}{
		{
			name:  "no placeholders",
			input: "plain text $ { } $",
			want:  nil,
		},
		{
			name:  "single placeholder",
			input: "a ${int:1,2} b",
			want: []Span{{
				Pos:   Position{Offset: 2, Line: 1, Column: 3},
				Start: 2, End: 12,
				Body: "int:1,2", Text: "${int:1,2}",
			}},
		},
		{
			name:  "entity id",
			input: "${<p1>name::first}",
			want: []Span{{
				Pos:   Position{Offset: 0, Line: 1, Column: 1},
				Start: 0, End: 18,
				ID: "p1", Body: "name::first", Text: "${<p1>name::first}",
			}},
		},
		{
			name:  "malformed id becomes body",
			input: "${<a-b>guid}",
			want: []Span{{
				Pos:   Position{Offset: 0, Line: 1, Column: 1},
				Start: 0, End: 12,
				Body: "<a-b>guid", Text: "${<a-b>guid}",
			}},
		},
		{
			name:  "empty id becomes body",
			input: "${<>guid}",
			want: []Span{{
				Pos:   Position{Offset: 0, Line: 1, Column: 1},
				Start: 0, End: 9,
				Body: "<>guid", Text: "${<>guid}",
			}},
		},
		{
			name:  "empty body",
			input: "${}",
			want: []Span{{
				Pos:   Position{Offset: 0, Line: 1, Column: 1},
				Start: 0, End: 3,
				Text: "${}",
			}},
		},
		{
			name:  "body runs to first brace",
			input: "${a ${int:1,2}}",
			want: []Span{{
				Pos:   Position{Offset: 0, Line: 1, Column: 1},
				Start: 0, End: 14,
				Body: "a ${int:1,2", Text: "${a ${int:1,2}",
			}},
		},
		{
			name:  "body spans lines",
			input: "x\n${gu\nid}",
			want: []Span{{
				Pos:   Position{Offset: 2, Line: 2, Column: 1},
				Start: 2, End: 10,
				Body: "gu\nid", Text: "${gu\nid}",
			}},
		},
		{
			name:  "unterminated stops scanning",
			input: "${guid} ${int:1,2",
			want: []Span{{
				Pos:   Position{Offset: 0, Line: 1, Column: 1},
				Start: 0, End: 7,
				Body: "guid", Text: "${guid}",
			}},
		},
		{
			name:  "columns count runes",
			input: "héllo ${guid}",
			want: []Span{{
				Pos:   Position{Offset: 7, Line: 1, Column: 7},
				Start: 7, End: 14,
				Body: "guid", Text: "${guid}",
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slices.Collect(Scan(tt.input))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Scan(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}

			for _, s := range got {
				if tt.input[s.Start:s.End] != s.Text {
					t.Errorf("span text %q does not match source slice %q",
						s.Text, tt.input[s.Start:s.End])
				}
			}
		})
	}
}

func TestScan_MultipleNonOverlapping(t *testing.T) {
	input := "${<a>name::first} ${<a>name::last}\n${int:0,10}${set:x,y}"

	var texts []string
	for s := range Scan(input) {
		texts = append(texts, s.Text)
	}

	want := []string{
		"${<a>name::first}",
		"${<a>name::last}",
		"${int:0,10}",
		"${set:x,y}",
	}

	if !slices.Equal(texts, want) {
		t.Errorf("expected %q, got %q", want, texts)
	}
}

func TestScan_StopEarly(t *testing.T) {
	count := 0

	for range Scan("${a}${b}${c}") {
		count++

		if count == 2 {
			break
		}
	}

	if count != 2 {
		t.Errorf("expected iteration to stop after 2 spans, got %d", count)
	}
}
