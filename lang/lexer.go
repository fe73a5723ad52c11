package lang

import (
	"iter"
	"unicode/utf8"
)

// Position identifies a location in template source.
// Line and Column are 1-based; Column counts runes.
type Position struct {
	Offset int `json:"offset" yaml:"offset"`
	Line   int `json:"line"   yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

// Span is one placeholder occurrence found by the lexer.
//
// Start and End are byte offsets of the full "${...}" text in the source,
// so source[Start:End] == Text.
type Span struct {
	Pos   Position `json:"pos"          yaml:"pos"`
	Start int      `json:"start"        yaml:"start"`
	End   int      `json:"end"          yaml:"end"`
	ID    string   `json:"id,omitempty" yaml:"id,omitempty"`
	Body  string   `json:"body"         yaml:"body"`
	Text  string   `json:"text"         yaml:"text"`
}

// Scan returns an iterator over every placeholder occurrence in src, left to
// right and non-overlapping.
//
// A placeholder starts at "${", may carry an entity id of the form "<id>"
// with id made of ASCII letters and digits, and extends to the first "}".
// The body is not validated here; it may contain newlines or even another
// "${". A "${" with no later "}" is ordinary text, and since no later
// placeholder could be closed either, scanning stops there.
func Scan(src string) iter.Seq[Span] {
	return func(yield func(Span) bool) {
		l := lexer{input: src, line: 1, col: 1}

		for {
			span, ok := l.next()
			if !ok || !yield(span) {
				return
			}
		}
	}
}

// lexer holds the scanning state.
type lexer struct {
	input string
	pos   int
	line  int
	col   int
}

// next advances to and returns the next placeholder.
func (l *lexer) next() (Span, bool) {
	for !l.eof() {
		if l.peekN(2) != "${" {
			l.advance()

			continue
		}

		start := l.position()

		end, ok := closing(l.input, start.Offset+2)
		if !ok {
			l.pos = len(l.input)

			return Span{}, false
		}

		open := start.Offset + 2
		id, body := splitID(l.input[open:end])

		span := Span{
			Pos:   start,
			Start: start.Offset,
			End:   end + 1,
			ID:    id,
			Body:  body,
			Text:  l.input[start.Offset : end+1],
		}

		for l.pos < span.End {
			l.advance()
		}

		return span, true
	}

	return Span{}, false
}

// closing returns the offset of the first '}' at or after from.
func closing(s string, from int) (int, bool) {
	for i := from; i < len(s); i++ {
		if s[i] == '}' {
			return i, true
		}
	}

	return 0, false
}

// splitID separates a leading "<id>" from the placeholder content.
// Content that does not begin with a well-formed id is returned whole as
// the body.
func splitID(content string) (id, body string) {
	if len(content) < 3 || content[0] != '<' {
		return "", content
	}

	i := 1
	for i < len(content) && isIDChar(content[i]) {
		i++
	}

	if i == 1 || i >= len(content) || content[i] != '>' {
		return "", content
	}

	return content[1:i], content[i+1:]
}

func (l *lexer) peekN(n int) string {
	if l.pos+n > len(l.input) {
		return l.input[l.pos:]
	}

	return l.input[l.pos : l.pos+n]
}

func (l *lexer) advance() {
	if l.eof() {
		return
	}

	r, size := utf8.DecodeRuneInString(l.input[l.pos:])

	l.pos += size
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
}

func (l *lexer) eof() bool {
	return l.pos >= len(l.input)
}

func (l *lexer) position() Position {
	return Position{
		Offset: l.pos,
		Line:   l.line,
		Column: l.col,
	}
}

// Character classification

func isIDChar(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}

func isIdentChar(c byte) bool {
	return isIDChar(c) || c == '_'
}
