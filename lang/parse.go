package lang

import (
	"log/slog"
	"strings"
)

// Placeholder is the parsed form of a placeholder body.
type Placeholder struct {
	// ID is the entity id, or empty when the placeholder has none.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`
	// Path is the "::"-delimited type path, e.g. "phone::mobile".
	Path string `json:"path" yaml:"path"`
	// Args is the raw argument string following the last single ':'.
	Args string `json:"args,omitempty" yaml:"args,omitempty"`
	// HasArgs distinguishes "name::first:" (empty args) from "name::first".
	HasArgs bool `json:"has_args,omitempty" yaml:"has_args,omitempty"`
}

// String reconstructs the placeholder in template syntax.
func (p Placeholder) String() string {
	var sb strings.Builder

	sb.WriteString("${")

	if p.ID != "" {
		sb.WriteString("<" + p.ID + ">")
	}

	sb.WriteString(p.Key())
	sb.WriteString("}")

	return sb.String()
}

// Key returns the canonical cache key of the placeholder: its type path,
// followed by ":" and the raw arguments when arguments were given.
func (p Placeholder) Key() string {
	if !p.HasArgs {
		return p.Path
	}

	return p.Path + ":" + p.Args
}

// Parse parses a placeholder body belonging to the entity id (which may be
// empty).
//
// The body grammar is anchored at both ends:
//
//	Body  → Path ( ':' Args )?
//	Path  → Ident ( '::' Ident )*
//	Ident → [a-zA-Z0-9_]+
//	Args  → [^:]*
//
// A "::" always separates path segments and is never taken as the start of
// arguments. Anything that does not match, including surrounding whitespace,
// is reported as [ErrSyntax].
func Parse(id, body string) (Placeholder, error) {
	p := &parser{input: body}

	path, ok := p.parsePath()
	if !ok {
		return Placeholder{}, p.fail("type path")
	}

	ph := Placeholder{ID: id, Path: path}

	if p.eof() {
		return ph, nil
	}

	if p.input[p.pos] != ':' {
		return Placeholder{}, p.fail("':' or end of placeholder")
	}

	args := p.input[p.pos+1:]
	if i := strings.IndexByte(args, ':'); i >= 0 {
		p.pos += 1 + i

		return Placeholder{}, p.fail("end of arguments")
	}

	ph.Args = args
	ph.HasArgs = true

	return ph, nil
}

// parser holds the parser state for a single placeholder body.
type parser struct {
	input string
	pos   int
}

// parsePath parses: Ident ( '::' Ident )*.
func (p *parser) parsePath() (string, bool) {
	start := p.pos

	if !p.parseIdent() {
		return "", false
	}

	for p.peekN(2) == "::" && p.pos+2 < len(p.input) &&
		isIdentChar(p.input[p.pos+2]) {
		p.pos += 2
		p.parseIdent()
	}

	return p.input[start:p.pos], true
}

// parseIdent consumes one or more identifier characters.
func (p *parser) parseIdent() bool {
	start := p.pos

	for !p.eof() && isIdentChar(p.input[p.pos]) {
		p.pos++
	}

	return p.pos > start
}

func (p *parser) peekN(n int) string {
	if p.pos+n > len(p.input) {
		return p.input[p.pos:]
	}

	return p.input[p.pos : p.pos+n]
}

func (p *parser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *parser) fail(expected string) error {
	return ErrSyntax.With(
		slog.String("body", p.input),
		slog.Int("offset", p.pos),
		slog.String("expected", expected),
	)
}
