package lang

import (
	"log/slog"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Bounds selects how inverted numeric ranges (min > max) are treated.
type Bounds uint8

const (
	// BoundsLenient accepts inverted ranges and reports them as warnings.
	// Values are still drawn from min + (max-min)*u.
	BoundsLenient Bounds = iota
	// BoundsStrict rejects inverted ranges with [ErrArgs].
	BoundsStrict
)

// String implements fmt.Stringer.
func (b Bounds) String() string {
	if b == BoundsStrict {
		return "strict"
	}

	return "lenient"
}

// maxSuggestions limits the "did you mean" candidates of unknown types.
const maxSuggestions = 3

// Descriptor is a fully resolved placeholder: its parsed form, the kind its
// type path names, and its validated arguments.
type Descriptor struct {
	Placeholder

	Kind Kind `json:"kind" yaml:"kind"`
	Args Args `json:"args,omitempty" yaml:"args,omitempty"`

	// Warn is a non-fatal issue found during resolution, such as an
	// inverted range accepted under [BoundsLenient].
	Warn error `json:"-" yaml:"-"`
}

// Resolve maps a parsed placeholder to its kind and validates its
// arguments under the given bounds policy.
func Resolve(p Placeholder, bounds Bounds) (Descriptor, error) {
	k, ok := LookupKind(p.Path)
	if !ok {
		attrs := []slog.Attr{slog.String("type", p.Path)}
		if s := Suggest(p.Path); len(s) > 0 {
			attrs = append(attrs, slog.Any("suggest", s))
		}

		return Descriptor{}, ErrUnknownType.With(attrs...)
	}

	args, err := ParseArgs(k, p.Args, p.HasArgs)
	if err != nil {
		return Descriptor{}, err
	}

	d := Descriptor{Placeholder: p, Kind: k, Args: args}

	if inverted(args) {
		err := ErrBounds.With(
			slog.String("type", k.Path()),
			slog.String("args", p.Args),
		)

		if bounds == BoundsStrict {
			return Descriptor{}, ErrArgs.Wrap(err).With(
				slog.String("type", k.Path()),
				slog.String("args", p.Args),
				slog.String("reason", "min exceeds max"),
			)
		}

		d.Warn = err
	}

	return d, nil
}

// ResolveSpan parses and resolves a lexer span in one step.
func ResolveSpan(s Span, bounds Bounds) (Descriptor, error) {
	p, err := Parse(s.ID, s.Body)
	if err != nil {
		return Descriptor{}, err
	}

	return Resolve(p, bounds)
}

// Suggest returns up to three registered type paths that fuzzily match path,
// best match first. When nothing matches, paths of the same class are
// offered instead.
func Suggest(path string) []string {
	if path == "" {
		return nil
	}

	paths := Paths()
	out := make([]string, 0, maxSuggestions)

	for _, m := range fuzzy.Find(path, paths) {
		if len(out) == maxSuggestions {
			return out
		}

		out = append(out, m.Str)
	}

	if len(out) > 0 {
		return out
	}

	class, _, _ := strings.Cut(path, "::")

	for k := range Kinds() {
		if len(out) == maxSuggestions {
			break
		}

		if k.Class() == class {
			out = append(out, k.Path())
		}
	}

	if len(out) == 0 {
		return nil
	}

	return out
}

func inverted(a Args) bool {
	switch a := a.(type) {
	case IntArgs:
		return a.Inverted()
	case FloatArgs:
		return a.Inverted()
	default:
		return false
	}
}
