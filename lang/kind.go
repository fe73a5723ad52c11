package lang

import (
	"iter"
	"log/slog"
	"strings"
)

// Kind identifies a placeholder type.
type Kind uint8

// Placeholder kinds.
const (
	KindInvalid Kind = iota
	KindNameFirst
	KindNameLast
	KindNameFull
	KindLocationPlace
	KindLocationStreet
	KindLocationAddress
	KindPhone
	KindPhoneMobile
	KindPhoneLandline
	KindDistNormal
	KindGUID
	KindFloat
	KindInt
	KindSet
	kindCount
)

// Signature describes the argument grammar accepted by a [Kind].
type Signature uint8

// Argument signatures.
const (
	SigNone Signature = iota
	SigIntRange
	SigFloatRange
	SigNormal
	SigSet
)

// String returns the argument syntax, e.g. "min,max".
func (s Signature) String() string {
	switch s {
	case SigIntRange, SigFloatRange:
		return "min,max"
	case SigNormal:
		return "mean,stddev"
	case SigSet:
		return "a,b,..."
	default:
		return ""
	}
}

type kindInfo struct {
	path    string
	sig     Signature
	example string
	help    string
}

var kindTable = [kindCount]kindInfo{
	KindNameFirst:       {"name::first", SigNone, "${<p>name::first}", "given name"},
	KindNameLast:        {"name::last", SigNone, "${<p>name::last}", "family name"},
	KindNameFull:        {"name::full", SigNone, "${<p>name::full}", "given, optional middle, and family name"},
	KindLocationPlace:   {"location::place", SigNone, "${location::place}", "suburb or town"},
	KindLocationStreet:  {"location::street", SigNone, "${location::street}", "street name and type"},
	KindLocationAddress: {"location::address", SigNone, "${<h>location::address}", "street address with place"},
	KindPhone:           {"phone", SigNone, "${phone}", "mobile or landline number"},
	KindPhoneMobile:     {"phone::mobile", SigNone, "${phone::mobile}", "mobile number"},
	KindPhoneLandline:   {"phone::landline", SigNone, "${phone::landline}", "landline number"},
	KindDistNormal:      {"dist::normal", SigNormal, "${dist::normal:50,10}", "normally distributed number"},
	KindGUID:            {"guid", SigNone, "${guid}", "random version 4 UUID"},
	KindFloat:           {"float", SigFloatRange, "${float:0,1}", "uniform decimal in [min, max)"},
	KindInt:             {"int", SigIntRange, "${int:1,100}", "uniform integer in [min, max)"},
	KindSet:             {"set", SigSet, "${set:red,green,blue}", "one of the listed options"},
}

var kindByPath = func() map[string]Kind {
	m := make(map[string]Kind, kindCount)
	for k := range Kinds() {
		m[k.Path()] = k
	}

	return m
}()

// Kinds returns an iterator over every valid kind in declaration order.
func Kinds() iter.Seq[Kind] {
	return func(yield func(Kind) bool) {
		for k := KindInvalid + 1; k < kindCount; k++ {
			if !yield(k) {
				return
			}
		}
	}
}

// Paths returns the type path of every valid kind.
func Paths() []string {
	paths := make([]string, 0, kindCount-1)
	for k := range Kinds() {
		paths = append(paths, k.Path())
	}

	return paths
}

// LookupKind returns the kind registered for the exact type path.
func LookupKind(path string) (Kind, bool) {
	k, ok := kindByPath[path]

	return k, ok
}

// Valid reports whether k is a registered kind.
func (k Kind) Valid() bool { return k > KindInvalid && k < kindCount }

// Path returns the canonical type path of k.
func (k Kind) Path() string {
	if !k.Valid() {
		return ""
	}

	return kindTable[k].path
}

// Class returns the top-level family of k, e.g. "phone" for
// [KindPhoneMobile].
func (k Kind) Class() string {
	class, _, _ := strings.Cut(k.Path(), "::")

	return class
}

// Signature returns the argument grammar of k.
func (k Kind) Signature() Signature {
	if !k.Valid() {
		return SigNone
	}

	return kindTable[k].sig
}

// Example returns a sample placeholder using k.
func (k Kind) Example() string {
	if !k.Valid() {
		return ""
	}

	return kindTable[k].example
}

// Help returns a short description of the values k produces.
func (k Kind) Help() string {
	if !k.Valid() {
		return ""
	}

	return kindTable[k].help
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if !k.Valid() {
		return "invalid"
	}

	return k.Path()
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	kind, ok := LookupKind(string(text))
	if !ok {
		return ErrUnknownType.With(slog.String("type", string(text)))
	}

	*k = kind

	return nil
}

// Usage returns the full placeholder form of k, e.g. "int:min,max".
func (k Kind) Usage() string {
	if sig := k.Signature(); sig != SigNone {
		return k.Path() + ":" + sig.String()
	}

	return k.Path()
}
