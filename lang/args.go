package lang

import (
	"log/slog"
	"math"
	"strconv"
	"strings"
)

// Args holds the validated arguments of a placeholder.
// The concrete type is one of [IntArgs], [FloatArgs], [SetArgs], or
// [NormalArgs]; kinds without arguments carry nil.
type Args interface {
	isArgs()
	String() string
}

// IntArgs bounds a uniform integer: Min inclusive, Max exclusive.
type IntArgs struct {
	Min int64 `json:"min" yaml:"min"`
	Max int64 `json:"max" yaml:"max"`
}

// FloatArgs bounds a uniform decimal: Min inclusive, Max exclusive.
type FloatArgs struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// SetArgs lists the options of a set. It always holds at least one option,
// though options themselves may be empty strings.
type SetArgs struct {
	Options []string `json:"options" yaml:"options"`
}

// NormalArgs parameterizes a normal distribution; StdDev is never negative.
type NormalArgs struct {
	Mean   float64 `json:"mean"   yaml:"mean"`
	StdDev float64 `json:"stddev" yaml:"stddev"`
}

func (IntArgs) isArgs()    {}
func (FloatArgs) isArgs()  {}
func (SetArgs) isArgs()    {}
func (NormalArgs) isArgs() {}

func (a IntArgs) String() string {
	return strconv.FormatInt(a.Min, 10) + "," + strconv.FormatInt(a.Max, 10)
}

func (a FloatArgs) String() string {
	return formatFloat(a.Min) + "," + formatFloat(a.Max)
}

func (a SetArgs) String() string { return strings.Join(a.Options, ",") }

func (a NormalArgs) String() string {
	return formatFloat(a.Mean) + "," + formatFloat(a.StdDev)
}

// Inverted reports whether the lower bound exceeds the upper bound.
func (a IntArgs) Inverted() bool { return a.Min > a.Max }

// Inverted reports whether the lower bound exceeds the upper bound.
func (a FloatArgs) Inverted() bool { return a.Min > a.Max }

// ParseArgs validates the raw argument string of a placeholder against the
// grammar of kind k. hasArgs reports whether an argument string was present
// at all, so that "name::first:" is rejected just like "name::first:x".
func ParseArgs(k Kind, raw string, hasArgs bool) (Args, error) {
	sig := k.Signature()

	switch {
	case sig == SigNone && hasArgs:
		return nil, argsError(k, raw, "type takes no arguments")
	case sig == SigNone:
		return nil, nil //nolint:nilnil
	case !hasArgs:
		return nil, argsError(k, raw, "missing arguments "+sig.String())
	}

	switch sig {
	case SigIntRange:
		lo, hi, ok := splitPair(raw)
		if !ok {
			return nil, argsError(k, raw, "expected "+sig.String())
		}

		minv, err := strconv.ParseInt(lo, 10, 64)
		if err != nil {
			return nil, argsError(k, raw, "min is not an integer")
		}

		maxv, err := strconv.ParseInt(hi, 10, 64)
		if err != nil {
			return nil, argsError(k, raw, "max is not an integer")
		}

		return IntArgs{Min: minv, Max: maxv}, nil

	case SigFloatRange:
		lo, hi, ok := splitPair(raw)
		if !ok {
			return nil, argsError(k, raw, "expected "+sig.String())
		}

		minv, ok := parseFinite(lo)
		if !ok {
			return nil, argsError(k, raw, "min is not a finite number")
		}

		maxv, ok := parseFinite(hi)
		if !ok {
			return nil, argsError(k, raw, "max is not a finite number")
		}

		if math.IsInf(maxv-minv, 0) {
			return nil, argsError(k, raw, "range is too wide")
		}

		return FloatArgs{Min: minv, Max: maxv}, nil

	case SigNormal:
		lo, hi, ok := splitPair(raw)
		if !ok {
			return nil, argsError(k, raw, "expected "+sig.String())
		}

		mean, ok := parseFinite(lo)
		if !ok {
			return nil, argsError(k, raw, "mean is not a finite number")
		}

		stddev, ok := parseFinite(hi)
		if !ok {
			return nil, argsError(k, raw, "stddev is not a finite number")
		}

		if stddev < 0 {
			return nil, argsError(k, raw, "stddev must not be negative")
		}

		return NormalArgs{Mean: mean, StdDev: stddev}, nil

	case SigSet:
		if raw == "" {
			return nil, argsError(k, raw, "set requires at least one option")
		}

		return SetArgs{Options: strings.Split(raw, ",")}, nil
	}

	return nil, argsError(k, raw, "unsupported argument signature")
}

// splitPair splits s into exactly two comma-separated tokens.
func splitPair(s string) (string, string, bool) {
	lo, hi, ok := strings.Cut(s, ",")
	if !ok || strings.Contains(hi, ",") {
		return "", "", false
	}

	return lo, hi, true
}

func parseFinite(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}

	return f, true
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func argsError(k Kind, raw, reason string) error {
	return ErrArgs.With(
		slog.String("type", k.Path()),
		slog.String("args", raw),
		slog.String("reason", reason),
	)
}
