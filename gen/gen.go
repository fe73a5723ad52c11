package gen

import (
	"fmt"
	"math"
	"strconv"

	"github.com/google/uuid"

	"github.com/ardnew/tmplgen/lang"
)

// Source draws placeholder values from a random stream and a dataset.
// A Source is not safe for concurrent use.
type Source struct {
	*Rand

	data *Dataset
}

// NewSource returns a Source sampling data with the stream of r.
// A nil dataset selects [DefaultDataset].
func NewSource(r *Rand, data *Dataset) *Source {
	if data == nil {
		data = DefaultDataset()
	}

	return &Source{Rand: r, data: data}
}

// Dataset returns the tables s samples from.
func (s *Source) Dataset() *Dataset { return s.data }

// Generate produces a fresh value for the kind with its validated args.
//
// Generate panics if k is not a registered kind or args do not match its
// signature; both indicate a descriptor that bypassed [lang.Resolve].
func (s *Source) Generate(k lang.Kind, args lang.Args) string {
	switch k {
	case lang.KindNameFirst:
		return s.FirstName()
	case lang.KindNameLast:
		return s.LastName()
	case lang.KindNameFull:
		return s.FullName()
	case lang.KindLocationPlace:
		return s.Place()
	case lang.KindLocationStreet:
		return s.Street()
	case lang.KindLocationAddress:
		return s.Address()
	case lang.KindPhone:
		return s.Phone()
	case lang.KindPhoneMobile:
		return s.Mobile()
	case lang.KindPhoneLandline:
		return s.Landline()
	case lang.KindGUID:
		return s.GUID()
	case lang.KindDistNormal:
		return FormatFloat(s.Normal(mustArgs[lang.NormalArgs](k, args)))
	case lang.KindFloat:
		return FormatFloat(s.UniformFloat(mustArgs[lang.FloatArgs](k, args)))
	case lang.KindInt:
		return strconv.FormatInt(s.UniformInt(mustArgs[lang.IntArgs](k, args)), 10)
	case lang.KindSet:
		return s.Choose(mustArgs[lang.SetArgs](k, args))
	}

	panic(fmt.Sprintf("gen: no generator for kind %v", k))
}

func mustArgs[T lang.Args](k lang.Kind, args lang.Args) T {
	a, ok := args.(T)
	if !ok {
		panic(fmt.Sprintf("gen: kind %v given %T arguments", k, args))
	}

	return a
}

// pick returns a uniform element of table.
func (s *Source) pick(table []string) string {
	if len(table) == 0 {
		panic("gen: sampled empty dataset table")
	}

	return table[s.Index(len(table))]
}

// FirstName returns a given name.
func (s *Source) FirstName() string { return s.pick(s.data.FirstNames) }

// MiddleName returns a middle name.
func (s *Source) MiddleName() string { return s.pick(s.data.MiddleNames) }

// LastName returns a family name.
func (s *Source) LastName() string { return s.pick(s.data.LastNames) }

// OptionalMiddleName returns a middle name with probability one half and
// the empty string otherwise.
func (s *Source) OptionalMiddleName() string {
	if s.Bool() {
		return s.MiddleName()
	}

	return ""
}

// FullName returns "first [middle] last".
func (s *Source) FullName() string {
	first := s.FirstName()
	middle := s.OptionalMiddleName()

	return JoinName(first, middle, s.LastName())
}

// JoinName space-joins the name parts, skipping an empty middle name.
func JoinName(first, middle, last string) string {
	if middle == "" {
		return first + " " + last
	}

	return first + " " + middle + " " + last
}

// Place returns a town or suburb.
func (s *Source) Place() string { return s.pick(s.data.Places) }

// Street returns "<name> <type>".
func (s *Source) Street() string {
	name := s.pick(s.data.Streets)

	return name + " " + s.pick(s.data.StreetTypes)
}

// Street number ranges; upper bounds are exclusive.
const (
	unitMin, unitMax   = 1, 50
	houseMin, houseMax = 1, 500
)

// StreetNumber returns "<unit>/<house>" with probability one half and
// "<house>" otherwise.
func (s *Source) StreetNumber() string {
	if s.Bool() {
		unit := s.Int(unitMin, unitMax)
		house := s.Int(houseMin, houseMax)

		return strconv.FormatInt(unit, 10) + "/" + strconv.FormatInt(house, 10)
	}

	return strconv.FormatInt(s.Int(houseMin, houseMax), 10)
}

// Address returns "<street number> <street>, <place>".
func (s *Source) Address() string {
	number := s.StreetNumber()
	street := s.Street()

	return JoinAddress(number, street, s.Place())
}

// JoinAddress formats the address parts.
func JoinAddress(number, street, place string) string {
	return number + " " + street + ", " + place
}

// CountryCode returns a dialing prefix such as "+61".
func (s *Source) CountryCode() string { return s.pick(s.data.CountryCodes) }

// Mobile returns a mobile number, either "(+CC)4NN NNN NNN" or
// "04NN NNN NNN" with equal probability.
func (s *Source) Mobile() string {
	prefix := "0"
	if s.Bool() {
		prefix = "(" + s.CountryCode() + ")"
	}

	return fmt.Sprintf("%s4%02d %03d %03d",
		prefix, s.Int(0, 100), s.Int(0, 1000), s.Int(0, 1000))
}

// Landline returns a landline number, "9NNN NNNN", with a "(+CC) " prefix
// with probability one half.
func (s *Source) Landline() string {
	number := fmt.Sprintf("9%03d %04d", s.Int(0, 1000), s.Int(0, 10000))

	if s.Bool() {
		return "(" + s.CountryCode() + ") " + number
	}

	return number
}

// Phone returns a mobile or landline number with equal probability.
func (s *Source) Phone() string {
	if s.Bool() {
		return s.Mobile()
	}

	return s.Landline()
}

// GUID returns a random version 4 UUID in canonical lower-case form.
func (s *Source) GUID() string {
	id, err := uuid.NewRandomFromReader(s.Rand)
	if err != nil {
		panic(fmt.Sprintf("gen: uuid: %v", err))
	}

	return id.String()
}

// UniformInt returns min + floor((max-min)*u).
func (s *Source) UniformInt(a lang.IntArgs) int64 {
	return s.Int(a.Min, a.Max)
}

// UniformFloat returns min + (max-min)*u floored to six decimals. When
// min < max the result is clamped into [min, max), so bounds finer than six
// decimals may yield min itself.
func (s *Source) UniformFloat(a lang.FloatArgs) float64 {
	v := FloorDecimals(s.Float(a.Min, a.Max))

	if a.Min < a.Max {
		switch {
		case v < a.Min:
			v = a.Min
		case v >= a.Max:
			v = math.Max(a.Min, FloorDecimals(math.Nextafter(a.Max, a.Min)))
		}
	}

	return v
}

// Normal returns mean + stddev*z floored to six decimals.
func (s *Source) Normal(a lang.NormalArgs) float64 {
	return FloorDecimals(a.Mean + a.StdDev*s.NormFloat64())
}

// Choose returns one of the set options.
func (s *Source) Choose(a lang.SetArgs) string {
	return a.Options[s.Index(len(a.Options))]
}

// decimals is the scale applied by FloorDecimals.
const decimals = 1e6

// FloorDecimals rounds v down to six decimal places.
func FloorDecimals(v float64) float64 {
	// Values this large have no fractional part.
	if math.Abs(v) >= 1<<52 {
		return v
	}

	return math.Floor(v*decimals) / decimals
}

// FormatFloat formats v in the shortest decimal form without exponent.
func FormatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if s == "-0" {
		return "0"
	}

	return s
}
