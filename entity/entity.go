// Package entity keeps generated values consistent for placeholders that
// share an entity id within one rendered document.
//
// Each id maps to an [Entity] holding lazily computed field cells (names,
// street, place, phone numbers) and a map of previously generated values
// keyed by canonical placeholder text. Composite values are assembled from
// the field cells, so "${<a>name::full}" always contains "${<a>name::first}".
package entity

import (
	"github.com/ardnew/tmplgen/gen"
	"github.com/ardnew/tmplgen/lang"
)

// cell is a lazily computed value.
type cell[T any] struct {
	value T
	ok    bool
}

// get returns the stored value, computing and storing it on first use.
func (c *cell[T]) get(compute func() T) T {
	if !c.ok {
		c.value = compute()
		c.ok = true
	}

	return c.value
}

// Entity is the bag of values generated for one entity id.
type Entity struct {
	id string

	first, middle, last cell[string]
	number, street      cell[string]
	place               cell[string]
	mobile, landline    cell[string]

	values map[string]string
}

func newEntity(id string) *Entity {
	return &Entity{id: id, values: make(map[string]string)}
}

// ID returns the entity id.
func (e *Entity) ID() string { return e.id }

// Len returns the number of distinct placeholders cached for the entity.
func (e *Entity) Len() int { return len(e.values) }

// Value returns the cached value for a canonical placeholder key.
func (e *Entity) Value(key string) (string, bool) {
	v, ok := e.values[key]

	return v, ok
}

// get returns the value for d, generating it with src on first reference.
func (e *Entity) get(src *gen.Source, d lang.Descriptor) string {
	key := d.Key()
	if v, ok := e.values[key]; ok {
		return v
	}

	v := e.generate(src, d)
	e.values[key] = v

	return v
}

// generate produces a value for d, routing field kinds through the
// entity's cells.
func (e *Entity) generate(src *gen.Source, d lang.Descriptor) string {
	switch d.Kind {
	case lang.KindNameFirst:
		return e.firstName(src)
	case lang.KindNameLast:
		return e.lastName(src)
	case lang.KindNameFull:
		first := e.firstName(src)
		middle := e.middle.get(src.OptionalMiddleName)

		return gen.JoinName(first, middle, e.lastName(src))
	case lang.KindLocationPlace:
		return e.placeName(src)
	case lang.KindLocationStreet:
		return e.streetName(src)
	case lang.KindLocationAddress:
		number := e.number.get(src.StreetNumber)
		street := e.streetName(src)

		return gen.JoinAddress(number, street, e.placeName(src))
	case lang.KindPhoneMobile:
		return e.mobile.get(src.Mobile)
	case lang.KindPhoneLandline:
		return e.landline.get(src.Landline)
	case lang.KindPhone:
		if src.Bool() {
			return e.mobile.get(src.Mobile)
		}

		return e.landline.get(src.Landline)
	default:
		return src.Generate(d.Kind, d.Args)
	}
}

func (e *Entity) firstName(src *gen.Source) string  { return e.first.get(src.FirstName) }
func (e *Entity) lastName(src *gen.Source) string   { return e.last.get(src.LastName) }
func (e *Entity) placeName(src *gen.Source) string  { return e.place.get(src.Place) }
func (e *Entity) streetName(src *gen.Source) string { return e.street.get(src.Street) }
