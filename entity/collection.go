package entity

import (
	"iter"
	"maps"
	"slices"

	"github.com/ardnew/tmplgen/gen"
	"github.com/ardnew/tmplgen/lang"
)

// Collection maps entity ids to their entities for one rendered document.
// A Collection is not safe for concurrent use and must not be shared
// between documents.
type Collection struct {
	src      *gen.Source
	entities map[string]*Entity
}

// NewCollection returns an empty collection generating values with src.
func NewCollection(src *gen.Source) *Collection {
	return &Collection{
		src:      src,
		entities: make(map[string]*Entity),
	}
}

// Get returns the value for the resolved placeholder d.
//
// A placeholder without an entity id is generated fresh on every call and
// never cached. Otherwise the first reference to a given id and canonical
// key generates the value and every later reference returns it unchanged.
func (c *Collection) Get(d lang.Descriptor) string {
	if d.ID == "" {
		return c.src.Generate(d.Kind, d.Args)
	}

	return c.entity(d.ID).get(c.src, d)
}

func (c *Collection) entity(id string) *Entity {
	e, ok := c.entities[id]
	if !ok {
		e = newEntity(id)
		c.entities[id] = e
	}

	return e
}

// Entity returns the entity for id, if it has been referenced.
func (c *Collection) Entity(id string) (*Entity, bool) {
	e, ok := c.entities[id]

	return e, ok
}

// Len returns the number of entities referenced so far.
func (c *Collection) Len() int { return len(c.entities) }

// IDs returns the referenced entity ids in sorted order.
func (c *Collection) IDs() iter.Seq[string] {
	return slices.Values(slices.Sorted(maps.Keys(c.entities)))
}
