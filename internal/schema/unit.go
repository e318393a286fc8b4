package schema

import (
	"fmt"

	"github.com/mitchellh/copystructure"
)

// Unit is one compilation unit: the set of schemas that may refer to each
// other by name. Schemas must be defined after everything they reference,
// which keeps the unit acyclic by construction.
type Unit struct {
	schemas map[string]*Schema
	order   []string
}

// NewUnit returns an empty compilation unit.
func NewUnit() *Unit {
	return &Unit{schemas: make(map[string]*Schema)}
}

// Define validates s against the schemas already in the unit and adds a
// private copy of it. The caller may reuse s afterwards.
func (u *Unit) Define(s *Schema) error {
	if s == nil {
		return NewError(KindInvalid).Detail("schema is nil").Build()
	}
	if s.Name == "" {
		return NewError(KindInvalid).Detail("schema has no name").Build()
	}
	if _, ok := u.schemas[s.Name]; ok {
		return NewError(KindDuplicateSchema).Schema(s.Name).
			Detail("schema %q is already defined", s.Name).Build()
	}

	if s.Parent == s.Name {
		return NewError(KindCycle).Schema(s.Name).
			Detail("schema inherits from itself").Build()
	}
	if s.Parent != "" {
		if _, ok := u.schemas[s.Parent]; !ok {
			return Unresolved(s.Name, []string{"parent"}, s.Parent)
		}
	}

	var err error
	Walk(s.Children, func(n Node) bool {
		if err != nil {
			return false
		}
		e, ok := n.(*Embed)
		if !ok {
			return true
		}
		switch {
		case e.Schema == s.Name:
			err = NewError(KindCycle).Schema(s.Name).Path(e.Name).
				Detail("schema embeds itself").Build()
		case u.schemas[e.Schema] == nil:
			err = UnresolvedType(s.Name, []string{e.Name}, e.Schema)
		}
		return true
	})
	if err != nil {
		return err
	}

	c, err := copystructure.Copy(s)
	if err != nil {
		return NewError(KindInvalid).Schema(s.Name).Cause(err).Detail("cannot snapshot schema").Build()
	}
	cp, ok := c.(*Schema)
	if !ok {
		return fmt.Errorf("schema snapshot: unexpected type %T", c)
	}

	u.schemas[cp.Name] = cp
	u.order = append(u.order, cp.Name)
	return nil
}

// DefineAll orders schemas by dependency and defines each in turn.
func (u *Unit) DefineAll(schemas []*Schema) error {
	ordered, err := Order(schemas, u.Has)
	if err != nil {
		return err
	}
	for _, s := range ordered {
		if err := u.Define(s); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns the defined schema with the given name.
func (u *Unit) Lookup(name string) (*Schema, bool) {
	s, ok := u.schemas[name]
	return s, ok
}

// Has reports whether name is defined.
func (u *Unit) Has(name string) bool {
	_, ok := u.schemas[name]
	return ok
}

// Schemas returns every schema in definition order.
func (u *Unit) Schemas() []*Schema {
	out := make([]*Schema, 0, len(u.order))
	for _, name := range u.order {
		out = append(out, u.schemas[name])
	}
	return out
}

// Len returns the number of defined schemas.
func (u *Unit) Len() int {
	return len(u.order)
}
