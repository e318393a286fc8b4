// Package schema holds the in-memory model of a layout declaration: named
// schemas built from scalar fields, padding, bitfields, sequential and
// overlapping groups and embedded schemas. Nodes are plain values produced
// by a front-end and never mutated once defined in a Unit.
package schema

// Node is one element of a schema body.
type Node interface {
	node()
}

// Field is a scalar, or a fixed array of scalars when Count > 0.
type Field struct {
	Type  string
	Name  string
	Count int
}

// Skip is explicit padding. It occupies space but has no accessor.
type Skip struct {
	Bytes int
}

// Bitfield packs its members into one Storage-sized word.
type Bitfield struct {
	Storage string
	Members []BitMember
}

// BitMember is a member of a Bitfield: *Bits or *BitSkip.
type BitMember interface {
	bitMember()
}

// Bits is a named sub-byte member of a bitfield.
type Bits struct {
	Type  string
	Name  string
	Width int
}

// BitSkip advances the bit offset without producing an accessor.
type BitSkip struct {
	Bits int
}

// Struct lays its children out back to back.
type Struct struct {
	Children []Node
}

// Union overlays its alternatives at the same offset. Which alternative
// holds meaningful bytes is up to the caller.
type Union struct {
	Alternatives []Node
}

// Embed places another named schema inline, Count times when Count > 0.
type Embed struct {
	Schema string
	Name   string
	Count  int
}

// Extras are hand-written methods attached to a schema's views.
// Const is emitted on every view, Mutable only on the owning and mutable ones.
type Extras struct {
	Const   string
	Mutable string
}

// Schema is a named top-level layout. When Parent is set the schema's own
// children start right after the parent's storage.
type Schema struct {
	Name     string
	Parent   string
	Endian   string
	Children []Node
	Extras   Extras
}

func (*Field) node()    {}
func (*Skip) node()     {}
func (*Bitfield) node() {}
func (*Struct) node()   {}
func (*Union) node()    {}
func (*Embed) node()    {}

func (*Bits) bitMember()    {}
func (*BitSkip) bitMember() {}

// Walk visits nodes depth first. Group nodes are visited before their
// children; fn returning false skips the children.
func Walk(nodes []Node, fn func(Node) bool) {
	for _, n := range nodes {
		if !fn(n) {
			continue
		}
		switch g := n.(type) {
		case *Struct:
			Walk(g.Children, fn)
		case *Union:
			Walk(g.Alternatives, fn)
		}
	}
}

// References returns the schema names s depends on: its parent, then every
// embedded schema in declaration order. Duplicates are kept.
func (s *Schema) References() []string {
	var refs []string
	if s.Parent != "" {
		refs = append(refs, s.Parent)
	}
	Walk(s.Children, func(n Node) bool {
		if e, ok := n.(*Embed); ok {
			refs = append(refs, e.Schema)
		}
		return true
	})
	return refs
}
