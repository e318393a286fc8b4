package parser

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"

	"github.com/alexhholmes/evgen/internal/analyzer"
	"github.com/alexhholmes/evgen/internal/schema"
)

// File is one parsed schema file
type File struct {
	Package string
	Endian  string
	Aliases map[string]string // alias → underlying element type
	Schemas []*schema.Schema  // declaration order
}

// AliasNames returns the alias names in sorted order
func (f *File) AliasNames() []string {
	names := maps.Keys(f.Aliases)
	slices.Sort(names)
	return names
}

// ValueError is a malformed document node
type ValueError struct {
	Node *yaml.Node
	Err  error
}

func (v ValueError) Unwrap() error { return v.Err }

func (v ValueError) Error() string {
	return fmt.Sprintf("line %d: %s", v.Node.Line, v.Err)
}

func valueErrorf(n *yaml.Node, format string, a ...any) ValueError {
	return ValueError{
		Node: n,
		Err:  fmt.Errorf(format, a...),
	}
}

// document:
//
//	package: <go package>
//	endian: little | big | native
//	types:
//	  <alias>: <element type>
//	schemas:
//	  - schema: "Name [: Parent] [endian=...]"
//	    fields:
//	      - <type> <name>[N]
//	      - skip <bytes>
//	      - bitfield <storage>:
//	          - <type> <name>:<bits>
//	          - skip <bits>
//	      - union: [<entry>...]
//	      - struct: [<entry>...]
//	    extra_const: <go code on every view>
//	    extra_mutable: <go code on the value and mutable views>
type document struct {
	Package string            `yaml:"package"`
	Endian  string            `yaml:"endian"`
	Types   map[string]string `yaml:"types"`
	Schemas []schemaEntry     `yaml:"schemas"`
}

type schemaEntry struct {
	Schema       string      `yaml:"schema"`
	Fields       []fieldNode `yaml:"fields"`
	ExtraConst   string      `yaml:"extra_const"`
	ExtraMutable string      `yaml:"extra_mutable"`

	node *yaml.Node
}

func (e *schemaEntry) UnmarshalYAML(value *yaml.Node) error {
	type plain schemaEntry
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*e = schemaEntry(p)
	e.node = value
	return nil
}

// fieldNode keeps a field entry undecoded until every schema name in the
// file is known, since a type may name a schema declared further down
type fieldNode struct {
	node *yaml.Node
}

func (f *fieldNode) UnmarshalYAML(value *yaml.Node) error {
	f.node = value
	return nil
}

// ParseFile parses a YAML schema file
func ParseFile(filename string) (*File, error) {
	r, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	f, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return f, nil
}

// Parse parses a YAML schema document
func Parse(r io.Reader) (*File, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &File{Aliases: map[string]string{}}, nil
		}
		return nil, fmt.Errorf("parse error: %w", err)
	}

	f := &File{
		Package: doc.Package,
		Endian:  doc.Endian,
		Aliases: doc.Types,
	}
	if f.Aliases == nil {
		f.Aliases = map[string]string{}
	}

	b := &builder{aliases: f.Aliases}
	for _, entry := range doc.Schemas {
		s, err := b.schema(entry)
		if err != nil {
			return nil, err
		}
		f.Schemas = append(f.Schemas, s)
	}

	return f, nil
}

// builder turns decoded entries into schema nodes
type builder struct {
	aliases map[string]string
}

// embeds reports whether a declared type refers to another schema rather
// than to an element type
func (b *builder) embeds(typ string) bool {
	if _, ok := b.aliases[typ]; ok {
		return false
	}
	_, err := analyzer.SizeOf(typ)
	return err != nil
}

func (b *builder) schema(e schemaEntry) (*schema.Schema, error) {
	h, err := ParseHeader(e.Schema)
	if err != nil {
		return nil, ValueError{Node: e.node, Err: err}
	}

	s := &schema.Schema{
		Name:   h.Name,
		Parent: h.Parent,
		Endian: h.Endian,
		Extras: schema.Extras{
			Const:   e.ExtraConst,
			Mutable: e.ExtraMutable,
		},
	}
	for _, fn := range e.Fields {
		n, err := b.entry(fn.node)
		if err != nil {
			return nil, fmt.Errorf("schema %s: %w", h.Name, err)
		}
		s.Children = append(s.Children, n)
	}
	return s, nil
}

func (b *builder) entries(n *yaml.Node) ([]schema.Node, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, valueErrorf(n, "expected a list of fields")
	}
	var out []schema.Node
	for _, c := range n.Content {
		child, err := b.entry(c)
		if err != nil {
			return nil, err
		}
		out = append(out, child)
	}
	return out, nil
}

func (b *builder) entry(n *yaml.Node) (schema.Node, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		tag, err := ParseTag(n.Value)
		if err != nil {
			return nil, ValueError{Node: n, Err: err}
		}
		switch tag.Kind {
		case SkipTag:
			return &schema.Skip{Bytes: tag.Bits}, nil
		case BitsTag:
			return nil, valueErrorf(n, "bit width on %q outside a bitfield", tag.Name)
		}
		if b.embeds(tag.Type) {
			return &schema.Embed{Schema: tag.Type, Name: tag.Name, Count: tag.Count}, nil
		}
		return &schema.Field{Type: tag.Type, Name: tag.Name, Count: tag.Count}, nil

	case yaml.MappingNode:
		if len(n.Content) != 2 {
			return nil, valueErrorf(n, "a group entry has exactly one key")
		}
		key, value := n.Content[0], n.Content[1]
		words := strings.Fields(key.Value)
		if len(words) == 0 {
			return nil, valueErrorf(key, "empty group key")
		}

		switch words[0] {
		case "struct", "union":
			if len(words) != 1 {
				return nil, valueErrorf(key, "%s takes no arguments", words[0])
			}
			children, err := b.entries(value)
			if err != nil {
				return nil, err
			}
			if words[0] == "struct" {
				return &schema.Struct{Children: children}, nil
			}
			return &schema.Union{Alternatives: children}, nil

		case "bitfield":
			if len(words) != 2 {
				return nil, valueErrorf(key, "expected \"bitfield <storage type>\"")
			}
			return b.bitfield(words[1], value)

		default:
			return nil, valueErrorf(key, "unknown group %q (expected struct, union or bitfield)", words[0])
		}

	default:
		return nil, valueErrorf(n, "expected a field declaration or a group")
	}
}

func (b *builder) bitfield(storage string, n *yaml.Node) (schema.Node, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, valueErrorf(n, "expected a list of bitfield members")
	}
	bf := &schema.Bitfield{Storage: storage}
	for _, c := range n.Content {
		if c.Kind != yaml.ScalarNode {
			return nil, valueErrorf(c, "bitfield members cannot be groups")
		}
		tag, err := ParseTag(c.Value)
		if err != nil {
			return nil, ValueError{Node: c, Err: err}
		}
		switch tag.Kind {
		case SkipTag:
			bf.Members = append(bf.Members, &schema.BitSkip{Bits: tag.Bits})
		case BitsTag:
			bf.Members = append(bf.Members, &schema.Bits{Type: tag.Type, Name: tag.Name, Width: tag.Bits})
		default:
			return nil, valueErrorf(c, "bitfield member %q needs a bit width", tag.Name)
		}
	}
	return bf, nil
}
