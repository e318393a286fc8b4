package analyzer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/alexhholmes/evgen/internal/schema"
)

// FieldKind is the accessor shape a resolved field gets
type FieldKind int

const (
	ScalarField     FieldKind = iota // single scalar
	ArrayField                       // fixed count of scalars
	BitsField                        // member of a bitfield storage word
	EmbedField                       // embedded schema
	EmbedArrayField                  // fixed count of embedded schemas
)

func (k FieldKind) String() string {
	switch k {
	case ScalarField:
		return "scalar"
	case ArrayField:
		return "array"
	case BitsField:
		return "bits"
	case EmbedField:
		return "embed"
	case EmbedArrayField:
		return "embed-array"
	default:
		return "unknown"
	}
}

// Field is one leaf of a resolved layout
type Field struct {
	Name   string
	Owner  string // schema declaring the field
	Kind   FieldKind
	Type   string // declared element type or embedded schema name
	GoType string // Go type of a scalar or bitfield member
	Offset int    // byte offset from the start of the schema
	Size   int    // bytes covered, the whole storage word for bits
	Count  int    // element count, 0 for single values
	Elem   int    // size of one element

	// Bitfield members only
	Storage   string // Go type of the storage word
	BitOffset int
	BitWidth  int

	Group []string // enclosing struct/union groups, outermost first
}

// End returns the offset one past the field's last byte
func (f Field) End() int {
	return f.Offset + f.Size
}

// Layout is the resolved memory layout of one schema
type Layout struct {
	Name   string
	Schema *schema.Schema
	Parent *Layout
	Base   int // first byte of the schema's own storage, the parent's size
	Size   int
	Fields []Field // own fields in declaration order

	all []Field
}

// All returns inherited fields followed by the schema's own fields
func (l *Layout) All() []Field {
	return l.all
}

// Field looks up a field by name, including inherited fields
func (l *Layout) Field(name string) (Field, bool) {
	for _, f := range l.all {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Chain returns the layout and its ancestors, root first
func (l *Layout) Chain() []*Layout {
	var chain []*Layout
	for p := l; p != nil; p = p.Parent {
		chain = append([]*Layout{p}, chain...)
	}
	return chain
}

// Analyzer resolves every schema of a unit once and keeps the results,
// so parent and embedded layouts are looked up rather than recomputed
type Analyzer struct {
	unit     *schema.Unit
	registry *TypeRegistry
	layouts  map[string]*Layout
}

// New creates an analyzer over unit. A nil registry gets a fresh one.
func New(unit *schema.Unit, registry *TypeRegistry) *Analyzer {
	if registry == nil {
		registry = NewTypeRegistry()
	}
	return &Analyzer{
		unit:     unit,
		registry: registry,
		layouts:  make(map[string]*Layout),
	}
}

// Registry returns the type registry used for element types
func (a *Analyzer) Registry() *TypeRegistry {
	return a.registry
}

// Unit returns the analyzed compilation unit
func (a *Analyzer) Unit() *schema.Unit {
	return a.unit
}

// Layouts resolves every schema in definition order
func (a *Analyzer) Layouts() ([]*Layout, error) {
	var out []*Layout
	for _, s := range a.unit.Schemas() {
		l, err := a.Layout(s.Name)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

// Layout resolves a schema by name
func (a *Analyzer) Layout(name string) (*Layout, error) {
	if l, ok := a.layouts[name]; ok {
		return l, nil
	}

	s, ok := a.unit.Lookup(name)
	if !ok {
		return nil, schema.Unresolved("", nil, name)
	}

	l, err := a.resolve(s)
	if err != nil {
		return nil, err
	}

	a.layouts[name] = l
	a.registry.Register(name, l.Size)

	Logger().Debug("resolved layout",
		zap.String("schema", name),
		zap.Int("size", l.Size),
		zap.Int("base", l.Base),
		zap.Int("fields", len(l.Fields)))

	return l, nil
}

// Size returns the size in bytes of a schema
func (a *Analyzer) Size(name string) (int, error) {
	l, err := a.Layout(name)
	if err != nil {
		return 0, err
	}
	return l.Size, nil
}

// NodeSize returns the size in bytes of one node declared in schema owner
func (a *Analyzer) NodeSize(owner string, n schema.Node) (int, error) {
	r := &resolver{a: a, schema: owner}
	return r.node(n, 0, nil)
}

func (a *Analyzer) resolve(s *schema.Schema) (*Layout, error) {
	l := &Layout{Name: s.Name, Schema: s}

	if s.Parent != "" {
		parent, err := a.Layout(s.Parent)
		if err != nil {
			return nil, err
		}
		l.Parent = parent
		l.Base = parent.Size
	}

	r := &resolver{a: a, schema: s.Name}
	end, err := r.seq(s.Children, l.Base, nil)
	if err != nil {
		return nil, err
	}
	l.Size = end
	l.Fields = r.fields

	if l.Parent != nil {
		l.all = append(l.all, l.Parent.all...)
	}
	l.all = append(l.all, l.Fields...)

	if err := validateFields(l); err != nil {
		return nil, err
	}
	return l, nil
}

// validateFields checks that accessor names are unique across inherited
// and own fields and that every field lies inside the schema
func validateFields(l *Layout) error {
	seen := make(map[string]bool, len(l.all))
	for _, f := range l.all {
		if seen[f.Name] {
			return schema.DuplicateField(l.Name, append(append([]string{}, f.Group...), f.Name), f.Name)
		}
		seen[f.Name] = true

		if f.Offset < 0 || f.End() > l.Size {
			return schema.Invalid(l.Name, []string{f.Name},
				"field [%d, %d) exceeds schema size %d", f.Offset, f.End(), l.Size)
		}
	}
	return nil
}

// resolver walks one schema body, threading the base offset through
// nested groups and collecting leaf fields
type resolver struct {
	a      *Analyzer
	schema string
	fields []Field
}

// seq lays nodes out back to back from base and returns the end offset
func (r *resolver) seq(nodes []schema.Node, base int, group []string) (int, error) {
	offset := base
	for i, n := range nodes {
		size, err := r.node(n, offset, childGroup(group, n, i))
		if err != nil {
			return 0, err
		}
		offset += size
	}
	return offset, nil
}

func childGroup(group []string, n schema.Node, i int) []string {
	var name string
	switch n.(type) {
	case *schema.Struct:
		name = fmt.Sprintf("struct%d", i)
	case *schema.Union:
		name = fmt.Sprintf("union%d", i)
	case *schema.Bitfield:
		name = fmt.Sprintf("bitfield%d", i)
	default:
		return group
	}
	return append(append([]string{}, group...), name)
}

// node resolves n at base and returns its size
func (r *resolver) node(n schema.Node, base int, group []string) (int, error) {
	reg := r.a.registry

	switch n := n.(type) {
	case *schema.Field:
		path := append(append([]string{}, group...), n.Name)
		if n.Name == "" {
			return 0, schema.Invalid(r.schema, group, "field of type %s has no name", n.Type)
		}
		if !reg.IsScalar(n.Type) {
			return 0, schema.UnknownType(r.schema, path, n.Type)
		}
		if n.Count < 0 {
			return 0, schema.Invalid(r.schema, path, "negative count %d", n.Count)
		}
		elem, _ := reg.SizeOf(n.Type)
		goType, _ := reg.GoType(n.Type)

		f := Field{
			Name:   n.Name,
			Owner:  r.schema,
			Kind:   ScalarField,
			Type:   n.Type,
			GoType: goType,
			Offset: base,
			Size:   elem,
			Elem:   elem,
			Group:  group,
		}
		if n.Count > 0 {
			f.Kind = ArrayField
			f.Count = n.Count
			f.Size = elem * n.Count
		}
		r.fields = append(r.fields, f)
		return f.Size, nil

	case *schema.Skip:
		if n.Bytes < 0 {
			return 0, schema.Invalid(r.schema, group, "negative skip %d", n.Bytes)
		}
		return n.Bytes, nil

	case *schema.Bitfield:
		slots, err := PackBits(reg, n)
		if err != nil {
			return 0, r.locate(err, group)
		}
		size, _ := reg.SizeOf(n.Storage)
		storage, _ := reg.GoType(n.Storage)
		for _, s := range slots {
			goType, _ := reg.GoType(s.Type)
			r.fields = append(r.fields, Field{
				Name:      s.Name,
				Owner:     r.schema,
				Kind:      BitsField,
				Type:      s.Type,
				GoType:    goType,
				Offset:    base,
				Size:      size,
				Elem:      size,
				Storage:   storage,
				BitOffset: s.Offset,
				BitWidth:  s.Width,
				Group:     group,
			})
		}
		return size, nil

	case *schema.Struct:
		end, err := r.seq(n.Children, base, group)
		if err != nil {
			return 0, err
		}
		return end - base, nil

	case *schema.Union:
		largest := 0
		for i, alt := range n.Alternatives {
			size, err := r.node(alt, base, childGroup(group, alt, i))
			if err != nil {
				return 0, err
			}
			largest = max(largest, size)
		}
		return largest, nil

	case *schema.Embed:
		path := append(append([]string{}, group...), n.Name)
		if n.Name == "" {
			return 0, schema.Invalid(r.schema, group, "embedded %s has no name", n.Schema)
		}
		if n.Count < 0 {
			return 0, schema.Invalid(r.schema, path, "negative count %d", n.Count)
		}
		if n.Schema == r.schema {
			return 0, schema.NewError(schema.KindCycle).Schema(r.schema).Path(path...).
				Detail("schema embeds itself").Build()
		}
		sub, err := r.a.Layout(n.Schema)
		if err != nil {
			return 0, err
		}

		f := Field{
			Name:   n.Name,
			Owner:  r.schema,
			Kind:   EmbedField,
			Type:   n.Schema,
			Offset: base,
			Size:   sub.Size,
			Elem:   sub.Size,
			Group:  group,
		}
		if n.Count > 0 {
			f.Kind = EmbedArrayField
			f.Count = n.Count
			f.Size = sub.Size * n.Count
		}
		r.fields = append(r.fields, f)
		return f.Size, nil

	default:
		return 0, schema.Invalid(r.schema, group, "unexpected node %T", n)
	}
}

// locate attaches the schema name and group path to an error from PackBits
func (r *resolver) locate(err error, group []string) error {
	e, ok := err.(*schema.Error)
	if !ok {
		return err
	}
	located := *e
	located.Schema = r.schema
	located.Path = append(append([]string{}, group...), e.Path...)
	return &located
}
