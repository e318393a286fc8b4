package codegen

import (
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"strconv"
	"strings"
	"text/template"

	"go.uber.org/zap"
	"golang.org/x/exp/slices"

	"github.com/alexhholmes/evgen/ev"
	"github.com/alexhholmes/evgen/internal/analyzer"
	"github.com/alexhholmes/evgen/internal/schema"
)

// Options controls the emitted file
type Options struct {
	Package string
	Runtime string   // import path of the ev runtime package
	Endian  string   // default policy for schemas without their own: little, big or native
	Header  string   // leading comment line, without the comment marker
	Format  bool     // run go/format over the output
	Imports []string // extra imports required by extras
}

// Generator emits Go views for every schema of an analyzed unit
type Generator struct {
	analyzer *analyzer.Analyzer
	opts     Options
}

// NewGenerator creates a new code generator
func NewGenerator(a *analyzer.Analyzer, opts Options) *Generator {
	if opts.Package == "" {
		opts.Package = "wire"
	}
	if opts.Runtime == "" {
		opts.Runtime = "github.com/alexhholmes/evgen/ev"
	}
	if opts.Endian == "" {
		opts.Endian = "little"
	}
	return &Generator{analyzer: a, opts: opts}
}

// GenerateFile returns a complete Go source file with the views of every
// schema in definition order. When formatting fails the unformatted source
// is returned together with the error.
func (g *Generator) GenerateFile() ([]byte, error) {
	layouts, err := g.analyzer.Layouts()
	if err != nil {
		return nil, err
	}

	if err := checkNames(layouts); err != nil {
		return nil, err
	}

	var code strings.Builder
	if g.opts.Header != "" {
		fmt.Fprintf(&code, "// %s\n\n", g.opts.Header)
	}
	fmt.Fprintf(&code, "package %s\n\n", g.opts.Package)
	code.WriteString(g.imports())

	for _, l := range layouts {
		s, err := g.GenerateSchema(l.Name)
		if err != nil {
			return nil, err
		}
		code.WriteString("\n")
		code.WriteString(s)
	}

	src := []byte(code.String())
	if !g.opts.Format {
		return src, nil
	}
	formatted, err := format.Source(src)
	if err != nil {
		return src, fmt.Errorf("format generated source: %w", err)
	}
	return formatted, nil
}

// checkNames rejects schemas whose generated identifiers coincide, such as
// the mutable view of MsgC and the read-only view of Msg
func checkNames(layouts []*analyzer.Layout) error {
	owner := make(map[string]string)
	for _, l := range layouts {
		for _, id := range namesFor(l.Name).idents() {
			if prev, ok := owner[id]; ok && prev != l.Name {
				return schema.NewError(schema.KindDuplicateSchema).Schema(l.Name).
					Detail("generated name %s is also declared for schema %s", id, prev).Build()
			}
			owner[id] = l.Name
		}
	}
	return nil
}

func (g *Generator) imports() string {
	extra := make([]string, 0, len(g.opts.Imports))
	for _, imp := range g.opts.Imports {
		if !strings.Contains(imp, `"`) {
			imp = strconv.Quote(imp)
		}
		extra = append(extra, imp)
	}
	slices.Sort(extra)

	var code strings.Builder
	code.WriteString("import (\n")
	for _, imp := range extra {
		fmt.Fprintf(&code, "\t%s\n", imp)
	}
	if len(extra) > 0 {
		code.WriteString("\n")
	}
	fmt.Fprintf(&code, "\tev %q\n", g.opts.Runtime)
	code.WriteString(")\n")
	return code.String()
}

// accessor is one field accessor method
type accessor struct {
	method string
	field  analyzer.Field
}

// schemaGen holds everything needed to emit the views of one schema
type schemaGen struct {
	layout   *analyzer.Layout
	names    viewNames
	parent   *viewNames
	policy   string
	sizeExpr string
	own      []accessor // declared by this schema
	all      []accessor // inherited then own
	extras   map[string]string
}

// GenerateSchema returns the declarations for one schema without package
// clause or imports
func (g *Generator) GenerateSchema(name string) (string, error) {
	l, err := g.analyzer.Layout(name)
	if err != nil {
		return "", err
	}

	s := &schemaGen{
		layout: l,
		names:  namesFor(name),
	}
	if l.Parent != nil {
		p := namesFor(l.Parent.Name)
		s.parent = &p
	}

	endian := l.Schema.Endian
	if endian == "" {
		endian = g.opts.Endian
	}
	s.policy, err = ev.ParseOrder(endian)
	if err != nil {
		return "", schema.NewError(schema.KindInvalid).Schema(name).Cause(err).
			Detail("unknown byte order %q", endian).Build()
	}

	s.sizeExpr, err = g.analyzer.SizeExpr(name, func(ref string) string { return namesFor(ref).Size })
	if err != nil {
		return "", err
	}

	if err := s.bindAccessors(); err != nil {
		return "", err
	}
	if err := s.renderExtras(); err != nil {
		return "", err
	}

	var code strings.Builder
	s.emitTypes(&code)
	s.emitConstructors(&code)
	s.emitValue(&code)
	s.emitRef(&code)
	s.emitCRef(&code)

	Logger().Debug("generated views",
		zap.String("schema", name),
		zap.String("policy", s.policy),
		zap.Int("accessors", len(s.all)))

	return code.String(), nil
}

// bindAccessors maps every field to a method name and rejects collisions
// with view methods, with the embedded parent views and between fields
func (s *schemaGen) bindAccessors() error {
	l := s.layout
	taken := make(map[string]string)
	for _, anc := range l.Chain()[:len(l.Chain())-1] {
		n := namesFor(anc.Name)
		taken[n.Ref] = "embedded " + n.Ref
		taken[n.CRef] = "embedded " + n.CRef
	}

	inherited := len(l.All()) - len(l.Fields)
	for i, f := range l.All() {
		method, err := Ident(f.Name)
		if err != nil {
			return schema.NewError(schema.KindInvalid).Schema(l.Name).
				Path(append(append([]string{}, f.Group...), f.Name)...).Cause(err).
				Detail("invalid field name").Build()
		}
		if reserved[method] {
			return schema.NewError(schema.KindDuplicateField).Schema(l.Name).Path(f.Name).
				Detail("field %q collides with view method %s", f.Name, method).Build()
		}
		if prev, ok := taken[method]; ok {
			return schema.NewError(schema.KindDuplicateField).Schema(l.Name).Path(f.Name).
				Detail("field %q and %s both map to %s", f.Name, prev, method).Build()
		}
		taken[method] = strconv.Quote(f.Name)

		a := accessor{method: method, field: f}
		s.all = append(s.all, a)
		if i >= inherited {
			s.own = append(s.own, a)
		}
	}
	return nil
}

// extraData is what extras templates see
type extraData struct {
	Type   string // receiver type
	Schema string
	View   string // Value, Ref or CRef
	Size   string // size constant
}

// extraView is one view extras are rendered onto
type extraView struct {
	view    string
	typ     string
	mutable bool
}

// extraMethod is one method declared by rendered extras
type extraMethod struct {
	name string
	text string // including its doc comment
}

// renderExtras executes the extras templates once per view they belong on.
// The value view embeds no ancestor view, so the methods of every ancestor's
// extras are rendered onto it too, nearest ancestor first. A method is
// skipped when the schema or a nearer ancestor already declares its name.
func (s *schemaGen) renderExtras() error {
	n := s.names
	views := []extraView{
		{"Value", fmt.Sprintf("*%s[O]", n.Value), true},
		{"Ref", fmt.Sprintf("%s[O]", n.Ref), true},
		{"CRef", fmt.Sprintf("%s[O]", n.CRef), false},
	}

	s.extras = make(map[string]string, len(views))
	for _, v := range views {
		code, err := renderExtra(s.layout.Schema, v)
		if err != nil {
			return err
		}
		s.extras[v.view] = code
	}
	if s.layout.Parent == nil {
		return nil
	}

	declared := make(map[string]bool)
	for _, a := range s.all {
		declared[a.method] = true
	}
	own, _ := extraMethods(s.extras["Value"])
	for _, m := range own {
		declared[m.name] = true
	}

	for p := s.layout.Parent; p != nil; p = p.Parent {
		code, err := renderExtra(p.Schema, views[0])
		if err != nil {
			return err
		}
		methods, err := extraMethods(code)
		if err != nil {
			return schema.NewError(schema.KindInvalid).Schema(s.layout.Name).Cause(err).
				Detail("cannot parse extra code inherited from %s", p.Name).Build()
		}
		for _, m := range methods {
			if !declared[m.name] {
				s.extras["Value"] += m.text + "\n\n"
			}
		}
		for _, m := range methods {
			declared[m.name] = true
		}
	}
	return nil
}

// renderExtra executes the extras of sch that belong on v
func renderExtra(sch *schema.Schema, v extraView) (string, error) {
	var code strings.Builder
	for _, slot := range []struct {
		name    string
		text    string
		mutable bool
	}{
		{"extra_const", sch.Extras.Const, false},
		{"extra_mutable", sch.Extras.Mutable, true},
	} {
		if strings.TrimSpace(slot.text) == "" || slot.mutable && !v.mutable {
			continue
		}
		tmpl, err := template.New(sch.Name + "." + slot.name).Parse(slot.text)
		if err != nil {
			return "", schema.NewError(schema.KindInvalid).Schema(sch.Name).Path(slot.name).
				Cause(err).Detail("cannot parse extra code").Build()
		}

		var out strings.Builder
		err = tmpl.Execute(&out, extraData{
			Type:   v.typ,
			Schema: sch.Name,
			View:   v.view,
			Size:   namesFor(sch.Name).Size,
		})
		if err != nil {
			return "", schema.NewError(schema.KindInvalid).Schema(sch.Name).Path(slot.name).
				Cause(err).Detail("cannot render extra code for %s", v.view).Build()
		}
		code.WriteString(strings.TrimSpace(out.String()))
		code.WriteString("\n\n")
	}
	return code.String(), nil
}

// extraMethods returns the methods declared in rendered extras code
func extraMethods(code string) ([]extraMethod, error) {
	src := "package extras\n\n" + code
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "extras.go", src, parser.ParseComments)
	if err != nil {
		return nil, err
	}

	var methods []extraMethod
	for _, d := range f.Decls {
		fn, ok := d.(*ast.FuncDecl)
		if !ok || fn.Recv == nil {
			continue
		}
		start := fn.Pos()
		if fn.Doc != nil {
			start = fn.Doc.Pos()
		}
		methods = append(methods, extraMethod{
			name: fn.Name.Name,
			text: src[fset.Position(start).Offset:fset.Position(fn.End()).Offset],
		})
	}
	return methods, nil
}

func (s *schemaGen) emitTypes(code *strings.Builder) {
	n := s.names
	name := s.layout.Name

	fmt.Fprintf(code, "// %s is the size in bytes of a %s.\n", n.Size, name)
	fmt.Fprintf(code, "const %s = %s\n\n", n.Size, s.sizeExpr)

	fmt.Fprintf(code, "// %s owns a copy of a %s.\n", n.Value, name)
	fmt.Fprintf(code, "type %s[O ev.Order] struct {\n\tbuf [%s]byte\n}\n\n", n.Value, n.Size)

	fmt.Fprintf(code, "// %s is a mutable view of a %s in a caller-owned buffer.\n", n.Ref, name)
	if s.parent != nil {
		fmt.Fprintf(code, "type %s[O ev.Order] struct {\n\t%s[O]\n}\n\n", n.Ref, s.parent.Ref)
	} else {
		fmt.Fprintf(code, "type %s[O ev.Order] struct {\n\tb []byte\n}\n\n", n.Ref)
	}

	fmt.Fprintf(code, "// %s is a read-only view of a %s in a caller-owned buffer.\n", n.CRef, name)
	if s.parent != nil {
		fmt.Fprintf(code, "type %s[O ev.Order] struct {\n\t%s[O]\n}\n\n", n.CRef, s.parent.CRef)
	} else {
		fmt.Fprintf(code, "type %s[O ev.Order] struct {\n\tb []byte\n}\n\n", n.CRef)
	}

	fmt.Fprintf(code, "// %s views in %s byte order.\n", name, s.policy)
	code.WriteString("type (\n")
	fmt.Fprintf(code, "\t%s = %s[ev.%s]\n", n.DefValue, n.Value, s.policy)
	fmt.Fprintf(code, "\t%s = %s[ev.%s]\n", n.DefRef, n.Ref, s.policy)
	fmt.Fprintf(code, "\t%s = %s[ev.%s]\n", n.DefCRef, n.CRef, s.policy)
	code.WriteString(")\n\n")
}

func (s *schemaGen) emitConstructors(code *strings.Builder) {
	n := s.names

	if s.parent != nil {
		fmt.Fprintf(code, "func %s[O ev.Order](b []byte) %s[O] {\n\treturn %s[O]{%s[O](b)}\n}\n\n",
			n.makeRef, n.Ref, n.Ref, s.parent.makeRef)
		fmt.Fprintf(code, "func %s[O ev.Order](b []byte) %s[O] {\n\treturn %s[O]{%s[O](b)}\n}\n\n",
			n.makeCRef, n.CRef, n.CRef, s.parent.makeCRef)
	} else {
		fmt.Fprintf(code, "func %s[O ev.Order](b []byte) %s[O] {\n\treturn %s[O]{b: b}\n}\n\n",
			n.makeRef, n.Ref, n.Ref)
		fmt.Fprintf(code, "func %s[O ev.Order](b []byte) %s[O] {\n\treturn %s[O]{b: b}\n}\n\n",
			n.makeCRef, n.CRef, n.CRef)
	}

	fmt.Fprintf(code, "// New%s copies the first %s bytes of b into a new value.\n", n.Value, n.Size)
	fmt.Fprintf(code, "func New%s[O ev.Order](b []byte) %s[O] {\n\tvar v %s[O]\n\tv.Load(b)\n\treturn v\n}\n\n",
		n.Value, n.Value, n.Value)

	fmt.Fprintf(code, "// New%s returns a mutable view of the first %s bytes of b.\n", n.Ref, n.Size)
	fmt.Fprintf(code, "func New%s[O ev.Order](b []byte) %s[O] {\n\treturn %s[O](b[:%s:%s])\n}\n\n",
		n.Ref, n.Ref, n.makeRef, n.Size, n.Size)

	fmt.Fprintf(code, "// New%s returns a read-only view of the first %s bytes of b.\n", n.CRef, n.Size)
	fmt.Fprintf(code, "func New%s[O ev.Order](b []byte) %s[O] {\n\treturn %s[O](b[:%s:%s])\n}\n\n",
		n.CRef, n.CRef, n.makeCRef, n.Size, n.Size)

	for _, c := range []struct{ alias, generic string }{
		{n.DefValue, n.Value},
		{n.DefRef, n.Ref},
		{n.DefCRef, n.CRef},
	} {
		fmt.Fprintf(code, "func New%s(b []byte) %s {\n\treturn New%s[ev.%s](b)\n}\n\n",
			c.alias, c.alias, c.generic, s.policy)
	}
}

func (s *schemaGen) emitValue(code *strings.Builder) {
	n := s.names
	recv := fmt.Sprintf("func (v *%s[O])", n.Value)

	fmt.Fprintf(code, "// Ref returns a mutable view of v.\n%s Ref() %s[O] {\n\treturn %s[O](v.buf[:])\n}\n\n",
		recv, n.Ref, n.makeRef)
	fmt.Fprintf(code, "// CRef returns a read-only view of v.\n%s CRef() %s[O] {\n\treturn %s[O](v.buf[:])\n}\n\n",
		recv, n.CRef, n.makeCRef)
	fmt.Fprintf(code, "// Bytes returns the bytes owned by v.\n%s Bytes() []byte {\n\treturn v.buf[:]\n}\n\n", recv)
	fmt.Fprintf(code, "// Zero clears v.\n%s Zero() {\n\tv.buf = [%s]byte{}\n}\n\n", recv, n.Size)
	fmt.Fprintf(code, "// Load copies the first %s bytes of b into v.\n%s Load(b []byte) {\n\tcopy(v.buf[:], b[:%s])\n}\n\n",
		n.Size, recv, n.Size)
	fmt.Fprintf(code, "// Assign copies the bytes viewed by c into v.\n%s Assign(c %s[O]) {\n\tcopy(v.buf[:], c.b[:%s])\n}\n\n",
		recv, n.CRef, n.Size)

	if s.parent != nil {
		fmt.Fprintf(code, "// AsParent returns a mutable %s view of v.\n%s AsParent() %s[O] {\n\treturn New%s[O](v.buf[:])\n}\n\n",
			s.layout.Parent.Name, recv, s.parent.Ref, s.parent.Ref)
	}

	for _, a := range s.all {
		typ, _ := s.refAccessor(a.field)
		fmt.Fprintf(code, "%s %s() %s {\n\treturn v.Ref().%s()\n}\n\n", recv, a.method, typ, a.method)
	}

	code.WriteString(s.extras["Value"])
}

func (s *schemaGen) emitRef(code *strings.Builder) {
	n := s.names
	recv := fmt.Sprintf("func (r %s[O])", n.Ref)

	fmt.Fprintf(code, "// CRef narrows r to a read-only view.\n%s CRef() %s[O] {\n\treturn %s[O](r.b)\n}\n\n",
		recv, n.CRef, n.makeCRef)
	fmt.Fprintf(code, "// Value copies the viewed bytes into a new value.\n%s Value() %s[O] {\n\treturn New%s[O](r.b)\n}\n\n",
		recv, n.Value, n.Value)
	fmt.Fprintf(code, "// Bytes returns the viewed bytes.\n%s Bytes() []byte {\n\treturn r.b[:%s:%s]\n}\n\n",
		recv, n.Size, n.Size)
	fmt.Fprintf(code, "// Zero clears the viewed bytes.\n%s Zero() {\n\tclear(r.b[:%s])\n}\n\n", recv, n.Size)
	fmt.Fprintf(code, "// Assign copies the bytes viewed by c into the viewed buffer.\n%s Assign(c %s[O]) {\n\tcopy(r.b[:%s], c.b[:%s])\n}\n\n",
		recv, n.CRef, n.Size, n.Size)

	if s.parent != nil {
		fmt.Fprintf(code, "// AsParent returns the %s prefix of r.\n%s AsParent() %s[O] {\n\treturn New%s[O](r.b)\n}\n\n",
			s.layout.Parent.Name, recv, s.parent.Ref, s.parent.Ref)
	}

	for _, a := range s.own {
		typ, expr := s.refAccessor(a.field)
		fmt.Fprintf(code, "// %s accesses %s at offset %d.\n", a.method, a.field.Name, a.field.Offset)
		fmt.Fprintf(code, "%s %s() %s {\n\treturn %s\n}\n\n", recv, a.method, typ, expr)
	}

	code.WriteString(s.extras["Ref"])
}

func (s *schemaGen) emitCRef(code *strings.Builder) {
	n := s.names
	recv := fmt.Sprintf("func (c %s[O])", n.CRef)

	fmt.Fprintf(code, "// Value copies the viewed bytes into a new value.\n%s Value() %s[O] {\n\treturn New%s[O](c.b)\n}\n\n",
		recv, n.Value, n.Value)
	fmt.Fprintf(code, "// Bytes returns the viewed bytes.\n%s Bytes() []byte {\n\treturn c.b[:%s:%s]\n}\n\n",
		recv, n.Size, n.Size)

	if s.parent != nil {
		fmt.Fprintf(code, "// AsParent returns the %s prefix of c.\n%s AsParent() %s[O] {\n\treturn New%s[O](c.b)\n}\n\n",
			s.layout.Parent.Name, recv, s.parent.CRef, s.parent.CRef)
	}

	for _, a := range s.own {
		typ, expr := s.crefAccessor(a.field)
		fmt.Fprintf(code, "%s %s() %s {\n\treturn %s\n}\n\n", recv, a.method, typ, expr)
	}

	code.WriteString(s.extras["CRef"])
}

// window is the buffer slice covering f, for receiver variable recv
func window(recv string, f analyzer.Field) string {
	return fmt.Sprintf("%s.b[%d:%d]", recv, f.Offset, f.End())
}

// refAccessor returns the result type and body expression of the mutable
// accessor for f
func (s *schemaGen) refAccessor(f analyzer.Field) (string, string) {
	w := window("r", f)
	switch f.Kind {
	case analyzer.ArrayField:
		return fmt.Sprintf("ev.Array[%s, O]", f.GoType),
			fmt.Sprintf("ev.NewArray[%s, O](%s, %d)", f.GoType, w, f.Count)
	case analyzer.BitsField:
		return fmt.Sprintf("ev.Bits[%s, %s, O]", f.GoType, f.Storage),
			fmt.Sprintf("ev.NewBits[%s, %s, O](%s, %d, %d)", f.GoType, f.Storage, w, f.BitOffset, f.BitWidth)
	case analyzer.EmbedField:
		sub := namesFor(f.Type)
		return fmt.Sprintf("%s[O]", sub.Ref),
			fmt.Sprintf("New%s[O](%s)", sub.Ref, w)
	case analyzer.EmbedArrayField:
		sub := namesFor(f.Type)
		return fmt.Sprintf("ev.Seq[%s[O]]", sub.Ref),
			fmt.Sprintf("ev.NewSeq(%s, %d, %s, New%s[O])", w, f.Count, sub.Size, sub.Ref)
	default:
		return fmt.Sprintf("ev.Ref[%s, O]", f.GoType),
			fmt.Sprintf("ev.NewRef[%s, O](%s)", f.GoType, w)
	}
}

// crefAccessor is refAccessor for the read-only view
func (s *schemaGen) crefAccessor(f analyzer.Field) (string, string) {
	w := window("c", f)
	switch f.Kind {
	case analyzer.ArrayField:
		return fmt.Sprintf("ev.CArray[%s, O]", f.GoType),
			fmt.Sprintf("ev.NewCArray[%s, O](%s, %d)", f.GoType, w, f.Count)
	case analyzer.BitsField:
		return fmt.Sprintf("ev.CBits[%s, %s, O]", f.GoType, f.Storage),
			fmt.Sprintf("ev.NewCBits[%s, %s, O](%s, %d, %d)", f.GoType, f.Storage, w, f.BitOffset, f.BitWidth)
	case analyzer.EmbedField:
		sub := namesFor(f.Type)
		return fmt.Sprintf("%s[O]", sub.CRef),
			fmt.Sprintf("New%s[O](%s)", sub.CRef, w)
	case analyzer.EmbedArrayField:
		sub := namesFor(f.Type)
		return fmt.Sprintf("ev.Seq[%s[O]]", sub.CRef),
			fmt.Sprintf("ev.NewSeq(%s, %d, %s, New%s[O])", w, f.Count, sub.Size, sub.CRef)
	default:
		return fmt.Sprintf("ev.CRef[%s, O]", f.GoType),
			fmt.Sprintf("ev.NewCRef[%s, O](%s)", f.GoType, w)
	}
}
