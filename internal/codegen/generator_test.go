package codegen

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexhholmes/evgen/internal/analyzer"
	"github.com/alexhholmes/evgen/internal/schema"
)

func newGenerator(t *testing.T, opts Options, schemas ...*schema.Schema) *Generator {
	t.Helper()
	u := schema.NewUnit()
	for _, s := range schemas {
		require.NoError(t, u.Define(s))
	}
	return NewGenerator(analyzer.New(u, nil), opts)
}

func header() *schema.Schema {
	return &schema.Schema{
		Name: "Header",
		Children: []schema.Node{
			&schema.Field{Type: "int32", Name: "len"},
			&schema.Field{Type: "int32", Name: "id"},
		},
	}
}

func msg() *schema.Schema {
	return &schema.Schema{
		Name:     "Msg",
		Parent:   "Header",
		Children: []schema.Node{&schema.Field{Type: "int8", Name: "flag"}},
	}
}

// parse checks that src is valid Go and returns the declared method names
// per receiver type
func parse(t *testing.T, src []byte) map[string][]string {
	t.Helper()
	f, err := parser.ParseFile(token.NewFileSet(), "gen.go", src, 0)
	require.NoError(t, err, string(src))

	methods := make(map[string][]string)
	for _, d := range f.Decls {
		fn, ok := d.(*ast.FuncDecl)
		if !ok || fn.Recv == nil {
			continue
		}
		typ := fn.Recv.List[0].Type
		if star, ok := typ.(*ast.StarExpr); ok {
			typ = star.X
		}
		if idx, ok := typ.(*ast.IndexExpr); ok {
			typ = idx.X
		}
		recv := typ.(*ast.Ident).Name
		methods[recv] = append(methods[recv], fn.Name.Name)
	}
	return methods
}

func TestGenerateFile_Inheritance(t *testing.T) {
	g := newGenerator(t, Options{Package: "wire", Header: "Code generated by evgen. DO NOT EDIT.", Format: true},
		header(), msg())

	src, err := g.GenerateFile()
	require.NoError(t, err)
	code := string(src)

	assert.True(t, strings.HasPrefix(code, "// Code generated by evgen. DO NOT EDIT.\n\npackage wire\n"))
	assert.Contains(t, code, `ev "github.com/alexhholmes/evgen/ev"`)

	// Sizes reference the parent symbolically
	assert.Contains(t, code, "const HeaderSize = 8")
	assert.Contains(t, code, "const MsgSize = HeaderSize + 1")

	// Child views embed the parent views
	assert.Contains(t, code, "type MsgRefOf[O ev.Order] struct {\n\tHeaderRefOf[O]\n}")
	assert.Contains(t, code, "type MsgCRefOf[O ev.Order] struct {\n\tHeaderCRefOf[O]\n}")
	assert.Contains(t, code, "type MsgValueOf[O ev.Order] struct {\n\tbuf [MsgSize]byte\n}")
	assert.Contains(t, code, "return MsgRefOf[O]{makeHeaderRef[O](b)}")

	// Own accessors at absolute offsets
	assert.Contains(t, code, "func (r MsgRefOf[O]) Flag() ev.Ref[int8, O] {\n\treturn ev.NewRef[int8, O](r.b[8:9])\n}")
	assert.Contains(t, code, "func (c MsgCRefOf[O]) Flag() ev.CRef[int8, O] {\n\treturn ev.NewCRef[int8, O](c.b[8:9])\n}")
	assert.Contains(t, code, "func (r HeaderRefOf[O]) Id() ev.Ref[int32, O] {\n\treturn ev.NewRef[int32, O](r.b[4:8])\n}")

	// Default aliases use the configured policy
	assert.Contains(t, code, "MsgRefOf[ev.LittleEndian]")
	assert.Contains(t, code, "func NewMsgRef(b []byte) MsgRef {\n\treturn NewMsgRefOf[ev.LittleEndian](b)\n}")

	methods := parse(t, src)

	// Inherited accessors are promoted on Ref/CRef, flattened on Value
	assert.ElementsMatch(t, []string{"CRef", "Value", "Bytes", "Zero", "Assign", "AsParent", "Flag"}, methods["MsgRefOf"])
	assert.ElementsMatch(t, []string{"Value", "Bytes", "AsParent", "Flag"}, methods["MsgCRefOf"])
	assert.ElementsMatch(t, []string{"Ref", "CRef", "Bytes", "Zero", "Load", "Assign", "AsParent", "Len", "Id", "Flag"},
		methods["MsgValueOf"])
	assert.ElementsMatch(t, []string{"Value", "Bytes", "Len", "Id"}, methods["HeaderCRefOf"])
}

func TestGenerateFile_FieldKinds(t *testing.T) {
	rec := &schema.Schema{
		Name:   "Rec",
		Endian: "big",
		Children: []schema.Node{
			&schema.Bitfield{Storage: "uint16", Members: []schema.BitMember{
				&schema.Bits{Type: "uint8", Name: "kind", Width: 4},
				&schema.BitSkip{Bits: 4},
				&schema.Bits{Type: "bool", Name: "ack", Width: 1},
			}},
			&schema.Union{Alternatives: []schema.Node{
				&schema.Field{Type: "uint8", Name: "raw", Count: 8},
				&schema.Embed{Schema: "Header", Name: "hdr"},
			}},
			&schema.Embed{Schema: "Header", Name: "hdrs", Count: 2},
			&schema.Skip{Bytes: 2},
			&schema.Field{Type: "double", Name: "_crc_value"},
		},
	}
	g := newGenerator(t, Options{Format: true}, header(), rec)

	src, err := g.GenerateFile()
	require.NoError(t, err)
	code := string(src)
	parse(t, src)

	assert.Contains(t, code, "const RecSize = max(8, HeaderSize) + HeaderSize*2 + 12")
	assert.Contains(t, code, "func (r RecRefOf[O]) Kind() ev.Bits[uint8, uint16, O] {\n\treturn ev.NewBits[uint8, uint16, O](r.b[0:2], 0, 4)\n}")
	assert.Contains(t, code, "func (c RecCRefOf[O]) Ack() ev.CBits[bool, uint16, O] {\n\treturn ev.NewCBits[bool, uint16, O](c.b[0:2], 8, 1)\n}")
	assert.Contains(t, code, "func (r RecRefOf[O]) Raw() ev.Array[uint8, O] {\n\treturn ev.NewArray[uint8, O](r.b[2:10], 8)\n}")
	assert.Contains(t, code, "func (r RecRefOf[O]) Hdr() HeaderRefOf[O] {\n\treturn NewHeaderRefOf[O](r.b[2:10])\n}")
	assert.Contains(t, code, "func (c RecCRefOf[O]) Hdrs() ev.Seq[HeaderCRefOf[O]] {\n\treturn ev.NewSeq(c.b[10:26], 2, HeaderSize, NewHeaderCRefOf[O])\n}")
	assert.Contains(t, code, "func (r RecRefOf[O]) crcValue() ev.Ref[float64, O] {\n\treturn ev.NewRef[float64, O](r.b[28:36])\n}")

	// Schema endian override
	assert.Contains(t, code, "RecRefOf[ev.BigEndian]")
	assert.Contains(t, code, "HeaderRefOf[ev.LittleEndian]")
}

func TestGenerateFile_Extras(t *testing.T) {
	s := msg()
	s.Extras = schema.Extras{
		Const:   "func (x {{.Type}}) Total() int { return {{.Size}} + int(x.Len().Get()) }",
		Mutable: "func (x {{.Type}}) Reset{{.View}}() { x.Len().Set(0) }",
	}
	g := newGenerator(t, Options{Format: true, Imports: []string{"fmt"}}, header(), s)

	src, err := g.GenerateFile()
	require.NoError(t, err)
	methods := parse(t, src)

	assert.Contains(t, methods["MsgValueOf"], "Total")
	assert.Contains(t, methods["MsgRefOf"], "Total")
	assert.Contains(t, methods["MsgCRefOf"], "Total")

	assert.Contains(t, methods["MsgValueOf"], "ResetValue")
	assert.Contains(t, methods["MsgRefOf"], "ResetRef")
	assert.NotContains(t, methods["MsgCRefOf"], "ResetCRef")

	assert.Contains(t, string(src), "func (x *MsgValueOf[O]) Total() int { return MsgSize + int(x.Len().Get()) }")
	assert.Contains(t, string(src), "\"fmt\"\n\n\tev ")
}

func TestGenerateFile_InheritedExtras(t *testing.T) {
	a := &schema.Schema{
		Name:     "A",
		Children: []schema.Node{&schema.Field{Type: "int32", Name: "len"}},
		Extras: schema.Extras{
			Const:   "func (x {{.Type}}) Twice() int32 { return 2 * x.Len().Get() }",
			Mutable: "// Reset{{.Schema}} clears the length.\nfunc (x {{.Type}}) Reset{{.Schema}}() { x.Len().Set(0) }",
		},
	}
	b := &schema.Schema{
		Name:   "B",
		Parent: "A",
		Extras: schema.Extras{Const: "func (x {{.Type}}) Twice() int32 { return 3 }"},
	}
	c := &schema.Schema{Name: "C", Parent: "B"}
	g := newGenerator(t, Options{Format: true}, a, b, c)

	src, err := g.GenerateFile()
	require.NoError(t, err)
	code := string(src)
	methods := parse(t, src)

	count := func(recv, name string) int {
		n := 0
		for _, m := range methods[recv] {
			if m == name {
				n++
			}
		}
		return n
	}

	// The value views carry every ancestor's extras, nearest first
	assert.Equal(t, 1, count("CValueOf", "Twice"))
	assert.Equal(t, 1, count("CValueOf", "ResetA"))
	assert.Equal(t, 1, count("BValueOf", "Twice"))
	assert.Equal(t, 1, count("BValueOf", "ResetA"))
	assert.Contains(t, code, "func (x *CValueOf[O]) Twice() int32 { return 3 }")
	assert.NotContains(t, code, "func (x *CValueOf[O]) Twice() int32 { return 2")
	assert.Contains(t, code, "// ResetA clears the length.\nfunc (x *CValueOf[O]) ResetA() { x.Len().Set(0) }")

	// Reference views reach them through the embedded parent views
	assert.NotContains(t, methods["CRefOf"], "Twice")
	assert.NotContains(t, methods["CCRefOf"], "Twice")
}

func TestGenerateFile_NameClash(t *testing.T) {
	clash := &schema.Schema{
		Name:     "HeaderC",
		Children: []schema.Node{&schema.Field{Type: "int8", Name: "flag"}},
	}
	g := newGenerator(t, Options{}, header(), clash)

	_, err := g.GenerateFile()
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrDuplicateSchema)
	assert.Contains(t, err.Error(), "in HeaderC")
	assert.Contains(t, err.Error(), "HeaderCRefOf is also declared for schema Header")
}

func TestGenerateSchema_Errors(t *testing.T) {
	tests := []struct {
		name   string
		schema *schema.Schema
		want   *schema.Error
	}{
		{
			name: "reserved method",
			schema: &schema.Schema{Name: "Bad", Children: []schema.Node{
				&schema.Field{Type: "int8", Name: "bytes"},
			}},
			want: schema.ErrDuplicateField,
		},
		{
			name: "mapped collision",
			schema: &schema.Schema{Name: "Bad", Children: []schema.Node{
				&schema.Field{Type: "int8", Name: "msg_len"},
				&schema.Field{Type: "int8", Name: "msgLen"},
			}},
			want: schema.ErrDuplicateField,
		},
		{
			name: "collision with inherited field",
			schema: &schema.Schema{Name: "Bad", Parent: "Header", Children: []schema.Node{
				&schema.Field{Type: "int8", Name: "Len"},
			}},
			want: schema.ErrDuplicateField,
		},
		{
			name: "collides with embedded parent view",
			schema: &schema.Schema{Name: "Bad", Parent: "Header", Children: []schema.Node{
				&schema.Field{Type: "int8", Name: "header_ref_of"},
			}},
			want: schema.ErrDuplicateField,
		},
		{
			name: "not an identifier",
			schema: &schema.Schema{Name: "Bad", Children: []schema.Node{
				&schema.Field{Type: "int8", Name: "9lives"},
			}},
			want: schema.ErrInvalid,
		},
		{
			name:   "unknown endian",
			schema: &schema.Schema{Name: "Bad", Endian: "middle"},
			want:   schema.ErrInvalid,
		},
		{
			name:   "broken extra",
			schema: &schema.Schema{Name: "Bad", Extras: schema.Extras{Const: "{{.Type"}},
			want:   schema.ErrInvalid,
		},
		{
			name:   "unknown extra field",
			schema: &schema.Schema{Name: "Bad", Extras: schema.Extras{Mutable: "{{.Receiver}}"}},
			want:   schema.ErrInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGenerator(t, Options{}, header(), tt.schema)
			_, err := g.GenerateSchema(tt.schema.Name)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGenerateFile_Unformatted(t *testing.T) {
	g := newGenerator(t, Options{Package: "views"}, header())
	src, err := g.GenerateFile()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(src), "package views\n"))
	parse(t, src)
}

func TestIdent(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"len", "Len", false},
		{"msg_len", "MsgLen", false},
		{"msgID", "MsgID", false},
		{"z0", "Z0", false},
		{"_crc", "crc", false},
		{"_crc_hi", "crcHi", false},
		{"_type", "type_", false},
		{"_Func", "func_", false},
		{"a__b", "AB", false},
		{"_", "", true},
		{"", "", true},
		{"9lives", "", true},
		{"x-y", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Ident(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
