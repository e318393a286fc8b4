package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexhholmes/evgen/internal/schema"
)

func TestParseFile(t *testing.T) {
	f, err := ParseFile("testdata/simple.yaml")
	require.NoError(t, err)

	assert.Equal(t, "wire", f.Package)
	assert.Equal(t, "little", f.Endian)
	assert.Equal(t, map[string]string{"MSGID": "int32"}, f.Aliases)
	assert.Equal(t, []string{"MSGID"}, f.AliasNames())

	require.Len(t, f.Schemas, 2)

	// Aliases stay element types, they do not become embeds
	assert.Equal(t, &schema.Schema{
		Name: "Header",
		Children: []schema.Node{
			&schema.Field{Type: "int32", Name: "len"},
			&schema.Field{Type: "MSGID", Name: "id"},
		},
	}, f.Schemas[0])

	assert.Equal(t, &schema.Schema{
		Name:     "Msg",
		Parent:   "Header",
		Children: []schema.Node{&schema.Field{Type: "int8", Name: "flag"}},
	}, f.Schemas[1])
}

func TestParseFile_Groups(t *testing.T) {
	f, err := ParseFile("testdata/complex.yaml")
	require.NoError(t, err)
	assert.Equal(t, "big", f.Endian)
	assert.Empty(t, f.Aliases)

	// Declaration order is kept; ordering by dependency happens at definition
	require.Len(t, f.Schemas, 2)
	p := f.Schemas[0]
	assert.Equal(t, "Packet", p.Name)
	assert.Equal(t, "Header", p.Parent)
	assert.Equal(t, "little", p.Endian)
	assert.Contains(t, p.Extras.Const, "func (x {{.Type}}) Sum() int32 {")
	assert.Contains(t, p.Extras.Mutable, "Clear{{.View}}")

	want := []schema.Node{
		&schema.Bitfield{Storage: "uint8", Members: []schema.BitMember{
			&schema.Bits{Type: "uint8", Name: "z0", Width: 2},
			&schema.Bits{Type: "uint8", Name: "z1", Width: 2},
			&schema.BitSkip{Bits: 1},
			&schema.Bits{Type: "bool", Name: "last", Width: 1},
		}},
		&schema.Union{Alternatives: []schema.Node{
			&schema.Struct{Children: []schema.Node{
				&schema.Field{Type: "int32", Name: "x"},
				&schema.Field{Type: "int32", Name: "y"},
				&schema.Field{Type: "int32", Name: "z"},
			}},
			&schema.Field{Type: "uint8", Name: "raw", Count: 12},
		}},
		&schema.Skip{Bytes: 3},
		&schema.Embed{Schema: "Header", Name: "hdrs", Count: 2},
		&schema.Embed{Schema: "Header", Name: "inner"},
	}
	assert.Equal(t, want, p.Children)

	ordered, err := schema.Order(f.Schemas, nil)
	require.NoError(t, err)
	assert.Equal(t, "Header", ordered[0].Name)
	assert.Equal(t, "Packet", ordered[1].Name)
}

func TestParse_Empty(t *testing.T) {
	f, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, f.Schemas)
	assert.NotNil(t, f.Aliases)
}

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile("testdata/missing.yaml")
	assert.Error(t, err)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		wantLine int
		errMsg   string
	}{
		{
			name: "unknown top level key",
			doc: `package: wire
schemaz: []
`,
			errMsg: "schemaz",
		},
		{
			name: "bad header",
			doc: `schemas:
  - schema: "Msg : "
    fields: [int8 a]
`,
			wantLine: 2,
			errMsg:   "invalid parameter",
		},
		{
			name: "bad shorthand",
			doc: `schemas:
  - schema: Msg
    fields:
      - int8
`,
			wantLine: 4,
			errMsg:   "invalid field declaration",
		},
		{
			name: "bit width outside bitfield",
			doc: `schemas:
  - schema: Msg
    fields:
      - int8 ok
      - uint8 a:3
`,
			wantLine: 5,
			errMsg:   "outside a bitfield",
		},
		{
			name: "bitfield member without width",
			doc: `schemas:
  - schema: Msg
    fields:
      - bitfield uint8:
          - uint8 a
`,
			wantLine: 5,
			errMsg:   "needs a bit width",
		},
		{
			name: "bitfield without storage",
			doc: `schemas:
  - schema: Msg
    fields:
      - bitfield:
          - uint8 a:1
`,
			wantLine: 4,
			errMsg:   "bitfield <storage type>",
		},
		{
			name: "nested group in bitfield",
			doc: `schemas:
  - schema: Msg
    fields:
      - bitfield uint8:
          - union: [uint8 a:1]
`,
			wantLine: 5,
			errMsg:   "cannot be groups",
		},
		{
			name: "unknown group",
			doc: `schemas:
  - schema: Msg
    fields:
      - record:
          - int8 a
`,
			wantLine: 4,
			errMsg:   "unknown group",
		},
		{
			name: "group with two keys",
			doc: `schemas:
  - schema: Msg
    fields:
      - union: [int8 a]
        struct: [int8 b]
`,
			wantLine: 4,
			errMsg:   "exactly one key",
		},
		{
			name: "group body not a list",
			doc: `schemas:
  - schema: Msg
    fields:
      - union: int8 a
`,
			wantLine: 4,
			errMsg:   "expected a list",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)

			if tt.wantLine > 0 {
				var ve ValueError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, tt.wantLine, ve.Node.Line)
			}
		})
	}
}
