package analyzer

import (
	"fmt"
)

// scalar describes a built-in element type
type scalar struct {
	goType string
	size   int
	signed bool
	float  bool
}

// scalars maps every accepted element type spelling to its Go type
var scalars = map[string]scalar{
	"bool":    {goType: "bool", size: 1},
	"int8":    {goType: "int8", size: 1, signed: true},
	"uint8":   {goType: "uint8", size: 1},
	"byte":    {goType: "uint8", size: 1},
	"int16":   {goType: "int16", size: 2, signed: true},
	"uint16":  {goType: "uint16", size: 2},
	"int32":   {goType: "int32", size: 4, signed: true},
	"uint32":  {goType: "uint32", size: 4},
	"int64":   {goType: "int64", size: 8, signed: true},
	"uint64":  {goType: "uint64", size: 8},
	"float32": {goType: "float32", size: 4, float: true},
	"float64": {goType: "float64", size: 8, float: true},

	// C spellings, fixed to the sizes of a 64-bit LP64 wire format
	"char":   {goType: "int8", size: 1, signed: true},
	"uchar":  {goType: "uint8", size: 1},
	"short":  {goType: "int16", size: 2, signed: true},
	"ushort": {goType: "uint16", size: 2},
	"int":    {goType: "int32", size: 4, signed: true},
	"uint":   {goType: "uint32", size: 4},
	"long":   {goType: "int64", size: 8, signed: true},
	"ulong":  {goType: "uint64", size: 8},
	"float":  {goType: "float32", size: 4, float: true},
	"double": {goType: "float64", size: 8, float: true},
}

// SizeOf returns the size in bytes of a built-in element type
// Returns error for unsupported types
func SizeOf(typ string) (int, error) {
	s, ok := scalars[typ]
	if !ok {
		return 0, fmt.Errorf("unknown type: %s", typ)
	}
	return s.size, nil
}

// TypeRegistry tracks schema sizes and type aliases for layout analysis
type TypeRegistry struct {
	types   map[string]int    // schema name → size in bytes
	aliases map[string]string // alias → underlying type
}

func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{
		types:   make(map[string]int),
		aliases: make(map[string]string),
	}
}

// Register records the resolved size of a schema
func (r *TypeRegistry) Register(name string, size int) {
	r.types[name] = size
}

// RegisterAlias adds a type alias mapping (e.g., MSGID → int32)
func (r *TypeRegistry) RegisterAlias(alias, underlying string) {
	r.aliases[alias] = underlying
}

// Lookup returns the size of a registered schema
func (r *TypeRegistry) Lookup(name string) (int, bool) {
	size, ok := r.types[name]
	return size, ok
}

// ResolveType resolves type aliases to their underlying types
// Returns the original type if not an alias
func (r *TypeRegistry) ResolveType(typ string) string {
	seen := map[string]bool{}
	for {
		underlying, ok := r.aliases[typ]
		if !ok || seen[typ] {
			return typ
		}
		seen[typ] = true
		typ = underlying
	}
}

func (r *TypeRegistry) scalar(typ string) (scalar, bool) {
	s, ok := scalars[r.ResolveType(typ)]
	return s, ok
}

// IsScalar reports whether typ resolves to a built-in element type
func (r *TypeRegistry) IsScalar(typ string) bool {
	_, ok := r.scalar(typ)
	return ok
}

// GoType returns the Go type a scalar element type is accessed as
func (r *TypeRegistry) GoType(typ string) (string, error) {
	s, ok := r.scalar(typ)
	if !ok {
		return "", fmt.Errorf("unknown type: %s", typ)
	}
	return s.goType, nil
}

// IsInteger reports whether typ can be a bitfield member
func (r *TypeRegistry) IsInteger(typ string) bool {
	s, ok := r.scalar(typ)
	return ok && !s.float
}

// IsUnsigned reports whether typ can hold a packed bitfield
func (r *TypeRegistry) IsUnsigned(typ string) bool {
	s, ok := r.scalar(typ)
	return ok && !s.float && !s.signed && s.goType != "bool"
}

// Bits returns the bit width of a scalar element type
func (r *TypeRegistry) Bits(typ string) (int, error) {
	s, ok := r.scalar(typ)
	if !ok {
		return 0, fmt.Errorf("unknown type: %s", typ)
	}
	if s.goType == "bool" {
		return 1, nil
	}
	return s.size * 8, nil
}

// SizeOf calculates size using registry for aliases and schema names
func (r *TypeRegistry) SizeOf(typ string) (int, error) {
	resolved := r.ResolveType(typ)

	// Try built-in types
	size, err := SizeOf(resolved)
	if err == nil {
		return size, nil
	}

	// Check if it's a registered schema
	if size, ok := r.Lookup(resolved); ok {
		return size, nil
	}

	return 0, fmt.Errorf("unknown type: %s (not registered)", typ)
}
