package schema

import (
	"fmt"
	"strings"
)

// Kind categorizes a definition-time defect.
type Kind string

const (
	KindUnresolved       Kind = "unresolved_reference"
	KindCycle            Kind = "cycle"
	KindBitfieldOverflow Kind = "bitfield_overflow"
	KindDuplicateField   Kind = "duplicate_field"
	KindDuplicateSchema  Kind = "duplicate_schema"
	KindUnknownType      Kind = "unknown_type"
	KindUnknownField     Kind = "unknown_field"
	KindInvalid          Kind = "invalid"
)

// Sentinels for errors.Is. Any *Error of the same Kind matches.
var (
	ErrUnresolved       = &Error{Kind: KindUnresolved}
	ErrCycle            = &Error{Kind: KindCycle}
	ErrBitfieldOverflow = &Error{Kind: KindBitfieldOverflow}
	ErrDuplicateField   = &Error{Kind: KindDuplicateField}
	ErrDuplicateSchema  = &Error{Kind: KindDuplicateSchema}
	ErrUnknownType      = &Error{Kind: KindUnknownType}
	ErrUnknownField     = &Error{Kind: KindUnknownField}
	ErrInvalid          = &Error{Kind: KindInvalid}
)

// Error reports a schema-authoring defect with enough context to fix the
// declaration: the schema being compiled and the field path inside it.
type Error struct {
	Cause  error
	Kind   Kind
	Schema string
	Detail string
	Path   []string
}

func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(string(e.Kind))

	if e.Schema != "" {
		b.WriteString(" in ")
		b.WriteString(e.Schema)
	}

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// NewError starts building an error of the given kind
func NewError(kind Kind) *Builder {
	return &Builder{err: Error{Kind: kind}}
}

// Schema sets the schema name
func (b *Builder) Schema(name string) *Builder {
	b.err.Schema = name
	return b
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Unresolved reports a parent schema name that is not defined.
func Unresolved(schema string, path []string, ref string) *Error {
	return &Error{
		Kind:   KindUnresolved,
		Schema: schema,
		Path:   path,
		Detail: fmt.Sprintf("schema %q is not defined", ref),
	}
}

// UnresolvedType reports a field type that names neither an element type
// nor a defined schema. Front-ends that cannot tell a mistyped element type
// from a schema name declare such fields as embeds.
func UnresolvedType(schema string, path []string, ref string) *Error {
	return &Error{
		Kind:   KindUnresolved,
		Schema: schema,
		Path:   path,
		Detail: fmt.Sprintf("%q is neither an element type nor a defined schema", ref),
	}
}

// DuplicateField reports two fields mapping to the same accessor.
func DuplicateField(schema string, path []string, name string) *Error {
	return &Error{
		Kind:   KindDuplicateField,
		Schema: schema,
		Path:   path,
		Detail: fmt.Sprintf("field %q is declared more than once", name),
	}
}

// UnknownType reports an element type that is neither a scalar nor an alias.
func UnknownType(schema string, path []string, typ string) *Error {
	return &Error{
		Kind:   KindUnknownType,
		Schema: schema,
		Path:   path,
		Detail: fmt.Sprintf("unknown element type %q", typ),
	}
}

// Invalid reports a malformed declaration.
func Invalid(schema string, path []string, format string, args ...any) *Error {
	return &Error{
		Kind:   KindInvalid,
		Schema: schema,
		Path:   path,
		Detail: fmt.Sprintf(format, args...),
	}
}
