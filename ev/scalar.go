package ev

import "math"

// Scalar is the set of element types a field may be declared with.
type Scalar interface {
	bool | int8 | uint8 | int16 | uint16 | int32 | uint32 | int64 | uint64 | float32 | float64
}

// Width returns the encoded size of T in bytes.
func Width[T Scalar]() int {
	var v T
	switch any(v).(type) {
	case bool, int8, uint8:
		return 1
	case int16, uint16:
		return 2
	case int32, uint32, float32:
		return 4
	default:
		return 8
	}
}

func load[T Scalar, O Order](b []byte) T {
	var o O
	var v T
	switch p := any(&v).(type) {
	case *bool:
		*p = b[0] != 0
	case *int8:
		*p = int8(b[0])
	case *uint8:
		*p = b[0]
	case *int16:
		*p = int16(o.Uint16(b))
	case *uint16:
		*p = o.Uint16(b)
	case *int32:
		*p = int32(o.Uint32(b))
	case *uint32:
		*p = o.Uint32(b)
	case *int64:
		*p = int64(o.Uint64(b))
	case *uint64:
		*p = o.Uint64(b)
	case *float32:
		*p = math.Float32frombits(o.Uint32(b))
	case *float64:
		*p = math.Float64frombits(o.Uint64(b))
	}
	return v
}

func store[T Scalar, O Order](b []byte, v T) {
	var o O
	switch x := any(v).(type) {
	case bool:
		if x {
			b[0] = 1
		} else {
			b[0] = 0
		}
	case int8:
		b[0] = byte(x)
	case uint8:
		b[0] = x
	case int16:
		o.PutUint16(b, uint16(x))
	case uint16:
		o.PutUint16(b, x)
	case int32:
		o.PutUint32(b, uint32(x))
	case uint32:
		o.PutUint32(b, x)
	case int64:
		o.PutUint64(b, uint64(x))
	case uint64:
		o.PutUint64(b, x)
	case float32:
		o.PutUint32(b, math.Float32bits(x))
	case float64:
		o.PutUint64(b, math.Float64bits(x))
	}
}

// Ref is a read-write accessor for one scalar field.
type Ref[T Scalar, O Order] struct {
	b []byte
}

// NewRef binds a scalar accessor to the first Width[T]() bytes of b.
func NewRef[T Scalar, O Order](b []byte) Ref[T, O] {
	return Ref[T, O]{b: b[:Width[T]():Width[T]()]}
}

// Get decodes the field.
func (r Ref[T, O]) Get() T { return load[T, O](r.b) }

// Set encodes v into the field in place.
func (r Ref[T, O]) Set(v T) { store[T, O](r.b, v) }

// Bytes returns the field's raw bytes.
func (r Ref[T, O]) Bytes() []byte { return r.b }

// C narrows r to a read-only accessor.
func (r Ref[T, O]) C() CRef[T, O] { return CRef[T, O](r) }

// CRef is a read-only accessor for one scalar field.
type CRef[T Scalar, O Order] struct {
	b []byte
}

// NewCRef binds a read-only scalar accessor to the first Width[T]() bytes of b.
func NewCRef[T Scalar, O Order](b []byte) CRef[T, O] {
	return CRef[T, O]{b: b[:Width[T]():Width[T]()]}
}

// Get decodes the field.
func (c CRef[T, O]) Get() T { return load[T, O](c.b) }

// Bytes returns the field's raw bytes.
func (c CRef[T, O]) Bytes() []byte { return c.b }
