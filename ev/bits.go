package ev

// Integer is the set of types a bitfield member may be declared with.
type Integer interface {
	bool | int8 | uint8 | int16 | uint16 | int32 | uint32 | int64 | uint64
}

// Storage is the set of types that can hold a packed bitfield.
type Storage interface {
	uint8 | uint16 | uint32 | uint64
}

func mask(width uint) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return 1<<width - 1
}

func toBits[T Integer](v T) uint64 {
	switch x := any(v).(type) {
	case bool:
		if x {
			return 1
		}
		return 0
	case int8:
		return uint64(x)
	case uint8:
		return uint64(x)
	case int16:
		return uint64(x)
	case uint16:
		return uint64(x)
	case int32:
		return uint64(x)
	case uint32:
		return uint64(x)
	case int64:
		return uint64(x)
	case uint64:
		return x
	}
	return 0
}

// fromBits converts the low width bits of raw to T, sign-extending signed types.
func fromBits[T Integer](raw uint64, width uint) T {
	var v T
	s := int64(raw)
	if width < 64 && raw&(1<<(width-1)) != 0 {
		s = int64(raw | ^mask(width))
	}
	switch p := any(&v).(type) {
	case *bool:
		*p = raw != 0
	case *int8:
		*p = int8(s)
	case *uint8:
		*p = uint8(raw)
	case *int16:
		*p = int16(s)
	case *uint16:
		*p = uint16(raw)
	case *int32:
		*p = int32(s)
	case *uint32:
		*p = uint32(raw)
	case *int64:
		*p = s
	case *uint64:
		*p = raw
	}
	return v
}

// Bits is a read-write accessor for one member of a bitfield. The storage
// word S is loaded through O, the member occupies width bits starting at
// bit off counted from the least significant bit.
type Bits[T Integer, S Storage, O Order] struct {
	b     []byte
	off   uint
	width uint
}

// NewBits binds a bitfield member accessor to the storage word at b.
func NewBits[T Integer, S Storage, O Order](b []byte, off, width uint) Bits[T, S, O] {
	n := Width[S]()
	return Bits[T, S, O]{b: b[:n:n], off: off, width: width}
}

// Get extracts the member from the storage word.
func (f Bits[T, S, O]) Get() T {
	w := uint64(load[S, O](f.b))
	return fromBits[T]((w>>f.off)&mask(f.width), f.width)
}

// Set replaces the member's bits, leaving the rest of the word untouched.
// v is truncated to the member width.
func (f Bits[T, S, O]) Set(v T) {
	m := mask(f.width) << f.off
	w := uint64(load[S, O](f.b))
	w = w&^m | (toBits(v)<<f.off)&m
	store[S, O](f.b, S(w))
}

// Bytes returns the raw bytes of the whole storage word.
func (f Bits[T, S, O]) Bytes() []byte { return f.b }

// C narrows f to a read-only accessor.
func (f Bits[T, S, O]) C() CBits[T, S, O] { return CBits[T, S, O](f) }

// CBits is a read-only accessor for one member of a bitfield.
type CBits[T Integer, S Storage, O Order] struct {
	b     []byte
	off   uint
	width uint
}

// NewCBits binds a read-only bitfield member accessor to the storage word at b.
func NewCBits[T Integer, S Storage, O Order](b []byte, off, width uint) CBits[T, S, O] {
	n := Width[S]()
	return CBits[T, S, O]{b: b[:n:n], off: off, width: width}
}

// Get extracts the member from the storage word.
func (f CBits[T, S, O]) Get() T {
	w := uint64(load[S, O](f.b))
	return fromBits[T]((w>>f.off)&mask(f.width), f.width)
}

// Bytes returns the raw bytes of the whole storage word.
func (f CBits[T, S, O]) Bytes() []byte { return f.b }
