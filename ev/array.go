package ev

// Array is a read-write accessor for a fixed-count scalar field.
type Array[T Scalar, O Order] struct {
	b []byte
	n int
}

// NewArray binds an n element array accessor to b.
func NewArray[T Scalar, O Order](b []byte, n int) Array[T, O] {
	size := n * Width[T]()
	return Array[T, O]{b: b[:size:size], n: n}
}

// Len returns the declared element count.
func (a Array[T, O]) Len() int { return a.n }

// At returns an accessor for element i.
func (a Array[T, O]) At(i int) Ref[T, O] {
	w := Width[T]()
	return Ref[T, O]{b: a.b[i*w : (i+1)*w : (i+1)*w]}
}

// Get decodes element i.
func (a Array[T, O]) Get(i int) T { return a.At(i).Get() }

// Set encodes v into element i.
func (a Array[T, O]) Set(i int, v T) { a.At(i).Set(v) }

// Bytes returns the raw bytes of every element.
func (a Array[T, O]) Bytes() []byte { return a.b }

// C narrows a to a read-only accessor.
func (a Array[T, O]) C() CArray[T, O] { return CArray[T, O](a) }

// CArray is a read-only accessor for a fixed-count scalar field.
type CArray[T Scalar, O Order] struct {
	b []byte
	n int
}

// NewCArray binds an n element read-only array accessor to b.
func NewCArray[T Scalar, O Order](b []byte, n int) CArray[T, O] {
	size := n * Width[T]()
	return CArray[T, O]{b: b[:size:size], n: n}
}

// Len returns the declared element count.
func (a CArray[T, O]) Len() int { return a.n }

// At returns a read-only accessor for element i.
func (a CArray[T, O]) At(i int) CRef[T, O] {
	w := Width[T]()
	return CRef[T, O]{b: a.b[i*w : (i+1)*w : (i+1)*w]}
}

// Get decodes element i.
func (a CArray[T, O]) Get(i int) T { return a.At(i).Get() }

// Bytes returns the raw bytes of every element.
func (a CArray[T, O]) Bytes() []byte { return a.b }

// Seq indexes a run of embedded schema views. R is the view type produced
// for each element, usually a generated Ref or CRef.
type Seq[R any] struct {
	b      []byte
	n      int
	stride int
	mk     func([]byte) R
}

// NewSeq binds n views of stride bytes each, built with mk.
func NewSeq[R any](b []byte, n, stride int, mk func([]byte) R) Seq[R] {
	size := n * stride
	return Seq[R]{b: b[:size:size], n: n, stride: stride, mk: mk}
}

// Len returns the declared element count.
func (s Seq[R]) Len() int { return s.n }

// At returns the view for element i.
func (s Seq[R]) At(i int) R {
	return s.mk(s.b[i*s.stride : (i+1)*s.stride : (i+1)*s.stride])
}

// Bytes returns the raw bytes of every element.
func (s Seq[R]) Bytes() []byte { return s.b }
