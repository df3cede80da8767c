package store

import (
	"arrayrt/internal/arrerr"
	"arrayrt/internal/rtvalue"
)

// doubleStore holds contiguous 64-bit floats unboxed.
type doubleStore struct {
	buf []float64
	len int
}

// NewDoubleStore allocates a Double-shaped store with the given buffer capacity.
func NewDoubleStore(capacity int) Store {
	return &doubleStore{buf: make([]float64, capacity)}
}

func (s *doubleStore) Shape() Shape  { return ShapeDouble }
func (s *doubleStore) Capacity() int { return len(s.buf) }
func (s *doubleStore) Len() int      { return s.len }

func (s *doubleStore) checkIndex(i int) {
	if i < 0 || i >= s.len {
		panic(arrerr.IndexOutOfRange(i, s.len))
	}
}

func (s *doubleStore) Read(i int) rtvalue.Value {
	s.checkIndex(i)
	return rtvalue.Float64(s.buf[i])
}

// Write accepts only genuine doubles. The builder path does NOT promote
// integers here - only the literal path's classification step
// (literalsite) does that, via rtvalue.Value.ToFloat64 before ever calling
// Write.
func (s *doubleStore) Write(i int, v rtvalue.Value) bool {
	if !DoubleAllocator.Accepts(v) {
		return false
	}
	s.growTo(i + 1)
	s.buf[i] = v.Float
	if i+1 > s.len {
		s.len = i + 1
	}
	return true
}

func (s *doubleStore) growTo(n int) {
	if n <= len(s.buf) {
		return
	}
	grown := DefaultGrowCapacity(len(s.buf), n)
	next := make([]float64, grown)
	copy(next, s.buf)
	s.buf = next
}

func (s *doubleStore) Expand(newCapacity int) []rtvalue.Value {
	out := make([]rtvalue.Value, newCapacity)
	for i := 0; i < len(s.buf) && i < newCapacity; i++ {
		out[i] = rtvalue.Float64(s.buf[i])
	}
	return out
}

func (s *doubleStore) ExtractRange(start, end int) Store {
	if start == end {
		return Empty
	}
	out := NewDoubleStore(end - start).(*doubleStore)
	copy(out.buf, s.buf[start:end])
	out.len = end - start
	return out
}

func (s *doubleStore) BoxedCopyOfRange(start, length int) []rtvalue.Value {
	out := make([]rtvalue.Value, length)
	for i := 0; i < length; i++ {
		out[i] = rtvalue.Float64(s.buf[start+i])
	}
	return out
}

func (s *doubleStore) CopyContents(srcStart int, dest Store, destStart, length int) {
	if d, ok := dest.(*doubleStore); ok {
		d.growTo(destStart + length)
		copy(d.buf[destStart:destStart+length], s.buf[srcStart:srcStart+length])
		if destStart+length > d.len {
			d.len = destStart + length
		}
		return
	}
	for i := 0; i < length; i++ {
		dest.Write(destStart+i, s.Read(srcStart+i))
	}
}

func (s *doubleStore) ToInterfaceCopy(length int) []rtvalue.Value {
	return s.BoxedCopyOfRange(0, length)
}

func (s *doubleStore) Sort(size int) {
	insertionSortFloat64(s.buf[:size])
}

func insertionSortFloat64(buf []float64) {
	for i := 1; i < len(buf); i++ {
		for j := i; j > 0 && buf[j-1] > buf[j]; j-- {
			buf[j-1], buf[j] = buf[j], buf[j-1]
		}
	}
}

func (s *doubleStore) Iterate(from, length int) Iterator {
	return newSliceIterator(s, from, length)
}

func (s *doubleStore) GeneralizeForValue(v rtvalue.Value) Allocator {
	return AllocatorFor(Join(ShapeDouble, shapeOfValue(v)))
}

func (s *doubleStore) GeneralizeForStore(other Store) Allocator {
	return AllocatorFor(Join(ShapeDouble, other.Shape()))
}

func (s *doubleStore) Allocator() Allocator { return DoubleAllocator }

type doubleAllocator struct{}

// DoubleAllocator produces Double-shaped stores.
var DoubleAllocator Allocator = doubleAllocator{}

func (doubleAllocator) Shape() Shape           { return ShapeDouble }
func (doubleAllocator) New(capacity int) Store { return NewDoubleStore(capacity) }

func (doubleAllocator) Accepts(v rtvalue.Value) bool {
	return v.IsFloat()
}

func (doubleAllocator) IsDefaultValue(v rtvalue.Value) bool {
	return v.Kind == rtvalue.KindFloat && v.Float == 0
}
