package store

import (
	"fortio.org/safecast"

	"arrayrt/internal/arrerr"
	"arrayrt/internal/rtvalue"
)

// intStore holds contiguous 32-bit signed integers unboxed.
type intStore struct {
	buf []int32
	len int
}

// NewIntStore allocates an Int-shaped store with the given buffer capacity.
func NewIntStore(capacity int) Store {
	return &intStore{buf: make([]int32, capacity)}
}

func (s *intStore) Shape() Shape  { return ShapeInt }
func (s *intStore) Capacity() int { return len(s.buf) }
func (s *intStore) Len() int      { return s.len }

func (s *intStore) checkIndex(i int) {
	if i < 0 || i >= s.len {
		panic(arrerr.IndexOutOfRange(i, s.len))
	}
}

func (s *intStore) Read(i int) rtvalue.Value {
	s.checkIndex(i)
	return rtvalue.Int32(s.buf[i])
}

func (s *intStore) Write(i int, v rtvalue.Value) bool {
	if !IntAllocator.Accepts(v) {
		return false
	}
	s.growTo(i + 1)
	n, err := safecast.Conv[int32](v.Int)
	if err != nil {
		return false
	}
	s.buf[i] = n
	if i+1 > s.len {
		s.len = i + 1
	}
	return true
}

// growTo ensures the buffer can hold index n-1, growing per the capacity
// policy in growth.go.
func (s *intStore) growTo(n int) {
	if n <= len(s.buf) {
		return
	}
	grown := DefaultGrowCapacity(len(s.buf), n)
	next := make([]int32, grown)
	copy(next, s.buf)
	s.buf = next
}

func (s *intStore) Expand(newCapacity int) []rtvalue.Value {
	out := make([]rtvalue.Value, newCapacity)
	for i := 0; i < len(s.buf) && i < newCapacity; i++ {
		out[i] = rtvalue.Int32(s.buf[i])
	}
	return out
}

func (s *intStore) ExtractRange(start, end int) Store {
	if start == end {
		return Empty
	}
	out := NewIntStore(end - start).(*intStore)
	copy(out.buf, s.buf[start:end])
	out.len = end - start
	return out
}

func (s *intStore) BoxedCopyOfRange(start, length int) []rtvalue.Value {
	out := make([]rtvalue.Value, length)
	for i := 0; i < length; i++ {
		out[i] = rtvalue.Int32(s.buf[start+i])
	}
	return out
}

func (s *intStore) CopyContents(srcStart int, dest Store, destStart, length int) {
	if d, ok := dest.(*intStore); ok {
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

func (s *intStore) ToInterfaceCopy(length int) []rtvalue.Value {
	return s.BoxedCopyOfRange(0, length)
}

func (s *intStore) Sort(size int) {
	buf := s.buf[:size]
	insertionSortInt32(buf)
}

func insertionSortInt32(buf []int32) {
	for i := 1; i < len(buf); i++ {
		for j := i; j > 0 && buf[j-1] > buf[j]; j-- {
			buf[j-1], buf[j] = buf[j], buf[j-1]
		}
	}
}

func (s *intStore) Iterate(from, length int) Iterator {
	return newSliceIterator(s, from, length)
}

func (s *intStore) GeneralizeForValue(v rtvalue.Value) Allocator {
	return AllocatorFor(Join(ShapeInt, shapeOfValue(v)))
}

func (s *intStore) GeneralizeForStore(other Store) Allocator {
	return AllocatorFor(Join(ShapeInt, other.Shape()))
}

func (s *intStore) Allocator() Allocator { return IntAllocator }

// shapeOfValue returns the tightest primitive shape a single value would need.
func shapeOfValue(v rtvalue.Value) Shape {
	switch {
	case v.IsInt32():
		return ShapeInt
	case v.IsInt64():
		return ShapeLong
	case v.IsFloat():
		return ShapeDouble
	default:
		return ShapeObject
	}
}

type intAllocator struct{}

// IntAllocator produces Int-shaped stores.
var IntAllocator Allocator = intAllocator{}

func (intAllocator) Shape() Shape  { return ShapeInt }
func (intAllocator) New(capacity int) Store { return NewIntStore(capacity) }

func (intAllocator) Accepts(v rtvalue.Value) bool {
	return v.IsInt32()
}

func (intAllocator) IsDefaultValue(v rtvalue.Value) bool {
	return v.Kind == rtvalue.KindInt && v.Int == 0
}
