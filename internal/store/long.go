package store

import (
	"arrayrt/internal/arrerr"
	"arrayrt/internal/rtvalue"
)

// longStore holds contiguous 64-bit signed integers unboxed.
type longStore struct {
	buf []int64
	len int
}

// NewLongStore allocates a Long-shaped store with the given buffer capacity.
func NewLongStore(capacity int) Store {
	return &longStore{buf: make([]int64, capacity)}
}

func (s *longStore) Shape() Shape  { return ShapeLong }
func (s *longStore) Capacity() int { return len(s.buf) }
func (s *longStore) Len() int      { return s.len }

func (s *longStore) checkIndex(i int) {
	if i < 0 || i >= s.len {
		panic(arrerr.IndexOutOfRange(i, s.len))
	}
}

func (s *longStore) Read(i int) rtvalue.Value {
	s.checkIndex(i)
	return rtvalue.Int64(s.buf[i])
}

func (s *longStore) Write(i int, v rtvalue.Value) bool {
	if !LongAllocator.Accepts(v) {
		return false
	}
	s.growTo(i + 1)
	s.buf[i] = v.Int
	if i+1 > s.len {
		s.len = i + 1
	}
	return true
}

func (s *longStore) growTo(n int) {
	if n <= len(s.buf) {
		return
	}
	grown := DefaultGrowCapacity(len(s.buf), n)
	next := make([]int64, grown)
	copy(next, s.buf)
	s.buf = next
}

func (s *longStore) Expand(newCapacity int) []rtvalue.Value {
	out := make([]rtvalue.Value, newCapacity)
	for i := 0; i < len(s.buf) && i < newCapacity; i++ {
		out[i] = rtvalue.Int64(s.buf[i])
	}
	return out
}

func (s *longStore) ExtractRange(start, end int) Store {
	if start == end {
		return Empty
	}
	out := NewLongStore(end - start).(*longStore)
	copy(out.buf, s.buf[start:end])
	out.len = end - start
	return out
}

func (s *longStore) BoxedCopyOfRange(start, length int) []rtvalue.Value {
	out := make([]rtvalue.Value, length)
	for i := 0; i < length; i++ {
		out[i] = rtvalue.Int64(s.buf[start+i])
	}
	return out
}

func (s *longStore) CopyContents(srcStart int, dest Store, destStart, length int) {
	if d, ok := dest.(*longStore); ok {
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

func (s *longStore) ToInterfaceCopy(length int) []rtvalue.Value {
	return s.BoxedCopyOfRange(0, length)
}

func (s *longStore) Sort(size int) {
	insertionSortInt64(s.buf[:size])
}

func insertionSortInt64(buf []int64) {
	for i := 1; i < len(buf); i++ {
		for j := i; j > 0 && buf[j-1] > buf[j]; j-- {
			buf[j-1], buf[j] = buf[j], buf[j-1]
		}
	}
}

func (s *longStore) Iterate(from, length int) Iterator {
	return newSliceIterator(s, from, length)
}

func (s *longStore) GeneralizeForValue(v rtvalue.Value) Allocator {
	return AllocatorFor(Join(ShapeLong, shapeOfValue(v)))
}

func (s *longStore) GeneralizeForStore(other Store) Allocator {
	return AllocatorFor(Join(ShapeLong, other.Shape()))
}

func (s *longStore) Allocator() Allocator { return LongAllocator }

type longAllocator struct{}

// LongAllocator produces Long-shaped stores.
var LongAllocator Allocator = longAllocator{}

func (longAllocator) Shape() Shape           { return ShapeLong }
func (longAllocator) New(capacity int) Store { return NewLongStore(capacity) }

func (longAllocator) Accepts(v rtvalue.Value) bool {
	return v.IsInt64()
}

func (longAllocator) IsDefaultValue(v rtvalue.Value) bool {
	return v.Kind == rtvalue.KindInt && v.Int == 0
}
