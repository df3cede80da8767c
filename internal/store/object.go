package store

import (
	"fmt"
	"sort"

	"arrayrt/internal/arrerr"
	"arrayrt/internal/rtvalue"
)

// objectStore holds contiguous boxed values - the absorbing top of the
// lattice; every value is accepted.
type objectStore struct {
	buf []rtvalue.Value
	len int

	// seenInt/seenLong/seenDouble/seenObject record which store shapes have
	// already been absorbed into this store via appendArray, so later
	// appends of the same shape into this store skip retesting. The flags
	// belong to this store only: a store allocated by growth or by a new
	// build starts with none set.
	seenInt, seenLong, seenDouble, seenObject bool
}

// NewObjectStore allocates an Object-shaped store with the given buffer capacity.
func NewObjectStore(capacity int) Store {
	return &objectStore{buf: make([]rtvalue.Value, capacity)}
}

func (s *objectStore) Shape() Shape  { return ShapeObject }
func (s *objectStore) Capacity() int { return len(s.buf) }
func (s *objectStore) Len() int      { return s.len }

func (s *objectStore) checkIndex(i int) {
	if i < 0 || i >= s.len {
		panic(arrerr.IndexOutOfRange(i, s.len))
	}
}

func (s *objectStore) Read(i int) rtvalue.Value {
	s.checkIndex(i)
	return s.buf[i]
}

// Write always succeeds: Object is the absorbing top of the lattice.
func (s *objectStore) Write(i int, v rtvalue.Value) bool {
	s.growTo(i + 1)
	s.buf[i] = v
	if i+1 > s.len {
		s.len = i + 1
	}
	return true
}

func (s *objectStore) growTo(n int) {
	if n <= len(s.buf) {
		return
	}
	grown := DefaultGrowCapacity(len(s.buf), n)
	next := make([]rtvalue.Value, grown)
	copy(next, s.buf)
	s.buf = next
}

func (s *objectStore) Expand(newCapacity int) []rtvalue.Value {
	out := make([]rtvalue.Value, newCapacity)
	copy(out, s.buf)
	return out
}

func (s *objectStore) ExtractRange(start, end int) Store {
	if start == end {
		return Empty
	}
	out := NewObjectStore(end - start).(*objectStore)
	copy(out.buf, s.buf[start:end])
	out.len = end - start
	return out
}

func (s *objectStore) BoxedCopyOfRange(start, length int) []rtvalue.Value {
	out := make([]rtvalue.Value, length)
	copy(out, s.buf[start:start+length])
	return out
}

func (s *objectStore) CopyContents(srcStart int, dest Store, destStart, length int) {
	if d, ok := dest.(*objectStore); ok {
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

func (s *objectStore) ToInterfaceCopy(length int) []rtvalue.Value {
	return s.BoxedCopyOfRange(0, length)
}

// Sort orders the first size elements under a total order across kinds:
// numerically within a kind, and Int < Float < Boxed across kinds, with
// boxed values compared by their string rendering. Object arrays are
// heterogeneous by construction, so "natural" here means "total and
// stable", not a single numeric comparator.
func (s *objectStore) Sort(size int) {
	buf := s.buf[:size]
	sort.SliceStable(buf, func(i, j int) bool {
		return lessValue(buf[i], buf[j])
	})
}

func lessValue(a, b rtvalue.Value) bool {
	if a.Kind != b.Kind {
		return a.Kind < b.Kind
	}
	switch a.Kind {
	case rtvalue.KindInt:
		return a.Int < b.Int
	case rtvalue.KindFloat:
		return a.Float < b.Float
	default:
		return fmt.Sprint(a.Box) < fmt.Sprint(b.Box)
	}
}

func (s *objectStore) Iterate(from, length int) Iterator {
	return newSliceIterator(s, from, length)
}

func (s *objectStore) GeneralizeForValue(rtvalue.Value) Allocator { return ObjectAllocator }
func (s *objectStore) GeneralizeForStore(Store) Allocator         { return ObjectAllocator }
func (s *objectStore) Allocator() Allocator                       { return ObjectAllocator }

// MarkSeen and Seen record/query which primitive shapes this object store
// has already absorbed via appendArray.
func (s *objectStore) MarkSeen(shape Shape) {
	switch shape {
	case ShapeInt:
		s.seenInt = true
	case ShapeLong:
		s.seenLong = true
	case ShapeDouble:
		s.seenDouble = true
	case ShapeObject:
		s.seenObject = true
	}
}

func (s *objectStore) Seen(shape Shape) bool {
	switch shape {
	case ShapeInt:
		return s.seenInt
	case ShapeLong:
		return s.seenLong
	case ShapeDouble:
		return s.seenDouble
	case ShapeObject:
		return s.seenObject
	default:
		return false
	}
}

// AsObjectStore exposes the seen-shape bookkeeping to the builder package
// without widening the public Store interface for a single shape's concern.
func AsObjectStore(s Store) (*objectStore, bool) {
	o, ok := s.(*objectStore)
	return o, ok
}

type objectAllocator struct{}

// ObjectAllocator produces Object-shaped stores.
var ObjectAllocator Allocator = objectAllocator{}

func (objectAllocator) Shape() Shape           { return ShapeObject }
func (objectAllocator) New(capacity int) Store { return NewObjectStore(capacity) }
func (objectAllocator) Accepts(rtvalue.Value) bool { return true }

func (objectAllocator) IsDefaultValue(v rtvalue.Value) bool {
	return v.IsZero()
}
