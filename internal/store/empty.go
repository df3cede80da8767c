package store

import (
	"arrayrt/internal/arrerr"
	"arrayrt/internal/rtvalue"
)

// emptyStore is the shared immutable zero-length sentinel.
type emptyStore struct{}

// Empty is the single shared sentinel instance. Every zero-length
// construction returns this exact value, so two empty arrays are always
// reference-identical.
var Empty Store = emptyStore{}

func (emptyStore) Shape() Shape    { return ShapeEmpty }
func (emptyStore) Capacity() int   { return 0 }
func (emptyStore) Len() int        { return 0 }

func (emptyStore) Read(int) rtvalue.Value {
	EmptyMisuseRead()
	return rtvalue.Value{}
}

func (emptyStore) Write(int, rtvalue.Value) bool {
	EmptyMisuseWrite()
	return false
}

func (emptyStore) Expand(newCapacity int) []rtvalue.Value {
	return make([]rtvalue.Value, newCapacity)
}

func (emptyStore) ExtractRange(start, end int) Store {
	if start != 0 || end != 0 {
		EmptyMisuseRange()
	}
	return Empty
}

func (emptyStore) BoxedCopyOfRange(start, length int) []rtvalue.Value {
	if start != 0 || length != 0 {
		EmptyMisuseRange()
	}
	return []rtvalue.Value{}
}

func (emptyStore) CopyContents(int, Store, int, int) {}

func (emptyStore) ToInterfaceCopy(length int) []rtvalue.Value {
	if length != 0 {
		EmptyMisuseRange()
	}
	return []rtvalue.Value{}
}

// Sort on the empty store is trivially a no-op for size 0; any non-zero
// size is caller misuse.
func (emptyStore) Sort(size int) {
	if size != 0 {
		EmptyMisuseRange()
	}
}

func (emptyStore) Iterate(from, length int) Iterator {
	if from != 0 || length != 0 {
		EmptyMisuseRange()
	}
	return newSliceIterator(Empty, 0, 0)
}

func (emptyStore) GeneralizeForValue(v rtvalue.Value) Allocator {
	switch {
	case v.IsInt32():
		return IntAllocator
	case v.IsInt64():
		return LongAllocator
	case v.IsFloat():
		return DoubleAllocator
	default:
		return ObjectAllocator
	}
}

func (emptyStore) GeneralizeForStore(other Store) Allocator {
	return AllocatorFor(other.Shape())
}

func (emptyStore) Allocator() Allocator { return EmptyAllocator }

// EmptyMisuseRead, EmptyMisuseWrite and EmptyMisuseRange are split by call
// site purely for clearer messages; all three delegate to the same
// unrecoverable assertion.
func EmptyMisuseRead()  { arrerr.EmptyMisuse("read") }
func EmptyMisuseWrite() { arrerr.EmptyMisuse("write") }
func EmptyMisuseRange() { arrerr.EmptyMisuse("non-zero range access") }

type emptyAllocator struct{}

// EmptyAllocator produces the shared Empty sentinel regardless of requested capacity.
var EmptyAllocator Allocator = emptyAllocator{}

func (emptyAllocator) Shape() Shape           { return ShapeEmpty }
func (emptyAllocator) New(int) Store          { return Empty }
func (emptyAllocator) Accepts(rtvalue.Value) bool      { return false }
func (emptyAllocator) IsDefaultValue(rtvalue.Value) bool { return false }
