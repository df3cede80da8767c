package store

import (
	"testing"

	"arrayrt/internal/rtvalue"
)

func TestJoinLattice(t *testing.T) {
	cases := []struct {
		a, b, want Shape
	}{
		{ShapeEmpty, ShapeInt, ShapeInt},
		{ShapeInt, ShapeEmpty, ShapeInt},
		{ShapeInt, ShapeLong, ShapeLong},
		{ShapeLong, ShapeInt, ShapeLong},
		{ShapeInt, ShapeDouble, ShapeObject},
		{ShapeLong, ShapeDouble, ShapeObject},
		{ShapeDouble, ShapeDouble, ShapeDouble},
		{ShapeObject, ShapeInt, ShapeObject},
		{ShapeInt, ShapeInt, ShapeInt},
	}
	for _, c := range cases {
		if got := Join(c.a, c.b); got != c.want {
			t.Errorf("Join(%s, %s) = %s, want %s", c.a, c.b, got, c.want)
		}
	}
}

func TestIntStoreWriteRejectsOutOfRange(t *testing.T) {
	s := NewIntStore(4)
	if !s.Write(0, rtvalue.Int64(42)) {
		t.Fatal("expected int32-fitting value to be accepted")
	}
	if s.Write(1, rtvalue.Int64(1<<40)) {
		t.Fatal("expected a value that doesn't fit int32 to be rejected")
	}
	if got := s.Read(0); got.Int != 42 {
		t.Fatalf("Read(0) = %v, want 42", got)
	}
}

func TestIntStoreGrows(t *testing.T) {
	s := NewIntStore(2)
	for i := 0; i < 10; i++ {
		if !s.Write(i, rtvalue.Int64(int64(i))) {
			t.Fatalf("write %d failed", i)
		}
	}
	if s.Len() != 10 {
		t.Fatalf("Len() = %d, want 10", s.Len())
	}
	if s.Capacity() < 10 {
		t.Fatalf("Capacity() = %d, want >= 10", s.Capacity())
	}
	for i := 0; i < 10; i++ {
		if s.Read(i).Int != int64(i) {
			t.Fatalf("Read(%d) = %v, want %d", i, s.Read(i), i)
		}
	}
}

func TestDoubleStoreRejectsInt(t *testing.T) {
	s := NewDoubleStore(2)
	if s.Write(0, rtvalue.Int64(3)) {
		t.Fatal("doubleStore.Write must not promote an int - literalsite does that before calling Write")
	}
	if !s.Write(0, rtvalue.Float64(3.5)) {
		t.Fatal("doubleStore.Write must accept a genuine float")
	}
}

func TestObjectStoreAcceptsEverything(t *testing.T) {
	s := NewObjectStore(2)
	if !s.Write(0, rtvalue.Int64(1)) || !s.Write(1, rtvalue.Boxed("x")) {
		t.Fatal("objectStore.Write must accept any value")
	}
}

func TestEmptySentinelSingleton(t *testing.T) {
	a := New(ShapeEmpty, 0)
	b := AllocatorFor(ShapeEmpty).New(5)
	if a != Empty || b != Empty {
		t.Fatal("every Empty-shaped construction must return the same sentinel")
	}
}

func TestEmptyReadPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Read on Empty must panic")
		}
	}()
	Empty.Read(0)
}

func TestGrowCapacityPolicy(t *testing.T) {
	if got := DefaultGrowCapacity(4, 5); got < 5 {
		t.Fatalf("GrowCapacity must satisfy the required size, got %d for required 5", got)
	}
	if got := DefaultGrowCapacity(10, 11); got < 15 {
		t.Fatalf("GrowCapacity(10, 11) = %d, want at least ceil(10*1.5)=15", got)
	}
	if got := GrowCapacity(4, 3, 1, 2); got != 6 {
		t.Fatalf("a misconfigured factor below 1.0 must fall back to 1.5 (ceil(4*1.5)=6), got %d", got)
	}
}

func TestObjectStoreSortMixedKinds(t *testing.T) {
	s := NewObjectStore(4).(*objectStore)
	s.Write(0, rtvalue.Boxed("b"))
	s.Write(1, rtvalue.Int64(5))
	s.Write(2, rtvalue.Float64(1.5))
	s.Write(3, rtvalue.Int64(1))
	s.Sort(4)
	got := s.BoxedCopyOfRange(0, 4)
	wantKinds := []rtvalue.Kind{rtvalue.KindInt, rtvalue.KindInt, rtvalue.KindFloat, rtvalue.KindBoxed}
	for i, k := range wantKinds {
		if got[i].Kind != k {
			t.Fatalf("position %d: kind = %s, want %s", i, got[i].Kind, k)
		}
	}
	if got[0].Int != 1 || got[1].Int != 5 {
		t.Fatalf("ints out of order: %v, %v", got[0], got[1])
	}
}

func TestCopyContentsFastPathSameShape(t *testing.T) {
	src := NewIntStore(3)
	for i := 0; i < 3; i++ {
		src.Write(i, rtvalue.Int64(int64(i+1)))
	}
	dst := NewIntStore(3)
	src.CopyContents(0, dst, 0, 3)
	for i := 0; i < 3; i++ {
		if dst.Read(i).Int != int64(i+1) {
			t.Fatalf("CopyContents mismatch at %d: %v", i, dst.Read(i))
		}
	}
}

func TestCopyContentsWidensOnMismatch(t *testing.T) {
	src := NewObjectStore(2)
	src.Write(0, rtvalue.Boxed("x"))
	src.Write(1, rtvalue.Int64(9))
	dst := NewIntStore(2)
	src.CopyContents(0, dst, 0, 2)
	if dst.Read(1).Int != 9 {
		t.Fatalf("expected element-wise fallback copy to preserve compatible values, got %v", dst.Read(1))
	}
}
