package rtarray

import (
	"testing"

	"arrayrt/internal/rtvalue"
	"arrayrt/internal/store"
)

func TestAllocateClassifiesTightestShape(t *testing.T) {
	a := NewAllocator()
	arr := a.Allocate([]rtvalue.Value{rtvalue.Int64(1), rtvalue.Int64(2), rtvalue.Int64(3)})
	if arr.Shape() != store.ShapeInt {
		t.Fatalf("Shape() = %s, want Int", arr.Shape())
	}
	if arr.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", arr.Len())
	}
	if arr.At(1).Int != 2 {
		t.Fatalf("At(1) = %+v, want Int=2", arr.At(1))
	}
}

func TestAllocateReusesAndWidensSite(t *testing.T) {
	a := NewAllocator()
	a.Allocate([]rtvalue.Value{rtvalue.Int64(1), rtvalue.Int64(2)})
	arr := a.Allocate([]rtvalue.Value{rtvalue.Int64(1), rtvalue.Boxed("x")})
	if arr.Shape() != store.ShapeObject {
		t.Fatalf("Shape() = %s, want Object after a mismatching second allocation", arr.Shape())
	}

	stats := a.Snapshot()
	if stats.Total == 0 {
		t.Fatal("Snapshot() must record at least the U->Int and widening transitions")
	}
}

func TestAllocateEmpty(t *testing.T) {
	a := NewAllocator()
	arr := a.Allocate(nil)
	if arr.Shape() != store.ShapeEmpty || arr.Len() != 0 {
		t.Fatalf("Allocate(nil) = shape %s len %d, want Empty 0", arr.Shape(), arr.Len())
	}
}
