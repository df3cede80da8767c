package testkit

import (
	"testing"

	"arrayrt/internal/rtvalue"
	"arrayrt/internal/store"
)

func TestCheckLeastShape(t *testing.T) {
	s := store.NewLongStore(3)
	s.Write(0, rtvalue.Int64(1))
	s.Write(1, rtvalue.Int64(1<<40))
	s.Write(2, rtvalue.Int64(2))
	if err := CheckLeastShape(s, 3); err != nil {
		t.Fatalf("CheckLeastShape: %v", err)
	}
}

func TestCheckLeastShapeCatchesOverSpecialisation(t *testing.T) {
	s := store.NewObjectStore(1)
	s.Write(0, rtvalue.Int64(1))
	if err := CheckLeastShape(s, 1); err == nil {
		t.Fatal("expected a violation: Object is not the least shape for a single fitting int")
	}
}

func TestCheckMonotonic(t *testing.T) {
	if err := CheckMonotonic([]store.Shape{store.ShapeEmpty, store.ShapeInt, store.ShapeLong, store.ShapeObject}); err != nil {
		t.Fatalf("CheckMonotonic: %v", err)
	}
	if err := CheckMonotonic([]store.Shape{store.ShapeLong, store.ShapeInt}); err == nil {
		t.Fatal("Long -> Int is a retreat and must be reported")
	}
}

func TestCheckWriteRead(t *testing.T) {
	s := store.NewIntStore(2)
	if err := CheckWriteRead(s, 0, rtvalue.Int64(5)); err != nil {
		t.Fatalf("CheckWriteRead: %v", err)
	}
}

func TestCheckRoundTrip(t *testing.T) {
	s := store.NewIntStore(3)
	s.Write(0, rtvalue.Int64(1))
	s.Write(1, rtvalue.Int64(2))
	rebuild := func(vs []rtvalue.Value) store.Store {
		out := store.NewIntStore(len(vs))
		for i, v := range vs {
			out.Write(i, v)
		}
		return out
	}
	if err := CheckRoundTrip(s, 2, rebuild); err != nil {
		t.Fatalf("CheckRoundTrip: %v", err)
	}
}

func TestCheckEmptyIdentity(t *testing.T) {
	a := store.New(store.ShapeEmpty, 0)
	b := store.AllocatorFor(store.ShapeEmpty).New(0)
	if err := CheckEmptyIdentity(a, b); err != nil {
		t.Fatalf("CheckEmptyIdentity: %v", err)
	}
}
