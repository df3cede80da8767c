package literalsite

import (
	"context"
	"testing"

	"arrayrt/internal/rtvalue"
	"arrayrt/internal/store"
)

func valuesOf(vs ...rtvalue.Value) Producer {
	return func(i int) rtvalue.Value { return vs[i] }
}

func TestEmptyLiteral(t *testing.T) {
	s := New()
	res := s.Build(context.Background(), 0, valuesOf())
	if res.Store != store.Empty || res.Length != 0 {
		t.Fatalf("Build(0) = %+v, want the Empty sentinel", res)
	}
}

func TestAllIntSpecialisesToInt(t *testing.T) {
	s := New()
	res := s.Build(context.Background(), 3, valuesOf(rtvalue.Int64(1), rtvalue.Int64(2), rtvalue.Int64(3)))
	if res.Store.Shape() != store.ShapeInt {
		t.Fatalf("shape = %s, want Int", res.Store.Shape())
	}
}

func TestMixedIntFloatSpecialisesToDouble(t *testing.T) {
	s := New()
	res := s.Build(context.Background(), 2, valuesOf(rtvalue.Int64(1), rtvalue.Float64(2.5)))
	if res.Store.Shape() != store.ShapeDouble {
		t.Fatalf("shape = %s, want Double", res.Store.Shape())
	}
	if got := res.Store.Read(0); got.Kind != rtvalue.KindFloat || got.Float != 1.0 {
		t.Fatalf("Read(0) = %v, want the int promoted to 1.0", got)
	}
}

func TestRepeatedBuildStaysSpecialisedOnMatchingShapes(t *testing.T) {
	s := New()
	build := func() store.Shape {
		return s.Build(context.Background(), 2, valuesOf(rtvalue.Int64(1), rtvalue.Int64(2))).Store.Shape()
	}
	first := build()
	for i := 0; i < 50; i++ {
		if got := build(); got != first {
			t.Fatalf("repeat %d: shape drifted from %s to %s", i, first, got)
		}
	}
	stats := s.Snapshot()
	if stats.Transitions["U->Int"] != 1 {
		t.Fatalf("expected exactly one U->Int transition across 51 builds, got %d", stats.Transitions["U->Int"])
	}
}

func TestMismatchWidensToObjectPreservingOrder(t *testing.T) {
	s := New()
	s.Build(context.Background(), 2, valuesOf(rtvalue.Int64(1), rtvalue.Int64(2)))

	var order []int
	producer := func(i int) rtvalue.Value {
		order = append(order, i)
		if i == 1 {
			return rtvalue.Boxed("oops")
		}
		return rtvalue.Int64(int64(i))
	}

	res := s.Build(context.Background(), 3, producer)
	if res.Store.Shape() != store.ShapeObject {
		t.Fatalf("shape = %s, want Object after a mismatch", res.Store.Shape())
	}
	for i, idx := range order {
		if idx != i {
			t.Fatalf("evaluation order violated: got %v, want [0,1,2]", order)
		}
	}
	if res.Store.Read(0).Int != 0 || res.Store.Read(2).Int != 2 {
		t.Fatalf("boxed prefix/suffix values corrupted: %v / %v", res.Store.Read(0), res.Store.Read(2))
	}
}
