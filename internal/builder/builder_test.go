package builder

import (
	"testing"

	"arrayrt/internal/rtvalue"
	"arrayrt/internal/store"
)

func pushAll(b *Builder, scratchCap int, values ...rtvalue.Value) store.Store {
	s, length := b.Start(scratchCap)
	for _, v := range values {
		s = b.Ensure(s, length+1)
		s = b.AppendValue(s, length, v)
		length++
	}
	return b.Finish(s, length)
}

func TestBuilderAllIntFinishesAsInt(t *testing.T) {
	b := New()
	out := pushAll(b, 4, rtvalue.Int64(1), rtvalue.Int64(2), rtvalue.Int64(3))
	if out.Shape() != store.ShapeInt {
		t.Fatalf("shape = %s, want Int", out.Shape())
	}
	if out.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", out.Len())
	}
}

func TestBuilderMixedTypesFinishesAsObject(t *testing.T) {
	b := New()
	out := pushAll(b, 4, rtvalue.Int64(1), rtvalue.Boxed("x"))
	if out.Shape() != store.ShapeObject {
		t.Fatalf("shape = %s, want Object", out.Shape())
	}
}

func TestBuilderLearnsExpectedLength(t *testing.T) {
	b := New()
	pushAll(b, 4, rtvalue.Int64(1), rtvalue.Int64(2), rtvalue.Int64(3))

	s, length := b.Start(4)
	if _, ok := s.(*scratch); ok {
		t.Fatal("a specialised site must not start back in scratch")
	}
	if s.Capacity() < b.expected {
		t.Fatalf("Start after specialisation should pre-size to the learned length %d, got capacity %d", b.expected, s.Capacity())
	}
	_ = length
}

func TestBuilderDespecialisesWhenLongerThanLearned(t *testing.T) {
	b := New()
	pushAll(b, 4, rtvalue.Int64(1), rtvalue.Int64(2))

	s, _ := b.StartLength(4, 10)
	if _, ok := s.(*scratch); !ok {
		t.Fatal("requesting a length beyond what was learned must despecialise back to scratch")
	}
}

func TestBuilderAppendArrayWidensOnShapeMismatch(t *testing.T) {
	b := New()
	s, length := b.Start(4)
	s = b.Ensure(s, length+1)
	s = b.AppendValue(s, length, rtvalue.Int64(1))
	length++

	other := store.NewDoubleStore(2)
	other.Write(0, rtvalue.Float64(2.5))
	other.Write(1, rtvalue.Float64(3.5))

	s = b.Ensure(s, length+other.Len())
	s = b.AppendArray(s, length, other)
	length += other.Len()

	out := b.Finish(s, length)
	if out.Shape() != store.ShapeObject {
		t.Fatalf("appending Double values into an Int-fed scratch buffer should classify as Object, got %s", out.Shape())
	}
}

func TestBuilderIntThenDoubleFinishesAsObject(t *testing.T) {
	b := New()
	out := pushAll(b, 4, rtvalue.Int64(1), rtvalue.Float64(1.5))
	if out.Shape() != store.ShapeObject {
		t.Fatalf("shape = %s, want Object: the builder's Double path rejects int values outright, it does not promote them", out.Shape())
	}
}

func TestBuilderAppendIntArrayThenDoubleFinishesAsObject(t *testing.T) {
	b := New()
	s, length := b.Start(4)

	ints := store.NewIntStore(2)
	ints.Write(0, rtvalue.Int32(1))
	ints.Write(1, rtvalue.Int32(2))
	s = b.Ensure(s, length+ints.Len())
	s = b.AppendArray(s, length, ints)
	length += ints.Len()

	doubles := store.NewDoubleStore(1)
	doubles.Write(0, rtvalue.Float64(2.5))
	s = b.Ensure(s, length+doubles.Len())
	s = b.AppendArray(s, length, doubles)
	length += doubles.Len()

	out := b.Finish(s, length)
	if out.Shape() != store.ShapeObject {
		t.Fatalf("shape = %s, want Object: bulk-appending an Int array disqualifies Double the same way a single int push does", out.Shape())
	}
}

func TestBuilderAppendArrayMarksSeenShape(t *testing.T) {
	b := New()
	s, length := b.Start(4)
	s = b.Ensure(s, length+1)
	s = b.AppendValue(s, length, rtvalue.Boxed("x"))
	length++
	out := b.Finish(s, length)
	if out.Shape() != store.ShapeObject {
		t.Fatalf("setup: shape = %s, want Object", out.Shape())
	}

	s, length = b.Start(4)
	s = b.Ensure(s, length+1)
	s = b.AppendValue(s, length, rtvalue.Boxed("y"))
	length++

	ints := store.NewIntStore(2)
	ints.Write(0, rtvalue.Int32(1))
	ints.Write(1, rtvalue.Int32(2))

	s = b.Ensure(s, length+ints.Len())
	s = b.AppendArray(s, length, ints)
	length += ints.Len()
	o, ok := store.AsObjectStore(s)
	if !ok {
		t.Fatal("an already-Object-specialised builder must keep appending into an *objectStore")
	}
	if !o.Seen(store.ShapeInt) {
		t.Fatal("AppendArray must mark the source shape as seen after absorbing it")
	}

	s = b.Ensure(s, length+ints.Len())
	s = b.AppendArray(s, length, ints)
	length += ints.Len()

	out = b.Finish(s, length)
	if out.Shape() != store.ShapeObject || out.Len() != length {
		t.Fatalf("shape = %s len = %d, want Object len %d", out.Shape(), out.Len(), length)
	}
}

func TestEnsureIsIdentityWhenNoGrowthNeeded(t *testing.T) {
	b := New()
	s, length := b.Start(8)
	next := b.Ensure(s, length+1)
	if next != s {
		t.Fatal("Ensure must return the same store when capacity already suffices")
	}
}
