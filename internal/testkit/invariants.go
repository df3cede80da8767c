// Package testkit provides invariant checkers for the array-storage
// engine's testable properties, in the style of an ast/source
// span-invariant checker: plain functions returning a descriptive error on
// the first violation, meant to be called from table tests rather than
// asserted inline.
package testkit

import (
	"fmt"

	"arrayrt/internal/rtvalue"
	"arrayrt/internal/store"
)

// ShapeOf returns the tightest primitive or Object shape a single value
// needs, reusing the Empty sentinel's classifier rather than duplicating
// it - CheckLeastShape needs this to compute the least accepting shape.
func ShapeOf(v rtvalue.Value) store.Shape {
	return store.Empty.GeneralizeForValue(v).Shape()
}

// CheckLeastShape verifies that, for a completed build, the resulting
// store's shape is the least lattice element that accepts every value
// actually inserted (the join of ShapeOf over all length values).
func CheckLeastShape(s store.Store, length int) error {
	want := store.ShapeEmpty
	for i := 0; i < length; i++ {
		want = store.Join(want, ShapeOf(s.Read(i)))
	}
	if s.Shape() != want {
		return fmt.Errorf("least-shape violation: store is %s, values jointly need %s", s.Shape(), want)
	}
	return nil
}

// CheckMonotonic verifies that a recorded sequence of per-site
// specialisation shapes never retreats - every step's join with the
// previous step equals the current step.
func CheckMonotonic(history []store.Shape) error {
	for i := 1; i < len(history); i++ {
		prev, cur := history[i-1], history[i]
		if store.Join(prev, cur) != cur {
			return fmt.Errorf("monotonicity violation at step %d: %s -> %s is not a widening", i, prev, cur)
		}
	}
	return nil
}

// CheckWriteRead verifies that read(write(s,i,v),i) == v whenever
// accepts(s,v); for non-accepting values the caller is expected to have
// already generalised s (this checker only verifies the post-generalisation
// equation, since the engine never writes a rejected value into a store
// that still rejects it).
func CheckWriteRead(s store.Store, i int, v rtvalue.Value) error {
	if !s.Write(i, v) {
		return fmt.Errorf("write-read violation: store shape %s rejected value %s at index %d after generalisation", s.Shape(), v, i)
	}
	got := s.Read(i)
	if !got.Equal(v) {
		return fmt.Errorf("write-read violation: wrote %s, read back %s at index %d", v, got, i)
	}
	return nil
}

// CheckRoundTrip verifies that BoxedCopyOfRange(0, length) followed by
// re-insertion through rebuild yields a store of the same shape and equal
// content.
func CheckRoundTrip(s store.Store, length int, rebuild func([]rtvalue.Value) store.Store) error {
	boxed := s.BoxedCopyOfRange(0, length)
	rebuilt := rebuild(boxed)
	if rebuilt.Shape() != s.Shape() {
		return fmt.Errorf("round-trip violation: original shape %s, rebuilt shape %s", s.Shape(), rebuilt.Shape())
	}
	if rebuilt.Len() != length {
		return fmt.Errorf("round-trip violation: original length %d, rebuilt length %d", length, rebuilt.Len())
	}
	for i := 0; i < length; i++ {
		if !rebuilt.Read(i).Equal(s.Read(i)) {
			return fmt.Errorf("round-trip violation at index %d: got %s, want %s", i, rebuilt.Read(i), s.Read(i))
		}
	}
	return nil
}

// CheckEmptyIdentity verifies that the empty sentinel is reference-identical
// across all zero-length constructions.
func CheckEmptyIdentity(a, b store.Store) error {
	if a != store.Empty || b != store.Empty {
		return fmt.Errorf("empty-identity violation: zero-length stores must both equal store.Empty")
	}
	return nil
}
