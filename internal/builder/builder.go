// Package builder implements the dynamic-arity incremental array builder:
// begins in a boxed scratch buffer, speculates on the tightest shape that
// fits every pushed value and pushed source store, and finalises into a
// complete array store. Every operation takes the current opaque store plus
// its logical length as explicit arguments - the builder does not own the
// store between calls.
package builder

import (
	"arrayrt/internal/arrerr"
	"arrayrt/internal/rtvalue"
	"arrayrt/internal/sitectl"
	"arrayrt/internal/store"
	"arrayrt/internal/trace"
)

// Builder is the specialisation controller for one incremental-build call
// site, shared across however many builds that site runs over its
// lifetime. expected is the per-site learned length, updated on finish.
type Builder struct {
	slot     *sitectl.Slot
	expected int
	tracer   trace.Tracer
}

// New returns a builder with no learned expected length yet.
func New() *Builder {
	return &Builder{slot: sitectl.NewSlot(), tracer: trace.Nop}
}

// SetTracer attaches a tracer; default is a no-op tracer.
func (b *Builder) SetTracer(t trace.Tracer) {
	if t == nil {
		t = trace.Nop
	}
	b.tracer = t
}

// scratch is the uninitialised-phase store: a boxed buffer plus the three
// sticky classification booleans couldUseInt/couldUseLong/couldUseDouble.
// It is itself the opaque "store" value threaded through
// Start/AppendValue/AppendArray/Finish while the builder hasn't specialised
// yet - the object store it embeds already carries the real boxed buffer, so
// finish() only needs to re-pack, never re-copy into a second buffer.
type scratch struct {
	store.Store // always an *objectStore under the hood (store.NewObjectStore)

	couldUseInt, couldUseLong, couldUseDouble bool
}

func newScratch(capacity int) *scratch {
	return &scratch{
		Store:        store.NewObjectStore(capacity),
		couldUseInt:  true,
		couldUseLong: true,
		couldUseDouble: true,
	}
}

// Start begins a new build with the default scratch capacity
// (ARRAY_UNINITIALIZED_SIZE), or, if this site already specialised, a
// pre-sized primitive buffer of the learned expected length.
func (b *Builder) Start(defaultScratchCapacity int) (store.Store, int) {
	return b.StartLength(defaultScratchCapacity, -1)
}

// StartLength is start(length): an explicit requested length overrides the
// scratch default for the uninitialised phase, or, for a specialised phase,
// triggers de-specialisation back to uninitialised if length exceeds the
// learned expected length.
func (b *Builder) StartLength(defaultScratchCapacity, length int) (store.Store, int) {
	state := b.slot.Load()
	if !state.Initialized {
		cap := defaultScratchCapacity
		if length > cap {
			cap = length
		}
		return newScratch(cap), 0
	}

	if length > b.expected {
		b.despecialize()
		return b.StartLength(defaultScratchCapacity, length)
	}

	size := b.expected
	if length > size {
		size = length
	}
	return store.New(state.Shape, size), 0
}

func (b *Builder) despecialize() {
	b.slot = sitectl.NewSlot()
	b.expected = 0
}

// Ensure is ensure(store, length): grows s if needed, returning it unchanged
// when n <= s.Capacity() - identity when no growth is needed.
func (b *Builder) Ensure(s store.Store, n int) store.Store {
	if n <= s.Capacity() {
		return s
	}
	switch t := s.(type) {
	case *scratch:
		next := store.NewObjectStore(store.DefaultGrowCapacity(s.Capacity(), n))
		t.CopyContents(0, next, 0, t.Len())
		return &scratch{Store: next, couldUseInt: t.couldUseInt, couldUseLong: t.couldUseLong, couldUseDouble: t.couldUseDouble}
	default:
		grown := store.DefaultGrowCapacity(s.Capacity(), n)
		next := store.AllocatorFor(s.Shape()).New(grown)
		s.CopyContents(0, next, 0, s.Len())
		return next
	}
}

// AppendValue is appendValue(store, i, value): writes v at logical index i,
// screening it through the classifier in the uninitialised phase or
// widening to Object in a specialised phase when v doesn't fit.
func (b *Builder) AppendValue(s store.Store, i int, v rtvalue.Value) store.Store {
	if sc, ok := s.(*scratch); ok {
		return b.appendValueScratch(sc, i, v)
	}
	return b.appendValueSpecialized(s, i, v)
}

func (b *Builder) appendValueScratch(sc *scratch, i int, v rtvalue.Value) store.Store {
	if !v.IsInt32() {
		sc.couldUseInt = false
	}
	if !v.IsInt64() {
		sc.couldUseLong = false
	}
	if !v.IsFloat() {
		sc.couldUseDouble = false
	}
	sc.Write(i, v)
	return sc
}

func (b *Builder) appendValueSpecialized(s store.Store, i int, v rtvalue.Value) store.Store {
	if s.Write(i, v) {
		return s
	}
	// Mismatch: box everything written so far, widen the site to Object,
	// retry the write against the boxed buffer.
	boxCap := s.Capacity()
	if i+1 > boxCap {
		boxCap = i + 1
	}
	boxed := s.Expand(boxCap)
	out := store.NewObjectStore(len(boxed))
	for idx := 0; idx < i; idx++ {
		out.Write(idx, boxed[idx])
	}
	widened := b.slot.Generalize(store.ShapeObject)
	b.traceTransition(s.Shape().String(), widened)
	out.Write(i, v)
	return out
}

// AppendArray is appendArray(store, i, otherArray): bulk-appends another
// finished store starting at logical index i, taking the primitive-to-
// primitive fast path when shapes already match and widening via
// GeneralizeForStore otherwise. other must be a finished store (its
// own Len() bounds how much is copied).
func (b *Builder) AppendArray(s store.Store, i int, other store.Store) store.Store {
	if other.Len() == 0 {
		return s
	}

	if sc, ok := s.(*scratch); ok {
		return b.appendArrayScratch(sc, i, other)
	}

	target := s
	if s.Shape() != other.Shape() {
		if o, isObj := store.AsObjectStore(s); isObj && o.Seen(other.Shape()) {
			// Object already absorbed this source shape before; Object is
			// the lattice top, so GeneralizeForStore can only resolve back
			// to Object again - skip the re-check.
		} else {
			widenedAlloc := s.GeneralizeForStore(other)
			if widenedAlloc.Shape() != s.Shape() {
				target = rebox(s, widenedAlloc, i+other.Len())
				widened := b.slot.Generalize(widenedAlloc.Shape())
				b.traceTransition(s.Shape().String(), widened)
			}
			if isObj {
				o.MarkSeen(other.Shape())
			}
		}
	}

	other.CopyContents(0, target, i, other.Len())
	return target
}

func (b *Builder) appendArrayScratch(sc *scratch, i int, other store.Store) store.Store {
	switch other.Shape() {
	case store.ShapeEmpty:
		// nothing to absorb
	case store.ShapeInt:
		sc.couldUseDouble = false
	case store.ShapeLong:
		sc.couldUseInt = false
		sc.couldUseDouble = false
	case store.ShapeDouble:
		sc.couldUseInt = false
		sc.couldUseLong = false
	case store.ShapeObject:
		sc.couldUseInt = false
		sc.couldUseLong = false
		sc.couldUseDouble = false
	default:
		arrerr.UnsupportedShape(other.Shape())
	}
	if o, isObj := store.AsObjectStore(sc.Store); isObj {
		o.MarkSeen(other.Shape())
	}
	other.CopyContents(0, sc.Store, i, other.Len())
	return sc
}

// rebox widens s into a fresh store of alloc's shape, boxing and rewriting
// its existing contents, per GeneralizeForStore's contract.
func rebox(s store.Store, alloc store.Allocator, capacity int) store.Store {
	out := alloc.New(capacity)
	for i := 0; i < s.Len(); i++ {
		out.Write(i, s.Read(i))
	}
	return out
}

// Finish is finish(store, length): returns the final store unchanged, but
// first - if s is still the uninitialised scratch buffer - inspects the
// sticky flags and installs the tightest-shape variant, re-packing
// values into an unboxed buffer when one applies. Also records the learned
// expected length for future Start calls.
func (b *Builder) Finish(s store.Store, length int) store.Store {
	sc, ok := s.(*scratch)
	if !ok {
		b.recordExpected(length)
		return s
	}

	shape := classifyScratch(sc)
	winner := b.slot.Generalize(shape)
	b.traceTransition("U", winner)
	b.recordExpected(length)

	if winner == store.ShapeObject {
		return sc.Store
	}

	out := store.AllocatorFor(winner).New(length)
	for i := 0; i < length; i++ {
		out.Write(i, sc.Read(i))
	}
	return out
}

func (b *Builder) recordExpected(length int) {
	if length > b.expected {
		b.expected = length
	}
}

func (b *Builder) traceTransition(from string, to store.Shape) {
	if !b.tracer.Enabled() {
		return
	}
	span := trace.Begin(b.tracer, trace.ScopeTransition, from+"->"+to.String(), 0)
	span.End("")
}

// classifyScratch inspects the sticky booleans in priority order
// Int < Long < Double < Object, matching the lattice's generality order.
func classifyScratch(sc *scratch) store.Shape {
	switch {
	case sc.couldUseInt:
		return store.ShapeInt
	case sc.couldUseLong:
		return store.ShapeLong
	case sc.couldUseDouble:
		return store.ShapeDouble
	default:
		return store.ShapeObject
	}
}

// Snapshot exposes the controller's transition counters for diagnostics.
func (b *Builder) Snapshot() sitectl.Stats {
	return b.slot.Snapshot()
}
