// Package literalsite implements the fixed-arity literal-array construction
// site: N subexpressions evaluated left-to-right into the tightest store
// shape that fits all of them, re-specialising on the first mismatch and
// remembering the new shape for subsequent executions.
package literalsite

import (
	"context"

	"arrayrt/internal/arrerr"
	"arrayrt/internal/rtvalue"
	"arrayrt/internal/sitectl"
	"arrayrt/internal/store"
	"arrayrt/internal/trace"
)

// Producer supplies the value of one subexpression. Evaluation order and
// side effects are the host runtime's concern; the site only requires that
// calling Producer N times, in order, yields the N literal elements.
type Producer func(index int) rtvalue.Value

// Site is a single literal-array call site: an uninitialised-or-specialised
// slot that self-modifies toward ever-wider shapes, never back. Zero value
// is not usable; use New.
type Site struct {
	slot   *sitectl.Slot
	tracer trace.Tracer
}

// New returns a freshly uninitialised literal site.
func New() *Site {
	return &Site{slot: sitectl.NewSlot(), tracer: trace.Nop}
}

// SetTracer attaches a tracer for specialisation diagnostics; the default is
// a no-op tracer.
func (s *Site) SetTracer(t trace.Tracer) {
	if t == nil {
		t = trace.Nop
	}
	s.tracer = t
}

// Result is what a literal-array evaluation hands back to the allocator
// collaborator: a finished store plus its logical length.
type Result struct {
	Store  store.Store
	Length int
}

// Build evaluates the n subexpressions sourced from produce and returns the
// store they belong in, installing or widening this site's specialisation
// as needed. ctx is used only for tracing.
func (s *Site) Build(ctx context.Context, n int, produce Producer) Result {
	span := trace.Begin(s.tracer, trace.ScopeBuild, "literal.build", trace.CurrentSpan(ctx).SpanID)
	defer span.End("")

	if n == 0 {
		s.slot.Commit(store.ShapeEmpty)
		return Result{Store: store.Empty, Length: 0}
	}

	state := s.slot.Load()
	if !state.Initialized {
		return s.buildUninitialized(n, produce)
	}
	return s.buildSpecialized(state.Shape, n, produce)
}

// buildUninitialized handles the site's first execution: evaluate
// everything into a boxed scratch buffer, classify jointly, install the
// winning variant, and return a store already in that shape.
func (s *Site) buildUninitialized(n int, produce Producer) Result {
	values := make([]rtvalue.Value, n)
	for i := 0; i < n; i++ {
		values[i] = produce(i)
	}

	shape := classifyJoint(values)
	// Generalize both installs shape on a clean first commit and, if a
	// concurrent invocation of this same site already committed to
	// something narrower than this call's own values need, widens past it -
	// Commit alone would wrongly freeze on whichever thread won the race.
	winner := s.slot.Generalize(shape)
	s.traceTransition("U", winner)

	return Result{Store: materialize(winner, values), Length: n}
}

// buildSpecialized handles every execution after the first: write unboxed
// while the specialisation holds, and on the first mismatch at
// position k, box the unboxed prefix plus the mismatching value, finish
// evaluating the remaining N-k-1 subexpressions into the boxed buffer, and
// widen the site to Object. Evaluation order is preserved even on failure:
// every subexpression from 0 to n-1 is evaluated exactly once, in order.
func (s *Site) buildSpecialized(shape store.Shape, n int, produce Producer) Result {
	if shape == store.ShapeEmpty {
		// A literal site that committed to Empty only ever sees n==0 again;
		// n>0 here means a different call site shares this Site value, which
		// is a caller bug, not a value mismatch - generalise defensively.
		return s.buildUninitialized(n, produce)
	}

	alloc := store.AllocatorFor(shape)
	buf := alloc.New(n)

	for k := 0; k < n; k++ {
		v := produce(k)
		if buf.Write(k, v) {
			continue
		}
		return s.fallBackToObject(buf, k, v, n, produce)
	}

	return Result{Store: buf, Length: n}
}

// fallBackToObject boxes the already-unboxed prefix
// [0,k), box the mismatching value v at k, evaluate the remaining
// subexpressions (k+1..n-1) straight into the boxed buffer, and widen the
// site to Object so future executions skip the primitive attempt entirely.
func (s *Site) fallBackToObject(prefix store.Store, k int, v rtvalue.Value, n int, produce Producer) Result {
	boxed := prefix.Expand(n)
	boxed[k] = v
	for i := k + 1; i < n; i++ {
		boxed[i] = produce(i)
	}

	out := store.NewObjectStore(n)
	for i := 0; i < n; i++ {
		out.Write(i, boxed[i])
	}

	widened := s.slot.Generalize(store.ShapeObject)
	s.traceTransition(prefix.Shape().String(), widened)

	return Result{Store: out, Length: n}
}

// Snapshot exposes this site's transition counters for diagnostics.
func (s *Site) Snapshot() sitectl.Stats {
	return s.slot.Snapshot()
}

func (s *Site) traceTransition(from string, to store.Shape) {
	if !s.tracer.Enabled() {
		return
	}
	span := trace.Begin(s.tracer, trace.ScopeTransition, from+"->"+to.String(), 0)
	span.End("")
}

// classifyJoint chooses the tightest shape every
// value in values fits, with integer-to-float promotion permitted for the
// Double case and narrowing-on-demonstrated-fit for the Long case.
func classifyJoint(values []rtvalue.Value) store.Shape {
	allInt32 := true
	allInt64 := true
	allFloatable := true

	for _, v := range values {
		if !v.IsInt32() {
			allInt32 = false
		}
		if !v.IsInt64() {
			allInt64 = false
		}
		if _, ok := v.ToFloat64(); !ok {
			allFloatable = false
		}
	}

	switch {
	case allInt32:
		return store.ShapeInt
	case allInt64:
		return store.ShapeLong
	case allFloatable:
		return store.ShapeDouble
	default:
		return store.ShapeObject
	}
}

// materialize writes already-evaluated values into a freshly allocated
// store of shape, applying the Double path's integer-to-float promotion
// (the Double path's widening rule; ToFloat64 never truncates since classifyJoint only
// chose Double when every value demonstrably converts).
func materialize(shape store.Shape, values []rtvalue.Value) store.Store {
	out := store.New(shape, len(values))
	for i, v := range values {
		if shape == store.ShapeDouble && v.Kind != rtvalue.KindFloat {
			// classifyJoint only chose Double when every value demonstrably
			// converts, so ok is always true here; still check defensively.
			if f, ok := v.ToFloat64(); ok {
				v = rtvalue.Float64(f)
			}
		}
		if !out.Write(i, v) {
			panic(arrerr.RejectedValue(shape, v))
		}
	}
	return out
}
