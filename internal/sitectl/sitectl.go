// Package sitectl implements the specialisation controller: the state
// machine shared by the literal-array site and the incremental builder. A
// Slot holds a call site's current commitment as a sum type plus an atomic
// reference, so concurrent readers and writers can race on it safely:
// every update is a compare-and-swap that retries on conflict.
package sitectl

import (
	"sync"
	"sync/atomic"

	"arrayrt/internal/store"
)

// State is the controller's current commitment: either uninitialised, or
// one concrete shape of the lattice.
type State struct {
	Initialized bool
	Shape       store.Shape
}

// Uninitialized is the state every Slot begins in.
var Uninitialized = State{}

// edge identifies one lattice transition for the Stats ledger. from is "U"
// for the uninitialised origin (store.Shape has no such marker), or a
// shape's String() otherwise.
type edge struct {
	from string
	to   store.Shape
}

// Slot is the mutable call-site state: the currently chosen shape, or
// uninitialised. It self-modifies by replacing its current State with a
// more general one; replacements never reverse.
type Slot struct {
	cur atomic.Pointer[State]

	mu     sync.Mutex
	counts map[edge]int64
}

// NewSlot returns a freshly uninitialised Slot.
func NewSlot() *Slot {
	sl := &Slot{counts: make(map[edge]int64)}
	sl.cur.Store(&Uninitialized)
	return sl
}

// Load returns the current state. Safe for concurrent use without
// synchronisation beyond the atomic load itself.
func (sl *Slot) Load() State {
	return *sl.cur.Load()
}

// Commit installs shape as the initial specialisation if the slot is still
// uninitialised. It is idempotent and race-safe: if another goroutine
// already committed (to any shape), this call changes nothing and reports
// the winning shape, never retreating.
func (sl *Slot) Commit(shape store.Shape) store.Shape {
	for {
		cur := sl.cur.Load()
		if cur.Initialized {
			return cur.Shape
		}
		next := &State{Initialized: true, Shape: shape}
		if sl.cur.CompareAndSwap(cur, next) {
			sl.record(edge{from: "U", to: shape})
			return shape
		}
		// lost the race; retry against whatever is there now
	}
}

// Generalize widens the slot to the join of its current shape and next,
// installing the join only if it differs from the current commitment.
// Returns the resulting shape. This implements both the S→Object edges and
// the Int→Long edge: Join(Int, Long) == Long, so a single
// call covers both without the caller needing to special-case width.
func (sl *Slot) Generalize(next store.Shape) store.Shape {
	for {
		cur := sl.cur.Load()
		if !cur.Initialized {
			// Generalizing before ever committing behaves like Commit.
			return sl.Commit(next)
		}
		joined := store.Join(cur.Shape, next)
		if joined == cur.Shape {
			return cur.Shape
		}
		candidate := &State{Initialized: true, Shape: joined}
		if sl.cur.CompareAndSwap(cur, candidate) {
			sl.record(edge{from: cur.Shape.String(), to: joined})
			return joined
		}
	}
}

func (sl *Slot) record(e edge) {
	sl.mu.Lock()
	sl.counts[e]++
	sl.mu.Unlock()
}

// Stats is a point-in-time snapshot of transition counts, keyed by
// "From->To" for readability in the bench subcommand and tests.
type Stats struct {
	Transitions map[string]int64
	Total       int64
}

// Snapshot returns the current transition counts.
func (sl *Slot) Snapshot() Stats {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	out := Stats{Transitions: make(map[string]int64, len(sl.counts))}
	for e, n := range sl.counts {
		out.Transitions[e.from+"->"+e.to.String()] = n
		out.Total += n
	}
	return out
}
