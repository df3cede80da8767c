// Package rtarray provides a standalone array allocator: a minimal handle
// wrapping a finished store plus its logical length, so the specialising
// engine is runnable and testable on its own rather than only as a library
// embedded behind a host runtime's own array-literal bytecode. Modeled on
// a VM heap's array allocator, which plays the same role - handing back a
// handle to a freshly allocated array object.
package rtarray

import (
	"context"

	"arrayrt/internal/literalsite"
	"arrayrt/internal/rtvalue"
	"arrayrt/internal/sitectl"
	"arrayrt/internal/store"
	"arrayrt/internal/trace"
)

// Array is a finished, allocated array: an opaque store plus its logical
// length. The standalone equivalent of a heap array handle.
type Array struct {
	store  store.Store
	length int
}

// Len returns the array's logical length.
func (a *Array) Len() int { return a.length }

// Shape returns the concrete store shape this array specialised to.
func (a *Array) Shape() store.Shape { return a.store.Shape() }

// At returns the value at index i.
func (a *Array) At(i int) rtvalue.Value { return a.store.Read(i) }

// Store exposes the underlying store for callers that need direct access,
// such as the snapshot exporter.
func (a *Array) Store() store.Store { return a.store }

// Allocator is a reusable allocation site: repeated Allocate calls reuse
// and re-specialise a single underlying literal-array site, the same way a
// host runtime's array-literal instruction reuses its call site across loop
// iterations instead of reclassifying from scratch every time.
type Allocator struct {
	site *literalsite.Site
}

// NewAllocator returns a fresh allocator backed by an uninitialised site.
func NewAllocator() *Allocator {
	return &Allocator{site: literalsite.New()}
}

// SetTracer attaches a tracer to the underlying site for specialisation
// diagnostics.
func (a *Allocator) SetTracer(t trace.Tracer) {
	a.site.SetTracer(t)
}

// Allocate is the allocate(store, size) -> array operation: it evaluates
// values left-to-right into this allocator's site, installing or widening
// the site's specialisation as needed, and returns the resulting Array.
func (a *Allocator) Allocate(values []rtvalue.Value) *Array {
	result := a.site.Build(context.Background(), len(values), func(i int) rtvalue.Value {
		return values[i]
	})
	return &Array{store: result.Store, length: result.Length}
}

// Snapshot exposes the underlying site's transition counters, useful for an
// embedder reporting how often a given allocation point de-optimises.
func (a *Allocator) Snapshot() sitectl.Stats {
	return a.site.Snapshot()
}
