// Package trace provides a tracing subsystem for the array-storage engine.
//
// The trace package records specialisation activity to help diagnose
// unexpected boxing or repeated transitions. The engine emits a span for
// every lattice transition (literal sites and builders) and for every
// literal-site build; it emits no ScopeSite or ScopeElement events, so
// site creation and individual element writes are not traced.
//
// # Architecture
//
// The package provides several tracer implementations:
//
//   - NopTracer: Zero-overhead no-op tracer when disabled
//   - StreamTracer: Immediate write to output (file/stderr)
//   - RingTracer: Circular buffer for crash dumps
//   - MultiTracer: Combines multiple tracers
//
// # Levels
//
// Tracing verbosity is controlled by levels:
//
//   - LevelOff: No tracing
//   - LevelError: Only crash dumps
//   - LevelPhase: Site and transition boundaries
//   - LevelDetail: Build-level events
//   - LevelDebug: Everything including element writes
//
// # Scopes
//
// Events are categorized by scope:
//
//   - ScopeSite: A literal site or builder boundary
//   - ScopeTransition: A lattice transition (U→S, S→Object, Int→Long)
//   - ScopeBuild: One construction (a literal execution or a builder run)
//   - ScopeElement: One value write (debug-level only)
//
// # Context Propagation
//
// Tracers are propagated via context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeBuild, "literal", parentID)
//	defer span.End("")
package trace
