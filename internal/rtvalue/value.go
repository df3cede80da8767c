// Package rtvalue models the dynamically typed runtime values that flow
// through array construction: the opaque producer output the engine
// classifies and, where possible, stores unboxed.
package rtvalue

import (
	"fmt"
	"math"
)

// Kind identifies the runtime shape of a Value.
type Kind uint8

const (
	// KindInvalid is the zero Value; never produced by a well-behaved producer.
	KindInvalid Kind = iota
	// KindInt holds a signed integer in Int, regardless of whether it fits 32 bits.
	KindInt
	// KindFloat holds an IEEE-754 double in Float.
	KindFloat
	// KindBoxed holds an arbitrary value in Box - anything the other kinds can't represent.
	KindBoxed
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBoxed:
		return "boxed"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Value is an opaque runtime value classifiable into {int32-fits, int64-fits, float, other}.
type Value struct {
	Kind  Kind
	Int   int64
	Float float64
	Box   any
}

// Int64 wraps a 64-bit signed integer, classified as KindInt regardless of width.
func Int64(v int64) Value { return Value{Kind: KindInt, Int: v} }

// Int32 wraps a value already known to fit 32 bits.
func Int32(v int32) Value { return Int64(int64(v)) }

// Float64 wraps an IEEE-754 double.
func Float64(v float64) Value { return Value{Kind: KindFloat, Float: v} }

// Boxed wraps any other runtime value that isn't an int or a float.
func Boxed(v any) Value { return Value{Kind: KindBoxed, Box: v} }

// IsZero reports whether this is an uninitialized Value.
func (v Value) IsZero() bool { return v.Kind == KindInvalid }

// FitsInt32 reports whether n is representable as a signed 32-bit integer.
func FitsInt32(n int64) bool { return n >= math.MinInt32 && n <= math.MaxInt32 }

// IsInt32 reports whether v is an integer that fits 32 bits without narrowing.
func (v Value) IsInt32() bool { return v.Kind == KindInt && FitsInt32(v.Int) }

// IsInt64 reports whether v is an integer value of any width up to 64 bits.
func (v Value) IsInt64() bool { return v.Kind == KindInt }

// IsFloat reports whether v is a double.
func (v Value) IsFloat() bool { return v.Kind == KindFloat }

// ToFloat64 coerces v to a double, as used by the literal Double path.
// Integer values are promoted exactly; an integer that float64 cannot
// represent exactly reports ok=false rather than being rounded.
func (v Value) ToFloat64() (float64, bool) {
	switch v.Kind {
	case KindFloat:
		return v.Float, true
	case KindInt:
		f := float64(v.Int)
		if f >= 1<<63 || int64(f) != v.Int {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Equal reports value equality used by round-trip tests.
func (a Value) Equal(b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindInt:
		return a.Int == b.Int
	case KindFloat:
		return a.Float == b.Float
	case KindBoxed:
		return a.Box == b.Box
	default:
		return true
	}
}

// String renders a Value for diagnostics and the inspector TUI.
func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return fmt.Sprintf("%d", v.Int)
	case KindFloat:
		return fmt.Sprintf("%g", v.Float)
	case KindBoxed:
		return fmt.Sprintf("%v", v.Box)
	default:
		return "<invalid>"
	}
}
