package rtvalue

import "testing"

func TestIsInt32Boundaries(t *testing.T) {
	if !Int64(1 << 30).IsInt32() {
		t.Fatal("1<<30 fits int32")
	}
	if Int64(1 << 40).IsInt32() {
		t.Fatal("1<<40 does not fit int32")
	}
	if !Int64(1 << 40).IsInt64() {
		t.Fatal("1<<40 fits int64")
	}
}

func TestToFloat64Promotion(t *testing.T) {
	f, ok := Int64(7).ToFloat64()
	if !ok || f != 7.0 {
		t.Fatalf("ToFloat64(Int64(7)) = %v, %v", f, ok)
	}
	if _, ok := Boxed("x").ToFloat64(); ok {
		t.Fatal("a boxed value must not convert to float")
	}
}

func TestEqual(t *testing.T) {
	if !Int64(3).Equal(Int64(3)) {
		t.Fatal("equal ints must compare equal")
	}
	if Int64(3).Equal(Float64(3)) {
		t.Fatal("an int and a float of the same magnitude must not compare equal - kinds differ")
	}
	if !Boxed("x").Equal(Boxed("x")) {
		t.Fatal("two identical interned strings must compare equal via ==")
	}
}
