package field

import "testing"

func TestBitOps(t *testing.T) {
	for _, a := range []bool{false, true} {
		for _, b := range []bool{false, true} {
			x, y := NewBit(a), NewBit(b)
			if got := x.And(y).Bool(); got != (a && b) {
				t.Fatalf("And(%v, %v) = %v", a, b, got)
			}
			if got := x.Or(y).Bool(); got != (a || b) {
				t.Fatalf("Or(%v, %v) = %v", a, b, got)
			}
			if got := x.Xor(y).Bool(); got != (a != b) {
				t.Fatalf("Xor(%v, %v) = %v", a, b, got)
			}
		}
		if got := NewBit(a).Not().Bool(); got == a {
			t.Fatalf("Not(%v) = %v", a, got)
		}
	}
}

func TestBitsRoundTrip(t *testing.T) {
	in := []bool{true, false, true, true}
	bits := Bits(in)
	for i, b := range bits {
		if b.Bool() != in[i] {
			t.Fatalf("bit %d: got %v, want %v", i, b.Bool(), in[i])
		}
	}
}
