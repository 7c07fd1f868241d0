// Package field provides a boolean algebra over a prime field: bits are
// encoded as the field elements 0 and 1 and the gate operations are the
// usual arithmetizations. It exercises the evaluator with an algebraic
// value type the way an FHE scheme would, without depending on one.
package field

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Bit is a field element constrained to {0, 1}. The set is closed under
// And/Or/Xor/Not, so any circuit evaluated from Bit inputs stays in it.
type Bit struct {
	v fr.Element
}

// NewBit encodes a boolean as a field bit.
func NewBit(b bool) Bit {
	var e fr.Element
	if b {
		e.SetOne()
	}
	return Bit{v: e}
}

// Bits encodes a boolean slice.
func Bits(bits []bool) []Bit {
	out := make([]Bit, len(bits))
	for i, b := range bits {
		out[i] = NewBit(b)
	}
	return out
}

// Bool decodes the bit.
func (a Bit) Bool() bool {
	return a.v.IsOne()
}

// And is a*b.
func (a Bit) And(b Bit) Bit {
	var r fr.Element
	r.Mul(&a.v, &b.v)
	return Bit{v: r}
}

// Or is a+b-ab.
func (a Bit) Or(b Bit) Bit {
	var ab, r fr.Element
	ab.Mul(&a.v, &b.v)
	r.Add(&a.v, &b.v)
	r.Sub(&r, &ab)
	return Bit{v: r}
}

// Xor is a+b-2ab.
func (a Bit) Xor(b Bit) Bit {
	var ab, r fr.Element
	ab.Mul(&a.v, &b.v)
	ab.Double(&ab)
	r.Add(&a.v, &b.v)
	r.Sub(&r, &ab)
	return Bit{v: r}
}

// Not is 1-a.
func (a Bit) Not() Bit {
	var one, r fr.Element
	one.SetOne()
	r.Sub(&one, &a.v)
	return Bit{v: r}
}
