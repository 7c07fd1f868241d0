// Package layered defines the layered form of a boolean circuit: an
// ordered sequence of layers, where every gate in a layer depends only on
// wires resolved by earlier layers or by the primary inputs, plus a prune
// list per layer of wires that are never read again.
package layered

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Op is a boolean gate operation.
type Op uint8

const (
	And Op = iota
	Or
	Xor
	Not
	Copy
)

func (op Op) String() string {
	switch op {
	case And:
		return "AND"
	case Or:
		return "OR"
	case Xor:
		return "XOR"
	case Not:
		return "NOT"
	case Copy:
		return "COPY"
	}
	return fmt.Sprintf("Op(%d)", uint8(op))
}

// IsUnary reports whether the operation reads a single wire.
func (op Op) IsUnary() bool {
	return op == Not || op == Copy
}

// Gate is one boolean operation over wire indices. Unary gates (NOT,
// COPY) use In0 only.
type Gate struct {
	Op  Op
	In0 int
	In1 int
	Out int
}

func (g Gate) IsUnary() bool {
	return g.Op.IsUnary()
}

// Inputs returns the operand wires of the gate.
func (g Gate) Inputs() []int {
	if g.IsUnary() {
		return []int{g.In0}
	}
	return []int{g.In0, g.In1}
}

func (g Gate) String() string {
	if g.IsUnary() {
		return fmt.Sprintf("w%d = %s(w%d)", g.Out, g.Op, g.In0)
	}
	return fmt.Sprintf("w%d = %s(w%d, w%d)", g.Out, g.Op, g.In0, g.In1)
}

// Label is a named contiguous wire range [Start, Start+Bits), used for
// both circuit inputs and outputs.
type Label struct {
	Name  string
	Start int
	Bits  int
}

// Wires expands the label to its absolute wire indices.
func (l Label) Wires() []int {
	w := make([]int, l.Bits)
	for i := range w {
		w[i] = l.Start + i
	}
	return w
}

// Layer is one scheduling step: gates that became ready together, and
// the wires whose last reader has now been scheduled.
type Layer struct {
	Gates  []Gate
	Prunes []int
}

// Circuit is the layered schedule. It is immutable after construction
// and may be evaluated concurrently by independent callers.
type Circuit struct {
	WireCount int
	Inputs    []Label
	Outputs   []Label
	Layers    []Layer
}

// NbGates returns the total gate count across all layers.
func (c *Circuit) NbGates() int {
	n := 0
	for _, l := range c.Layers {
		n += len(l.Gates)
	}
	return n
}

// InputWires returns the set of primary input wires.
func (c *Circuit) InputWires() *bitset.BitSet {
	s := bitset.New(uint(c.WireCount))
	for _, label := range c.Inputs {
		for _, w := range label.Wires() {
			s.Set(uint(w))
		}
	}
	return s
}

// OutputWires returns the set of declared output wires.
func (c *Circuit) OutputWires() *bitset.BitSet {
	s := bitset.New(uint(c.WireCount))
	for _, label := range c.Outputs {
		for _, w := range label.Wires() {
			s.Set(uint(w))
		}
	}
	return s
}

// Validate checks every structural invariant of the schedule: wire
// indices in range, single-assignment outputs, operands resolved
// strictly before the layer that reads them, every wire pruned at most
// once, declared outputs never pruned, and the prune total accounting
// for every non-output wire.
func Validate(c *Circuit) error {
	labels := make([]Label, 0, len(c.Inputs)+len(c.Outputs))
	labels = append(labels, c.Inputs...)
	labels = append(labels, c.Outputs...)
	for _, label := range labels {
		if label.Bits <= 0 {
			return fmt.Errorf("label %s has width %d", label.Name, label.Bits)
		}
		if label.Start < 0 || label.Start+label.Bits > c.WireCount {
			return fmt.Errorf("label %s range [%d, %d) out of bound %d",
				label.Name, label.Start, label.Start+label.Bits, c.WireCount)
		}
	}

	resolved := c.InputWires()
	outputSet := c.OutputWires()
	pruned := bitset.New(uint(c.WireCount))

	pruneTotal := 0
	for li, layer := range c.Layers {
		// operands must be live before any of this layer's writes land
		for _, g := range layer.Gates {
			for _, in := range g.Inputs() {
				if in < 0 || in >= c.WireCount {
					return fmt.Errorf("layer %d gate %v operand out of bound", li, g)
				}
				if !resolved.Test(uint(in)) {
					return fmt.Errorf("layer %d gate %v reads unresolved wire %d", li, g, in)
				}
				if pruned.Test(uint(in)) {
					return fmt.Errorf("layer %d gate %v reads pruned wire %d", li, g, in)
				}
			}
			if g.Out < 0 || g.Out >= c.WireCount {
				return fmt.Errorf("layer %d gate %v output out of bound", li, g)
			}
		}
		for _, g := range layer.Gates {
			if resolved.Test(uint(g.Out)) {
				return fmt.Errorf("layer %d gate %v writes wire %d twice", li, g, g.Out)
			}
			resolved.Set(uint(g.Out))
		}
		for _, w := range layer.Prunes {
			if w < 0 || w >= c.WireCount {
				return fmt.Errorf("layer %d prunes out of bound wire %d", li, w)
			}
			if outputSet.Test(uint(w)) {
				return fmt.Errorf("layer %d prunes output wire %d", li, w)
			}
			if !resolved.Test(uint(w)) {
				return fmt.Errorf("layer %d prunes unresolved wire %d", li, w)
			}
			if pruned.Test(uint(w)) {
				return fmt.Errorf("layer %d prunes wire %d twice", li, w)
			}
			pruned.Set(uint(w))
			pruneTotal++
		}
	}

	nbOutputBits := 0
	for _, label := range c.Outputs {
		nbOutputBits += label.Bits
		for _, w := range label.Wires() {
			if !resolved.Test(uint(w)) {
				return fmt.Errorf("output wire %d of %s is never resolved", w, label.Name)
			}
		}
	}
	if pruneTotal != c.WireCount-nbOutputBits {
		return fmt.Errorf("pruned %d wires, expected %d", pruneTotal, c.WireCount-nbOutputBits)
	}
	return nil
}
