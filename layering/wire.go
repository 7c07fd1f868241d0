package layering

import (
	"fmt"

	"github.com/fhe-go/blayer/layered"
)

// buildWireIndex builds the dense reverse index wire -> reading gate
// indices. A gate reading the same wire through both operands appears
// twice, so that the per-gate dependency counter matches the operand
// count exactly.
func buildWireIndex(gates []layered.Gate, wireCount int) ([][]int, error) {
	counts := make([]int, wireCount)
	for i, g := range gates {
		for _, in := range g.Inputs() {
			if in < 0 || in >= wireCount {
				return nil, fmt.Errorf("gate %d operand wire %d out of bound %d", i, in, wireCount)
			}
			counts[in]++
		}
		if g.Out < 0 || g.Out >= wireCount {
			return nil, fmt.Errorf("gate %d output wire %d out of bound %d", i, g.Out, wireCount)
		}
	}
	readers := make([][]int, wireCount)
	for w, n := range counts {
		if n > 0 {
			readers[w] = make([]int, 0, n)
		}
	}
	for i, g := range gates {
		readers[g.In0] = append(readers[g.In0], i)
		if !g.IsUnary() {
			readers[g.In1] = append(readers[g.In1], i)
		}
	}
	return readers, nil
}

// releaseWire adds w to the layer's prune list if every gate reading it
// has been scheduled. Declared output wires are never released; they
// must survive until final read-out.
func (ctx *compileContext) releaseWire(layer *layered.Layer, w int) {
	if ctx.outputSet.Test(uint(w)) {
		return
	}
	for _, gi := range ctx.readers[w] {
		if !ctx.included.Test(uint(gi)) {
			return
		}
	}
	layer.Prunes = append(layer.Prunes, w)
}

// collectPrunes releases the operand wires of a just-scheduled gate. A
// binary gate reading the same wire twice releases it once.
func (ctx *compileContext) collectPrunes(layer *layered.Layer, g layered.Gate) {
	ctx.releaseWire(layer, g.In0)
	if !g.IsUnary() && g.In1 != g.In0 {
		ctx.releaseWire(layer, g.In1)
	}
}
