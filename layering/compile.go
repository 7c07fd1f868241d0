// Package layering compiles a flat Bristol gate list into a layered
// circuit: a level-synchronous schedule where each layer's gates are
// mutually independent, with a per-layer prune list that releases every
// intermediate wire the moment its last reader has been scheduled.
package layering

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/fhe-go/blayer/bristol"
	"github.com/fhe-go/blayer/layered"
)

type compileContext struct {
	gates     []layered.Gate
	wireCount int

	// wire -> gate indices reading it
	readers [][]int

	// remaining unresolved operands per gate; a gate is ready at zero
	depsRemaining []int

	// gates scheduled so far
	included *bitset.BitSet

	// declared output wires, excluded from pruning
	outputSet *bitset.BitSet
}

// Compile turns a Bristol circuit into its layered form. Construction
// errors (unsupported constants or operators, label mismatches,
// out-of-bound wires) abort compilation entirely; no partial circuit is
// returned.
func Compile(c *bristol.Circuit) (*layered.Circuit, error) {
	if len(c.Info.Constants) != 0 {
		return nil, fmt.Errorf("%w: Bristol constants are not supported", bristol.ErrUnsupportedFeature)
	}

	inputs, err := ioLabels(c.Info.InputNameToWireIndex, c.IOWidths.InputWidths)
	if err != nil {
		return nil, fmt.Errorf("inputs: %w", err)
	}
	outputs, err := ioLabels(c.Info.OutputNameToWireIndex, c.IOWidths.OutputWidths)
	if err != nil {
		return nil, fmt.Errorf("outputs: %w", err)
	}

	gates, err := bristol.Ingest(c.Gates)
	if err != nil {
		return nil, err
	}

	ctx, err := newCompileContext(gates, c.WireCount, outputs)
	if err != nil {
		return nil, err
	}

	return &layered.Circuit{
		WireCount: c.WireCount,
		Inputs:    inputs,
		Outputs:   outputs,
		Layers:    ctx.separateLayers(labelWires(inputs)),
	}, nil
}

func newCompileContext(gates []layered.Gate, wireCount int, outputs []layered.Label) (*compileContext, error) {
	readers, err := buildWireIndex(gates, wireCount)
	if err != nil {
		return nil, err
	}
	deps := make([]int, len(gates))
	for i, g := range gates {
		if g.IsUnary() {
			deps[i] = 1
		} else {
			deps[i] = 2
		}
	}
	outputSet := bitset.New(uint(wireCount))
	for _, label := range outputs {
		for _, w := range label.Wires() {
			outputSet.Set(uint(w))
		}
	}
	return &compileContext{
		gates:         gates,
		wireCount:     wireCount,
		readers:       readers,
		depsRemaining: deps,
		included:      bitset.New(uint(len(gates))),
		outputSet:     outputSet,
	}, nil
}

// separateLayers runs the frontier loop: each pass schedules every gate
// whose last operand was resolved by the previous pass. Iteration order
// is gate/wire order throughout, so the schedule is deterministic.
func (ctx *compileContext) separateLayers(inputWires []int) []layered.Layer {
	var layers []layered.Layer

	frontier := inputWires
	for len(frontier) > 0 {
		var layer layered.Layer
		var nextFrontier []int

		for _, w := range frontier {
			for _, gi := range ctx.readers[w] {
				ctx.depsRemaining[gi]--
				if ctx.depsRemaining[gi] == 0 {
					g := ctx.gates[gi]
					ctx.included.Set(uint(gi))
					nextFrontier = append(nextFrontier, g.Out)
					ctx.collectPrunes(&layer, g)
					layer.Gates = append(layer.Gates, g)
				}
			}
		}

		if len(layer.Gates) == 0 {
			break
		}
		layers = append(layers, layer)
		frontier = nextFrontier
	}

	// postconditions: a failure here means the source gate list was
	// malformed (cyclic, unreachable gates, or unconsumed wires) and no
	// meaningful partial schedule exists
	if ctx.included.Count() != uint(len(ctx.gates)) {
		panic(fmt.Sprintf("layering: %d of %d gates were never scheduled",
			len(ctx.gates)-int(ctx.included.Count()), len(ctx.gates)))
	}
	nbPrunes := 0
	for _, layer := range layers {
		nbPrunes += len(layer.Prunes)
	}
	nbOutputBits := int(ctx.outputSet.Count())
	if nbPrunes != ctx.wireCount-nbOutputBits {
		panic(fmt.Sprintf("layering: pruned %d wires, expected %d", nbPrunes, ctx.wireCount-nbOutputBits))
	}

	return layers
}
