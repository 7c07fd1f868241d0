package bristol

import (
	"fmt"

	"github.com/fhe-go/blayer/layered"
	"github.com/fhe-go/blayer/utils"
)

// below this, chunked fan-out costs more than it saves
const parallelIngestThreshold = 1 << 14

// Ingest maps raw gate records to canonical gates, order-preserving:
// record i becomes gate i. Binary operators read the first two input
// indices, unary operators the first one.
func Ingest(gates []Gate) ([]layered.Gate, error) {
	out := make([]layered.Gate, len(gates))
	errs := make([]error, len(gates))
	work := func(start, stop int) {
		for i := start; i < stop; i++ {
			out[i], errs[i] = ingestGate(gates[i], i)
		}
	}
	if len(gates) < parallelIngestThreshold {
		work(0, len(gates))
	} else {
		utils.Parallelize(len(gates), work)
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func ingestGate(g Gate, i int) (layered.Gate, error) {
	var op layered.Op
	switch g.Op {
	case "AND":
		op = layered.And
	case "OR":
		op = layered.Or
	case "XOR":
		op = layered.Xor
	case "NOT":
		op = layered.Not
	case "COPY":
		op = layered.Copy
	default:
		return layered.Gate{}, fmt.Errorf("%w: %q at gate %d", ErrUnsupportedOp, g.Op, i)
	}

	nbIn := 2
	if op.IsUnary() {
		nbIn = 1
	}
	if len(g.Inputs) < nbIn {
		return layered.Gate{}, fmt.Errorf("gate %d: %s needs %d inputs, has %d", i, g.Op, nbIn, len(g.Inputs))
	}
	if len(g.Outputs) < 1 {
		return layered.Gate{}, fmt.Errorf("gate %d: %s has no output", i, g.Op)
	}

	cg := layered.Gate{Op: op, In0: g.Inputs[0], Out: g.Outputs[0]}
	if !op.IsUnary() {
		cg.In1 = g.Inputs[1]
	}
	return cg, nil
}
