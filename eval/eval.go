// Package eval interprets a layered circuit over any value type carrying
// the four boolean-algebra operations. The same code path serves
// cleartext booleans and FHE ciphertext handles; gates within a layer
// are computed in parallel and the wire table is only mutated at layer
// boundaries, so the live-value footprint follows the prune schedule.
package eval

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/bits-and-blooms/bitset"
	"golang.org/x/sync/errgroup"

	"github.com/fhe-go/blayer/layered"
	"github.com/fhe-go/blayer/utils"
)

var (
	ErrMissingInput        = errors.New("missing input")
	ErrInputLengthMismatch = errors.New("input length mismatch")
	ErrMissingWireValue    = errors.New("missing wire value")
)

// BooleanOps is the capability a wire value type must provide.
// Implementations must not mutate the receiver; values are assumed cheap
// to copy as handles.
type BooleanOps[T any] interface {
	And(T) T
	Or(T) T
	Xor(T) T
	Not() T
}

// Bool is the cleartext implementation of BooleanOps.
type Bool bool

func (a Bool) And(b Bool) Bool { return a && b }
func (a Bool) Or(b Bool) Bool  { return a || b }
func (a Bool) Xor(b Bool) Bool { return a != b }
func (a Bool) Not() Bool       { return !a }

// Bools converts plain booleans to Bool values.
func Bools(bits []bool) []Bool {
	out := make([]Bool, len(bits))
	for i, b := range bits {
		out[i] = Bool(b)
	}
	return out
}

// below this many gates a layer is evaluated on the calling goroutine
const parallelEvalThreshold = 256

// Evaluate runs the layered schedule on the given input assignment and
// returns the output assignment. Input validation failures are reported
// before any computation starts; a missing wire during evaluation is an
// internal-consistency failure that aborts this call only, the circuit
// itself stays valid and reusable.
func Evaluate[T BooleanOps[T]](c *layered.Circuit, inputs map[string][]T) (map[string][]T, error) {
	wires := make([]T, c.WireCount)
	resolved := bitset.New(uint(c.WireCount))

	for _, label := range c.Inputs {
		vals, ok := inputs[label.Name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingInput, label.Name)
		}
		if len(vals) != label.Bits {
			return nil, fmt.Errorf("%w for %s: got %d values, want %d",
				ErrInputLengthMismatch, label.Name, len(vals), label.Bits)
		}
		for i, v := range vals {
			wires[label.Start+i] = v
			resolved.Set(uint(label.Start + i))
		}
	}

	var zero T
	for _, layer := range c.Layers {
		outs := make([]T, len(layer.Gates))

		// fan-out: the table is read-only during the batch, so gates may
		// run concurrently without synchronization
		if len(layer.Gates) < parallelEvalThreshold {
			for i, g := range layer.Gates {
				v, err := evalGate(g, wires, resolved)
				if err != nil {
					return nil, err
				}
				outs[i] = v
			}
		} else {
			var eg errgroup.Group
			for _, r := range utils.ChunkRanges(len(layer.Gates), runtime.NumCPU()) {
				start, stop := r[0], r[1]
				eg.Go(func() error {
					for i := start; i < stop; i++ {
						v, err := evalGate(layer.Gates[i], wires, resolved)
						if err != nil {
							return err
						}
						outs[i] = v
					}
					return nil
				})
			}
			if err := eg.Wait(); err != nil {
				return nil, err
			}
		}

		// fan-in: merge the whole batch, then drop the pruned slots so
		// released values become collectable immediately
		for i, g := range layer.Gates {
			wires[g.Out] = outs[i]
			resolved.Set(uint(g.Out))
		}
		for _, w := range layer.Prunes {
			wires[w] = zero
			resolved.Clear(uint(w))
		}
	}

	outputs := make(map[string][]T, len(c.Outputs))
	for _, label := range c.Outputs {
		vals := make([]T, label.Bits)
		for i := range vals {
			w := label.Start + i
			if !resolved.Test(uint(w)) {
				return nil, fmt.Errorf("%w: output wire %d of %s", ErrMissingWireValue, w, label.Name)
			}
			vals[i] = wires[w]
		}
		outputs[label.Name] = vals
	}
	return outputs, nil
}

func evalGate[T BooleanOps[T]](g layered.Gate, wires []T, resolved *bitset.BitSet) (T, error) {
	var zero T
	if !resolved.Test(uint(g.In0)) {
		return zero, fmt.Errorf("%w: wire %d read by %v", ErrMissingWireValue, g.In0, g)
	}
	a := wires[g.In0]
	switch g.Op {
	case layered.Not:
		return a.Not(), nil
	case layered.Copy:
		return a, nil
	}
	if !resolved.Test(uint(g.In1)) {
		return zero, fmt.Errorf("%w: wire %d read by %v", ErrMissingWireValue, g.In1, g)
	}
	b := wires[g.In1]
	switch g.Op {
	case layered.And:
		return a.And(b), nil
	case layered.Or:
		return a.Or(b), nil
	case layered.Xor:
		return a.Xor(b), nil
	}
	return zero, fmt.Errorf("invalid gate op %d", g.Op)
}
