package test

import (
	"math/rand"

	"github.com/fhe-go/blayer/bristol"
)

type randRange struct {
	l int
	r int
}

func (rr *randRange) sample(r *rand.Rand) int {
	return r.Intn(rr.r-rr.l+1) + rr.l
}

type randomCircuitConfig struct {
	seed    int
	nbIn    randRange
	nbGates randRange
}

// randomCircuit generates a valid single-assignment Bristol circuit:
// every input wire is read by at least one gate, every internal wire is
// either read later or becomes an output, and the gate list is shuffled
// so the scheduler sees it topologically unordered.
//
// Construction works over virtual wire ids (inputs 0..nbIn, gate i
// produces nbIn+i) and renumbers at the end so that the never-read wires
// form the contiguous tail range required for the output label.
func randomCircuit(conf *randomCircuitConfig) *bristol.Circuit {
	rand := rand.New(rand.NewSource(int64(conf.seed)))

	nbIn := conf.nbIn.sample(rand)
	nbGates := conf.nbGates.sample(rand)
	if nbGates < nbIn {
		nbGates = nbIn
	}

	ops := make([]string, nbGates)
	for i := range ops {
		switch r := rand.Intn(10); {
		case r < 3:
			ops[i] = "AND"
		case r < 5:
			ops[i] = "OR"
		case r < 8:
			ops[i] = "XOR"
		case r < 9:
			ops[i] = "NOT"
		default:
			ops[i] = "COPY"
		}
	}

	reads := make([]int, nbIn+nbGates)
	var unread []int
	pickOperand := func(limit int) int {
		// half the time consume a not-yet-read wire so liveness stays
		// interesting; otherwise any resolved wire
		if len(unread) > 0 && rand.Intn(2) == 0 {
			k := rand.Intn(len(unread))
			w := unread[k]
			unread = append(unread[:k], unread[k+1:]...)
			return w
		}
		return rand.Intn(limit)
	}

	gates := make([]bristol.Gate, nbGates)
	for i := 0; i < nbGates; i++ {
		out := nbIn + i
		var in0, in1 int
		if i < nbIn {
			// guarantee every input wire has a reader
			in0 = i
		} else {
			in0 = pickOperand(out)
		}
		g := bristol.Gate{Op: ops[i], Inputs: []int{in0}, Outputs: []int{out}}
		reads[in0]++
		if ops[i] != "NOT" && ops[i] != "COPY" {
			in1 = pickOperand(out)
			g.Inputs = append(g.Inputs, in1)
			reads[in1]++
		}
		gates[i] = g
		if reads[out] == 0 {
			unread = append(unread, out)
		}
		// drop wires that got read meanwhile
		kept := unread[:0]
		for _, w := range unread {
			if reads[w] == 0 {
				kept = append(kept, w)
			}
		}
		unread = kept
	}

	// renumber: inputs stay, read internals next, never-read internals
	// last (they become the outputs)
	wireCount := nbIn + nbGates
	perm := make([]int, wireCount)
	next := nbIn
	for w := 0; w < nbIn; w++ {
		perm[w] = w
	}
	for w := nbIn; w < wireCount; w++ {
		if reads[w] > 0 {
			perm[w] = next
			next++
		}
	}
	outputStart := next
	for w := nbIn; w < wireCount; w++ {
		if reads[w] == 0 {
			perm[w] = next
			next++
		}
	}
	nbOut := wireCount - outputStart

	for i := range gates {
		for j := range gates[i].Inputs {
			gates[i].Inputs[j] = perm[gates[i].Inputs[j]]
		}
		gates[i].Outputs[0] = perm[gates[i].Outputs[0]]
	}
	rand.Shuffle(len(gates), func(i, j int) {
		gates[i], gates[j] = gates[j], gates[i]
	})

	// two input labels to exercise multi-label resolution
	xBits := nbIn / 2
	if xBits == 0 {
		xBits = 1
	}
	info := bristol.CircuitInfo{
		InputNameToWireIndex:  map[string]int{"x": 0},
		OutputNameToWireIndex: map[string]int{"main": outputStart},
	}
	widths := bristol.IOWidths{
		InputWidths:  []int{xBits},
		OutputWidths: []int{nbOut},
	}
	if xBits < nbIn {
		info.InputNameToWireIndex["y"] = xBits
		widths.InputWidths = append(widths.InputWidths, nbIn-xBits)
	}

	return &bristol.Circuit{
		WireCount: wireCount,
		Gates:     gates,
		Info:      info,
		IOWidths:  widths,
	}
}

// randomAssignment draws boolean values for every input label.
func randomAssignment(c *bristol.Circuit, seed int) map[string][]bool {
	rand := rand.New(rand.NewSource(int64(seed)))
	inputs := make(map[string][]bool)
	for name := range c.Info.InputNameToWireIndex {
		bits := make([]bool, c.IOWidths.InputWidths[labelPosition(c, name)])
		for j := range bits {
			bits[j] = rand.Intn(2) == 1
		}
		inputs[name] = bits
	}
	return inputs
}

func labelPosition(c *bristol.Circuit, name string) int {
	start := c.Info.InputNameToWireIndex[name]
	pos := 0
	for _, other := range c.Info.InputNameToWireIndex {
		if other < start {
			pos++
		}
	}
	return pos
}
