package test

import (
	"fmt"
	"sort"

	"github.com/fhe-go/blayer/bristol"
)

type ioLabel struct {
	name  string
	start int
	bits  int
}

func sortedLabels(nameToIndex map[string]int, widths []int) []ioLabel {
	labels := make([]ioLabel, 0, len(nameToIndex))
	for name, start := range nameToIndex {
		labels = append(labels, ioLabel{name: name, start: start})
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i].start < labels[j].start })
	for i := range labels {
		labels[i].bits = widths[i]
	}
	return labels
}

// evalDirect is the reference interpreter: it evaluates the flat,
// unordered gate list by repeated passes, running any gate whose
// operands are known, until all gates have run. Deliberately independent
// of the layering and eval packages.
func evalDirect(c *bristol.Circuit, inputs map[string][]bool) (map[string][]bool, error) {
	values := make(map[int]bool)
	for _, l := range sortedLabels(c.Info.InputNameToWireIndex, c.IOWidths.InputWidths) {
		bits, ok := inputs[l.name]
		if !ok || len(bits) != l.bits {
			return nil, fmt.Errorf("bad input %s", l.name)
		}
		for i, b := range bits {
			values[l.start+i] = b
		}
	}

	pending := make([]bristol.Gate, len(c.Gates))
	copy(pending, c.Gates)
	for len(pending) > 0 {
		progressed := false
		next := pending[:0]
		for _, g := range pending {
			v, ok := tryGate(g, values)
			if !ok {
				next = append(next, g)
				continue
			}
			values[g.Outputs[0]] = v
			progressed = true
		}
		if !progressed {
			return nil, fmt.Errorf("%d gates never became runnable", len(next))
		}
		pending = next
	}

	outputs := make(map[string][]bool)
	for _, l := range sortedLabels(c.Info.OutputNameToWireIndex, c.IOWidths.OutputWidths) {
		bits := make([]bool, l.bits)
		for i := range bits {
			v, ok := values[l.start+i]
			if !ok {
				return nil, fmt.Errorf("output wire %d of %s has no value", l.start+i, l.name)
			}
			bits[i] = v
		}
		outputs[l.name] = bits
	}
	return outputs, nil
}

func tryGate(g bristol.Gate, values map[int]bool) (bool, bool) {
	a, ok := values[g.Inputs[0]]
	if !ok {
		return false, false
	}
	switch g.Op {
	case "NOT":
		return !a, true
	case "COPY":
		return a, true
	}
	b, ok := values[g.Inputs[1]]
	if !ok {
		return false, false
	}
	switch g.Op {
	case "AND":
		return a && b, true
	case "OR":
		return a || b, true
	case "XOR":
		return a != b, true
	}
	panic("unknown op " + g.Op)
}
