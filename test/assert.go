package test

import (
	"sort"
	"testing"

	"github.com/fhe-go/blayer/bristol"
	"github.com/fhe-go/blayer/eval"
	"github.com/fhe-go/blayer/field"
	"github.com/fhe-go/blayer/layered"
)

type Assert struct {
	t *testing.T
}

func NewAssert(t *testing.T) *Assert {
	return &Assert{t: t}
}

// CheckSchedule verifies the layered form against the source gate list:
// structural validity, plus completeness (the schedule contains exactly
// the ingested gates, each once).
func (a *Assert) CheckSchedule(src *bristol.Circuit, lc *layered.Circuit) {
	a.t.Helper()
	if err := layered.Validate(lc); err != nil {
		a.t.Fatal(err)
	}

	ingested, err := bristol.Ingest(src.Gates)
	if err != nil {
		a.t.Fatal(err)
	}
	var scheduled []layered.Gate
	for _, layer := range lc.Layers {
		scheduled = append(scheduled, layer.Gates...)
	}
	if len(scheduled) != len(ingested) {
		a.t.Fatalf("scheduled %d gates, source has %d", len(scheduled), len(ingested))
	}
	// gate outputs are unique, so sorting by output wire aligns the two
	byOut := func(gates []layered.Gate) {
		sort.Slice(gates, func(i, j int) bool { return gates[i].Out < gates[j].Out })
	}
	byOut(ingested)
	byOut(scheduled)
	for i := range ingested {
		if ingested[i] != scheduled[i] {
			a.t.Fatalf("gate mismatch at output wire %d: %v vs %v", ingested[i].Out, ingested[i], scheduled[i])
		}
	}
}

// CheckEval compares the layered evaluation against the reference
// interpreter for the given assignment, over cleartext booleans and over
// field bits.
func (a *Assert) CheckEval(src *bristol.Circuit, lc *layered.Circuit, inputs map[string][]bool) {
	a.t.Helper()

	expected, err := evalDirect(src, inputs)
	if err != nil {
		a.t.Fatal(err)
	}

	boolInputs := make(map[string][]eval.Bool, len(inputs))
	fieldInputs := make(map[string][]field.Bit, len(inputs))
	for name, bits := range inputs {
		boolInputs[name] = eval.Bools(bits)
		fieldInputs[name] = field.Bits(bits)
	}

	gotBool, err := eval.Evaluate(lc, boolInputs)
	if err != nil {
		a.t.Fatal(err)
	}
	gotField, err := eval.Evaluate(lc, fieldInputs)
	if err != nil {
		a.t.Fatal(err)
	}

	for name, bits := range expected {
		if len(gotBool[name]) != len(bits) || len(gotField[name]) != len(bits) {
			a.t.Fatalf("output %s: length mismatch", name)
		}
		for i, b := range bits {
			if bool(gotBool[name][i]) != b {
				a.t.Fatalf("output %s bit %d: layered %v, reference %v", name, i, gotBool[name][i], b)
			}
			if gotField[name][i].Bool() != b {
				a.t.Fatalf("output %s bit %d: field run %v, reference %v", name, i, gotField[name][i].Bool(), b)
			}
		}
	}
}
