package blayer

import (
	"testing"

	"github.com/fhe-go/blayer/bristol"
	"github.com/fhe-go/blayer/eval"
)

func TestCompileAndEvaluate(t *testing.T) {
	cr, err := Compile(&bristol.Circuit{
		WireCount: 7,
		Gates: []bristol.Gate{
			{Op: "AND", Inputs: []int{2, 3}, Outputs: []int{4}},
			{Op: "OR", Inputs: []int{1, 4}, Outputs: []int{5}},
			{Op: "AND", Inputs: []int{0, 5}, Outputs: []int{6}},
		},
		Info: bristol.CircuitInfo{
			InputNameToWireIndex:  map[string]int{"x": 0},
			OutputNameToWireIndex: map[string]int{"main": 6},
		},
		IOWidths: bristol.IOWidths{InputWidths: []int{4}, OutputWidths: []int{1}},
	})
	if err != nil {
		t.Fatal(err)
	}

	stats := cr.GetStats()
	if stats.NbLayers != 3 || stats.NbGates != 3 || stats.NbPrunes != 6 {
		t.Fatalf("unexpected stats %+v", stats)
	}

	out, err := eval.Evaluate(cr.GetLayeredCircuit(), map[string][]eval.Bool{
		"x": {true, true, false, false},
	})
	if err != nil {
		t.Fatal(err)
	}
	if out["main"][0] != true {
		t.Fatalf("main = %v, want [true]", out["main"])
	}
}
