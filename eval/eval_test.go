package eval

import (
	"errors"
	"strings"
	"testing"

	"github.com/fhe-go/blayer/bristol"
	"github.com/fhe-go/blayer/field"
	"github.com/fhe-go/blayer/layered"
	"github.com/fhe-go/blayer/layering"
)

// 4-bit x > 10, bits ordered most significant first
func gt10() *layered.Circuit {
	lc, err := layering.Compile(&bristol.Circuit{
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
		panic(err)
	}
	return lc
}

func TestEvaluateGt10(t *testing.T) {
	lc := gt10()

	// x = 12, which is > 10
	out, err := Evaluate(lc, map[string][]Bool{"x": {true, true, false, false}})
	if err != nil {
		t.Fatal(err)
	}
	if len(out["main"]) != 1 || out["main"][0] != true {
		t.Fatalf("main = %v, want [true]", out["main"])
	}

	// exhaustive: compare against the arithmetic predicate
	for v := 0; v < 16; v++ {
		x := []Bool{Bool(v&8 != 0), Bool(v&4 != 0), Bool(v&2 != 0), Bool(v&1 != 0)}
		out, err := Evaluate(lc, map[string][]Bool{"x": x})
		if err != nil {
			t.Fatal(err)
		}
		if bool(out["main"][0]) != (v > 10) {
			t.Fatalf("x=%d: main = %v, want %v", v, out["main"][0], v > 10)
		}
	}
}

func TestEvaluateInputLengthMismatch(t *testing.T) {
	_, err := Evaluate(gt10(), map[string][]Bool{"x": {true, false, true}})
	if !errors.Is(err, ErrInputLengthMismatch) {
		t.Fatalf("expected ErrInputLengthMismatch, got %v", err)
	}
	if !strings.Contains(err.Error(), "x") {
		t.Fatalf("error should name the input: %v", err)
	}
}

func TestEvaluateMissingInput(t *testing.T) {
	_, err := Evaluate(gt10(), map[string][]Bool{"y": {true, true, false, false}})
	if !errors.Is(err, ErrMissingInput) {
		t.Fatalf("expected ErrMissingInput, got %v", err)
	}
}

func TestEvaluateFieldBits(t *testing.T) {
	// the same schedule over an algebraic value type must agree with the
	// cleartext run bit for bit
	lc := gt10()
	for v := 0; v < 16; v++ {
		bits := []bool{v&8 != 0, v&4 != 0, v&2 != 0, v&1 != 0}
		outB, err := Evaluate(lc, map[string][]Bool{"x": Bools(bits)})
		if err != nil {
			t.Fatal(err)
		}
		outF, err := Evaluate(lc, map[string][]field.Bit{"x": field.Bits(bits)})
		if err != nil {
			t.Fatal(err)
		}
		if outF["main"][0].Bool() != bool(outB["main"][0]) {
			t.Fatalf("x=%d: field run disagrees with bool run", v)
		}
	}
}

func TestEvaluateReusableConcurrently(t *testing.T) {
	// one circuit, many simultaneous evaluations with distinct tables
	lc := gt10()
	done := make(chan error)
	for i := 0; i < 8; i++ {
		v := i + 4
		go func() {
			x := []Bool{Bool(v&8 != 0), Bool(v&4 != 0), Bool(v&2 != 0), Bool(v&1 != 0)}
			out, err := Evaluate(lc, map[string][]Bool{"x": x})
			if err == nil && bool(out["main"][0]) != (v > 10) {
				err = errors.New("wrong result")
			}
			done <- err
		}()
	}
	for i := 0; i < 8; i++ {
		if err := <-done; err != nil {
			t.Fatal(err)
		}
	}
}

func TestEvaluatePassthrough(t *testing.T) {
	// zero gates: outputs read the seeded input wires directly
	lc, err := layering.Compile(&bristol.Circuit{
		WireCount: 2,
		Info: bristol.CircuitInfo{
			InputNameToWireIndex:  map[string]int{"x": 0},
			OutputNameToWireIndex: map[string]int{"main": 0},
		},
		IOWidths: bristol.IOWidths{InputWidths: []int{2}, OutputWidths: []int{2}},
	})
	if err != nil {
		t.Fatal(err)
	}
	out, err := Evaluate(lc, map[string][]Bool{"x": {true, false}})
	if err != nil {
		t.Fatal(err)
	}
	if out["main"][0] != true || out["main"][1] != false {
		t.Fatalf("main = %v", out["main"])
	}
}

func TestEvaluateMissingWireValue(t *testing.T) {
	// hand-built schedule with a broken invariant: the output wire is
	// never produced
	lc := &layered.Circuit{
		WireCount: 2,
		Inputs:    []layered.Label{{Name: "x", Start: 0, Bits: 1}},
		Outputs:   []layered.Label{{Name: "main", Start: 1, Bits: 1}},
	}
	_, err := Evaluate(lc, map[string][]Bool{"x": {true}})
	if !errors.Is(err, ErrMissingWireValue) {
		t.Fatalf("expected ErrMissingWireValue, got %v", err)
	}
}
