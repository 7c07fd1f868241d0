package bristol

import (
	"errors"
	"strings"
	"testing"

	"github.com/fhe-go/blayer/layered"
)

func TestIngest(t *testing.T) {
	gates := []Gate{
		{Op: "AND", Inputs: []int{0, 1}, Outputs: []int{4}},
		{Op: "OR", Inputs: []int{2, 3}, Outputs: []int{5}},
		{Op: "XOR", Inputs: []int{4, 5}, Outputs: []int{6}},
		{Op: "NOT", Inputs: []int{6}, Outputs: []int{7}},
		{Op: "COPY", Inputs: []int{7}, Outputs: []int{8}},
	}
	out, err := Ingest(gates)
	if err != nil {
		t.Fatal(err)
	}
	expected := []layered.Gate{
		{Op: layered.And, In0: 0, In1: 1, Out: 4},
		{Op: layered.Or, In0: 2, In1: 3, Out: 5},
		{Op: layered.Xor, In0: 4, In1: 5, Out: 6},
		{Op: layered.Not, In0: 6, Out: 7},
		{Op: layered.Copy, In0: 7, Out: 8},
	}
	if len(out) != len(expected) {
		t.Fatalf("got %d gates, want %d", len(out), len(expected))
	}
	for i := range expected {
		if out[i] != expected[i] {
			t.Fatalf("gate %d: got %v, want %v", i, out[i], expected[i])
		}
	}
}

func TestIngestUnsupportedOp(t *testing.T) {
	_, err := Ingest([]Gate{
		{Op: "AND", Inputs: []int{0, 1}, Outputs: []int{2}},
		{Op: "NAND", Inputs: []int{0, 1}, Outputs: []int{3}},
	})
	if !errors.Is(err, ErrUnsupportedOp) {
		t.Fatalf("expected ErrUnsupportedOp, got %v", err)
	}
	if !strings.Contains(err.Error(), "NAND") || !strings.Contains(err.Error(), "gate 1") {
		t.Fatalf("error should name the operator and gate: %v", err)
	}
}

func TestIngestMalformedRecord(t *testing.T) {
	if _, err := Ingest([]Gate{{Op: "AND", Inputs: []int{0}, Outputs: []int{1}}}); err == nil {
		t.Fatal("binary gate with one input should fail")
	}
	if _, err := Ingest([]Gate{{Op: "NOT", Inputs: []int{0}, Outputs: []int{}}}); err == nil {
		t.Fatal("gate without output should fail")
	}
}

func TestIngestLarge(t *testing.T) {
	// large enough to take the chunked path
	n := parallelIngestThreshold * 2
	gates := make([]Gate, n)
	for i := range gates {
		gates[i] = Gate{Op: "XOR", Inputs: []int{i, i + 1}, Outputs: []int{n + i + 2}}
	}
	out, err := Ingest(gates)
	if err != nil {
		t.Fatal(err)
	}
	for i, g := range out {
		if g.Op != layered.Xor || g.In0 != i || g.In1 != i+1 || g.Out != n+i+2 {
			t.Fatalf("gate %d mismatch: %v", i, g)
		}
	}
}
