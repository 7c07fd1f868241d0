// Package bristol models the flat gate-list circuit format produced by
// the upstream compiler and boolify pass. The gate list is
// single-assignment and topologically unordered; this package only
// defines the format and maps raw gate records to their canonical form.
package bristol

import "errors"

var (
	ErrUnsupportedFeature = errors.New("unsupported feature")
	ErrUnsupportedOp      = errors.New("unsupported gate operation")
)

// Gate is one raw gate record: an operator name plus wire index lists.
type Gate struct {
	Op      string
	Inputs  []int
	Outputs []int
}

// Constant is a named constant wire. Circuits with constants are not
// supported by the layering compiler; the field exists so the check can
// be made.
type Constant struct {
	Name      string
	Value     string
	WireIndex int
}

// CircuitInfo carries the I/O declarations of a circuit: a start wire
// index per name, the per-name bit widths in declaration order, and the
// constants list.
type CircuitInfo struct {
	InputNameToWireIndex  map[string]int
	OutputNameToWireIndex map[string]int
	Constants             []Constant
}

// InputWidths and OutputWidths are ordered positionally: after sorting
// names by their start wire index, the i-th name has the i-th width.
type IOWidths struct {
	InputWidths  []int
	OutputWidths []int
}

// Circuit is a full Bristol circuit as handed over by the upstream
// compiler.
type Circuit struct {
	WireCount int
	Gates     []Gate
	Info      CircuitInfo
	IOWidths  IOWidths
}
