package layering

import (
	"errors"
	"fmt"
	"sort"

	"github.com/fhe-go/blayer/layered"
)

var ErrLabelWidthMismatch = errors.New("mismatch between input/output count and widths")

// ioLabels turns a name -> start-wire map plus an ordered width list
// into labels. The source format records only a start index per name, so
// sorting by start index recovers the declaration order before zipping
// against the widths positionally.
func ioLabels(nameToIndex map[string]int, widths []int) ([]layered.Label, error) {
	if len(nameToIndex) != len(widths) {
		return nil, fmt.Errorf("%w: %d names, %d widths", ErrLabelWidthMismatch, len(nameToIndex), len(widths))
	}
	labels := make([]layered.Label, 0, len(nameToIndex))
	for name, start := range nameToIndex {
		labels = append(labels, layered.Label{Name: name, Start: start})
	}
	sort.Slice(labels, func(i, j int) bool {
		return labels[i].Start < labels[j].Start
	})
	for i := range labels {
		labels[i].Bits = widths[i]
	}
	return labels, nil
}

// labelWires flattens labels to their wire indices in label order.
func labelWires(labels []layered.Label) []int {
	wires := []int{}
	for _, label := range labels {
		wires = append(wires, label.Wires()...)
	}
	return wires
}
