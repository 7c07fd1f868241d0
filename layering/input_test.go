package layering

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fhe-go/blayer/layered"
)

func TestIoLabels(t *testing.T) {
	// declaration order is recovered by sorting on the start index, not
	// on the name
	labels, err := ioLabels(map[string]int{"b": 0, "a": 3, "c": 5}, []int{3, 2, 4})
	require.NoError(t, err)
	require.Equal(t, []layered.Label{
		{Name: "b", Start: 0, Bits: 3},
		{Name: "a", Start: 3, Bits: 2},
		{Name: "c", Start: 5, Bits: 4},
	}, labels)
}

func TestIoLabelsWidthMismatch(t *testing.T) {
	_, err := ioLabels(map[string]int{"a": 0, "b": 4}, []int{4})
	require.True(t, errors.Is(err, ErrLabelWidthMismatch), "got %v", err)
}
