package feature

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMake(t *testing.T) {
	v, err := Make("red", "vertical")
	require.NoError(t, err)
	require.Len(t, v, Dims)

	// Red lives in the R/G opponent bank.
	assert.Equal(t, 0.0, v[0])
	assert.Equal(t, 1.0, v[6])
	assert.Equal(t, -1.0, v[9])
	// Vertical occupies the first shape bank.
	assert.Equal(t, 1.0, v[ColorDims])
	assert.Equal(t, -1.0, v[ColorDims+3])
}

func TestMakeUnknownCategory(t *testing.T) {
	_, err := Make("puce", "vertical")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "puce")

	_, err = Make("red", "Z9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Z9")
}

func TestRelevant(t *testing.T) {
	template, err := Make("red", "vertical")
	require.NoError(t, err)
	item, err := Make("green", "vertical")
	require.NoError(t, err)

	mask := Relevant(template, []Vector{item})
	require.Len(t, mask, Dims)

	// Red and green differ on exactly the six R/G dimensions; the shapes agree.
	for i := 0; i < Dims; i++ {
		if i >= 6 && i < 12 {
			assert.True(t, mask[i], "dimension %d should be relevant", i)
		} else {
			assert.False(t, mask[i], "dimension %d should be irrelevant", i)
		}
	}
	assert.Equal(t, 6, CountTrue(mask))
}

func TestLength(t *testing.T) {
	v, err := Make("red", "vertical")
	require.NoError(t, err)

	allRelevant := make([]bool, Dims)
	for i := range allRelevant {
		allRelevant[i] = true
	}
	// Red + vertical has twelve nonzero unit entries.
	assert.InDelta(t, math.Sqrt(12), Length(v, allRelevant, 1.0, 0.0), 1e-12)

	colorOnly := make([]bool, Dims)
	for i := 6; i < 12; i++ {
		colorOnly[i] = true
	}
	assert.InDelta(t, math.Sqrt(6), Length(v, colorOnly, 1.0, 0.0), 1e-12)

	// Irrelevant weight contributes when nonzero.
	assert.InDelta(t, math.Sqrt(12), Length(v, nil, 1.0, 1.0), 1e-12)
}

func TestMaskFromIndices(t *testing.T) {
	mask, err := MaskFromIndices([]int{0, 3, 3}, 5)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, false, true, false}, mask)
	assert.Equal(t, 2, CountTrue(mask))

	_, err = MaskFromIndices([]int{5}, 5)
	require.Error(t, err)
}
