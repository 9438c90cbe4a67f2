// Package feature holds the fixed feature-vector representation of search
// items: the static color and shape category tables and the relevance-weighted
// vector math the search core consumes.
package feature

import (
	"fmt"
	"math"
)

// Vector is a fixed-length feature vector. Entries are -1, 0 or +1:
// +1 asserts a feature, -1 asserts its opponent, 0 means absent.
type Vector []float64

// Dimension counts of the two concatenated sub-vectors.
const (
	ColorDims = 18
	ShapeDims = 19
	Dims      = ColorDims + ShapeDims
)

// Color sub-vectors are laid out as three opponent banks:
// [B/W][R/G][B/Y], six dimensions each.
var colorVectors = map[string]Vector{
	"white":  {1, 1, 1, -1, -1, -1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	"black":  {-1, -1, -1, 1, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	"red":    {0, 0, 0, 0, 0, 0, 1, 1, 1, -1, -1, -1, 0, 0, 0, 0, 0, 0},
	"green":  {0, 0, 0, 0, 0, 0, -1, -1, -1, 1, 1, 1, 0, 0, 0, 0, 0, 0},
	"blue":   {0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, -1, -1, -1},
	"yellow": {0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, -1, -1, -1, 1, 1, 1},
	"orange": {0, 0, 0, 0, 0, 0, 1, 1, 0, -1, -1, 0, -1, 0, 0, 1, 0, 0},
	"pink":   {1, 1, 0, -1, -1, 0, 1, 0, 0, -1, 0, 0, 0, 0, 0, 0, 0, 0},
}

// Shape sub-vectors: [V/H][D][L][T][X] banks.
var shapeVectors = map[string]Vector{
	"vertical":   {1, 1, 1, -1, -1, -1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	"horizontal": {-1, -1, -1, 1, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	"T1":         {1, 0, 0, 1, 0, 0, -1, 0, -1, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0},
	"T2":         {1, 0, 0, 1, 0, 0, -1, 0, -1, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0},
	"T3":         {1, 0, 0, 1, 0, 0, -1, 0, -1, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0},
	"T4":         {1, 0, 0, 1, 0, 0, -1, 0, -1, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0},
	"L1":         {1, 0, 0, 1, 0, 0, -1, 0, -1, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0},
	"L2":         {1, 0, 0, 1, 0, 0, -1, 0, -1, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0},
	"L3":         {1, 0, 0, 1, 0, 0, -1, 0, -1, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0},
	"L4":         {1, 0, 0, 1, 0, 0, -1, 0, -1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0},
	"D1":         {-1, 0, 0, -1, 0, 0, 1, 1, -1, -1, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	"D2":         {0, -1, 0, 0, 0, -1, -1, -1, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	"X":          {-1, 0, 0, 0, 0, -1, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 1},
	"O":          {1, 1, 0, 1, 1, 0, 0, 0, 0, -1, 1, 1, 1, 1, 0, 0, 0, 0, 0},
	"Q":          {1, 1, 0, 1, 1, 0, 1, 0, 0, 0, 1, 1, 1, 1, 0, 0, 0, 0, 1},
}

// Make builds the feature vector for a color/shape category pair.
// Unknown category names are configuration errors.
func Make(color, shape string) (Vector, error) {
	cv, ok := colorVectors[color]
	if !ok {
		return nil, fmt.Errorf("unknown color %q", color)
	}
	sv, ok := shapeVectors[shape]
	if !ok {
		return nil, fmt.Errorf("unknown shape %q", shape)
	}
	v := make(Vector, 0, Dims)
	v = append(v, cv...)
	v = append(v, sv...)
	return v, nil
}

// Length returns the relevance-weighted euclidean length of v:
// sqrt(sum((v[i]*w(i))^2)) with w(i) chosen by the relevance mask.
func Length(v Vector, relevant []bool, relevantWeight, irrelevantWeight float64) float64 {
	sum := 0.0
	for i, f := range v {
		w := irrelevantWeight
		if i < len(relevant) && relevant[i] {
			w = relevantWeight
		}
		sum += (f * w) * (f * w)
	}
	return math.Sqrt(sum)
}

// Relevant computes the relevant-dimension mask for a display: dimension i is
// relevant iff at least one item differs from the template on i.
func Relevant(template Vector, items []Vector) []bool {
	mask := make([]bool, len(template))
	for i := range template {
		for _, item := range items {
			if i < len(item) && item[i] != template[i] {
				mask[i] = true
				break
			}
		}
	}
	return mask
}

// MaskFromIndices converts an explicit dimension list into a mask of size dims.
func MaskFromIndices(indices []int, dims int) ([]bool, error) {
	mask := make([]bool, dims)
	for _, i := range indices {
		if i < 0 || i >= dims {
			return nil, fmt.Errorf("relevant dimension %d out of range [0,%d)", i, dims)
		}
		mask[i] = true
	}
	return mask, nil
}

// CountTrue reports how many dimensions a mask marks relevant.
func CountTrue(mask []bool) int {
	n := 0
	for _, b := range mask {
		if b {
			n++
		}
	}
	return n
}
