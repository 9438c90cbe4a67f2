package search

import (
	"vsearch/internal/display"
	"vsearch/internal/feature"
)

// Item is one display element: the target, a lure, or a distractor.
// Identity and features are fixed at creation; the remaining fields are
// per-trial working state reset by Init.
type Item struct {
	Index    int
	Name     string
	Color    string
	Shape    string
	IsTarget bool

	Features     feature.Vector
	VectorLength float64 // relevance-weighted, computed once per trial setup

	Location display.Point
	FixDist  float64 // distance from current fixation
	DistWt   float64 // accumulator attenuation from fixation distance, in [0,1]

	Integrator float64 // evidence accumulator
	Rejected   bool
	Selected   bool
	Priority   float64 // selection weight; 0 once rejected

	// Subrange of [0,1) assigned during one selection draw.
	subLo, subHi float64
}

// Template is the comparison basis for the whole trial. It has no location
// and no target/lure role.
type Template struct {
	Features     feature.Vector
	VectorLength float64
}
