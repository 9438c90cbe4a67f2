// Package search implements a single trial of guided visual search: the
// two-tier evidence accumulation over display items, priority-weighted
// attention scheduling, the attention-shift/eye-movement state machine, and
// termination scoring.
package search

import (
	"fmt"
	"math/rand"

	"vsearch/internal/display"
	"vsearch/internal/feature"
)

// TargetSpec names the target category and whether it appears in the display.
type TargetSpec struct {
	Color   string
	Shape   string
	Present bool
}

// DistractorGroup adds Count items of one category to the display.
type DistractorGroup struct {
	Color string
	Shape string
	Count int
}

// Trial owns the full state of one search run. All randomness flows through
// the single injected source, so a seed reproduces a trial exactly.
type Trial struct {
	Params Params
	Label  string

	// OnEvent, when set, receives every event the trial emits.
	OnEvent func(Event)

	rng *rand.Rand

	template      Template
	items         []Item // arena; viable/rejected hold indices into it
	relevant      []bool
	relevantCount int
	numLures      int
	targetPresent bool

	viable       []int
	rejectedList []int
	selected     int // arena index, -1 when nothing is selected
	shiftTimer   int
	fixation     display.Point
	iteration    int

	targetFound bool
	foundTarget int // arena index, -1 until found
	correct     bool

	numAttended       int
	numEyeMovements   int
	numAutoRejections int

	messages []string
}

// NewTrial configures a trial: it builds the template and item set, computes
// the relevant-dimension mask and the relevance-weighted vector lengths.
// Unknown categories and dimensionality mismatches are fatal here, before
// any iteration can run. relevantOverride, when non-nil, replaces the
// automatic relevance computation with an explicit dimension list.
func NewTrial(p Params, rng *rand.Rand, target TargetSpec, distractors []DistractorGroup, relevantOverride []int) (*Trial, error) {
	p = p.Normalize()

	templateVec, err := feature.Make(target.Color, target.Shape)
	if err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}

	t := &Trial{
		Params:        p,
		rng:           rng,
		template:      Template{Features: templateVec},
		selected:      -1,
		foundTarget:   -1,
		targetPresent: target.Present,
	}

	addGroup := func(count int, color, shape, name string, isTarget bool) error {
		vec, err := feature.Make(color, shape)
		if err != nil {
			return err
		}
		if len(vec) != len(templateVec) {
			return fmt.Errorf("item %q: dimensionality %d does not match template %d",
				name, len(vec), len(templateVec))
		}
		for i := 0; i < count; i++ {
			t.items = append(t.items, Item{
				Index:    len(t.items),
				Name:     name,
				Color:    color,
				Shape:    shape,
				IsTarget: isTarget,
				Features: vec,
			})
		}
		return nil
	}

	// The target, when present, is always item 0.
	if target.Present {
		name := "Target=" + target.Color + "_" + target.Shape
		if err := addGroup(1, target.Color, target.Shape, name, true); err != nil {
			return nil, err
		}
	}
	for _, d := range distractors {
		name := "Lure=" + d.Color + "_" + d.Shape
		if err := addGroup(d.Count, d.Color, d.Shape, name, false); err != nil {
			return nil, err
		}
		t.numLures += d.Count
	}

	if relevantOverride != nil {
		mask, err := feature.MaskFromIndices(relevantOverride, len(templateVec))
		if err != nil {
			return nil, err
		}
		t.relevant = mask
	} else {
		vectors := make([]feature.Vector, len(t.items))
		for i := range t.items {
			vectors[i] = t.items[i].Features
		}
		t.relevant = feature.Relevant(templateVec, vectors)
	}
	t.relevantCount = feature.CountTrue(t.relevant)

	// Vector lengths are fixed once the relevance mask is final.
	t.template.VectorLength = feature.Length(templateVec, t.relevant, p.RelevantWeight, p.IrrelevantWeight)
	for i := range t.items {
		t.items[i].VectorLength = feature.Length(t.items[i].Features, t.relevant, p.RelevantWeight, p.IrrelevantWeight)
	}

	return t, nil
}

// Init resets all mutable trial state and assigns the supplied shuffled
// locations to the items. The layout collaborator must provide at least as
// many locations as there are items.
func (t *Trial) Init(locations []display.Point) error {
	if len(locations) < len(t.items) {
		return fmt.Errorf("layout supplied %d locations for %d items", len(locations), len(t.items))
	}

	t.viable = make([]int, len(t.items))
	for i := range t.items {
		t.viable[i] = i
	}
	t.rejectedList = t.rejectedList[:0]
	t.selected = -1
	t.shiftTimer = 0
	t.fixation = t.Params.DisplayCenter
	t.iteration = 0
	t.targetFound = false
	t.foundTarget = -1
	t.correct = false
	t.numAttended = 0
	t.numEyeMovements = 0
	t.numAutoRejections = 0

	t.messages = t.messages[:0]
	if t.Label != "" {
		t.messages = append(t.messages, t.Label)
	}
	t.logf("fixation at (%d,%d)", t.fixation.X, t.fixation.Y)

	for i := range t.items {
		it := &t.items[i]
		it.Location = locations[i]
		it.Integrator = 1.0 + t.rng.Float64()*t.Params.ExogenousCueNoise
		it.Rejected = false
		it.Selected = false
		it.Priority = 1.0
		it.subLo, it.subHi = 0, 0
		t.weightFixationDistance(it)
	}
	return nil
}

// weightFixationDistance recomputes one item's distance from fixation and
// the resulting accumulator attenuation.
func (t *Trial) weightFixationDistance(it *Item) {
	it.FixDist = it.Location.Dist(t.fixation)
	if t.Params.LinearDistanceCost {
		it.DistWt = 1.0 - it.FixDist/float64(t.Params.DistanceAtZero)
		if it.DistWt < 0 {
			it.DistWt = 0
		}
	} else {
		scaled := t.Params.DistanceFalloffRate * it.FixDist / float64(t.Params.DisplayRadius)
		it.DistWt = 1.0 / (1.0 + scaled)
	}
}

// processParallel is the unattended update applied to one viable item.
func (t *Trial) processParallel(it *Item) {
	similarity := t.unattendedMatch(it)
	it.Integrator += similarity * t.rng.Float64() * it.DistWt

	it.Priority = it.Integrator
	if it.Priority < t.Params.MinSelectionPriority {
		it.Priority = t.Params.MinSelectionPriority
	}

	if it.Integrator < t.Params.RejectionThreshold {
		it.Rejected = true
		it.Priority = 0
		t.numAutoRejections++
		t.logf("---------- item %d rejected in parallel phase ----------", it.Index)
		t.emit(Event{Iter: t.iteration, Type: "AutoReject", Payload: map[string]any{
			"item": it.Index, "integrator": it.Integrator,
		}})
	}
}

// processSelected is the attended comparison: the selected item is rejected
// on ANY relevant-dimension mismatch with the template; a zero-mismatch item
// ends the trial as the found target.
func (t *Trial) processSelected() {
	t.targetFound = false
	it := &t.items[t.selected]

	mismatches := 0
	for i := range it.Features {
		if t.relevant[i] && it.Features[i] != t.template.Features[i] {
			mismatches++
		}
	}
	if mismatches > 0 {
		it.Rejected = true
		it.Priority = 0
		it.Selected = false
		t.logf("selected item %d rejected", it.Index)
		t.emit(Event{Iter: t.iteration, Type: "AttendedReject", Payload: map[string]any{
			"item": it.Index, "mismatches": mismatches,
		}})
		t.selected = -1
		return
	}

	t.targetFound = true
	t.foundTarget = t.selected
	t.logf("selected item %d has been identified as the target", it.Index)
}

// fixateSelected relocates fixation to the selected item and reweights every
// item's fixation distance.
func (t *Trial) fixateSelected() {
	t.fixation = t.items[t.selected].Location
	t.numEyeMovements++
	t.logf("fixation moved to (%d,%d)", t.fixation.X, t.fixation.Y)
	for i := range t.items {
		t.weightFixationDistance(&t.items[i])
	}
}

// updateViability moves newly rejected items from the viable to the rejected
// list, preserving relative order in both. A rejected item that was still
// selected clears the selection.
func (t *Trial) updateViability() {
	stillViable := t.viable[:0]
	for _, idx := range t.viable {
		if t.items[idx].Rejected {
			t.items[idx].Selected = false
			if t.selected == idx {
				t.selected = -1
			}
			t.rejectedList = append(t.rejectedList, idx)
		} else {
			stillViable = append(stillViable, idx)
		}
	}
	t.viable = stillViable
}

// Step advances the trial by exactly one iteration and reports whether the
// trial is finished.
func (t *Trial) Step() bool {
	done := false
	t.iteration++
	t.messages = append(t.messages, fmt.Sprintf("* * * Iteration %d * * *", t.iteration))

	// Decay first, then the parallel (unattended) phase over all viable items.
	for _, idx := range t.viable {
		t.items[idx].Integrator *= 1.0 - t.Params.ItemIntegratorDecay
	}
	for _, idx := range t.viable {
		if !t.items[idx].Rejected {
			t.processParallel(&t.items[idx])
		}
	}
	t.updateViability()

	// With no focus of attention, draw the next item to attend.
	if t.selected < 0 {
		t.selected = t.selectItem()
		if t.selected >= 0 {
			t.shiftTimer = t.Params.AttentionShiftCost
			loc := t.items[t.selected].Location
			t.logf("moving attention to item %d at (%d,%d)", t.items[t.selected].Index, loc.X, loc.Y)
		}
	}

	// Attention-shift state machine: timer > 0 shifting, == 0 arriving,
	// < 0 resident on the item.
	if t.selected >= 0 {
		switch {
		case t.shiftTimer == 0:
			t.logf("attention arrived on item %d", t.items[t.selected].Index)
			if t.Params.PermitEyeMovements {
				// Charging the iterations here suspends all processing,
				// unattended included, for the duration of the movement.
				t.iteration += t.Params.EyeMovementTimeCost
				t.fixateSelected()
			}
			t.processSelected()
			t.shiftTimer = -1
		case t.shiftTimer < 0:
			t.processSelected()
		default:
			t.shiftTimer--
		}
	}

	t.updateViability()

	if t.targetFound {
		it := &t.items[t.foundTarget]
		t.logf("target found: item %d, %s at (%d,%d)", it.Index, it.Name, it.Location.X, it.Location.Y)
		done = true
	} else if len(t.viable) == 0 {
		t.iteration += t.Params.TargetAbsentCost
		t.logf("concluded the target is absent")
		done = true
	}
	return done
}

// analyze is the sole correctness oracle, run once at trial end.
func (t *Trial) analyze() {
	if t.targetFound {
		t.correct = t.items[t.foundTarget].IsTarget
		return
	}
	correct := true
	for i := range t.items {
		if t.items[i].IsTarget {
			correct = false
			break
		}
	}
	t.correct = correct
}

// Run drives the trial to completion and scores it.
func (t *Trial) Run(locations []display.Point) (Result, error) {
	if err := t.Init(locations); err != nil {
		return Result{}, err
	}
	for !t.Step() {
	}
	t.analyze()
	return t.Result(), nil
}

// ComparisonReport lists the attended similarity of every item to the
// template. Debugging aid, not part of the search dynamics.
func (t *Trial) ComparisonReport() []string {
	report := make([]string, 0, len(t.items))
	for i := range t.items {
		it := &t.items[i]
		report = append(report, fmt.Sprintf("%s: %.3f", it.Name, t.attendedSimilarity(it)))
	}
	return report
}
