package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vsearch/internal/util"
)

const maxTestIterations = 20000

func runToCompletion(t *testing.T, tr *Trial) Result {
	t.Helper()
	locations := tr.Params.Layout().Locations(tr.rng, tr.Params.CartesianGrid)
	res, err := tr.Run(locations)
	require.NoError(t, err)
	require.LessOrEqual(t, res.Iterations, maxTestIterations, "trial must terminate")
	return res
}

func TestTargetPresentTrialFindsTarget(t *testing.T) {
	tr := mustTrial(t, DefaultParams(), 12345,
		TargetSpec{Color: "red", Shape: "vertical", Present: true},
		[]DistractorGroup{{Color: "green", Shape: "horizontal", Count: 3}})

	res := runToCompletion(t, tr)
	assert.True(t, res.Found)
	assert.True(t, res.Correct)
	assert.Equal(t, 0, res.FoundIndex, "the target is item 0")
	assert.True(t, res.TargetPresent)
	assert.Equal(t, 4, res.NumItems)
	assert.Equal(t, 3, res.NumLures)
	assert.GreaterOrEqual(t, res.NumAttended, 1)
	assert.GreaterOrEqual(t, res.NumEyeMovements, 1)
	assert.Greater(t, res.Iterations, 0)
}

func TestTargetAbsentTrialRejectsEverything(t *testing.T) {
	// Distractors share the template's color and differ only on shape:
	// the attended exact-mismatch rule must reject every one.
	tr := mustTrial(t, DefaultParams(), 777,
		TargetSpec{Color: "red", Shape: "vertical", Present: false},
		[]DistractorGroup{{Color: "red", Shape: "horizontal", Count: 5}})

	res := runToCompletion(t, tr)
	assert.False(t, res.Found)
	assert.True(t, res.Correct)
	assert.Equal(t, -1, res.FoundIndex)
	assert.Equal(t, 5, res.NumItems)
	assert.GreaterOrEqual(t, res.Iterations, tr.Params.TargetAbsentCost)
}

func TestStepInvariants(t *testing.T) {
	tr := mustTrial(t, DefaultParams(), 99,
		TargetSpec{Color: "red", Shape: "vertical", Present: true},
		[]DistractorGroup{
			{Color: "green", Shape: "vertical", Count: 3},
			{Color: "red", Shape: "horizontal", Count: 3},
		})
	locations := tr.Params.Layout().Cartesian(tr.rng)
	require.NoError(t, tr.Init(locations))

	everRejected := make(map[int]bool)
	done := false
	for steps := 0; !done; steps++ {
		require.Less(t, steps, maxTestIterations, "trial must terminate")
		done = tr.Step()

		// Partition invariant: viable and rejected are disjoint and cover
		// the full item set.
		seen := make(map[int]bool)
		for _, idx := range tr.viable {
			assert.False(t, seen[idx])
			seen[idx] = true
			assert.False(t, tr.items[idx].Rejected)
		}
		for _, idx := range tr.rejectedList {
			assert.False(t, seen[idx])
			seen[idx] = true
			assert.True(t, tr.items[idx].Rejected)
		}
		assert.Len(t, seen, len(tr.items))

		// Monotonic rejection: once rejected, always rejected, priority 0.
		for idx := range everRejected {
			assert.True(t, tr.items[idx].Rejected)
			assert.Equal(t, 0.0, tr.items[idx].Priority)
		}
		for _, idx := range tr.rejectedList {
			everRejected[idx] = true
		}

		// At most one item is selected at any iteration boundary.
		selected := 0
		for i := range tr.items {
			if tr.items[i].Selected {
				selected++
			}
		}
		assert.LessOrEqual(t, selected, 1)
	}
	tr.analyze()
	assert.True(t, tr.correct)
}

func TestEyeMovementsDisabled(t *testing.T) {
	p := DefaultParams()
	p.PermitEyeMovements = false
	tr := mustTrial(t, p, 4242,
		TargetSpec{Color: "red", Shape: "vertical", Present: true},
		[]DistractorGroup{{Color: "green", Shape: "horizontal", Count: 2}})

	res := runToCompletion(t, tr)
	assert.Equal(t, 0, res.NumEyeMovements)
	assert.Equal(t, p.DisplayCenter, tr.fixation, "fixation never leaves center")
	assert.True(t, res.Found)
	assert.True(t, res.Correct)
}

func TestNonlinearDistanceWeighting(t *testing.T) {
	p := DefaultParams()
	p.LinearDistanceCost = false
	tr := mustTrial(t, p, 31,
		TargetSpec{Color: "red", Shape: "vertical", Present: true},
		[]DistractorGroup{{Color: "green", Shape: "horizontal", Count: 2}})
	locations := tr.Params.Layout().Cartesian(tr.rng)
	require.NoError(t, tr.Init(locations))

	for i := range tr.items {
		it := &tr.items[i]
		expected := 1.0 / (1.0 + p.DistanceFalloffRate*it.FixDist/float64(p.DisplayRadius))
		assert.InDelta(t, expected, it.DistWt, 1e-12)
		assert.Greater(t, it.DistWt, 0.0)
		assert.LessOrEqual(t, it.DistWt, 1.0)
	}
}

func TestInitTooFewLocations(t *testing.T) {
	tr := mustTrial(t, DefaultParams(), 1,
		TargetSpec{Color: "red", Shape: "vertical", Present: true},
		[]DistractorGroup{{Color: "green", Shape: "horizontal", Count: 3}})

	err := tr.Init(tr.Params.Layout().Cartesian(tr.rng)[:2])
	require.Error(t, err)
	assert.Contains(t, err.Error(), "locations")
}

func TestNewTrialUnknownCategory(t *testing.T) {
	_, err := NewTrial(DefaultParams(), util.New(1),
		TargetSpec{Color: "puce", Shape: "vertical", Present: true}, nil, nil)
	require.Error(t, err)

	_, err = NewTrial(DefaultParams(), util.New(1),
		TargetSpec{Color: "red", Shape: "vertical", Present: true},
		[]DistractorGroup{{Color: "red", Shape: "W9", Count: 1}}, nil)
	require.Error(t, err)
}

func TestRelevantOverride(t *testing.T) {
	tr, err := NewTrial(DefaultParams(), util.New(1),
		TargetSpec{Color: "red", Shape: "vertical", Present: true},
		[]DistractorGroup{{Color: "green", Shape: "horizontal", Count: 1}},
		[]int{0, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, 3, tr.relevantCount)
	assert.True(t, tr.relevant[0])
	assert.False(t, tr.relevant[6])
}

func TestAnalyzeFoundWrongItem(t *testing.T) {
	tr := mustTrial(t, DefaultParams(), 1,
		TargetSpec{Color: "red", Shape: "vertical", Present: true},
		[]DistractorGroup{{Color: "green", Shape: "horizontal", Count: 1}})

	tr.targetFound = true
	tr.foundTarget = 1 // the lure
	tr.analyze()
	assert.False(t, tr.correct)
}

func TestAnalyzeMissedTarget(t *testing.T) {
	tr := mustTrial(t, DefaultParams(), 1,
		TargetSpec{Color: "red", Shape: "vertical", Present: true},
		[]DistractorGroup{{Color: "green", Shape: "horizontal", Count: 1}})

	tr.targetFound = false
	tr.analyze()
	assert.False(t, tr.correct, "declaring absent with a target present is an error")
}

func TestMessagesAndEvents(t *testing.T) {
	tr := mustTrial(t, DefaultParams(), 2024,
		TargetSpec{Color: "red", Shape: "vertical", Present: false},
		[]DistractorGroup{{Color: "red", Shape: "horizontal", Count: 3}})
	tr.Label = "absent condition"

	var types []string
	tr.OnEvent = func(ev Event) { types = append(types, ev.Type) }

	res := runToCompletion(t, tr)
	require.False(t, res.Found)

	msgs := tr.Messages()
	require.NotEmpty(t, msgs)
	assert.Equal(t, "absent condition", msgs[0])
	assert.Contains(t, msgs[1], "fixation at")
	assert.Contains(t, msgs[len(msgs)-1], "absent")
	assert.Contains(t, types, "LogLine")
}

func TestComparisonReport(t *testing.T) {
	tr := mustTrial(t, DefaultParams(), 5,
		TargetSpec{Color: "red", Shape: "vertical", Present: true},
		[]DistractorGroup{{Color: "green", Shape: "horizontal", Count: 2}})

	report := tr.ComparisonReport()
	require.Len(t, report, 3)
	assert.True(t, strings.HasPrefix(report[0], "Target=red_vertical:"))
	assert.True(t, strings.HasPrefix(report[1], "Lure=green_horizontal:"))
}

func TestReproducibleWithSameSeed(t *testing.T) {
	run := func(seed int64) Result {
		tr := mustTrial(t, DefaultParams(), seed,
			TargetSpec{Color: "red", Shape: "vertical", Present: true},
			[]DistractorGroup{
				{Color: "green", Shape: "vertical", Count: 2},
				{Color: "red", Shape: "horizontal", Count: 2},
			})
		return runToCompletion(t, tr)
	}
	assert.Equal(t, run(31337), run(31337))
}
