package search

import "vsearch/internal/display"

// Params holds the model parameters for one trial. Values are fixed once the
// trial starts; yaml tags allow file-based overrides of the defaults.
type Params struct {
	// Rejection and acceptance.
	RejectionThreshold  float64 `yaml:"rejection_threshold"`
	TargetAbsentCost    int     `yaml:"target_absent_cost"`
	ItemIntegratorDecay float64 `yaml:"item_integrator_decay"`

	// Random feature sampling during unattended processing.
	PRelevantSampling    float64 `yaml:"p_relevant_sampling"`
	PIrrelevantSampling  float64 `yaml:"p_irrelevant_sampling"`
	MinSelectionPriority float64 `yaml:"min_selection_priority"`

	// Fixation-distance attenuation. Exactly one of the two falloff models is
	// active: linear when LinearDistanceCost is set, nonlinear otherwise.
	DistanceFalloffRate float64 `yaml:"distance_falloff_rate"`
	LinearDistanceCost  bool    `yaml:"linear_distance_cost"`

	// Symmetry-breaking noise added to integrators at init.
	ExogenousCueNoise float64 `yaml:"exogenous_cue_noise"`

	// Feature weighting under attended processing.
	RelevantWeight   float64 `yaml:"relevant_weight"`
	IrrelevantWeight float64 `yaml:"irrelevant_weight"`
	CosineThreshold  float64 `yaml:"cosine_threshold"`

	// Operation costs, in iterations.
	AttentionShiftCost  int  `yaml:"attention_shift_cost"`
	PermitEyeMovements  bool `yaml:"permit_eye_movements"`
	EyeMovementTimeCost int  `yaml:"eye_movement_time_cost"`

	// Display characteristics.
	ItemRadius    int           `yaml:"item_radius"`
	ItemDistance  int           `yaml:"item_distance"`
	CartesianGrid bool          `yaml:"cartesian_grid"`
	DisplayCenter display.Point `yaml:"display_center"`
	DisplayRadius int           `yaml:"display_radius"`
	// DistanceAtZero is where the linear distance weight reaches zero.
	// Zero means "derive as 1.5 * DisplayRadius".
	DistanceAtZero int `yaml:"distance_at_zero"`
}

// DefaultParams returns the standard parameter set of the model.
func DefaultParams() Params {
	return Params{
		RejectionThreshold:  0.02,
		TargetAbsentCost:    2,
		ItemIntegratorDecay: 0.01,

		PRelevantSampling:    0.9,
		PIrrelevantSampling:  0.1,
		MinSelectionPriority: 0.1,

		DistanceFalloffRate: 1.0,
		LinearDistanceCost:  true,

		ExogenousCueNoise: 0.1,

		RelevantWeight:   1.0,
		IrrelevantWeight: 0.0,
		CosineThreshold:  0.8,

		AttentionShiftCost:  2,
		PermitEyeMovements:  true,
		EyeMovementTimeCost: 3,

		ItemRadius:    10,
		ItemDistance:  22,
		CartesianGrid: true,
		DisplayCenter: display.Point{X: 300, Y: 300},
		DisplayRadius: 200,
	}
}

// Normalize resolves derived values once, before the trial is built.
func (p Params) Normalize() Params {
	if p.DistanceAtZero == 0 {
		p.DistanceAtZero = p.DisplayRadius * 3 / 2
	}
	return p
}

// cosineGain rescales raw cosines so that cosine 1.0 maps to exactly 1.0.
func (p Params) cosineGain() float64 {
	if p.CosineThreshold >= 1.0 {
		return 1.0
	}
	return 1.0 / (1.0 - p.CosineThreshold)
}

// Layout returns the display geometry the layout collaborator should use.
func (p Params) Layout() display.Layout {
	return display.Layout{
		Center:       p.DisplayCenter,
		Radius:       p.DisplayRadius,
		ItemRadius:   p.ItemRadius,
		ItemDistance: p.ItemDistance,
	}
}
