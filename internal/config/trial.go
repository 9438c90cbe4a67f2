package config

import "vsearch/internal/search"

// TrialConfig declares one search condition: the target category and the
// distractor groups making up the display.
type TrialConfig struct {
	Label       string          `yaml:"label"`
	Target      TargetDef       `yaml:"target"`
	Distractors []DistractorDef `yaml:"distractors"`
	// Relevant, when non-empty, overrides the automatic relevant-dimension
	// computation with an explicit list of feature indices.
	Relevant []int  `yaml:"relevant"`
	Note     string `yaml:"note"`
}

type TargetDef struct {
	Color   string `yaml:"color"`
	Shape   string `yaml:"shape"`
	Present bool   `yaml:"present"`
}

type DistractorDef struct {
	Color string `yaml:"color"`
	Shape string `yaml:"shape"`
	Count int    `yaml:"count"`
}

// TargetSpec converts the yaml form into the core's target spec.
func (tc *TrialConfig) TargetSpec() search.TargetSpec {
	return search.TargetSpec{Color: tc.Target.Color, Shape: tc.Target.Shape, Present: tc.Target.Present}
}

// DistractorGroups converts the yaml form into the core's distractor groups.
func (tc *TrialConfig) DistractorGroups() []search.DistractorGroup {
	groups := make([]search.DistractorGroup, 0, len(tc.Distractors))
	for _, d := range tc.Distractors {
		groups = append(groups, search.DistractorGroup{Color: d.Color, Shape: d.Shape, Count: d.Count})
	}
	return groups
}

// RelevantOverride returns the explicit relevance list, or nil for automatic.
func (tc *TrialConfig) RelevantOverride() []int {
	if len(tc.Relevant) == 0 {
		return nil
	}
	return tc.Relevant
}
