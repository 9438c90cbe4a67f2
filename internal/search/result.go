package search

// Result summarizes one completed trial. Iterations stands in for reaction
// time; Correct is the accuracy oracle's verdict.
type Result struct {
	Found             bool `json:"found"`
	Correct           bool `json:"correct"`
	TargetPresent     bool `json:"target_present"`
	Iterations        int  `json:"iterations"`
	NumItems          int  `json:"num_items"`
	NumLures          int  `json:"num_lures"`
	NumAttended       int  `json:"num_attended"`
	NumEyeMovements   int  `json:"num_eye_movements"`
	NumAutoRejections int  `json:"num_auto_rejections"`
	FoundIndex        int  `json:"found_index"` // -1 when nothing was found
}

// Result snapshots the trial's terminal statistics.
func (t *Trial) Result() Result {
	return Result{
		Found:             t.targetFound,
		Correct:           t.correct,
		TargetPresent:     t.targetPresent,
		Iterations:        t.iteration,
		NumItems:          len(t.items),
		NumLures:          t.numLures,
		NumAttended:       t.numAttended,
		NumEyeMovements:   t.numEyeMovements,
		NumAutoRejections: t.numAutoRejections,
		FoundIndex:        t.foundTarget,
	}
}
