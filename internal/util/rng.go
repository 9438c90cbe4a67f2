package util

import "math/rand"

// New returns a deterministic random source for one trial.
// Seed 0 is remapped so the zero value still yields a usable source.
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	src := rand.NewSource(seed)
	return rand.New(src)
}
