package search

// selectItem performs one priority-weighted random draw over the viable
// items and returns the arena index of the winner, or -1 when nothing is
// selectable. The subranges are laid out in the viable list's insertion
// order; that order is an intentional tie-break and must not be sorted.
func (t *Trial) selectItem() int {
	prioritySum := 0.0
	for _, idx := range t.viable {
		it := &t.items[idx]
		if it.Rejected {
			it.Priority = 0
		}
		prioritySum += it.Priority
		it.Selected = false
	}

	// Partition [0,1) into contiguous subranges proportional to priority.
	if prioritySum > 0 {
		bottom := 0.0
		for _, idx := range t.viable {
			it := &t.items[idx]
			top := bottom + it.Priority/prioritySum
			it.subLo, it.subHi = bottom, top
			bottom = top
		}
	}

	draw := t.rng.Float64()
	for _, idx := range t.viable {
		it := &t.items[idx]
		if draw >= it.subLo && draw < it.subHi {
			it.Selected = true
			t.numAttended++
			return idx
		}
	}
	return -1
}
