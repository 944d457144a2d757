package carousel

// StopIndexes returns the ascending item indices the carousel may rest on.
// Indices advance by move and the last scrollable index is always included,
// so the final page stays reachable when move does not divide the range.
func StopIndexes(total, perView, move int) []int {
	last := total - perView
	if total == 0 || last < 0 {
		return []int{}
	}
	if move < 1 {
		move = 1
	}

	stops := make([]int, 0, last/move+2)
	for i := 0; i <= last; i += move {
		stops = append(stops, i)
	}
	if last%move != 0 {
		stops = append(stops, last)
	}
	return stops
}

// positionOf returns the position of index in stops, or -1.
func positionOf(stops []int, index int) int {
	for i, s := range stops {
		if s == index {
			return i
		}
	}
	return -1
}
