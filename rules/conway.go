package rules

/*
ApplyConwayRules decides the next state of a single cell from its current state and
the number of live cells among its eight neighbors.

Conway's B3/S23: a live cell survives with 2 or 3 neighbors, a dead cell is born with
exactly 3, every other cell is dead in the next generation.
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	switch {
	case alive:
		return neighbors == 2 || neighbors == 3
	default:
		return neighbors == 3
	}
}
