package rules

/*
ApplyConwayRules applies the classic Game of Life rules to a cell age.

Conway's Game of Life rules: (alive && neighbors == 2) || neighbors == 3

There is no afterglow: a cell is either AgeAlive or 0 after the transition.
*/
func ApplyConwayRules(neighbors int, age uint8) uint8 {
	if (age == AgeAlive && neighbors == 2) || neighbors == 3 {
		return AgeAlive
	}
	return 0
}
