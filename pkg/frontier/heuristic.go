package frontier

import "github.com/aretw0/labyrinth/pkg/domain"

// Manhattan returns |a.Row-b.Row| + |a.Col-b.Col|, the number of axis-aligned
// moves between two cells on an open grid. It never overestimates the true
// distance once walls are added.
func Manhattan(a, b domain.Cell) int {
	return abs(a.Row-b.Row) + abs(a.Col-b.Col)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
