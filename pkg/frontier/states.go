package frontier

import "github.com/aretw0/labyrinth/pkg/domain"

// stateSet counts live nodes per cell so ContainsState does not scan.
type stateSet map[domain.Cell]int

func (s stateSet) add(c domain.Cell) {
	s[c]++
}

func (s stateSet) remove(c domain.Cell) {
	if s[c] <= 1 {
		delete(s, c)
		return
	}
	s[c]--
}

func (s stateSet) contains(c domain.Cell) bool {
	return s[c] > 0
}
