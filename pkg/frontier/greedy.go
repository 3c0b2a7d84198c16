package frontier

import "github.com/aretw0/labyrinth/pkg/domain"

// Greedy orders nodes by their Manhattan distance to the goal only.
// Path cost is ignored, so it can be led into dead ends that look close.
type Greedy struct {
	ordered
	goal domain.Cell
}

// NewGreedy creates an empty greedy best-first frontier.
func NewGreedy(goal domain.Cell) *Greedy {
	return &Greedy{ordered: newOrdered(), goal: goal}
}

func (g *Greedy) Add(node domain.Node) {
	g.push(node, Manhattan(node.State, g.goal))
}

// Remove returns the node closest to the goal, earliest first on ties.
func (g *Greedy) Remove() (domain.Node, error) {
	return g.pop()
}
