package frontier

import "github.com/aretw0/labyrinth/pkg/domain"

// AStar orders nodes by f = g + h, where g is the number of steps from the
// root and h the Manhattan distance to the goal.
//
// The recorded g of a state is never lowered once set. Every move costs 1 and
// the driver never re-adds a discovered state, so the first g is the best one.
// Weighted moves would need relaxation here.
type AStar struct {
	ordered
	goal  domain.Cell
	costs map[domain.Cell]int
	depth map[domain.NodeID]int
}

// NewAStar creates an empty A* frontier.
func NewAStar(goal domain.Cell) *AStar {
	return &AStar{
		ordered: newOrdered(),
		goal:    goal,
		costs:   make(map[domain.Cell]int),
		depth:   make(map[domain.NodeID]int),
	}
}

// Add computes g from the parent's recorded cost. Nodes without a parent, or
// whose parent was never added here, are roots with g = 0.
func (a *AStar) Add(node domain.Node) {
	g := 0
	if parentG, ok := a.depth[node.Parent]; ok && !node.IsRoot() {
		g = parentG + 1
	}
	a.depth[node.ID] = g
	if _, seen := a.costs[node.State]; !seen {
		a.costs[node.State] = g
	}
	a.push(node, g+Manhattan(node.State, a.goal))
}

// Remove returns the node with the smallest f, earliest first on ties.
func (a *AStar) Remove() (domain.Node, error) {
	return a.pop()
}

// Cost returns the recorded path cost of a state.
func (a *AStar) Cost(state domain.Cell) (int, bool) {
	g, ok := a.costs[state]
	return g, ok
}
