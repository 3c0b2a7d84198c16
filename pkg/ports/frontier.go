package ports

import "github.com/aretw0/labyrinth/pkg/domain"

// Frontier holds discovered nodes that are waiting to be expanded.
// Implementations decide the removal order; a removed node is never handed out again.
type Frontier interface {
	// Add inserts a node.
	Add(node domain.Node)

	// Remove takes the next node according to the strategy.
	// Returns domain.ErrEmptyFrontier if there is nothing to remove.
	Remove() (domain.Node, error)

	// ContainsState reports whether a live node holds the given cell.
	ContainsState(state domain.Cell) bool

	// Empty reports whether the frontier has no live nodes.
	Empty() bool

	// Len returns the number of live nodes.
	Len() int
}
