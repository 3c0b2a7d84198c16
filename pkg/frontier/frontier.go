package frontier

import (
	"fmt"

	"github.com/aretw0/labyrinth/pkg/domain"
	"github.com/aretw0/labyrinth/pkg/ports"
)

var (
	_ ports.Frontier = (*Stack)(nil)
	_ ports.Frontier = (*Queue)(nil)
	_ ports.Frontier = (*Greedy)(nil)
	_ ports.Frontier = (*AStar)(nil)
)

// New returns an empty frontier for the strategy, aimed at goal.
func New(strategy domain.Strategy, goal domain.Cell) (ports.Frontier, error) {
	switch strategy {
	case domain.StrategyDFS:
		return NewStack(), nil
	case domain.StrategyBFS:
		return NewQueue(), nil
	case domain.StrategyGreedy:
		return NewGreedy(goal), nil
	case domain.StrategyAStar:
		return NewAStar(goal), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownStrategy, strategy)
	}
}
