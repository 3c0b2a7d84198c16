package domain

import (
	"fmt"
	"strings"
)

// Strategy names a frontier ordering policy.
type Strategy string

const (
	StrategyDFS    Strategy = "dfs"    // Stack, depth-first
	StrategyBFS    Strategy = "bfs"    // Queue, breadth-first
	StrategyGreedy Strategy = "greedy" // Greedy best-first on Manhattan distance
	StrategyAStar  Strategy = "astar"  // A* on path cost plus Manhattan distance
)

// Strategies lists the supported strategies in menu order.
var Strategies = []Strategy{StrategyDFS, StrategyBFS, StrategyGreedy, StrategyAStar}

var strategyAliases = map[string]Strategy{
	"dfs":           StrategyDFS,
	"depth-first":   StrategyDFS,
	"stack":         StrategyDFS,
	"bfs":           StrategyBFS,
	"breadth-first": StrategyBFS,
	"queue":         StrategyBFS,
	"greedy":        StrategyGreedy,
	"best-first":    StrategyGreedy,
	"astar":         StrategyAStar,
	"a*":            StrategyAStar,
	"a-star":        StrategyAStar,
}

// ParseStrategy resolves a strategy name or alias (case-insensitive).
func ParseStrategy(s string) (Strategy, error) {
	st, ok := strategyAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
	return st, nil
}
