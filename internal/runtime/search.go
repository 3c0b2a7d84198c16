package runtime

import (
	"cmp"
	"context"
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/aretw0/labyrinth/internal/logging"
	"github.com/aretw0/labyrinth/pkg/domain"
	"github.com/aretw0/labyrinth/pkg/ports"
)

// Search drives node expansion over a maze. It owns the explored set, the node
// arena and the counters; the frontier decides the expansion order.
//
// A Search is single-threaded. Start or Solve resets it, so one value can run
// several searches over the same maze one after another.
type Search struct {
	maze     *domain.Maze
	frontier ports.Frontier
	tree     *domain.Tree

	explored      map[domain.Cell]bool
	numExplored   int
	frontierNodes []domain.Node
	steps         int
	status        domain.SearchStatus
	strategy      domain.Strategy

	logger *slog.Logger
	hooks  domain.LifecycleHooks
}

// NewSearch creates an idle search over maze.
func NewSearch(maze *domain.Maze, opts ...Option) *Search {
	s := &Search{
		maze:     maze,
		tree:     domain.NewTree(),
		explored: make(map[domain.Cell]bool),
		status:   domain.StatusIdle,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start resets the search state, clears any previous solution and puts the
// start node into frontier. The search is then ready for Step.
func (s *Search) Start(frontier ports.Frontier) {
	s.frontier = frontier
	s.tree = domain.NewTree()
	s.explored = make(map[domain.Cell]bool)
	s.numExplored = 0
	s.frontierNodes = nil
	s.steps = 0
	s.maze.Solution = nil
	s.status = domain.StatusSearching

	frontier.Add(s.tree.Root(s.maze.Start))

	s.logger.Debug("search started", "maze", s.maze.Name, "strategy", s.strategy, "start", s.maze.Start, "goal", s.maze.Goal)
	if s.hooks.OnSearchStart != nil {
		s.hooks.OnSearchStart(context.Background(), &domain.SearchEvent{EventBase: s.event(domain.EventSearchStart)})
	}
}

// Solve runs a search to completion with frontier.
// It returns true when the goal was reached; the solution is then set on the maze.
// An unreachable goal is not an error: Solve returns false and leaves the
// solution unset. The context is checked between expansions.
func (s *Search) Solve(ctx context.Context, frontier ports.Frontier) (bool, error) {
	s.Start(frontier)
	for !s.status.Terminal() {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		if _, err := s.Step(); err != nil {
			return false, err
		}
	}
	return s.status == domain.StatusSolved, nil
}

// Step expands a single node. It returns true exactly when the goal was found
// by this call. False covers both "still searching" and "exhausted"; use
// Status or the frontier to tell them apart.
//
// The nodes added by this call are available through FrontierNodes until the next call.
func (s *Search) Step() (bool, error) {
	switch s.status {
	case domain.StatusIdle:
		return false, domain.ErrNotStarted
	case domain.StatusSolved, domain.StatusExhausted:
		return false, nil
	}

	s.frontierNodes = s.frontierNodes[:0]
	s.steps++

	if s.frontier.Empty() {
		s.finish(domain.StatusExhausted)
		return false, nil
	}

	node, err := s.frontier.Remove()
	if err != nil {
		return false, err
	}
	s.numExplored++

	if node.State == s.maze.Goal {
		s.maze.Solution = s.tree.Path(node.ID)
		s.finish(domain.StatusSolved)
		return true, nil
	}

	s.explored[node.State] = true

	for _, n := range s.maze.Neighbors(node.State) {
		if s.frontier.ContainsState(n.Cell) || s.explored[n.Cell] {
			continue
		}
		child := s.tree.Add(n.Cell, node.ID, n.Action)
		s.frontier.Add(child)
		s.frontierNodes = append(s.frontierNodes, child)
	}

	if s.hooks.OnNodeExpand != nil {
		s.hooks.OnNodeExpand(context.Background(), &domain.ExpandEvent{
			EventBase: s.event(domain.EventNodeExpand),
			State:     node.State,
			Added:     len(s.frontierNodes),
			Frontier:  s.frontier.Len(),
		})
	}

	return false, nil
}

func (s *Search) finish(status domain.SearchStatus) {
	s.status = status

	ev := &domain.SearchEvent{NumExplored: s.numExplored}
	switch status {
	case domain.StatusSolved:
		ev.EventBase = s.event(domain.EventSolved)
		ev.PathLength = s.maze.Solution.Len()
		s.logger.Info("maze solved", "maze", s.maze.Name, "strategy", s.strategy,
			"num_explored", s.numExplored, "path_length", ev.PathLength)
		if s.hooks.OnSolved != nil {
			s.hooks.OnSolved(context.Background(), ev)
		}
	case domain.StatusExhausted:
		ev.EventBase = s.event(domain.EventExhausted)
		s.logger.Info("no solution", "maze", s.maze.Name, "strategy", s.strategy, "num_explored", s.numExplored)
		if s.hooks.OnExhausted != nil {
			s.hooks.OnExhausted(context.Background(), ev)
		}
	}
}

func (s *Search) event(t domain.EventType) domain.EventBase {
	return domain.EventBase{
		Timestamp: time.Now(),
		Type:      t,
		Maze:      s.maze.Name,
		Strategy:  s.strategy,
	}
}

// Status returns the position of the run in its state machine.
func (s *Search) Status() domain.SearchStatus { return s.status }

// NumExplored returns the number of nodes taken off the frontier.
func (s *Search) NumExplored() int { return s.numExplored }

// Steps returns the number of Step calls made while searching, including the
// final call that found the frontier empty. Replaying that many steps on a
// fresh search reproduces this one.
func (s *Search) Steps() int { return s.steps }

// Maze returns the maze being searched.
func (s *Search) Maze() *domain.Maze { return s.maze }

// Strategy returns the label given with WithStrategy.
func (s *Search) Strategy() domain.Strategy { return s.strategy }

// IsExplored reports whether the cell's node has been expanded.
func (s *Search) IsExplored(c domain.Cell) bool { return s.explored[c] }

// Explored returns the expanded cells in row-major order.
func (s *Search) Explored() []domain.Cell {
	cells := slices.Collect(maps.Keys(s.explored))
	slices.SortFunc(cells, compareCells)
	return cells
}

// FrontierNodes returns the nodes added by the most recent Step.
func (s *Search) FrontierNodes() []domain.Node {
	return slices.Clone(s.frontierNodes)
}

// Snapshot copies the maze and search progress for renderers and adapters.
func (s *Search) Snapshot() domain.Snapshot {
	walls := make([][]bool, len(s.maze.Walls))
	for i, row := range s.maze.Walls {
		walls[i] = slices.Clone(row)
	}

	frontierCells := make([]domain.Cell, 0, len(s.frontierNodes))
	for _, n := range s.frontierNodes {
		frontierCells = append(frontierCells, n.State)
	}

	var solution *domain.Solution
	if s.maze.Solution != nil {
		solution = &domain.Solution{
			Actions: slices.Clone(s.maze.Solution.Actions),
			Cells:   slices.Clone(s.maze.Solution.Cells),
		}
	}

	return domain.Snapshot{
		Maze:        s.maze.Name,
		Height:      s.maze.Height,
		Width:       s.maze.Width,
		Walls:       walls,
		Start:       s.maze.Start,
		Goal:        s.maze.Goal,
		Player:      s.maze.PlayerPos,
		Strategy:    s.strategy,
		Status:      s.status,
		Steps:       s.steps,
		NumExplored: s.numExplored,
		Explored:    s.Explored(),
		Frontier:    frontierCells,
		Solution:    solution,
	}
}

func compareCells(a, b domain.Cell) int {
	if c := cmp.Compare(a.Row, b.Row); c != 0 {
		return c
	}
	return cmp.Compare(a.Col, b.Col)
}
