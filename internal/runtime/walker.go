package runtime

import "github.com/aretw0/labyrinth/pkg/domain"

// Walker moves the player along the maze solution, one move per Advance.
// It drives the animation that follows a successful search.
type Walker struct {
	maze *domain.Maze
	next int
}

// NewWalker creates a walker over maze. The player is not moved until Advance.
func NewWalker(maze *domain.Maze) *Walker {
	return &Walker{maze: maze}
}

// Advance performs the next move of the solution.
// It returns false when there is no solution or the walk is complete.
func (w *Walker) Advance() bool {
	sol := w.maze.Solution
	if sol == nil || w.next >= len(sol.Actions) {
		return false
	}

	// The player may have wandered off; walk from the start in that case.
	if w.next == 0 && w.maze.PlayerPos != w.maze.Start {
		w.maze.ResetPlayer()
	}

	target := sol.Cells[w.next]
	if w.maze.PlayerPos != target {
		w.maze.MovePlayer(sol.Actions[w.next])
	}
	w.next++
	return true
}

// Done reports whether the whole solution has been walked.
func (w *Walker) Done() bool {
	sol := w.maze.Solution
	return sol == nil || w.next >= len(sol.Actions)
}

// Remaining returns the number of moves left.
func (w *Walker) Remaining() int {
	if w.maze.Solution == nil {
		return 0
	}
	return len(w.maze.Solution.Actions) - w.next
}

// Reset returns the player to the start and rewinds the walk.
func (w *Walker) Reset() {
	w.maze.ResetPlayer()
	w.next = 0
}
