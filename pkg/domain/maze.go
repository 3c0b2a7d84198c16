package domain

import (
	"fmt"
	"strings"
)

// Marker characters of the maze text format.
const (
	StartMarker = 'A'
	GoalMarker  = 'B'
	FloorMarker = ' '
	WallMarker  = '#'
)

// Neighbor is a reachable cell together with the action that reaches it.
type Neighbor struct {
	Action Action `json:"action"`
	Cell   Cell   `json:"cell"`
}

// Solution is the path found by a search, in start-to-goal order.
// The start cell is not part of Cells.
type Solution struct {
	Actions []Action `json:"actions"`
	Cells   []Cell   `json:"cells"`
}

// Len returns the number of moves in the solution.
func (s *Solution) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Actions)
}

// Maze is a rectangular grid parsed from text.
// Only PlayerPos and Solution change after construction.
type Maze struct {
	Name   string   `json:"name,omitempty"`
	Height int      `json:"height"`
	Width  int      `json:"width"`
	Walls  [][]bool `json:"walls"`
	Start  Cell     `json:"start"`
	Goal   Cell     `json:"goal"`

	PlayerPos Cell      `json:"player"`
	Solution  *Solution `json:"solution,omitempty"`
}

// ParseMaze builds a Maze from its text form.
// Any character other than blank, start or goal is a wall. Rows may have different
// lengths; the grid is as wide as the longest row and the missing cells of short
// rows are walls.
func ParseMaze(text string) (*Maze, error) {
	starts := strings.Count(text, string(StartMarker))
	goals := strings.Count(text, string(GoalMarker))
	if starts != 1 || goals != 1 {
		return nil, fmt.Errorf("%w: maze must have exactly one start point and one goal (found %d start, %d goal)",
			ErrInvalidMaze, starts, goals)
	}

	lines := splitLines(text)

	m := &Maze{Height: len(lines)}
	rows := make([][]rune, len(lines))
	for i, line := range lines {
		rows[i] = []rune(line)
		m.Width = max(m.Width, len(rows[i]))
	}

	m.Walls = make([][]bool, m.Height)
	for i, row := range rows {
		m.Walls[i] = make([]bool, m.Width)
		for j := range m.Width {
			if j >= len(row) {
				m.Walls[i][j] = true
				continue
			}
			switch row[j] {
			case StartMarker:
				m.Start = Cell{Row: i, Col: j}
			case GoalMarker:
				m.Goal = Cell{Row: i, Col: j}
			case FloorMarker:
			default:
				m.Walls[i][j] = true
			}
		}
	}

	m.PlayerPos = m.Start
	return m, nil
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// InBounds reports whether c lies inside the grid.
func (m *Maze) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < m.Height && c.Col >= 0 && c.Col < m.Width
}

// IsWall reports whether c blocks movement. Cells outside the grid are walls.
func (m *Maze) IsWall(c Cell) bool {
	if !m.InBounds(c) {
		return true
	}
	return m.Walls[c.Row][c.Col]
}

// Neighbors returns the traversable cells next to c, in up, down, left, right order.
func (m *Maze) Neighbors(c Cell) []Neighbor {
	result := make([]Neighbor, 0, len(Actions))
	for _, a := range Actions {
		d, _ := a.Delta()
		next := c.Add(d)
		if !m.IsWall(next) {
			result = append(result, Neighbor{Action: a, Cell: next})
		}
	}
	return result
}

// MovePlayer moves the player one cell in the given direction.
// Blocked, out-of-bounds and unknown moves are ignored and report false.
func (m *Maze) MovePlayer(a Action) bool {
	d, ok := a.Delta()
	if !ok {
		return false
	}
	next := m.PlayerPos.Add(d)
	if m.IsWall(next) {
		return false
	}
	m.PlayerPos = next
	return true
}

// ResetPlayer puts the player back on the start cell.
func (m *Maze) ResetPlayer() {
	m.PlayerPos = m.Start
}

// AtGoal reports whether the player stands on the goal.
func (m *Maze) AtGoal() bool {
	return m.PlayerPos == m.Goal
}

// FloorCount returns the number of traversable cells.
func (m *Maze) FloorCount() int {
	n := 0
	for _, row := range m.Walls {
		for _, wall := range row {
			if !wall {
				n++
			}
		}
	}
	return n
}

// String renders the maze in its text format, using '#' for walls.
func (m *Maze) String() string {
	var sb strings.Builder
	for i, row := range m.Walls {
		for j, wall := range row {
			c := Cell{Row: i, Col: j}
			switch {
			case c == m.Start:
				sb.WriteRune(StartMarker)
			case c == m.Goal:
				sb.WriteRune(GoalMarker)
			case wall:
				sb.WriteRune(WallMarker)
			default:
				sb.WriteRune(FloorMarker)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
