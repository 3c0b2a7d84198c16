package validator

import (
	"fmt"

	"github.com/aretw0/labyrinth/pkg/domain"
	"github.com/aretw0/labyrinth/pkg/ports"
)

// Severity ranks an Issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is a problem found in one maze.
type Issue struct {
	Maze     string
	Severity Severity
	Message  string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: %s", i.Severity, i.Maze, i.Message)
}

// Report is the outcome of validating one maze.
type Report struct {
	Maze   string
	Issues []Issue
}

// OK reports whether the maze has no errors. Warnings are allowed.
func (r Report) OK() bool {
	for _, i := range r.Issues {
		if i.Severity == SeverityError {
			return false
		}
	}
	return true
}

// ValidateMaze loads and parses the named maze, then crawls the grid from the
// start. A goal outside the reached region is a warning, since a level may be
// unsolvable on purpose.
func ValidateMaze(loader ports.MazeLoader, name string) Report {
	report := Report{Maze: name}
	add := func(sev Severity, format string, args ...any) {
		report.Issues = append(report.Issues, Issue{Maze: name, Severity: sev, Message: fmt.Sprintf(format, args...)})
	}

	data, err := loader.GetMaze(name)
	if err != nil {
		add(SeverityError, "load error: %v", err)
		return report
	}
	m, err := domain.ParseMaze(string(data))
	if err != nil {
		add(SeverityError, "%v", err)
		return report
	}

	reached := Reachable(m)
	if !reached[m.Goal] {
		add(SeverityWarning, "goal %s is unreachable from start %s", m.Goal, m.Start)
	}
	if unused := m.FloorCount() - len(reached); unused > 0 {
		add(SeverityWarning, "%d open cells cannot be reached", unused)
	}
	return report
}

// ValidateAll validates every named maze, or every maze of the loader when
// names is empty.
func ValidateAll(loader ports.MazeLoader, names ...string) ([]Report, error) {
	if len(names) == 0 {
		var err error
		if names, err = loader.ListMazes(); err != nil {
			return nil, fmt.Errorf("failed to list mazes: %w", err)
		}
	}
	reports := make([]Report, 0, len(names))
	for _, name := range names {
		reports = append(reports, ValidateMaze(loader, name))
	}
	return reports, nil
}

// Reachable returns every open cell connected to the start, start included.
func Reachable(m *domain.Maze) map[domain.Cell]bool {
	visited := map[domain.Cell]bool{m.Start: true}
	queue := []domain.Cell{m.Start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, n := range m.Neighbors(current) {
			if !visited[n.Cell] {
				visited[n.Cell] = true
				queue = append(queue, n.Cell)
			}
		}
	}
	return visited
}
