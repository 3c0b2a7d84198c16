package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/labyrinth/internal/presentation/grid"
	"github.com/aretw0/labyrinth/pkg/domain"
)

// Summary describes a finished search as markdown.
func Summary(s domain.Snapshot) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title(s))
	sb.WriteString("| | |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Strategy | %s |\n", s.Strategy)
	fmt.Fprintf(&sb, "| Size | %dx%d |\n", s.Height, s.Width)
	fmt.Fprintf(&sb, "| States explored | %d |\n", s.NumExplored)

	switch s.Status {
	case domain.StatusSolved:
		fmt.Fprintf(&sb, "| Solution length | %d |\n\n", s.Solution.Len())
		actions := make([]string, len(s.Solution.Actions))
		for i, a := range s.Solution.Actions {
			actions[i] = string(a)
		}
		fmt.Fprintf(&sb, "**Path:** %s\n\n", strings.Join(actions, " → "))
	case domain.StatusExhausted:
		sb.WriteString("\n**No solution.** The goal is unreachable.\n\n")
	default:
		fmt.Fprintf(&sb, "\n**Status:** %s\n\n", s.Status)
	}

	sb.WriteString("```\n")
	sb.WriteString(grid.Render(s, grid.OverlayFrom(s)))
	sb.WriteString("\n```\n")
	return sb.String()
}

// LevelsTable lists difficulty levels as a markdown table.
func LevelsTable(rows [][3]string) string {
	var sb strings.Builder
	sb.WriteString("| Level | Maze | Size |\n|---|---|---|\n")
	for _, r := range rows {
		fmt.Fprintf(&sb, "| %s | %s | %s |\n", r[0], r[1], r[2])
	}
	return sb.String()
}

func title(s domain.Snapshot) string {
	if s.Maze == "" {
		return "Maze"
	}
	return s.Maze
}
