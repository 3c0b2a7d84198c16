package grid

import (
	"strings"

	"github.com/aretw0/labyrinth/pkg/domain"
)

// Glyph classifies what a cell shows in a frame.
type Glyph int

const (
	GlyphFloor Glyph = iota
	GlyphWall
	GlyphStart
	GlyphGoal
	GlyphExplored
	GlyphFrontier
	GlyphPath
	GlyphPlayer
)

// Runes maps each glyph to the character drawn for it.
type Runes map[Glyph]rune

// DefaultRunes matches the maze text format for walls, start and goal.
var DefaultRunes = Runes{
	GlyphFloor:    ' ',
	GlyphWall:     '#',
	GlyphStart:    'A',
	GlyphGoal:     'B',
	GlyphExplored: '.',
	GlyphFrontier: '+',
	GlyphPath:     '*',
	GlyphPlayer:   '@',
}

// Overlay contains the dynamic search state drawn on top of the maze.
type Overlay struct {
	Explored []domain.Cell
	Frontier []domain.Cell
	Path     []domain.Cell
	Player   *domain.Cell
}

// OverlayFrom builds the overlay for a snapshot.
// The solution path replaces the search cells once the search is solved.
// The player is drawn only after it left the start.
func OverlayFrom(s domain.Snapshot) *Overlay {
	o := &Overlay{}
	if s.Solution != nil {
		o.Path = s.Solution.Cells
	} else {
		o.Explored = s.Explored
		o.Frontier = s.Frontier
	}
	if s.Player != s.Start {
		player := s.Player
		o.Player = &player
	}
	return o
}

// Classify returns the glyph of every cell, row by row.
// Start and goal always win, then the player, the path, the frontier and the
// explored set. A nil overlay classifies the bare maze.
func Classify(s domain.Snapshot, overlay *Overlay) [][]Glyph {
	glyphs := make([][]Glyph, len(s.Walls))
	for i, row := range s.Walls {
		glyphs[i] = make([]Glyph, len(row))
		for j, wall := range row {
			if wall {
				glyphs[i][j] = GlyphWall
			}
		}
	}

	set := func(cells []domain.Cell, g Glyph) {
		for _, c := range cells {
			if c.Row < 0 || c.Row >= len(glyphs) || c.Col < 0 || c.Col >= len(glyphs[c.Row]) {
				continue
			}
			if glyphs[c.Row][c.Col] != GlyphWall {
				glyphs[c.Row][c.Col] = g
			}
		}
	}

	if overlay != nil {
		set(overlay.Explored, GlyphExplored)
		set(overlay.Frontier, GlyphFrontier)
		set(overlay.Path, GlyphPath)
		if overlay.Player != nil {
			set([]domain.Cell{*overlay.Player}, GlyphPlayer)
		}
	}
	set([]domain.Cell{s.Start}, GlyphStart)
	set([]domain.Cell{s.Goal}, GlyphGoal)
	return glyphs
}

// Render draws the snapshot as plain text using DefaultRunes.
// Rows are separated by newlines with no trailing newline.
func Render(s domain.Snapshot, overlay *Overlay) string {
	return RenderWith(s, overlay, DefaultRunes, nil)
}

// RenderWith draws the snapshot with custom runes. When style is not nil it
// decorates each drawn character, for colored output.
func RenderWith(s domain.Snapshot, overlay *Overlay, runes Runes, style func(Glyph, string) string) string {
	glyphs := Classify(s, overlay)
	lines := make([]string, len(glyphs))
	for i, row := range glyphs {
		var sb strings.Builder
		for _, g := range row {
			ch := string(runes[g])
			if style != nil {
				ch = style(g, ch)
			}
			sb.WriteString(ch)
		}
		lines[i] = sb.String()
	}
	return strings.Join(lines, "\n")
}

// Frame renders a snapshot with its overlay. It satisfies labyrinth.FrameRenderer.
func Frame(s domain.Snapshot) (string, error) {
	return Render(s, OverlayFrom(s)), nil
}
