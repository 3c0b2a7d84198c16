package tui

import (
	"github.com/aretw0/labyrinth"
	"github.com/aretw0/labyrinth/internal/presentation/grid"
	"github.com/aretw0/labyrinth/pkg/domain"
	"github.com/muesli/termenv"
)

// Palette follows the game colors: red explored cells, green frontier.
var Palette = map[grid.Glyph]string{
	grid.GlyphWall:     "#475569",
	grid.GlyphStart:    "#38bdf8",
	grid.GlyphGoal:     "#f472b6",
	grid.GlyphExplored: "#ef4444",
	grid.GlyphFrontier: "#22c55e",
	grid.GlyphPath:     "#facc15",
	grid.GlyphPlayer:   "#a78bfa",
}

// blockRunes draws walls as solid blocks for terminals.
var blockRunes = grid.Runes{
	grid.GlyphFloor:    ' ',
	grid.GlyphWall:     '█',
	grid.GlyphStart:    'A',
	grid.GlyphGoal:     'B',
	grid.GlyphExplored: '·',
	grid.GlyphFrontier: '+',
	grid.GlyphPath:     '*',
	grid.GlyphPlayer:   '@',
}

// NewFrameRenderer returns a colored frame renderer for the given profile.
// termenv.Ascii yields the plain text of grid.Render.
func NewFrameRenderer(p termenv.Profile) labyrinth.FrameRenderer {
	if p == termenv.Ascii {
		return grid.Frame
	}
	style := func(g grid.Glyph, ch string) string {
		color, ok := Palette[g]
		if !ok {
			return ch
		}
		s := termenv.String(ch).Foreground(p.Color(color))
		if g == grid.GlyphStart || g == grid.GlyphGoal || g == grid.GlyphPlayer {
			s = s.Bold()
		}
		return s.String()
	}
	return func(s domain.Snapshot) (string, error) {
		return grid.RenderWith(s, grid.OverlayFrom(s), blockRunes, style), nil
	}
}
