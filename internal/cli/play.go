package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/labyrinth"
	"github.com/aretw0/labyrinth/internal/presentation/tui"
	"github.com/aretw0/labyrinth/pkg/domain"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

type key int

const (
	keyNone key = iota
	keyUp
	keyDown
	keyLeft
	keyRight
	keyQuit
	keyReset
	keyHint
)

var keyActions = map[key]domain.Action{
	keyUp:    domain.ActionUp,
	keyDown:  domain.ActionDown,
	keyLeft:  domain.ActionLeft,
	keyRight: domain.ActionRight,
}

// parseKeys decodes arrow escape sequences and single-letter commands.
func parseKeys(buf []byte) []key {
	var keys []key
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b == 0x1b {
			if i+1 < len(buf) && buf[i+1] == '[' {
				if i+2 < len(buf) {
					switch buf[i+2] {
					case 'A':
						keys = append(keys, keyUp)
					case 'B':
						keys = append(keys, keyDown)
					case 'C':
						keys = append(keys, keyRight)
					case 'D':
						keys = append(keys, keyLeft)
					}
				}
				i += 2
				continue
			}
			keys = append(keys, keyQuit) // bare Esc
			continue
		}
		switch b {
		case 'w', 'W':
			keys = append(keys, keyUp)
		case 's', 'S':
			keys = append(keys, keyDown)
		case 'a', 'A':
			keys = append(keys, keyLeft)
		case 'd', 'D':
			keys = append(keys, keyRight)
		case 'r', 'R':
			keys = append(keys, keyReset)
		case 'p', 'P':
			keys = append(keys, keyHint)
		case 'q', 'Q', 3: // Ctrl+C in raw mode
			keys = append(keys, keyQuit)
		}
	}
	return keys
}

// Game lets a person walk the maze with the keyboard.
// Arrows or WASD move, 'p' shows the solution, 'r' restarts and 'q' quits.
type Game struct {
	Engine   *labyrinth.Engine
	Strategy domain.Strategy
	In       io.Reader
	Out      io.Writer
	Renderer labyrinth.FrameRenderer

	// Newline ends every output line; raw terminals need "\r\n".
	Newline string
	// ClearScreen is written before every frame.
	ClearScreen string
}

// Play runs the game until the goal is reached, the player quits or the
// input ends. It returns true when the goal was reached.
func (g *Game) Play(ctx context.Context) (bool, error) {
	if g.Newline == "" {
		g.Newline = "\n"
	}
	if err := g.draw("Arrows/WASD move, p shows the path, r restarts, q quits."); err != nil {
		return false, err
	}

	buf := make([]byte, 32)
	moves := 0
	for {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		n, readErr := g.In.Read(buf)
		for _, k := range parseKeys(buf[:n]) {
			status := ""
			switch k {
			case keyQuit:
				return false, nil
			case keyReset:
				g.Engine.Maze().ResetPlayer()
				moves = 0
			case keyHint:
				found, err := g.Engine.Solve(ctx, g.Strategy)
				if err != nil {
					return false, err
				}
				if found {
					status = fmt.Sprintf("Solution length: %d", g.Engine.Snapshot().Solution.Len())
				} else {
					status = fmt.Sprintf("No solution. States explored: %d", g.Engine.Snapshot().NumExplored)
				}
			default:
				if g.Engine.MovePlayer(keyActions[k]) {
					moves++
				}
			}

			if g.Engine.Maze().AtGoal() {
				return true, g.draw(fmt.Sprintf("Goal reached! Moves: %d", moves))
			}
			if err := g.draw(status); err != nil {
				return false, err
			}
		}
		if readErr != nil {
			return false, readErr
		}
	}
}

func (g *Game) draw(status string) error {
	out, err := g.Renderer(g.Engine.Snapshot())
	if err != nil {
		return err
	}
	text := g.ClearScreen + out + "\n"
	if status != "" {
		text += status + "\n"
	}
	_, err = io.WriteString(g.Out, strings.ReplaceAll(text, "\n", g.Newline))
	return err
}

// PlayOptions configures an interactive game.
type PlayOptions struct {
	Maze     string
	Strategy string
}

// Play starts a game on stdin and stdout. A terminal stdin is switched to raw
// mode so that every key press is read at once.
func (a *App) Play(ctx context.Context, opts PlayOptions) (bool, error) {
	strategy, err := a.Strategy(opts.Strategy)
	if err != nil {
		return false, err
	}
	engine, err := a.LoadEngine(ctx, opts.Maze, domain.LifecycleHooks{})
	if err != nil {
		return false, err
	}

	game := &Game{
		Engine:   engine,
		Strategy: strategy,
		In:       os.Stdin,
		Out:      os.Stdout,
		Renderer: tui.NewFrameRenderer(termenv.Ascii),
	}

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		state, err := term.MakeRaw(fd)
		if err != nil {
			return false, fmt.Errorf("failed to enable raw mode: %w", err)
		}
		defer term.Restore(fd, state)

		game.Newline = "\r\n"
		game.ClearScreen = clearScreen
		if isTerminal(os.Stdout) {
			game.Renderer = tui.NewFrameRenderer(termenv.EnvColorProfile())
		}
	}

	a.Logger.Debug("game started", "maze", engine.Maze().Name)
	return game.Play(ctx)
}
