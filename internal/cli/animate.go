package cli

import (
	"context"
	"io"

	"github.com/aretw0/labyrinth"
	"github.com/aretw0/labyrinth/internal/presentation/tui"
	"github.com/aretw0/labyrinth/pkg/observability"
	"github.com/muesli/termenv"
)

// AnimateOptions configures an animated search.
type AnimateOptions struct {
	Maze     string
	Strategy string
	Headless bool
	Output   io.Writer
}

// Animate searches a maze one node per frame and then walks the player along
// the solution. Output that is not a terminal is always headless.
func (a *App) Animate(ctx context.Context, opts AnimateOptions) (bool, error) {
	strategy, err := a.Strategy(opts.Strategy)
	if err != nil {
		return false, err
	}
	engine, err := a.LoadEngine(ctx, opts.Maze, observability.LoggingHooks(a.Logger))
	if err != nil {
		return false, err
	}

	tty := isTerminal(opts.Output)

	r := labyrinth.NewRunner()
	r.Output = opts.Output
	r.Headless = opts.Headless || !tty
	r.StepDelay = a.Config.Animation.StepDelay
	r.WalkDelay = a.Config.Animation.WalkDelay
	r.Renderer = tui.NewFrameRenderer(termenv.Ascii)
	if tty {
		r.Renderer = tui.NewFrameRenderer(termenv.EnvColorProfile())
		r.ClearScreen = clearScreen
	}

	a.Logger.Info("animating search", "maze", engine.Maze().Name, "strategy", strategy, "headless", r.Headless)
	return r.Run(ctx, engine, strategy)
}
