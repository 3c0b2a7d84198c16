package labyrinth

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aretw0/labyrinth/pkg/domain"
)

// Runner animates a search on an Engine using the provided writer.
// The search advances one node per frame, then the player walks the solution one
// move per frame. This allows for easy testing and integration with different
// frontends (CLI, TUI, etc).
type Runner struct {
	Output    io.Writer
	Headless  bool
	Renderer  FrameRenderer
	StepDelay time.Duration
	WalkDelay time.Duration

	// ClearScreen is written before every frame when not headless.
	ClearScreen string
}

// FrameRenderer turns a snapshot into the text of one frame.
// This allows for colored rendering without coupling the core package.
type FrameRenderer func(domain.Snapshot) (string, error)

// NewRunner creates a Runner with the default animation delays.
// Output must be set before Run.
func NewRunner() *Runner {
	return &Runner{
		StepDelay: 50 * time.Millisecond,
		WalkDelay: 100 * time.Millisecond,
	}
}

// Run animates a full search with strategy on the engine's current maze.
// It returns true when the goal was reached. Canceling ctx stops the animation.
func (r *Runner) Run(ctx context.Context, engine *Engine, strategy domain.Strategy) (bool, error) {
	if r.Output == nil {
		return false, fmt.Errorf("output writer must be set (use os.Stdout)")
	}

	if err := engine.Start(strategy); err != nil {
		return false, err
	}
	if err := r.frame(engine); err != nil {
		return false, err
	}

	// 1. Search Phase
	for !engine.Status().Terminal() {
		if err := r.wait(ctx, r.StepDelay); err != nil {
			return false, err
		}
		if _, err := engine.Step(); err != nil {
			return false, fmt.Errorf("step error: %w", err)
		}
		if err := r.frame(engine); err != nil {
			return false, err
		}
	}

	snap := engine.Snapshot()
	if snap.Status == domain.StatusExhausted {
		r.finalFrame(engine)
		fmt.Fprintf(r.Output, "No solution. States explored: %d\n", snap.NumExplored)
		return false, nil
	}

	// 2. Walk Phase
	for engine.Walk() {
		if err := r.frame(engine); err != nil {
			return false, err
		}
		if err := r.wait(ctx, r.WalkDelay); err != nil {
			return false, err
		}
	}

	r.finalFrame(engine)
	fmt.Fprintf(r.Output, "States explored: %d\n", snap.NumExplored)
	fmt.Fprintf(r.Output, "Solution length: %d\n", snap.Solution.Len())
	if engine.Maze().AtGoal() {
		fmt.Fprintln(r.Output, "Goal reached!")
	}
	return true, nil
}

func (r *Runner) frame(engine *Engine) error {
	if r.Headless || r.Renderer == nil {
		return nil
	}
	out, err := r.Renderer(engine.Snapshot())
	if err != nil {
		return fmt.Errorf("render error: %w", err)
	}
	fmt.Fprint(r.Output, r.ClearScreen)
	fmt.Fprintln(r.Output, out)
	return nil
}

// finalFrame prints the last state once in headless mode, where frames are skipped.
func (r *Runner) finalFrame(engine *Engine) {
	if !r.Headless || r.Renderer == nil {
		return
	}
	if out, err := r.Renderer(engine.Snapshot()); err == nil {
		fmt.Fprintln(r.Output, out)
	}
}

func (r *Runner) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
