package labyrinth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/labyrinth/internal/logging"
	"github.com/aretw0/labyrinth/internal/runtime"
	"github.com/aretw0/labyrinth/pkg/domain"
	"github.com/aretw0/labyrinth/pkg/frontier"
	"github.com/aretw0/labyrinth/pkg/ports"
)

// Engine is the high-level entry point for the Labyrinth library.
// It owns the current maze and its search, and hides the runtime from consumers.
//
// An Engine is not safe for concurrent use. Adapters that serve concurrent
// requests keep one Engine per session (see pkg/session).
type Engine struct {
	loader ports.MazeLoader
	maze   *domain.Maze
	search *runtime.Search
	walker *runtime.Walker

	defaultStrategy domain.Strategy
	hooks           domain.LifecycleHooks
	logger          *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithDefaultStrategy sets the strategy used when Start or Solve get an empty one.
func WithDefaultStrategy(strategy domain.Strategy) Option {
	return func(e *Engine) {
		e.defaultStrategy = strategy
	}
}

// New initializes an Engine that reads mazes through loader.
// The loader may be nil when mazes are only given with LoadText.
func New(loader ports.MazeLoader, opts ...Option) *Engine {
	eng := &Engine{
		loader:          loader,
		defaultStrategy: domain.StrategyBFS,
	}
	for _, opt := range opts {
		opt(eng)
	}

	// Ensure logger is initialized so the runtime never receives nil.
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	return eng
}

// Load reads the named maze through the loader and makes it current.
// On any failure the previous maze and its search stay intact.
func (e *Engine) Load(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if e.loader == nil {
		return fmt.Errorf("no maze loader configured: %w", domain.ErrMazeNotFound)
	}

	data, err := e.loader.GetMaze(name)
	if err != nil {
		return fmt.Errorf("failed to load maze %q: %w", name, err)
	}
	return e.LoadText(name, string(data))
}

// LoadText parses text and makes it the current maze under name.
// On a parse failure the previous maze and its search stay intact.
func (e *Engine) LoadText(name, text string) error {
	m, err := domain.ParseMaze(text)
	if err != nil {
		e.logger.Warn("maze rejected", "maze", name, "error", err)
		return err
	}
	m.Name = name

	e.maze = m
	e.search = nil
	e.walker = nil
	e.logger.Debug("maze loaded", "maze", name, "height", m.Height, "width", m.Width)
	return nil
}

// Start prepares a steppable search with the given strategy.
// An empty strategy selects the engine default.
func (e *Engine) Start(strategy domain.Strategy) error {
	f, err := e.prepare(strategy)
	if err != nil {
		return err
	}
	e.search.Start(f)
	return nil
}

// prepare replaces the current search with a fresh one and returns its frontier.
func (e *Engine) prepare(strategy domain.Strategy) (ports.Frontier, error) {
	if e.maze == nil {
		return nil, fmt.Errorf("cannot start search: %w", domain.ErrNotStarted)
	}
	if strategy == "" {
		strategy = e.defaultStrategy
	}

	f, err := frontier.New(strategy, e.maze.Goal)
	if err != nil {
		return nil, err
	}

	e.search = runtime.NewSearch(e.maze,
		runtime.WithStrategy(strategy),
		runtime.WithLogger(e.logger),
		runtime.WithLifecycleHooks(e.hooks),
	)
	e.walker = nil
	return f, nil
}

// Step expands one node of the current search.
// It returns true when the goal was found by this call.
func (e *Engine) Step() (bool, error) {
	if e.search == nil {
		return false, domain.ErrNotStarted
	}
	return e.search.Step()
}

// Solve runs a whole search with the given strategy.
// An unreachable goal returns false and no error.
func (e *Engine) Solve(ctx context.Context, strategy domain.Strategy) (bool, error) {
	f, err := e.prepare(strategy)
	if err != nil {
		return false, err
	}
	return e.search.Solve(ctx, f)
}

// MovePlayer moves the player one cell. Blocked moves are ignored and return false.
func (e *Engine) MovePlayer(action domain.Action) bool {
	if e.maze == nil {
		return false
	}
	return e.maze.MovePlayer(action)
}

// Walk advances the player one move along the solution.
// It returns false when there is no solution or the walk is complete.
func (e *Engine) Walk() bool {
	if e.maze == nil || e.maze.Solution == nil {
		return false
	}
	if e.walker == nil {
		e.walker = runtime.NewWalker(e.maze)
	}
	return e.walker.Advance()
}

// Status returns the state of the current search, idle when none was started.
func (e *Engine) Status() domain.SearchStatus {
	if e.search == nil {
		return domain.StatusIdle
	}
	return e.search.Status()
}

// Snapshot returns a read-only copy of the maze and the search progress.
func (e *Engine) Snapshot() domain.Snapshot {
	if e.search != nil {
		return e.search.Snapshot()
	}
	if e.maze == nil {
		return domain.Snapshot{Status: domain.StatusIdle}
	}
	return runtime.NewSearch(e.maze, runtime.WithStrategy(e.defaultStrategy)).Snapshot()
}

// Maze returns the current maze, or nil before the first successful load.
func (e *Engine) Maze() *domain.Maze {
	return e.maze
}

// Mazes lists the names available through the loader.
func (e *Engine) Mazes() ([]string, error) {
	if e.loader == nil {
		return nil, nil
	}
	return e.loader.ListMazes()
}

// Loader returns the underlying MazeLoader used by the engine.
func (e *Engine) Loader() ports.MazeLoader {
	return e.loader
}
