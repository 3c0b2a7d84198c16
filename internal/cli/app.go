package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/labyrinth"
	"github.com/aretw0/labyrinth/internal/config"
	"github.com/aretw0/labyrinth/internal/logging"
	"github.com/aretw0/labyrinth/pkg/adapters/file"
	"github.com/aretw0/labyrinth/pkg/domain"
	"github.com/aretw0/labyrinth/pkg/ports"
)

// Options are the persistent flags shared by every command.
// Non-empty values override the loaded configuration.
type Options struct {
	ConfigPath string
	MazeDir    string
	LogLevel   string
}

// App bundles the configuration, logger and maze loader of one CLI invocation.
type App struct {
	Config config.Config
	Logger *slog.Logger
	Loader ports.MazeLoader
}

// NewApp loads the configuration and applies the flag overrides.
func NewApp(opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.MazeDir != "" {
		cfg.MazeDir = opts.MazeDir
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	return &App{
		Config: cfg,
		Logger: NewLogger(cfg.LogLevel),
		Loader: file.NewLoader(cfg.MazeDir),
	}, nil
}

// NewLogger configures the application logger. It writes to Stderr so that
// frames and JSON on Stdout stay clean; "off" disables logging.
func NewLogger(level string) *slog.Logger {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "off", "none", "quiet":
		return logging.NewNop()
	}
	return logging.New(logging.ParseLevel(level))
}

// Strategy parses name, falling back to the configured default when empty.
func (a *App) Strategy(name string) (domain.Strategy, error) {
	if name == "" {
		return a.Config.Strategy(), nil
	}
	return domain.ParseStrategy(name)
}

// NewEngine creates an engine on the app loader with the configured defaults.
func (a *App) NewEngine(hooks domain.LifecycleHooks) *labyrinth.Engine {
	return labyrinth.New(a.Loader,
		labyrinth.WithLogger(a.Logger),
		labyrinth.WithDefaultStrategy(a.Config.Strategy()),
		labyrinth.WithLifecycleHooks(hooks),
	)
}

// LoadEngine creates an engine and loads the maze named by a level or a maze name.
func (a *App) LoadEngine(ctx context.Context, name string, hooks domain.LifecycleHooks) (*labyrinth.Engine, error) {
	if name == "" {
		if len(a.Config.Levels) == 0 {
			return nil, fmt.Errorf("no maze given and no levels configured")
		}
		name = a.Config.Levels[0].Name
	}
	engine := a.NewEngine(hooks)
	if err := engine.Load(ctx, a.Config.ResolveMaze(name)); err != nil {
		return nil, err
	}
	return engine, nil
}
