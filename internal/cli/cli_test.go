package cli

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/labyrinth/internal/config"
	"github.com/aretw0/labyrinth/internal/presentation/grid"
	"github.com/aretw0/labyrinth/internal/testutils"
	"github.com/aretw0/labyrinth/pkg/domain"
	"github.com/aretw0/labyrinth/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	dir := testutils.WriteMazes(t, map[string]string{
		"easy":       testutils.Small,
		"impossible": testutils.Blocked,
	})

	app, err := NewApp(Options{MazeDir: dir, LogLevel: "off"})
	require.NoError(t, err)
	app.Config.Animation = config.Animation{}
	app.Config.Store.Path = filepath.Join(dir, "sessions")
	return app
}

func TestParseKeys(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []key
	}{
		{"Arrows", "\x1b[A\x1b[B\x1b[C\x1b[D", []key{keyUp, keyDown, keyRight, keyLeft}},
		{"WASD", "wasd", []key{keyUp, keyLeft, keyDown, keyRight}},
		{"Commands", "rpq", []key{keyReset, keyHint, keyQuit}},
		{"Esc and Ctrl+C", "\x1b\x03", []key{keyQuit, keyQuit}},
		{"Ignored", "xyz\n", nil},
		{"Truncated sequence", "\x1b[", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseKeys([]byte(tt.in)))
		})
	}
}

func newGame(t *testing.T, app *App, maze, input string) (*Game, *bytes.Buffer) {
	t.Helper()
	engine, err := app.LoadEngine(context.Background(), maze, domain.LifecycleHooks{})
	require.NoError(t, err)
	out := &bytes.Buffer{}
	return &Game{
		Engine:   engine,
		Strategy: domain.StrategyBFS,
		In:       strings.NewReader(input),
		Out:      out,
		Renderer: grid.Frame,
	}, out
}

func TestGame_ReachesGoal(t *testing.T) {
	game, out := newGame(t, newTestApp(t), "easy", "\x1b[Assdd")

	won, err := game.Play(context.Background())
	require.NoError(t, err)
	assert.True(t, won)
	assert.Contains(t, out.String(), "Goal reached! Moves: 4", "the blocked move is not counted")
}

func TestGame_HintAndQuit(t *testing.T) {
	game, out := newGame(t, newTestApp(t), "easy", "pq")

	won, err := game.Play(context.Background())
	require.NoError(t, err)
	assert.False(t, won)
	assert.Contains(t, out.String(), "Solution length: 4")
	assert.Contains(t, out.String(), "A  \n*##\n**B")
}

func TestGame_NoSolution(t *testing.T) {
	game, out := newGame(t, newTestApp(t), "impossible", "p")
	game.Newline = "\r\n"

	_, err := game.Play(context.Background())
	assert.ErrorIs(t, err, io.EOF)
	assert.NoError(t, HandleExecutionError(err))
	assert.Contains(t, out.String(), "No solution. States explored: 1\r\n")
}

func TestGame_Reset(t *testing.T) {
	game, _ := newGame(t, newTestApp(t), "easy", "sr")

	_, err := game.Play(context.Background())
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, game.Engine.Maze().Start, game.Engine.Maze().PlayerPos)
}

func TestAnimate_Headless(t *testing.T) {
	app := newTestApp(t)
	var out bytes.Buffer

	found, err := app.Animate(context.Background(), AnimateOptions{Maze: "easy", Strategy: "astar", Output: &out})
	require.NoError(t, err)
	assert.True(t, found)
	assert.Contains(t, out.String(), "Solution length: 4")
	assert.Contains(t, out.String(), "Goal reached!")

	found, err = app.Animate(context.Background(), AnimateOptions{Maze: "impossible", Output: &out})
	require.NoError(t, err)
	assert.False(t, found)
	assert.Contains(t, out.String(), "No solution")
}

func TestApp_LevelsAndStrategy(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	engine, err := app.LoadEngine(ctx, "", domain.LifecycleHooks{})
	require.NoError(t, err, "first level is the default")
	assert.Equal(t, "easy", engine.Maze().Name)

	_, err = app.LoadEngine(ctx, "medium", domain.LifecycleHooks{})
	assert.ErrorIs(t, err, domain.ErrMazeNotFound)

	s, err := app.Strategy("")
	require.NoError(t, err)
	assert.Equal(t, domain.StrategyBFS, s)

	_, err = app.Strategy("zigzag")
	assert.ErrorIs(t, err, domain.ErrUnknownStrategy)
}

func TestOpenSessions(t *testing.T) {
	for _, kind := range []string{config.StoreMemory, config.StoreFile} {
		t.Run(kind, func(t *testing.T) {
			app := newTestApp(t)
			app.Config.Store.Kind = kind

			metrics := observability.NewMetrics(nil)
			mgr, closeFn, err := app.OpenSessions(metrics, metrics.Hooks())
			require.NoError(t, err)
			defer closeFn()

			sess, snap, err := mgr.Create(context.Background(), "easy", domain.StrategyAStar)
			require.NoError(t, err)
			assert.Equal(t, domain.StatusSearching, snap.Status)

			ids, err := mgr.List(context.Background())
			require.NoError(t, err)
			assert.Equal(t, []string{sess.ID}, ids)
		})
	}

	t.Run("unknown", func(t *testing.T) {
		app := newTestApp(t)
		app.Config.Store.Kind = "tape"
		_, _, err := app.OpenSessions(nil, domain.LifecycleHooks{})
		assert.Error(t, err)
	})
}
