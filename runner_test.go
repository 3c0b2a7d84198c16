package labyrinth_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/aretw0/labyrinth"
	"github.com/aretw0/labyrinth/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingRenderer(frames *int) labyrinth.FrameRenderer {
	return func(s domain.Snapshot) (string, error) {
		*frames++
		return fmt.Sprintf("frame %s %v", s.Status, s.Player), nil
	}
}

func TestRunner_Solved(t *testing.T) {
	eng := newEngine()
	require.NoError(t, eng.Load(context.Background(), "small"))

	var out bytes.Buffer
	frames := 0
	r := &labyrinth.Runner{Output: &out, Renderer: countingRenderer(&frames)}

	found, err := r.Run(context.Background(), eng, domain.StrategyBFS)
	require.NoError(t, err)
	assert.True(t, found)

	snap := eng.Snapshot()
	// One frame after Start, one per step, one per walk move.
	assert.Equal(t, 1+snap.Steps+snap.Solution.Len(), frames)
	assert.Contains(t, out.String(), fmt.Sprintf("States explored: %d", snap.NumExplored))
	assert.Contains(t, out.String(), "Solution length: 4")
	assert.Contains(t, out.String(), "Goal reached!")
}

func TestRunner_NoSolution(t *testing.T) {
	eng := newEngine()
	require.NoError(t, eng.Load(context.Background(), "blocked"))

	var out bytes.Buffer
	frames := 0
	r := &labyrinth.Runner{Output: &out, Headless: true, Renderer: countingRenderer(&frames)}

	found, err := r.Run(context.Background(), eng, domain.StrategyAStar)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, 1, frames, "headless prints only the final frame")
	assert.Contains(t, out.String(), "No solution. States explored: 1")
}

func TestRunner_Canceled(t *testing.T) {
	eng := newEngine()
	require.NoError(t, eng.Load(context.Background(), "small"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := labyrinth.NewRunner()
	r.Output = &bytes.Buffer{}
	_, err := r.Run(ctx, eng, domain.StrategyBFS)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunner_RequiresOutput(t *testing.T) {
	r := labyrinth.NewRunner()
	_, err := r.Run(context.Background(), newEngine(), domain.StrategyBFS)
	assert.Error(t, err)
}
