package labyrinth_test

import (
	"context"
	"testing"

	"github.com/aretw0/labyrinth"
	"github.com/aretw0/labyrinth/pkg/adapters/file"
	"github.com/aretw0/labyrinth/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestShippedMazes solves the mazes of the default levels.
func TestShippedMazes(t *testing.T) {
	shortest := map[string]int{
		"easy":       12,
		"medium":     56,
		"hard":       58,
		"very-hard":  126,
		"impossible": 0,
	}

	eng := labyrinth.New(file.NewLoader("mazes"))
	names, err := eng.Mazes()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"easy", "medium", "hard", "very-hard", "impossible"}, names)

	ctx := context.Background()
	for name, length := range shortest {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, eng.Load(ctx, name))
			for _, strategy := range domain.Strategies {
				found, err := eng.Solve(ctx, strategy)
				require.NoError(t, err)
				assert.Equal(t, length > 0, found, strategy)
				if strategy == domain.StrategyBFS {
					assert.Equal(t, length, eng.Snapshot().Solution.Len())
				}
			}
		})
	}
}
