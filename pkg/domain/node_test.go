package domain_test

import (
	"testing"

	"github.com/aretw0/labyrinth/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestTree_Path(t *testing.T) {
	tree := domain.NewTree()
	root := tree.Root(domain.Cell{Row: 0, Col: 0})
	a := tree.Add(domain.Cell{Row: 1, Col: 0}, root.ID, domain.ActionDown)
	b := tree.Add(domain.Cell{Row: 1, Col: 1}, a.ID, domain.ActionRight)

	assert.True(t, root.IsRoot())
	assert.False(t, b.IsRoot())
	assert.Equal(t, 3, tree.Len())

	sol := tree.Path(b.ID)
	assert.Equal(t, []domain.Action{domain.ActionDown, domain.ActionRight}, sol.Actions)
	assert.Equal(t, []domain.Cell{{Row: 1, Col: 0}, {Row: 1, Col: 1}}, sol.Cells)
	assert.Equal(t, 2, sol.Len())

	rootPath := tree.Path(root.ID)
	assert.Empty(t, rootPath.Actions)
	assert.Equal(t, 0, rootPath.Len())

	_, ok := tree.Get(99)
	assert.False(t, ok)
}

func TestSession_Clone(t *testing.T) {
	s := domain.NewSession("id", "easy", domain.StrategyBFS)
	s.Moves = []domain.Action{domain.ActionUp}

	c := s.Clone()
	c.Moves[0] = domain.ActionDown

	assert.Equal(t, domain.ActionUp, s.Moves[0])
	assert.Equal(t, domain.StatusIdle, s.Status)
	assert.False(t, s.Status.Terminal())
	assert.True(t, domain.StatusExhausted.Terminal())
}
