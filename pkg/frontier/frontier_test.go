package frontier_test

import (
	"testing"

	"github.com/aretw0/labyrinth/pkg/domain"
	"github.com/aretw0/labyrinth/pkg/frontier"
	"github.com/aretw0/labyrinth/pkg/ports"
	"github.com/aretw0/labyrinth/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var goal = domain.Cell{Row: 5, Col: 5}

func TestFrontier_Contract(t *testing.T) {
	for _, strategy := range domain.Strategies {
		t.Run(string(strategy), func(t *testing.T) {
			tests.FrontierContractTest(t, func() ports.Frontier {
				f, err := frontier.New(strategy, goal)
				require.NoError(t, err)
				return f
			})
		})
	}
}

func TestNew_UnknownStrategy(t *testing.T) {
	f, err := frontier.New("dijkstra", goal)
	assert.ErrorIs(t, err, domain.ErrUnknownStrategy)
	assert.Nil(t, f)
}

func TestStack_LIFO(t *testing.T) {
	tree := domain.NewTree()
	a := tree.Root(domain.Cell{Row: 0, Col: 0})
	b := tree.Add(domain.Cell{Row: 0, Col: 1}, a.ID, domain.ActionRight)

	f := frontier.NewStack()
	f.Add(a)
	f.Add(b)

	got, err := f.Remove()
	require.NoError(t, err)
	assert.Equal(t, b, got)

	got, err = f.Remove()
	require.NoError(t, err)
	assert.Equal(t, a, got)
	assert.True(t, f.Empty())
}

func TestQueue_FIFO(t *testing.T) {
	tree := domain.NewTree()
	a := tree.Root(domain.Cell{Row: 0, Col: 0})
	b := tree.Add(domain.Cell{Row: 0, Col: 1}, a.ID, domain.ActionRight)

	f := frontier.NewQueue()
	f.Add(a)
	f.Add(b)

	got, err := f.Remove()
	require.NoError(t, err)
	assert.Equal(t, a, got)

	got, err = f.Remove()
	require.NoError(t, err)
	assert.Equal(t, b, got)
	assert.True(t, f.Empty())
}

func TestGreedy_SmallestHeuristicFirst(t *testing.T) {
	tree := domain.NewTree()
	// h: root 10, far 9, near 1, tieA 2, tieB 2
	root := tree.Root(domain.Cell{Row: 0, Col: 0})
	far := tree.Add(domain.Cell{Row: 1, Col: 0}, root.ID, "")
	near := tree.Add(domain.Cell{Row: 4, Col: 5}, root.ID, "")
	tieA := tree.Add(domain.Cell{Row: 3, Col: 5}, root.ID, "")
	tieB := tree.Add(domain.Cell{Row: 5, Col: 3}, root.ID, "")

	f := frontier.NewGreedy(goal)
	for _, n := range []domain.Node{root, far, tieA, near, tieB} {
		f.Add(n)
	}

	want := []domain.Node{near, tieA, tieB, far, root}
	for _, w := range want {
		got, err := f.Remove()
		require.NoError(t, err)
		assert.Equal(t, w, got)
	}
}

func TestAStar_SmallestCostPlusHeuristicFirst(t *testing.T) {
	tree := domain.NewTree()
	root := tree.Root(domain.Cell{Row: 5, Col: 0}) // g 0, h 5
	f := frontier.NewAStar(goal)
	f.Add(root)

	got, err := f.Remove()
	require.NoError(t, err)
	require.Equal(t, root, got)

	// Children of root have g = 1: up has f = 1 + 6, right has f = 1 + 4.
	up := tree.Add(domain.Cell{Row: 4, Col: 0}, root.ID, domain.ActionUp)
	right := tree.Add(domain.Cell{Row: 5, Col: 1}, root.ID, domain.ActionRight)
	f.Add(up)
	f.Add(right)

	cost, ok := f.Cost(right.State)
	require.True(t, ok)
	assert.Equal(t, 1, cost)

	got, err = f.Remove()
	require.NoError(t, err)
	assert.Equal(t, right, got)

	// Grandchild: g = 2, f = 2 + 3.
	next := tree.Add(domain.Cell{Row: 5, Col: 2}, right.ID, domain.ActionRight)
	f.Add(next)
	cost, _ = f.Cost(next.State)
	assert.Equal(t, 2, cost)

	got, err = f.Remove()
	require.NoError(t, err)
	assert.Equal(t, next, got)

	got, err = f.Remove()
	require.NoError(t, err)
	assert.Equal(t, up, got)
}

func TestAStar_TiesBrokenByInsertion(t *testing.T) {
	tree := domain.NewTree()
	root := tree.Root(domain.Cell{Row: 0, Col: 0})
	a := tree.Add(domain.Cell{Row: 1, Col: 0}, root.ID, domain.ActionDown)
	b := tree.Add(domain.Cell{Row: 0, Col: 1}, root.ID, domain.ActionRight)

	f := frontier.NewAStar(goal)
	f.Add(root)
	_, _ = f.Remove()
	f.Add(a)
	f.Add(b)

	got, _ := f.Remove()
	assert.Equal(t, a, got)
	got, _ = f.Remove()
	assert.Equal(t, b, got)
}

func TestAStar_CostNeverRevised(t *testing.T) {
	tree := domain.NewTree()
	root := tree.Root(domain.Cell{Row: 0, Col: 0})
	child := tree.Add(domain.Cell{Row: 0, Col: 1}, root.ID, domain.ActionRight)
	grand := tree.Add(domain.Cell{Row: 0, Col: 2}, child.ID, domain.ActionRight)
	again := tree.Add(domain.Cell{Row: 0, Col: 2}, root.ID, domain.ActionRight)

	f := frontier.NewAStar(goal)
	f.Add(root)
	f.Add(child)
	f.Add(grand)
	f.Add(again)

	cost, ok := f.Cost(domain.Cell{Row: 0, Col: 2})
	require.True(t, ok)
	assert.Equal(t, 2, cost)
}

func TestManhattan(t *testing.T) {
	assert.Equal(t, 0, frontier.Manhattan(goal, goal))
	assert.Equal(t, 10, frontier.Manhattan(domain.Cell{}, goal))
	assert.Equal(t, 4, frontier.Manhattan(domain.Cell{Row: 7, Col: 3}, goal))
}
