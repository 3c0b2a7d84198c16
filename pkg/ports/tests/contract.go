package tests

import (
	"errors"
	"testing"

	"github.com/aretw0/labyrinth/pkg/domain"
	"github.com/aretw0/labyrinth/pkg/ports"
)

// MazeLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.MazeLoader.
func MazeLoaderContractTest(t *testing.T, loader ports.MazeLoader, setupData map[string][]byte) {
	t.Helper()

	// 1. Test GetMaze (Success)
	t.Run("GetMaze_Success", func(t *testing.T) {
		for name, expectedContent := range setupData {
			content, err := loader.GetMaze(name)
			if err != nil {
				t.Fatalf("unexpected error getting maze %s: %v", name, err)
			}
			if string(content) != string(expectedContent) {
				t.Errorf("content mismatch for %s. got %q, want %q", name, content, expectedContent)
			}
		}
	})

	// 2. Test GetMaze (NotFound)
	t.Run("GetMaze_NotFound", func(t *testing.T) {
		_, err := loader.GetMaze("non-existent-maze")
		if !errors.Is(err, domain.ErrMazeNotFound) {
			t.Errorf("expected ErrMazeNotFound for non-existent maze, got %v", err)
		}
	})

	// 3. Test ListMazes
	t.Run("ListMazes", func(t *testing.T) {
		names, err := loader.ListMazes()
		if err != nil {
			t.Fatalf("unexpected error listing mazes: %v", err)
		}

		if len(names) != len(setupData) {
			t.Errorf("expected %d mazes, got %d", len(setupData), len(names))
		}

		lookup := make(map[string]bool)
		for _, name := range names {
			lookup[name] = true
		}

		for name := range setupData {
			if !lookup[name] {
				t.Errorf("maze %s missing from list", name)
			}
		}

		for i := 1; i < len(names); i++ {
			if names[i-1] > names[i] {
				t.Errorf("maze list not sorted: %v", names)
				break
			}
		}
	})
}

// FrontierContractTest verifies the behavior every ports.Frontier shares,
// whatever its ordering. newFrontier must return an empty frontier.
func FrontierContractTest(t *testing.T, newFrontier func() ports.Frontier) {
	t.Helper()

	t.Run("Remove_Empty", func(t *testing.T) {
		f := newFrontier()
		if !f.Empty() {
			t.Fatal("new frontier should be empty")
		}
		if _, err := f.Remove(); !errors.Is(err, domain.ErrEmptyFrontier) {
			t.Errorf("expected ErrEmptyFrontier, got %v", err)
		}
	})

	t.Run("Add_Remove_Single", func(t *testing.T) {
		f := newFrontier()
		tree := domain.NewTree()
		n := tree.Root(domain.Cell{Row: 2, Col: 3})

		f.Add(n)
		if f.Empty() || f.Len() != 1 {
			t.Fatalf("expected one node, got len %d", f.Len())
		}
		if !f.ContainsState(n.State) {
			t.Error("ContainsState should see the added node")
		}

		got, err := f.Remove()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != n {
			t.Errorf("Remove() = %+v, want %+v", got, n)
		}
		if !f.Empty() {
			t.Error("frontier should be empty after removing its only node")
		}
		if f.ContainsState(n.State) {
			t.Error("ContainsState should not see a removed node")
		}
	})

	t.Run("Drains_All", func(t *testing.T) {
		f := newFrontier()
		tree := domain.NewTree()
		root := tree.Root(domain.Cell{Row: 0, Col: 0})
		f.Add(root)
		for i := 1; i <= 5; i++ {
			f.Add(tree.Add(domain.Cell{Row: i, Col: i}, root.ID, domain.ActionDown))
		}

		seen := make(map[domain.NodeID]bool)
		for !f.Empty() {
			n, err := f.Remove()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if seen[n.ID] {
				t.Fatalf("node %d removed twice", n.ID)
			}
			seen[n.ID] = true
		}
		if len(seen) != 6 {
			t.Errorf("expected 6 removals, got %d", len(seen))
		}
	})
}
