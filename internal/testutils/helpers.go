package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Small is a 3x3 maze whose shortest path is down, down, right, right.
const Small = "A  \n ##\n  B\n"

// Blocked has an unreachable goal.
const Blocked = "A#B\n"

// WriteMazes creates a temporary directory with one <name>.txt file per entry.
// It returns the directory and fails the test immediately on error.
func WriteMazes(t *testing.T, mazes map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, text := range mazes {
		err := os.WriteFile(filepath.Join(dir, name+".txt"), []byte(text), 0644)
		require.NoError(t, err, "Failed to write maze %s", name)
	}
	return dir
}
