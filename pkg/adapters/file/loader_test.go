package file_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/labyrinth/pkg/adapters/file"
	"github.com/aretw0/labyrinth/pkg/domain"
	contract "github.com/aretw0/labyrinth/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Contract(t *testing.T) {
	dir := t.TempDir()
	data := map[string][]byte{
		"easy":      []byte("A B\n"),
		"very-hard": []byte("A#\n B\n"),
	}
	for name, content := range data {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name+file.MazeExt), content, 0o644))
	}

	// Non-maze entries are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# mazes"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.txt"), 0o755))

	contract.MazeLoaderContractTest(t, file.NewLoader(dir), data)
}

func TestLoader_RejectsPaths(t *testing.T) {
	dir := t.TempDir()
	loader := file.NewLoader(filepath.Join(dir, "mazes"))
	require.NoError(t, os.Mkdir(loader.Dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "secret.txt"), []byte("A B"), 0o644))

	for _, name := range []string{"../secret", "", "..", `a\b`} {
		_, err := loader.GetMaze(name)
		assert.ErrorIs(t, err, domain.ErrMazeNotFound, name)
	}
}

func TestLoader_MissingDir(t *testing.T) {
	loader := file.NewLoader(filepath.Join(t.TempDir(), "nope"))
	_, err := loader.ListMazes()
	assert.Error(t, err)
}
