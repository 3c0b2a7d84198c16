package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/labyrinth/pkg/domain"
)

// MazeExt is the extension of maze files.
const MazeExt = ".txt"

// Loader implements ports.MazeLoader over a directory of maze text files.
// A maze's name is its file name without the extension.
type Loader struct {
	Dir string
}

// NewLoader creates a Loader reading from dir.
func NewLoader(dir string) *Loader {
	return &Loader{Dir: dir}
}

// GetMaze reads the named maze file.
func (l *Loader) GetMaze(name string) ([]byte, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return nil, fmt.Errorf("%w: invalid name %q", domain.ErrMazeNotFound, name)
	}

	data, err := os.ReadFile(filepath.Join(l.Dir, name+MazeExt))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrMazeNotFound, name)
		}
		return nil, fmt.Errorf("failed to read maze %s: %w", name, err)
	}
	return data, nil
}

// ListMazes returns the names of the maze files in the directory, sorted.
func (l *Loader) ListMazes() ([]string, error) {
	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list mazes in %s: %w", l.Dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != MazeExt {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), MazeExt))
	}
	sort.Strings(names)
	return names, nil
}
