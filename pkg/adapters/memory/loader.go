package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/labyrinth/pkg/domain"
)

// Loader implements ports.MazeLoader using an in-memory map.
type Loader struct {
	mu    sync.RWMutex
	mazes map[string][]byte
}

// NewLoader creates a new Loader with the provided maze texts, keyed by name.
func NewLoader(data map[string]string) *Loader {
	mazes := make(map[string][]byte, len(data))
	for k, v := range data {
		mazes[k] = []byte(v)
	}
	return &Loader{
		mazes: mazes,
	}
}

// NewFromMazes creates a Loader from parsed mazes, rendering each back to text.
// Every maze needs a name.
func NewFromMazes(mazes ...*domain.Maze) (*Loader, error) {
	data := make(map[string][]byte, len(mazes))
	for _, m := range mazes {
		if m.Name == "" {
			return nil, fmt.Errorf("maze missing name")
		}
		data[m.Name] = []byte(m.String())
	}
	return &Loader{mazes: data}, nil
}

// Put adds or replaces a maze.
func (l *Loader) Put(name, text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.mazes[name] = []byte(text)
}

// GetMaze retrieves the raw text of a maze by name.
func (l *Loader) GetMaze(name string) ([]byte, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	content, ok := l.mazes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrMazeNotFound, name)
	}
	return append([]byte(nil), content...), nil
}

// ListMazes returns all available maze names.
func (l *Loader) ListMazes() ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	keys := make([]string, 0, len(l.mazes))
	for k := range l.mazes {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}
