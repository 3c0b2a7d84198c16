package ports

// MazeLoader defines how the engine retrieves maze text.
// This allows the storage layer (directory, Memory) to be decoupled.
type MazeLoader interface {
	// GetMaze returns the raw text of a maze by name.
	// Returns domain.ErrMazeNotFound if the loader has no such maze.
	GetMaze(name string) ([]byte, error)

	// ListMazes returns the names of all available mazes, sorted.
	ListMazes() ([]string, error)
}
