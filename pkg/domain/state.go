package domain

// SearchStatus is the position of a search run in its state machine:
// idle -> searching -> {solved, exhausted}.
type SearchStatus string

const (
	StatusIdle      SearchStatus = "idle"      // No search started
	StatusSearching SearchStatus = "searching" // Frontier still has work
	StatusSolved    SearchStatus = "solved"    // Goal reached, solution set
	StatusExhausted SearchStatus = "exhausted" // Frontier emptied without reaching the goal
)

// Terminal reports whether no further steps can change the run.
func (s SearchStatus) Terminal() bool {
	return s == StatusSolved || s == StatusExhausted
}

// Snapshot is a read-only copy of the maze and search progress.
// Renderers poll it every frame; nothing in it aliases live search state.
type Snapshot struct {
	Maze        string       `json:"maze,omitempty"`
	Height      int          `json:"height"`
	Width       int          `json:"width"`
	Walls       [][]bool     `json:"walls,omitempty"`
	Start       Cell         `json:"start"`
	Goal        Cell         `json:"goal"`
	Player      Cell         `json:"player"`
	Strategy    Strategy     `json:"strategy,omitempty"`
	Status      SearchStatus `json:"status"`
	Steps       int          `json:"steps"`
	NumExplored int          `json:"num_explored"`
	Explored    []Cell       `json:"explored"`
	Frontier    []Cell       `json:"frontier"`
	Solution    *Solution    `json:"solution,omitempty"`
}
