package domain

import "time"

// Session is the persisted record of a search run.
// The search is deterministic, so a session is restored by reloading the maze
// and replaying Steps driver steps followed by Moves player moves.
type Session struct {
	ID       string   `json:"id"`
	Maze     string   `json:"maze"`
	Strategy Strategy `json:"strategy"`
	Steps    int      `json:"steps"`
	Moves    []Action `json:"moves,omitempty"`

	Status      SearchStatus `json:"status"`
	NumExplored int          `json:"num_explored"`
	PathLength  int          `json:"path_length"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession creates a session for a maze and strategy.
func NewSession(id, maze string, strategy Strategy) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        id,
		Maze:      maze,
		Strategy:  strategy,
		Status:    StatusIdle,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy.
func (s *Session) Clone() *Session {
	c := *s
	if s.Moves != nil {
		c.Moves = append([]Action(nil), s.Moves...)
	}
	return &c
}
