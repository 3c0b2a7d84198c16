package http

import "github.com/aretw0/labyrinth/pkg/domain"

// SolveRequest is the body of POST /mazes/{name}/solve.
type SolveRequest struct {
	Strategy string `json:"strategy"`
}

// SolveResponse reports a full search.
type SolveResponse struct {
	Maze        string          `json:"maze"`
	Strategy    domain.Strategy `json:"strategy"`
	Found       bool            `json:"found"`
	Actions     []domain.Action `json:"actions"`
	Cells       []domain.Cell   `json:"cells"`
	NumExplored int             `json:"num_explored"`
	PathLength  int             `json:"path_length"`
}

// CreateSessionRequest is the body of POST /sessions.
type CreateSessionRequest struct {
	Maze     string `json:"maze"`
	Strategy string `json:"strategy"`
}

// StepRequest is the body of POST /sessions/{id}/step. Count defaults to 1.
type StepRequest struct {
	Count int `json:"count"`
}

// MoveRequest is the body of POST /sessions/{id}/move.
type MoveRequest struct {
	Direction string `json:"direction"`
}

// SessionResponse pairs the stored record with the restored view.
type SessionResponse struct {
	Session  *domain.Session `json:"session"`
	Snapshot domain.Snapshot `json:"snapshot"`
}
