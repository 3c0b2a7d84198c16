package domain

import "errors"

// ErrInvalidMaze is returned when maze text does not have exactly one start and one goal marker.
var ErrInvalidMaze = errors.New("invalid maze")

// ErrEmptyFrontier is returned when Remove is called on an empty frontier.
// The search driver always checks Empty first, so seeing this means a caller broke the contract.
var ErrEmptyFrontier = errors.New("empty frontier")

// ErrUnknownStrategy is returned when a strategy name cannot be resolved.
var ErrUnknownStrategy = errors.New("unknown strategy")

// ErrUnknownAction is returned when a direction name cannot be resolved.
var ErrUnknownAction = errors.New("unknown action")

// ErrMazeNotFound is returned when a loader has no maze with the requested name.
var ErrMazeNotFound = errors.New("maze not found")

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrNotStarted is returned when a search is stepped before it was started.
var ErrNotStarted = errors.New("search not started")
