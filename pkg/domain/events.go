package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventSearchStart EventType = "search_start"
	EventNodeExpand  EventType = "node_expand"
	EventSolved      EventType = "solved"
	EventExhausted   EventType = "exhausted"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Maze      string    `json:"maze,omitempty"`
	Strategy  Strategy  `json:"strategy,omitempty"`
}

// SearchEvent marks the start or end of a search run.
type SearchEvent struct {
	EventBase
	NumExplored int `json:"num_explored"`
	PathLength  int `json:"path_length,omitempty"`
}

// ExpandEvent represents a node taken off the frontier.
type ExpandEvent struct {
	EventBase
	State    Cell `json:"state"`
	Added    int  `json:"added"`
	Frontier int  `json:"frontier"`
}

// LifecycleHooks defines callbacks for search observability.
type LifecycleHooks struct {
	OnSearchStart func(context.Context, *SearchEvent)
	OnNodeExpand  func(context.Context, *ExpandEvent)
	OnSolved      func(context.Context, *SearchEvent)
	OnExhausted   func(context.Context, *SearchEvent)
}
