package domain

import (
	"fmt"
	"strings"
)

// Cell is a grid coordinate. Identity is structural.
type Cell struct {
	Row int `json:"row" yaml:"row"`
	Col int `json:"col" yaml:"col"`
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Add returns the cell displaced by the given delta.
func (c Cell) Add(d Cell) Cell {
	return Cell{Row: c.Row + d.Row, Col: c.Col + d.Col}
}

// Action is a direction taken to move between adjacent cells.
type Action string

const (
	ActionUp    Action = "up"
	ActionDown  Action = "down"
	ActionLeft  Action = "left"
	ActionRight Action = "right"
)

// Actions lists the moves in neighbor order. The order is the tie-break
// for every strategy, so it must not change.
var Actions = []Action{ActionUp, ActionDown, ActionLeft, ActionRight}

var deltas = map[Action]Cell{
	ActionUp:    {Row: -1, Col: 0},
	ActionDown:  {Row: 1, Col: 0},
	ActionLeft:  {Row: 0, Col: -1},
	ActionRight: {Row: 0, Col: 1},
}

// Delta returns the displacement of an action and whether the action is known.
func (a Action) Delta() (Cell, bool) {
	d, ok := deltas[a]
	return d, ok
}

// ParseAction resolves a direction name (case-insensitive).
func ParseAction(s string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := deltas[a]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
	return a, nil
}
