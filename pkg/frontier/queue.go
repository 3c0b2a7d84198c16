package frontier

import (
	"container/list"

	"github.com/aretw0/labyrinth/pkg/domain"
)

// Queue is a FIFO frontier.
type Queue struct {
	nodes  *list.List
	states stateSet
}

// NewQueue creates an empty queue frontier.
func NewQueue() *Queue {
	return &Queue{nodes: list.New(), states: make(stateSet)}
}

func (q *Queue) Add(node domain.Node) {
	q.nodes.PushBack(node)
	q.states.add(node.State)
}

// Remove returns the earliest added node.
func (q *Queue) Remove() (domain.Node, error) {
	if q.Empty() {
		return domain.Node{}, domain.ErrEmptyFrontier
	}
	node := q.nodes.Remove(q.nodes.Front()).(domain.Node)
	q.states.remove(node.State)
	return node, nil
}

func (q *Queue) ContainsState(state domain.Cell) bool { return q.states.contains(state) }
func (q *Queue) Empty() bool                          { return q.nodes.Len() == 0 }
func (q *Queue) Len() int                             { return q.nodes.Len() }
