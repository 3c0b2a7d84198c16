package frontier

import "github.com/aretw0/labyrinth/pkg/domain"

// Stack is a LIFO frontier.
type Stack struct {
	nodes  []domain.Node
	states stateSet
}

// NewStack creates an empty stack frontier.
func NewStack() *Stack {
	return &Stack{states: make(stateSet)}
}

func (s *Stack) Add(node domain.Node) {
	s.nodes = append(s.nodes, node)
	s.states.add(node.State)
}

// Remove returns the most recently added node.
func (s *Stack) Remove() (domain.Node, error) {
	if s.Empty() {
		return domain.Node{}, domain.ErrEmptyFrontier
	}
	last := len(s.nodes) - 1
	node := s.nodes[last]
	s.nodes = s.nodes[:last]
	s.states.remove(node.State)
	return node, nil
}

func (s *Stack) ContainsState(state domain.Cell) bool { return s.states.contains(state) }
func (s *Stack) Empty() bool                          { return len(s.nodes) == 0 }
func (s *Stack) Len() int                             { return len(s.nodes) }
