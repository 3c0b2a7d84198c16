package domain

// NodeID is a handle into a Tree.
type NodeID int

// NoParent marks the root node of a search.
const NoParent NodeID = -1

// Node is one search record. It points back at its parent by handle and is
// never mutated after creation.
type Node struct {
	ID     NodeID `json:"id"`
	State  Cell   `json:"state"`
	Parent NodeID `json:"parent"`
	Action Action `json:"action,omitempty"`
}

// IsRoot reports whether the node has no parent.
func (n Node) IsRoot() bool {
	return n.Parent == NoParent
}

// Tree is an append-only arena of Nodes.
// Children are always added after their parents, so chains are acyclic.
type Tree struct {
	nodes []Node
}

// NewTree creates an empty arena.
func NewTree() *Tree {
	return &Tree{}
}

// Add creates a node and returns it.
func (t *Tree) Add(state Cell, parent NodeID, action Action) Node {
	n := Node{
		ID:     NodeID(len(t.nodes)),
		State:  state,
		Parent: parent,
		Action: action,
	}
	t.nodes = append(t.nodes, n)
	return n
}

// Root creates a parentless node.
func (t *Tree) Root(state Cell) Node {
	return t.Add(state, NoParent, "")
}

// Get returns the node with the given handle.
func (t *Tree) Get(id NodeID) (Node, bool) {
	if id < 0 || int(id) >= len(t.nodes) {
		return Node{}, false
	}
	return t.nodes[id], true
}

// Len returns the number of nodes created so far.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Path walks from id back to the root and returns the actions and cells in
// root-to-node order. The root itself is excluded.
func (t *Tree) Path(id NodeID) *Solution {
	var actions []Action
	var cells []Cell

	node, ok := t.Get(id)
	for ok && !node.IsRoot() {
		actions = append(actions, node.Action)
		cells = append(cells, node.State)
		node, ok = t.Get(node.Parent)
	}

	// reverse path
	for i, j := 0, len(actions)-1; i < j; i, j = i+1, j-1 {
		actions[i], actions[j] = actions[j], actions[i]
		cells[i], cells[j] = cells[j], cells[i]
	}

	return &Solution{Actions: actions, Cells: cells}
}
